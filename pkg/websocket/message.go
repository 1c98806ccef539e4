package websocket

import "time"

// Envelope - конверт сообщения. По type фронтенд решает, что делать с payload.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}
