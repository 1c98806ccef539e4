package entities

import "time"

type LoginHistory struct {
	ID             uint64    `json:"id"`
	UserID         uint64    `json:"user_id"`
	LoginTimestamp time.Time `json:"login_timestamp"`
	IPAddress      *string   `json:"ip_address"`
}
