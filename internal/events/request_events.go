package events

import "time"

const RequestStatusChanged = "request.status.changed"

// RequestStatusChangedEvent публикуется после коммита смены статуса.
type RequestStatusChangedEvent struct {
	RequestID uint64    `json:"request_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ActorID   uint64    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

func (e RequestStatusChangedEvent) Name() string {
	return RequestStatusChanged
}
