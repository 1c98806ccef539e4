package entities

import (
	"time"

	"gearguard/pkg/constants"
	"gearguard/pkg/types"
)

type MaintenanceRequest struct {
	ID                   uint64     `json:"id"`
	Subject              string     `json:"subject"`
	Description          *string    `json:"description"`
	RequestType          string     `json:"request_type"`
	Status               string     `json:"status"`
	EquipmentID          uint64     `json:"equipment_id"`
	MaintenanceTeamID    uint64     `json:"maintenance_team_id"`
	AssignedTechnicianID *uint64    `json:"assigned_technician_id"`
	ScheduledDate        *time.Time `json:"scheduled_date"`
	StartedAt            *time.Time `json:"started_at"`
	CompletedAt          *time.Time `json:"completed_at"`
	CreatedBy            uint64     `json:"created_by"`

	types.BaseEntity
	types.SoftDelete
}

// RequestState - часть заявки, которую меняет переход статуса.
type RequestState struct {
	Status      string
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// ApplyStatusTransition возвращает новое состояние заявки.
// started_at ставится только при первом переходе в in_progress,
// completed_at - только при первом переходе в repaired или scrap.
func ApplyStatusTransition(current RequestState, newStatus string, now time.Time) RequestState {
	next := RequestState{
		Status:      newStatus,
		StartedAt:   current.StartedAt,
		CompletedAt: current.CompletedAt,
	}
	if newStatus == constants.StatusInProgress && next.StartedAt == nil {
		t := now
		next.StartedAt = &t
	}
	if constants.IsFinalStatus(newStatus) && next.CompletedAt == nil {
		t := now
		next.CompletedAt = &t
	}
	return next
}

// RequestStatusLog - неизменяемая запись журнала переходов.
type RequestStatusLog struct {
	ID        uint64    `json:"id"`
	RequestID uint64    `json:"request_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedBy uint64    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

type RequestComment struct {
	ID          uint64    `json:"id"`
	RequestID   uint64    `json:"request_id"`
	Comment     string    `json:"comment"`
	CommentedBy uint64    `json:"commented_by"`
	CreatedAt   time.Time `json:"created_at"`

	types.SoftDelete
}
