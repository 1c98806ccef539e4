package dto

import "github.com/aarondl/null/v8"

type CreateRequestDTO struct {
	Subject              string  `json:"subject"                validate:"required,max=255"`
	Description          *string `json:"description"            validate:"omitempty,max=5000"`
	RequestType          string  `json:"request_type"           validate:"omitempty,request_type"`
	EquipmentID          uint64  `json:"equipment_id"           validate:"required,gt=0"`
	MaintenanceTeamID    uint64  `json:"maintenance_team_id"    validate:"required,gt=0"`
	AssignedTechnicianID *uint64 `json:"assigned_technician_id" validate:"omitempty,gt=0"`
	ScheduledDate        *string `json:"scheduled_date"         validate:"omitempty,date_ymd"`
}

type UpdateRequestDTO struct {
	Subject              null.String `json:"subject"                validate:"omitempty,min=1,max=255"`
	Description          null.String `json:"description"            validate:"omitempty,max=5000"`
	RequestType          null.String `json:"request_type"           validate:"omitempty,request_type"`
	AssignedTechnicianID null.Uint64 `json:"assigned_technician_id" validate:"omitempty,gt=0"`
	ScheduledDate        null.String `json:"scheduled_date"         validate:"omitempty,date_ymd"`
}

type UpdateStatusDTO struct {
	Status string `json:"status" query:"status"`
}

type StatusChangeDTO struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

type CreateCommentDTO struct {
	Comment string `json:"comment" validate:"required,min=1,max=5000"`
}

type RequestFilter struct {
	Status      *string
	RequestType *string
	EquipmentID *uint64
	TeamID      *uint64
	Limit       int
	Offset      int
	Paginate    bool
}

type RequestDTO struct {
	ID                   uint64  `json:"id"`
	Subject              string  `json:"subject"`
	Description          *string `json:"description"`
	RequestType          string  `json:"request_type"`
	Status               string  `json:"status"`
	EquipmentID          uint64  `json:"equipment_id"`
	EquipmentName        *string `json:"equipment_name"`
	SerialNumber         *string `json:"serial_number"`
	MaintenanceTeamID    uint64  `json:"maintenance_team_id"`
	TeamName             *string `json:"team_name"`
	AssignedTechnicianID *uint64 `json:"assigned_technician_id"`
	TechnicianName       *string `json:"technician_name"`
	ScheduledDate        *string `json:"scheduled_date"`
	StartedAt            *string `json:"started_at"`
	CompletedAt          *string `json:"completed_at"`
	CreatedBy            uint64  `json:"created_by"`
	CreatedByName        *string `json:"created_by_name"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
}

type RequestDetailDTO struct {
	RequestDTO
	Location        *string            `json:"location"`
	TechnicianEmail *string            `json:"technician_email"`
	CreatedByEmail  *string            `json:"created_by_email"`
	StatusHistory   []StatusHistoryDTO `json:"status_history"`
	Comments        []CommentDTO       `json:"comments"`
}

type StatusHistoryDTO struct {
	ID            uint64  `json:"id"`
	OldStatus     string  `json:"old_status"`
	NewStatus     string  `json:"new_status"`
	ChangedBy     uint64  `json:"changed_by"`
	ChangedByName *string `json:"changed_by_name"`
	ChangedAt     string  `json:"changed_at"`
}

type CommentDTO struct {
	ID            uint64  `json:"id"`
	Comment       string  `json:"comment"`
	CommentedBy   uint64  `json:"commented_by"`
	CommenterName *string `json:"commenter_name"`
	AvatarURL     *string `json:"avatar_url"`
	CreatedAt     string  `json:"created_at"`
}
