package dto

import "github.com/aarondl/null/v8"

type CreateEquipmentDTO struct {
	Name                string  `json:"name"                  validate:"required,max=255"`
	SerialNumber        string  `json:"serial_number"         validate:"required,max=255"`
	Category            *string `json:"category"              validate:"omitempty,max=255"`
	PurchaseDate        *string `json:"purchase_date"         validate:"omitempty,date_ymd"`
	WarrantyExpiry      *string `json:"warranty_expiry"       validate:"omitempty,date_ymd"`
	Location            *string `json:"location"              validate:"omitempty,max=255"`
	Department          *string `json:"department"            validate:"omitempty,max=255"`
	MaintenanceTeamID   *uint64 `json:"maintenance_team_id"   validate:"omitempty,gt=0"`
	DefaultTechnicianID *uint64 `json:"default_technician_id" validate:"omitempty,gt=0"`
}

// UpdateEquipmentDTO - применяются только переданные поля (Valid == true).
type UpdateEquipmentDTO struct {
	Name                null.String `json:"name"                  validate:"omitempty,min=1,max=255"`
	Category            null.String `json:"category"              validate:"omitempty,max=255"`
	PurchaseDate        null.String `json:"purchase_date"         validate:"omitempty,date_ymd"`
	WarrantyExpiry      null.String `json:"warranty_expiry"       validate:"omitempty,date_ymd"`
	Location            null.String `json:"location"              validate:"omitempty,max=255"`
	Department          null.String `json:"department"            validate:"omitempty,max=255"`
	MaintenanceTeamID   null.Uint64 `json:"maintenance_team_id"   validate:"omitempty,gt=0"`
	DefaultTechnicianID null.Uint64 `json:"default_technician_id" validate:"omitempty,gt=0"`
	IsScrapped          null.Bool   `json:"is_scrapped"`
}

type EquipmentFilter struct {
	Category   *string
	Department *string
	IsScrapped *bool
	Search     string
	Limit      int
	Offset     int
	Paginate   bool
}

type EquipmentDTO struct {
	ID                  uint64  `json:"id"`
	Name                string  `json:"name"`
	SerialNumber        string  `json:"serial_number"`
	Category            *string `json:"category"`
	PurchaseDate        *string `json:"purchase_date"`
	WarrantyExpiry      *string `json:"warranty_expiry"`
	Location            *string `json:"location"`
	Department          *string `json:"department"`
	IsScrapped          bool    `json:"is_scrapped"`
	MaintenanceTeamID   *uint64 `json:"maintenance_team_id"`
	TeamName            *string `json:"team_name"`
	DefaultTechnicianID *uint64 `json:"default_technician_id"`
	TechnicianName      *string `json:"technician_name"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

type EquipmentDetailDTO struct {
	EquipmentDTO
	TeamDescription *string            `json:"team_description"`
	TechnicianEmail *string            `json:"technician_email"`
	RecentRequests  []RecentRequestDTO `json:"recent_requests"`
}

type RecentRequestDTO struct {
	ID            uint64  `json:"id"`
	Subject       string  `json:"subject"`
	Status        string  `json:"status"`
	RequestType   string  `json:"request_type"`
	ScheduledDate *string `json:"scheduled_date"`
	CreatedAt     string  `json:"created_at"`
}

type ShortEquipmentDTO struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	SerialNumber string  `json:"serial_number"`
	Category     *string `json:"category"`
	Location     *string `json:"location"`
}
