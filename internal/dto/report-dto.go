package dto

type EquipmentStatsDTO struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Scrapped int64 `json:"scrapped"`
}

type RequestStatsDTO struct {
	ByStatus map[string]int64 `json:"by_status"`
	ByType   map[string]int64 `json:"by_type"`
	Total    int64            `json:"total"`
}

type TeamStatsDTO struct {
	Total int64 `json:"total"`
}

type RecentActivityDTO struct {
	ID            uint64  `json:"id"`
	Subject       string  `json:"subject"`
	Status        string  `json:"status"`
	EquipmentName *string `json:"equipment_name"`
	CreatedByName *string `json:"created_by_name"`
	CreatedAt     string  `json:"created_at"`
}

type DashboardStatsDTO struct {
	Equipment      EquipmentStatsDTO   `json:"equipment"`
	Requests       RequestStatsDTO     `json:"requests"`
	Teams          TeamStatsDTO        `json:"teams"`
	RecentActivity []RecentActivityDTO `json:"recent_activity"`
}

type CalendarFilter struct {
	StartDate *string `query:"start_date" validate:"omitempty,date_ymd"`
	EndDate   *string `query:"end_date"   validate:"omitempty,date_ymd"`
}

type CalendarEventDTO struct {
	ID             uint64  `json:"id"`
	Title          string  `json:"title"`
	Description    *string `json:"description"`
	Status         string  `json:"status"`
	ScheduledDate  *string `json:"scheduled_date"`
	StartedAt      *string `json:"started_at"`
	CompletedAt    *string `json:"completed_at"`
	EquipmentName  *string `json:"equipment_name"`
	TeamName       *string `json:"team_name"`
	TechnicianName *string `json:"technician_name"`
}

type TeamReportRowDTO struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	TotalRequests int64  `json:"total_requests"`
	NewRequests   int64  `json:"new_requests"`
	InProgress    int64  `json:"in_progress"`
	Completed     int64  `json:"completed"`
	Scrapped      int64  `json:"scrapped"`
}

type EquipmentStatusRowDTO struct {
	Category        string `json:"category"`
	Total           int64  `json:"total"`
	Active          int64  `json:"active"`
	Scrapped        int64  `json:"scrapped"`
	WarrantyExpired int64  `json:"warranty_expired"`
}

type TechnicianWorkloadRowDTO struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	TotalAssigned  int64  `json:"total_assigned"`
	ActiveTasks    int64  `json:"active_tasks"`
	CompletedTasks int64  `json:"completed_tasks"`
}
