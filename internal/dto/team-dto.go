package dto

import "github.com/aarondl/null/v8"

type CreateTeamDTO struct {
	Name        string  `json:"name"        validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type UpdateTeamDTO struct {
	Name        null.String `json:"name"        validate:"omitempty,min=1,max=255"`
	Description null.String `json:"description" validate:"omitempty,max=2000"`
}

type AddTeamMemberDTO struct {
	UserID uint64 `json:"user_id" query:"user_id" validate:"required,gt=0"`
}

type TeamDTO struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	MemberCount    int64   `json:"member_count"`
	EquipmentCount int64   `json:"equipment_count"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type TeamDetailDTO struct {
	ID          uint64              `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
	Members     []TeamMemberDTO     `json:"members"`
	Equipment   []ShortEquipmentDTO `json:"equipment"`
}

type TeamMemberDTO struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	AvatarURL *string `json:"avatar_url"`
	JoinedAt  string  `json:"joined_at"`
}
