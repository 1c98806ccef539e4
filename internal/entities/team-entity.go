package entities

import (
	"time"

	"gearguard/pkg/types"
)

type MaintenanceTeam struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`

	types.BaseEntity
	types.SoftDelete
}

// TeamMember - связь команды и пользователя. Удалённая связь не мешает добавить участника снова.
type TeamMember struct {
	ID        uint64    `json:"id"`
	TeamID    uint64    `json:"team_id"`
	UserID    uint64    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	types.SoftDelete
}
