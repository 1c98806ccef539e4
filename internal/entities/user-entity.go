package entities

import "gearguard/pkg/types"

type User struct {
	ID           uint64  `json:"id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	AvatarURL    *string `json:"avatar_url"`
	PasswordHash string  `json:"-"`

	types.BaseEntity
	types.SoftDelete
}
