package types

import "time"

type BaseEntity struct {
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}

// SoftDelete - пометка удаления. nil означает живую запись.
type SoftDelete struct {
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

func (s SoftDelete) IsDeleted() bool {
	return s.DeletedAt != nil
}
