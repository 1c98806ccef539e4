package services

import (
	"strings"
	"time"

	apperrors "gearguard/pkg/errors"

	"github.com/aarondl/null/v8"
)

const dateLayout = "2006-01-02"

// updateFields собирает колонки для частичного обновления.
// Поле без значения (Valid == false) пропускается.
// Пустая строка или нулевой id очищают nullable-колонку.
type updateFields map[string]interface{}

func (f updateFields) requiredText(column string, v null.String) error {
	if !v.Valid {
		return nil
	}
	s := strings.TrimSpace(v.String)
	if s == "" {
		return apperrors.NewInvalidInputError("%s must not be empty", column)
	}
	f[column] = s
	return nil
}

func (f updateFields) text(column string, v null.String) {
	if !v.Valid {
		return
	}
	if s := strings.TrimSpace(v.String); s != "" {
		f[column] = s
		return
	}
	f[column] = nil
}

func (f updateFields) date(column string, v null.String) error {
	if !v.Valid {
		return nil
	}
	if v.String == "" {
		f[column] = nil
		return nil
	}
	t, err := time.Parse(dateLayout, v.String)
	if err != nil {
		return apperrors.NewInvalidInputError("Invalid %s", column)
	}
	f[column] = t
	return nil
}

func (f updateFields) id(column string, v null.Uint64) {
	if !v.Valid {
		return
	}
	if v.Uint64 == 0 {
		f[column] = nil
		return
	}
	f[column] = v.Uint64
}

func (f updateFields) boolean(column string, v null.Bool) {
	if v.Valid {
		f[column] = v.Bool
	}
}

func parseDatePtr(column string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("Invalid %s", column)
	}
	return &t, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
