package repositories

import (
	"errors"
	"net/http"

	apperrors "gearguard/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// сообщения для клиента по имени нарушенного ограничения
var constraintMessages = map[string]string{
	"users_email_key":                 "Email already registered",
	"equipment_serial_number_key":     "Serial number already exists",
	"maintenance_teams_name_live_key": "Team with this name already exists",
	"team_members_live_key":           "User is already a member of this team",
}

var foreignKeyMessages = map[string]string{
	"equipment_maintenance_team_id_fkey":               "Maintenance team not found",
	"equipment_default_technician_id_fkey":             "Technician not found",
	"maintenance_requests_equipment_id_fkey":           "Equipment not found",
	"maintenance_requests_maintenance_team_id_fkey":    "Maintenance team not found",
	"maintenance_requests_assigned_technician_id_fkey": "Technician not found",
	"team_members_user_id_fkey":                        "User not found",
	"team_members_team_id_fkey":                        "Team not found",
}

// mapDBError переводит ошибки pgx в ошибки приложения.
// Нарушение уникальности - Conflict, нарушение внешнего ключа - 400 с ErrNotFound внутри.
func mapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		msg, ok := constraintMessages[pgErr.ConstraintName]
		if !ok {
			msg = "Record already exists"
		}
		return apperrors.NewConflictError(msg)
	case pgForeignKeyViolation:
		msg, ok := foreignKeyMessages[pgErr.ConstraintName]
		if !ok {
			msg = "Referenced record not found"
		}
		return apperrors.NewHttpError(http.StatusBadRequest, msg, apperrors.ErrNotFound,
			map[string]interface{}{"constraint": pgErr.ConstraintName})
	}
	return err
}
