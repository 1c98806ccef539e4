package repositories

import (
	"context"
	"fmt"

	apperrors "gearguard/pkg/errors"
)

// таблицы с колонкой deleted_at
var softDeleteTables = map[string]struct{}{
	"users":                {},
	"equipment":            {},
	"maintenance_teams":    {},
	"maintenance_requests": {},
	"request_comments":     {},
}

// softDelete помечает живую запись удалённой. Повторный вызов даёт ErrNotFound.
func softDelete(ctx context.Context, q querier, table string, id uint64) error {
	if _, ok := softDeleteTables[table]; !ok {
		return fmt.Errorf("softDelete: таблица %q не поддерживает мягкое удаление", table)
	}

	query := fmt.Sprintf("UPDATE %s SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL", table)
	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return mapDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
