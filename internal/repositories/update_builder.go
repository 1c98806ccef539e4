package repositories

import (
	"context"
	"fmt"
	"sort"

	apperrors "gearguard/pkg/errors"

	sq "github.com/Masterminds/squirrel"
)

// buildUpdate собирает UPDATE только по разрешённым колонкам.
// Колонка вне allowed - ошибка, пустой набор полей - ErrNoFieldsToUpdate.
// updated_at выставляется всегда, удалённые записи не обновляются.
func buildUpdate(table string, id uint64, fields map[string]interface{}, allowed map[string]struct{}) (string, []interface{}, error) {
	if len(fields) == 0 {
		return "", nil, apperrors.ErrNoFieldsToUpdate
	}

	columns := make([]string, 0, len(fields))
	for column := range fields {
		if _, ok := allowed[column]; !ok {
			return "", nil, fmt.Errorf("buildUpdate: колонка %q не разрешена для %s: %w", column, table, apperrors.ErrInvalidArgument)
		}
		columns = append(columns, column)
	}
	// стабильный порядок для одинакового SQL
	sort.Strings(columns)

	builder := sq.Update(table).PlaceholderFormat(sq.Dollar)
	for _, column := range columns {
		builder = builder.Set(column, fields[column])
	}
	builder = builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "deleted_at": nil})

	return builder.ToSql()
}

func allowList(columns ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		out[c] = struct{}{}
	}
	return out
}

// execUpdate выполняет частичное обновление живой записи. 0 строк - ErrNotFound.
func execUpdate(ctx context.Context, q querier, table string, id uint64, fields map[string]interface{}, allowed map[string]struct{}) error {
	query, args, err := buildUpdate(table, id, fields, allowed)
	if err != nil {
		return err
	}
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return mapDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
