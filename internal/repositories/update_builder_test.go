package repositories

import (
	"testing"

	apperrors "gearguard/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUpdate(t *testing.T) {
	allowed := allowList("name", "location", "is_scrapped")

	t.Run("только переданные колонки в стабильном порядке", func(t *testing.T) {
		query, args, err := buildUpdate("equipment", 7, map[string]interface{}{
			"name":     "Pump",
			"location": nil,
		}, allowed)
		require.NoError(t, err)

		assert.Equal(t,
			"UPDATE equipment SET location = $1, name = $2, updated_at = NOW() WHERE deleted_at IS NULL AND id = $3",
			query)
		assert.Contains(t, query, "deleted_at IS NULL")
		assert.Equal(t, []interface{}{nil, "Pump", uint64(7)}, args)
	})

	t.Run("пустой набор полей", func(t *testing.T) {
		_, _, err := buildUpdate("equipment", 1, map[string]interface{}{}, allowed)
		assert.ErrorIs(t, err, apperrors.ErrNoFieldsToUpdate)
	})

	t.Run("колонка вне списка", func(t *testing.T) {
		_, _, err := buildUpdate("equipment", 1, map[string]interface{}{
			"name":          "Pump",
			"serial_number": "X-1",
		}, allowed)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})

	t.Run("имя колонки с инъекцией отклоняется", func(t *testing.T) {
		_, _, err := buildUpdate("equipment", 1, map[string]interface{}{
			"name = 'x'; DROP TABLE users; --": "y",
		}, allowed)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})
}

func TestUpdatableColumnListsAreClosed(t *testing.T) {
	_, ok := equipmentUpdatableColumns["serial_number"]
	assert.False(t, ok, "серийный номер не меняется")

	_, ok = requestUpdatableColumns["status"]
	assert.False(t, ok, "статус меняется только через SetStatus")

	_, ok = requestUpdatableColumns["started_at"]
	assert.False(t, ok)
}
