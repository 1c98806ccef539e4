package repositories

import (
	"context"
	"errors"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RequestStatusRepositoryInterface - шаги смены статуса. Все методы с tx
// должны вызываться внутри одной TxManager.RunInTransaction.
type RequestStatusRepositoryInterface interface {
	LockState(ctx context.Context, tx pgx.Tx, requestID uint64) (*entities.RequestState, error)
	SaveState(ctx context.Context, tx pgx.Tx, requestID uint64, state entities.RequestState) error
	InsertLog(ctx context.Context, tx pgx.Tx, entry *entities.RequestStatusLog) error
	GetHistory(ctx context.Context, requestID uint64) ([]dto.StatusHistoryDTO, error)
}

type RequestStatusRepository struct {
	storage *pgxpool.Pool
}

func NewRequestStatusRepository(storage *pgxpool.Pool) RequestStatusRepositoryInterface {
	return &RequestStatusRepository{storage: storage}
}

// LockState читает статус живой заявки под FOR UPDATE.
// Параллельные смены статуса одной заявки выстраиваются в очередь.
func (r *RequestStatusRepository) LockState(ctx context.Context, tx pgx.Tx, requestID uint64) (*entities.RequestState, error) {
	var state entities.RequestState
	err := tx.QueryRow(ctx, `
		SELECT status, started_at, completed_at
		FROM maintenance_requests
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE`, requestID,
	).Scan(&state.Status, &state.StartedAt, &state.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, requestNotFound(requestID)
		}
		return nil, mapDBError(err)
	}
	return &state, nil
}

func (r *RequestStatusRepository) SaveState(ctx context.Context, tx pgx.Tx, requestID uint64, state entities.RequestState) error {
	tag, err := tx.Exec(ctx, `
		UPDATE maintenance_requests
		SET status = $1, started_at = $2, completed_at = $3, updated_at = NOW()
		WHERE id = $4 AND deleted_at IS NULL`,
		state.Status, state.StartedAt, state.CompletedAt, requestID)
	if err != nil {
		return mapDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return requestNotFound(requestID)
	}
	return nil
}

func (r *RequestStatusRepository) InsertLog(ctx context.Context, tx pgx.Tx, entry *entities.RequestStatusLog) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO request_status_logs (request_id, old_status, new_status, changed_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, changed_at`,
		entry.RequestID, entry.OldStatus, entry.NewStatus, entry.ChangedBy,
	).Scan(&entry.ID, &entry.ChangedAt)
	return mapDBError(err)
}

func (r *RequestStatusRepository) GetHistory(ctx context.Context, requestID uint64) ([]dto.StatusHistoryDTO, error) {
	return listStatusLogs(ctx, r.storage, requestID)
}

func listStatusLogs(ctx context.Context, q querier, requestID uint64) ([]dto.StatusHistoryDTO, error) {
	rows, err := q.Query(ctx, `
		SELECT l.id, l.old_status, l.new_status, l.changed_by, u.name, l.changed_at
		FROM request_status_logs l
		LEFT JOIN users u ON u.id = l.changed_by AND u.deleted_at IS NULL
		WHERE l.request_id = $1
		ORDER BY l.id ASC`, requestID)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()

	list := make([]dto.StatusHistoryDTO, 0)
	for rows.Next() {
		var item dto.StatusHistoryDTO
		var changedAt time.Time
		if err := rows.Scan(&item.ID, &item.OldStatus, &item.NewStatus, &item.ChangedBy, &item.ChangedByName, &changedAt); err != nil {
			return nil, err
		}
		item.ChangedAt = formatTime(changedAt)
		list = append(list, item)
	}
	return list, rows.Err()
}
