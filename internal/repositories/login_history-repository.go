package repositories

import (
	"context"

	"gearguard/internal/entities"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LoginHistoryRepositoryInterface interface {
	Insert(ctx context.Context, entry *entities.LoginHistory) error
	GetByUser(ctx context.Context, userID uint64, limit int) ([]entities.LoginHistory, error)
}

type LoginHistoryRepository struct {
	storage *pgxpool.Pool
}

func NewLoginHistoryRepository(storage *pgxpool.Pool) LoginHistoryRepositoryInterface {
	return &LoginHistoryRepository{storage: storage}
}

func (r *LoginHistoryRepository) Insert(ctx context.Context, entry *entities.LoginHistory) error {
	err := r.storage.QueryRow(ctx,
		"INSERT INTO login_history (user_id, ip_address) VALUES ($1, $2) RETURNING id, login_timestamp",
		entry.UserID, entry.IPAddress,
	).Scan(&entry.ID, &entry.LoginTimestamp)
	return mapDBError(err)
}

func (r *LoginHistoryRepository) GetByUser(ctx context.Context, userID uint64, limit int) ([]entities.LoginHistory, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.storage.Query(ctx, `
		SELECT id, user_id, login_timestamp, ip_address
		FROM login_history
		WHERE user_id = $1
		ORDER BY login_timestamp DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()

	list := make([]entities.LoginHistory, 0, limit)
	for rows.Next() {
		var h entities.LoginHistory
		if err := rows.Scan(&h.ID, &h.UserID, &h.LoginTimestamp, &h.IPAddress); err != nil {
			return nil, err
		}
		list = append(list, h)
	}
	return list, rows.Err()
}
