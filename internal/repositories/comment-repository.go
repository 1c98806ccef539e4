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

type CommentRepositoryInterface interface {
	CreateComment(ctx context.Context, comment *entities.RequestComment) (uint64, error)
	GetComments(ctx context.Context, requestID uint64) ([]dto.CommentDTO, error)
	DeleteComment(ctx context.Context, id uint64) error
}

type CommentRepository struct {
	storage *pgxpool.Pool
}

func NewCommentRepository(storage *pgxpool.Pool) CommentRepositoryInterface {
	return &CommentRepository{storage: storage}
}

// CreateComment - комментарий к удалённой заявке не создаётся.
func (r *CommentRepository) CreateComment(ctx context.Context, c *entities.RequestComment) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO request_comments (request_id, comment, commented_by)
		SELECT $1::bigint, $2::text, $3::bigint
		WHERE EXISTS (SELECT 1 FROM maintenance_requests WHERE id = $1::bigint AND deleted_at IS NULL)
		RETURNING id, created_at`, c.RequestID, c.Comment, c.CommentedBy,
	).Scan(&id, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, requestNotFound(c.RequestID)
		}
		return 0, mapDBError(err)
	}
	c.ID = id
	return id, nil
}

func (r *CommentRepository) GetComments(ctx context.Context, requestID uint64) ([]dto.CommentDTO, error) {
	return listComments(ctx, r.storage, requestID)
}

func (r *CommentRepository) DeleteComment(ctx context.Context, id uint64) error {
	return softDelete(ctx, r.storage, "request_comments", id)
}

func listComments(ctx context.Context, q querier, requestID uint64) ([]dto.CommentDTO, error) {
	rows, err := q.Query(ctx, `
		SELECT c.id, c.comment, c.commented_by, u.name, u.avatar_url, c.created_at
		FROM request_comments c
		LEFT JOIN users u ON u.id = c.commented_by AND u.deleted_at IS NULL
		WHERE c.request_id = $1 AND c.deleted_at IS NULL
		ORDER BY c.created_at ASC, c.id ASC`, requestID)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()

	list := make([]dto.CommentDTO, 0)
	for rows.Next() {
		var item dto.CommentDTO
		var createdAt time.Time
		if err := rows.Scan(&item.ID, &item.Comment, &item.CommentedBy, &item.CommenterName, &item.AvatarURL, &createdAt); err != nil {
			return nil, err
		}
		item.CreatedAt = formatTime(createdAt)
		list = append(list, item)
	}
	return list, rows.Err()
}
