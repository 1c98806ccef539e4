package repositories

import (
	"context"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

const userSelectFields = "id, email, name, role, avatar_url, password_hash, created_at, updated_at"

type UserRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByID(ctx context.Context, id uint64) (*entities.User, error)
	GetActiveUserRole(ctx context.Context, id uint64) (string, error)
	Create(ctx context.Context, user *entities.User) (uint64, error)
	UpdatePasswordHash(ctx context.Context, id uint64, hash string) error
	Delete(ctx context.Context, id uint64) error
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

func scanUser(row interface{ Scan(dest ...any) error }) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.AvatarURL, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &u, nil
}

// FindByEmail ищет только живых пользователей.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := "SELECT " + userSelectFields + " FROM users WHERE email = $1 AND deleted_at IS NULL"
	return scanUser(r.storage.QueryRow(ctx, query, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := "SELECT " + userSelectFields + " FROM users WHERE id = $1 AND deleted_at IS NULL"
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

// GetActiveUserRole - текущая роль из БД, а не из токена.
func (r *UserRepository) GetActiveUserRole(ctx context.Context, id uint64) (string, error) {
	var role string
	err := r.storage.QueryRow(ctx, "SELECT role FROM users WHERE id = $1 AND deleted_at IS NULL", id).Scan(&role)
	if err != nil {
		return "", mapDBError(err)
	}
	return role, nil
}

// Create возвращает Conflict, если email уже занят (в том числе удалённым пользователем).
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (uint64, error) {
	query := `
		INSERT INTO users (email, name, role, avatar_url, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	var id uint64
	err := r.storage.QueryRow(ctx, query, user.Email, user.Name, user.Role, user.AvatarURL, user.PasswordHash).Scan(&id)
	if err != nil {
		return 0, mapDBError(err)
	}
	return id, nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id uint64, hash string) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL", hash, id)
	if err != nil {
		return mapDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	return softDelete(ctx, r.storage, "users", id)
}
