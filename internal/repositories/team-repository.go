package repositories

import (
	"context"
	"errors"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const teamTable = "maintenance_teams"

var teamUpdatableColumns = allowList("name", "description")

type TeamRepositoryInterface interface {
	GetTeams(ctx context.Context, filter types.Filter) ([]dto.TeamDTO, uint64, error)
	FindTeam(ctx context.Context, id uint64) (*dto.TeamDetailDTO, error)
	CreateTeam(ctx context.Context, team *entities.MaintenanceTeam) (uint64, error)
	UpdateTeam(ctx context.Context, id uint64, fields map[string]interface{}) error
	DeleteTeam(ctx context.Context, id uint64) error
	AddMember(ctx context.Context, teamID, userID uint64) error
	RemoveMember(ctx context.Context, teamID, userID uint64) error
}

type TeamRepository struct {
	storage *pgxpool.Pool
}

func NewTeamRepository(storage *pgxpool.Pool) TeamRepositoryInterface {
	return &TeamRepository{storage: storage}
}

func (r *TeamRepository) GetTeams(ctx context.Context, filter types.Filter) ([]dto.TeamDTO, uint64, error) {
	where := sq.And{sq.Eq{"t.deleted_at": nil}}
	if filter.Search != "" {
		where = append(where, sq.ILike{"t.name": "%" + filter.Search + "%"})
	}

	var total uint64
	countSQL, countArgs, err := sq.Select("COUNT(*)").From("maintenance_teams t").Where(where).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, mapDBError(err)
	}

	builder := sq.Select(
		"t.id", "t.name", "t.description",
		`(SELECT COUNT(*) FROM team_members m
			JOIN users u ON u.id = m.user_id AND u.deleted_at IS NULL
			WHERE m.team_id = t.id AND m.deleted_at IS NULL)`,
		`(SELECT COUNT(*) FROM equipment e
			WHERE e.maintenance_team_id = t.id AND e.deleted_at IS NULL)`,
		"t.created_at", "t.updated_at",
	).
		From("maintenance_teams t").
		Where(where).
		OrderBy("t.name ASC").
		PlaceholderFormat(sq.Dollar)
	if filter.WithPagination {
		builder = builder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapDBError(err)
	}
	defer rows.Close()

	list := make([]dto.TeamDTO, 0)
	for rows.Next() {
		var item dto.TeamDTO
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&item.ID, &item.Name, &item.Description,
			&item.MemberCount, &item.EquipmentCount, &createdAt, &updatedAt); err != nil {
			return nil, 0, err
		}
		item.CreatedAt = formatTime(createdAt)
		item.UpdatedAt = formatTime(updatedAt)
		list = append(list, item)
	}
	return list, total, rows.Err()
}

func (r *TeamRepository) FindTeam(ctx context.Context, id uint64) (*dto.TeamDetailDTO, error) {
	var team dto.TeamDetailDTO
	var createdAt, updatedAt time.Time
	err := r.storage.QueryRow(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM maintenance_teams
		WHERE id = $1 AND deleted_at IS NULL`, id,
	).Scan(&team.ID, &team.Name, &team.Description, &createdAt, &updatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	team.CreatedAt = formatTime(createdAt)
	team.UpdatedAt = formatTime(updatedAt)

	if team.Members, err = r.members(ctx, id); err != nil {
		return nil, err
	}
	if team.Equipment, err = r.equipment(ctx, id); err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepository) members(ctx context.Context, teamID uint64) ([]dto.TeamMemberDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT u.id, u.name, u.email, u.role, u.avatar_url, m.created_at
		FROM team_members m
		JOIN users u ON u.id = m.user_id AND u.deleted_at IS NULL
		WHERE m.team_id = $1 AND m.deleted_at IS NULL
		ORDER BY u.name ASC`, teamID)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()

	list := make([]dto.TeamMemberDTO, 0)
	for rows.Next() {
		var m dto.TeamMemberDTO
		var joinedAt time.Time
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Role, &m.AvatarURL, &joinedAt); err != nil {
			return nil, err
		}
		m.JoinedAt = formatTime(joinedAt)
		list = append(list, m)
	}
	return list, rows.Err()
}

func (r *TeamRepository) equipment(ctx context.Context, teamID uint64) ([]dto.ShortEquipmentDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, name, serial_number, category, location
		FROM equipment
		WHERE maintenance_team_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC`, teamID)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()

	list := make([]dto.ShortEquipmentDTO, 0)
	for rows.Next() {
		var e dto.ShortEquipmentDTO
		if err := rows.Scan(&e.ID, &e.Name, &e.SerialNumber, &e.Category, &e.Location); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *TeamRepository) CreateTeam(ctx context.Context, team *entities.MaintenanceTeam) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		"INSERT INTO maintenance_teams (name, description) VALUES ($1, $2) RETURNING id",
		team.Name, team.Description,
	).Scan(&id)
	if err != nil {
		return 0, mapDBError(err)
	}
	return id, nil
}

func (r *TeamRepository) UpdateTeam(ctx context.Context, id uint64, fields map[string]interface{}) error {
	return execUpdate(ctx, r.storage, teamTable, id, fields, teamUpdatableColumns)
}

func (r *TeamRepository) DeleteTeam(ctx context.Context, id uint64) error {
	return softDelete(ctx, r.storage, teamTable, id)
}

// AddMember добавляет связь, только если команда и пользователь живы.
// Повторное добавление живого участника - Conflict.
func (r *TeamRepository) AddMember(ctx context.Context, teamID, userID uint64) error {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO team_members (team_id, user_id)
		SELECT $1::bigint, $2::bigint
		WHERE EXISTS (SELECT 1 FROM maintenance_teams WHERE id = $1 AND deleted_at IS NULL)
		  AND EXISTS (SELECT 1 FROM users WHERE id = $2 AND deleted_at IS NULL)
		RETURNING id`, teamID, userID,
	).Scan(&id)
	if err != nil {
		err = mapDBError(err)
		if errors.Is(err, apperrors.ErrNotFound) {
			return r.memberParentNotFound(ctx, teamID, userID)
		}
		return err
	}
	return nil
}

// memberParentNotFound уточняет, кого именно нет: команды или пользователя.
func (r *TeamRepository) memberParentNotFound(ctx context.Context, teamID, userID uint64) error {
	var teamExists, userExists bool
	err := r.storage.QueryRow(ctx, `
		SELECT
			EXISTS (SELECT 1 FROM maintenance_teams WHERE id = $1 AND deleted_at IS NULL),
			EXISTS (SELECT 1 FROM users WHERE id = $2 AND deleted_at IS NULL)`, teamID, userID,
	).Scan(&teamExists, &userExists)
	if err != nil {
		return mapDBError(err)
	}
	if !teamExists {
		return apperrors.NewNotFoundError("Team not found")
	}
	if !userExists {
		return apperrors.NewNotFoundError("User not found")
	}
	return apperrors.ErrNotFound
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID uint64) error {
	tag, err := r.storage.Exec(ctx, `
		UPDATE team_members SET deleted_at = NOW()
		WHERE team_id = $1 AND user_id = $2 AND deleted_at IS NULL`, teamID, userID)
	if err != nil {
		return mapDBError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
