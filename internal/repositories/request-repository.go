package repositories

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const requestTable = "maintenance_requests"

var requestUpdatableColumns = allowList(
	"subject", "description", "request_type", "assigned_technician_id", "scheduled_date",
)

const requestSelectFields = `r.id, r.subject, r.description, r.request_type, r.status,
	r.equipment_id, e.name, e.serial_number,
	r.maintenance_team_id, t.name,
	tech.id, tech.name,
	r.scheduled_date, r.started_at, r.completed_at,
	r.created_by, cr.name,
	r.created_at, r.updated_at`

func requestBaseSelect(columns ...string) sq.SelectBuilder {
	return sq.Select(columns...).
		From("maintenance_requests r").
		LeftJoin("equipment e ON e.id = r.equipment_id AND e.deleted_at IS NULL").
		LeftJoin("maintenance_teams t ON t.id = r.maintenance_team_id AND t.deleted_at IS NULL").
		LeftJoin("users tech ON tech.id = r.assigned_technician_id AND tech.deleted_at IS NULL").
		LeftJoin("users cr ON cr.id = r.created_by AND cr.deleted_at IS NULL").
		PlaceholderFormat(sq.Dollar)
}

type RequestRepositoryInterface interface {
	GetRequests(ctx context.Context, filter dto.RequestFilter) ([]dto.RequestDTO, uint64, error)
	FindRequest(ctx context.Context, id uint64) (*dto.RequestDetailDTO, error)
	CreateRequest(ctx context.Context, request *entities.MaintenanceRequest) (uint64, error)
	UpdateRequest(ctx context.Context, id uint64, fields map[string]interface{}) error
	DeleteRequest(ctx context.Context, id uint64) error
}

type RequestRepository struct {
	storage *pgxpool.Pool
}

func NewRequestRepository(storage *pgxpool.Pool) RequestRepositoryInterface {
	return &RequestRepository{storage: storage}
}

func requestConditions(filter dto.RequestFilter) sq.And {
	where := sq.And{sq.Eq{"r.deleted_at": nil}}
	if filter.Status != nil {
		where = append(where, sq.Eq{"r.status": *filter.Status})
	}
	if filter.RequestType != nil {
		where = append(where, sq.Eq{"r.request_type": *filter.RequestType})
	}
	if filter.EquipmentID != nil {
		where = append(where, sq.Eq{"r.equipment_id": *filter.EquipmentID})
	}
	if filter.TeamID != nil {
		where = append(where, sq.Eq{"r.maintenance_team_id": *filter.TeamID})
	}
	return where
}

func (r *RequestRepository) GetRequests(ctx context.Context, filter dto.RequestFilter) ([]dto.RequestDTO, uint64, error) {
	where := requestConditions(filter)

	var total uint64
	if filter.Paginate {
		countSQL, countArgs, err := sq.Select("COUNT(*)").From("maintenance_requests r").Where(where).
			PlaceholderFormat(sq.Dollar).ToSql()
		if err != nil {
			return nil, 0, err
		}
		if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return nil, 0, mapDBError(err)
		}
	}

	builder := requestBaseSelect(requestSelectFields).Where(where).OrderBy("r.created_at DESC", "r.id DESC")
	if filter.Limit > 0 {
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

	list := make([]dto.RequestDTO, 0)
	for rows.Next() {
		item, err := scanRequestRow(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if !filter.Paginate {
		total = uint64(len(list))
	}
	return list, total, nil
}

func scanRequestRow(row interface{ Scan(dest ...any) error }, extra ...any) (*dto.RequestDTO, error) {
	var item dto.RequestDTO
	var scheduled, startedAt, completedAt *time.Time
	var createdAt, updatedAt time.Time

	dest := []any{
		&item.ID, &item.Subject, &item.Description, &item.RequestType, &item.Status,
		&item.EquipmentID, &item.EquipmentName, &item.SerialNumber,
		&item.MaintenanceTeamID, &item.TeamName,
		&item.AssignedTechnicianID, &item.TechnicianName,
		&scheduled, &startedAt, &completedAt,
		&item.CreatedBy, &item.CreatedByName,
		&createdAt, &updatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, mapDBError(err)
	}

	item.ScheduledDate = formatNullDate(scheduled)
	item.StartedAt = formatNullTime(startedAt)
	item.CompletedAt = formatNullTime(completedAt)
	item.CreatedAt = formatTime(createdAt)
	item.UpdatedAt = formatTime(updatedAt)
	return &item, nil
}

func (r *RequestRepository) FindRequest(ctx context.Context, id uint64) (*dto.RequestDetailDTO, error) {
	query, args, err := requestBaseSelect(requestSelectFields, "e.location", "tech.email", "cr.email").
		Where(sq.Eq{"r.id": id, "r.deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var detail dto.RequestDetailDTO
	item, err := scanRequestRow(r.storage.QueryRow(ctx, query, args...),
		&detail.Location, &detail.TechnicianEmail, &detail.CreatedByEmail)
	if err != nil {
		return nil, err
	}
	detail.RequestDTO = *item

	if detail.StatusHistory, err = listStatusLogs(ctx, r.storage, id); err != nil {
		return nil, err
	}
	if detail.Comments, err = listComments(ctx, r.storage, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreateRequest требует живые оборудование и команду.
func (r *RequestRepository) CreateRequest(ctx context.Context, req *entities.MaintenanceRequest) (uint64, error) {
	query := `
		INSERT INTO maintenance_requests (subject, description, request_type, status, equipment_id,
			maintenance_team_id, assigned_technician_id, scheduled_date, created_by)
		SELECT $1::varchar, $2::text, $3::varchar, $4::varchar, $5::bigint, $6::bigint, $7::bigint, $8::date, $9::bigint
		WHERE EXISTS (SELECT 1 FROM equipment WHERE id = $5::bigint AND deleted_at IS NULL)
		  AND EXISTS (SELECT 1 FROM maintenance_teams WHERE id = $6::bigint AND deleted_at IS NULL)
		RETURNING id`

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		req.Subject, req.Description, req.RequestType, req.Status, req.EquipmentID,
		req.MaintenanceTeamID, req.AssignedTechnicianID, req.ScheduledDate, req.CreatedBy,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewHttpError(http.StatusBadRequest, "Equipment or maintenance team not found",
				apperrors.ErrNotFound, map[string]interface{}{
					"equipment_id":        req.EquipmentID,
					"maintenance_team_id": req.MaintenanceTeamID,
				})
		}
		return 0, mapDBError(err)
	}
	return id, nil
}

func (r *RequestRepository) UpdateRequest(ctx context.Context, id uint64, fields map[string]interface{}) error {
	return execUpdate(ctx, r.storage, requestTable, id, fields, requestUpdatableColumns)
}

func (r *RequestRepository) DeleteRequest(ctx context.Context, id uint64) error {
	return softDelete(ctx, r.storage, requestTable, id)
}

func requestNotFound(id uint64) error {
	return apperrors.NewHttpError(http.StatusNotFound, "Request not found", apperrors.ErrNotFound,
		map[string]interface{}{"request_id": id})
}
