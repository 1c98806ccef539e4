package repositories

import (
	"context"
	"fmt"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const equipmentTable = "equipment"

// удалённые команда и техник проецируются как NULL
const equipmentSelectFields = `e.id, e.name, e.serial_number, e.category, e.purchase_date, e.warranty_expiry,
	e.location, e.department, e.is_scrapped, t.id, t.name, u.id, u.name, e.created_at, e.updated_at`

const equipmentJoins = `
	LEFT JOIN maintenance_teams t ON t.id = e.maintenance_team_id AND t.deleted_at IS NULL
	LEFT JOIN users u ON u.id = e.default_technician_id AND u.deleted_at IS NULL`

var equipmentUpdatableColumns = allowList(
	"name", "category", "purchase_date", "warranty_expiry", "location",
	"department", "is_scrapped", "maintenance_team_id", "default_technician_id",
)

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter dto.EquipmentFilter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDetailDTO, error)
	CreateEquipment(ctx context.Context, equipment *entities.Equipment) (uint64, error)
	UpdateEquipment(ctx context.Context, id uint64, fields map[string]interface{}) error
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

func equipmentConditions(filter dto.EquipmentFilter) sq.And {
	where := sq.And{sq.Eq{"e.deleted_at": nil}}
	if filter.Category != nil {
		where = append(where, sq.Eq{"e.category": *filter.Category})
	}
	if filter.Department != nil {
		where = append(where, sq.Eq{"e.department": *filter.Department})
	}
	if filter.IsScrapped != nil {
		where = append(where, sq.Eq{"e.is_scrapped": *filter.IsScrapped})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, sq.Or{
			sq.ILike{"e.name": pattern},
			sq.ILike{"e.serial_number": pattern},
		})
	}
	return where
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter dto.EquipmentFilter) ([]dto.EquipmentDTO, uint64, error) {
	where := equipmentConditions(filter)

	var total uint64
	if filter.Paginate {
		countSQL, countArgs, err := sq.Select("COUNT(*)").From("equipment e").Where(where).
			PlaceholderFormat(sq.Dollar).ToSql()
		if err != nil {
			return nil, 0, err
		}
		if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return nil, 0, mapDBError(err)
		}
	}

	builder := sq.Select(equipmentSelectFields).
		From("equipment e").
		LeftJoin("maintenance_teams t ON t.id = e.maintenance_team_id AND t.deleted_at IS NULL").
		LeftJoin("users u ON u.id = e.default_technician_id AND u.deleted_at IS NULL").
		Where(where).
		OrderBy("e.name ASC", "e.id ASC").
		PlaceholderFormat(sq.Dollar)
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

	list := make([]dto.EquipmentDTO, 0)
	for rows.Next() {
		item, err := scanEquipmentRow(rows)
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

func scanEquipmentRow(row interface{ Scan(dest ...any) error }, extra ...any) (*dto.EquipmentDTO, error) {
	var item dto.EquipmentDTO
	var purchaseDate, warrantyExpiry *time.Time
	var createdAt, updatedAt time.Time

	dest := []any{
		&item.ID, &item.Name, &item.SerialNumber, &item.Category,
		&purchaseDate, &warrantyExpiry,
		&item.Location, &item.Department, &item.IsScrapped,
		&item.MaintenanceTeamID, &item.TeamName,
		&item.DefaultTechnicianID, &item.TechnicianName,
		&createdAt, &updatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, mapDBError(err)
	}

	item.PurchaseDate = formatNullDate(purchaseDate)
	item.WarrantyExpiry = formatNullDate(warrantyExpiry)
	item.CreatedAt = formatTime(createdAt)
	item.UpdatedAt = formatTime(updatedAt)
	return &item, nil
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDetailDTO, error) {
	query := fmt.Sprintf(`
		SELECT %s, t.description, u.email
		FROM equipment e %s
		WHERE e.id = $1 AND e.deleted_at IS NULL`,
		equipmentSelectFields, equipmentJoins)

	var detail dto.EquipmentDetailDTO
	item, err := scanEquipmentRow(r.storage.QueryRow(ctx, query, id), &detail.TeamDescription, &detail.TechnicianEmail)
	if err != nil {
		return nil, err
	}
	detail.EquipmentDTO = *item

	recent, err := r.recentRequests(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.RecentRequests = recent
	return &detail, nil
}

func (r *EquipmentRepository) recentRequests(ctx context.Context, equipmentID uint64) ([]dto.RecentRequestDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, subject, status, request_type, scheduled_date, created_at
		FROM maintenance_requests
		WHERE equipment_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC, id DESC
		LIMIT 5`, equipmentID)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()

	list := make([]dto.RecentRequestDTO, 0, 5)
	for rows.Next() {
		var item dto.RecentRequestDTO
		var scheduled *time.Time
		var createdAt time.Time
		if err := rows.Scan(&item.ID, &item.Subject, &item.Status, &item.RequestType, &scheduled, &createdAt); err != nil {
			return nil, err
		}
		item.ScheduledDate = formatNullDate(scheduled)
		item.CreatedAt = formatTime(createdAt)
		list = append(list, item)
	}
	return list, rows.Err()
}

// CreateEquipment - серийный номер уникален среди всех записей, включая удалённые.
func (r *EquipmentRepository) CreateEquipment(ctx context.Context, e *entities.Equipment) (uint64, error) {
	query := `
		INSERT INTO equipment (name, serial_number, category, purchase_date, warranty_expiry,
			location, department, maintenance_team_id, default_technician_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		e.Name, e.SerialNumber, e.Category, e.PurchaseDate, e.WarrantyExpiry,
		e.Location, e.Department, e.MaintenanceTeamID, e.DefaultTechnicianID,
	).Scan(&id)
	if err != nil {
		return 0, mapDBError(err)
	}
	return id, nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, id uint64, fields map[string]interface{}) error {
	return execUpdate(ctx, r.storage, equipmentTable, id, fields, equipmentUpdatableColumns)
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	return softDelete(ctx, r.storage, equipmentTable, id)
}
