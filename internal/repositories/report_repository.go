package repositories

import (
	"context"
	"time"

	"gearguard/internal/dto"
	"gearguard/pkg/constants"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ReportRepositoryInterface interface {
	GetEquipmentStats(ctx context.Context) (*dto.EquipmentStatsDTO, error)
	GetRequestStats(ctx context.Context) (*dto.RequestStatsDTO, error)
	GetTeamCount(ctx context.Context) (int64, error)
	GetRecentActivity(ctx context.Context, limit uint64) ([]dto.RecentActivityDTO, error)
	GetCalendarEvents(ctx context.Context, from, to *time.Time) ([]dto.CalendarEventDTO, error)
	GetMaintenanceByTeam(ctx context.Context) ([]dto.TeamReportRowDTO, error)
	GetEquipmentStatus(ctx context.Context) ([]dto.EquipmentStatusRowDTO, error)
	GetTechnicianWorkload(ctx context.Context) ([]dto.TechnicianWorkloadRowDTO, error)
}

type ReportRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewReportRepository(storage *pgxpool.Pool, logger *zap.Logger) ReportRepositoryInterface {
	return &ReportRepository{storage: storage, logger: logger}
}

func (r *ReportRepository) GetEquipmentStats(ctx context.Context) (*dto.EquipmentStatsDTO, error) {
	query, args, err := sq.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE NOT is_scrapped)",
		"COUNT(*) FILTER (WHERE is_scrapped)",
	).From("equipment").
		Where(sq.Eq{"deleted_at": nil}).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	stats := &dto.EquipmentStatsDTO{}
	err = r.storage.QueryRow(ctx, query, args...).Scan(&stats.Total, &stats.Active, &stats.Scrapped)
	return stats, mapDBError(err)
}

func (r *ReportRepository) countBy(ctx context.Context, column string) (map[string]int64, error) {
	query, args, err := sq.Select(column, "COUNT(*)").
		From("maintenance_requests").
		Where(sq.Eq{"deleted_at": nil}).
		GroupBy(column).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("ReportRepository: ошибка группировки заявок", zap.String("column", column), zap.Error(err))
		return nil, mapDBError(err)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		out[key] = count
	}
	return out, rows.Err()
}

// GetRequestStats - все статусы и типы присутствуют в ответе, даже с нулём.
func (r *ReportRepository) GetRequestStats(ctx context.Context) (*dto.RequestStatsDTO, error) {
	byStatus, err := r.countBy(ctx, "status")
	if err != nil {
		return nil, err
	}
	byType, err := r.countBy(ctx, "request_type")
	if err != nil {
		return nil, err
	}

	for _, status := range constants.RequestStatuses {
		if _, ok := byStatus[status]; !ok {
			byStatus[status] = 0
		}
	}
	for _, requestType := range constants.RequestTypes {
		if _, ok := byType[requestType]; !ok {
			byType[requestType] = 0
		}
	}

	stats := &dto.RequestStatsDTO{ByStatus: byStatus, ByType: byType}
	for _, c := range byStatus {
		stats.Total += c
	}
	return stats, nil
}

func (r *ReportRepository) GetTeamCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM maintenance_teams WHERE deleted_at IS NULL").Scan(&count)
	return count, mapDBError(err)
}

func (r *ReportRepository) GetRecentActivity(ctx context.Context, limit uint64) ([]dto.RecentActivityDTO, error) {
	query, args, err := sq.Select("r.id", "r.subject", "r.status", "e.name", "u.name", "r.created_at").
		From("maintenance_requests r").
		LeftJoin("equipment e ON e.id = r.equipment_id AND e.deleted_at IS NULL").
		LeftJoin("users u ON u.id = r.created_by AND u.deleted_at IS NULL").
		Where(sq.Eq{"r.deleted_at": nil}).
		OrderBy("r.created_at DESC", "r.id DESC").
		Limit(limit).
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()

	list := make([]dto.RecentActivityDTO, 0, limit)
	for rows.Next() {
		var item dto.RecentActivityDTO
		var createdAt time.Time
		if err := rows.Scan(&item.ID, &item.Subject, &item.Status, &item.EquipmentName, &item.CreatedByName, &createdAt); err != nil {
			return nil, err
		}
		item.CreatedAt = formatTime(createdAt)
		list = append(list, item)
	}
	return list, rows.Err()
}

// GetCalendarEvents - заявки с плановой датой в диапазоне [from, to].
func (r *ReportRepository) GetCalendarEvents(ctx context.Context, from, to *time.Time) ([]dto.CalendarEventDTO, error) {
	where := sq.And{
		sq.Eq{"r.deleted_at": nil},
		sq.NotEq{"r.scheduled_date": nil},
	}
	if from != nil {
		where = append(where, sq.GtOrEq{"r.scheduled_date": *from})
	}
	if to != nil {
		where = append(where, sq.LtOrEq{"r.scheduled_date": *to})
	}

	query, args, err := sq.Select(
		"r.id", "r.subject", "r.description", "r.status",
		"r.scheduled_date", "r.started_at", "r.completed_at",
		"e.name", "t.name", "u.name",
	).
		From("maintenance_requests r").
		LeftJoin("equipment e ON e.id = r.equipment_id AND e.deleted_at IS NULL").
		LeftJoin("maintenance_teams t ON t.id = r.maintenance_team_id AND t.deleted_at IS NULL").
		LeftJoin("users u ON u.id = r.assigned_technician_id AND u.deleted_at IS NULL").
		Where(where).
		OrderBy("r.scheduled_date ASC", "r.id ASC").
		PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()

	list := make([]dto.CalendarEventDTO, 0)
	for rows.Next() {
		var ev dto.CalendarEventDTO
		var scheduled, startedAt, completedAt *time.Time
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Status,
			&scheduled, &startedAt, &completedAt,
			&ev.EquipmentName, &ev.TeamName, &ev.TechnicianName); err != nil {
			return nil, err
		}
		ev.ScheduledDate = formatNullDate(scheduled)
		ev.StartedAt = formatNullTime(startedAt)
		ev.CompletedAt = formatNullTime(completedAt)
		list = append(list, ev)
	}
	return list, rows.Err()
}

func (r *ReportRepository) GetMaintenanceByTeam(ctx context.Context) ([]dto.TeamReportRowDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT t.id, t.name,
			COUNT(r.id),
			COUNT(r.id) FILTER (WHERE r.status = 'new'),
			COUNT(r.id) FILTER (WHERE r.status = 'in_progress'),
			COUNT(r.id) FILTER (WHERE r.status = 'repaired'),
			COUNT(r.id) FILTER (WHERE r.status = 'scrap')
		FROM maintenance_teams t
		LEFT JOIN maintenance_requests r ON r.maintenance_team_id = t.id AND r.deleted_at IS NULL
		WHERE t.deleted_at IS NULL
		GROUP BY t.id, t.name
		ORDER BY t.name ASC`)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()

	list := make([]dto.TeamReportRowDTO, 0)
	for rows.Next() {
		var row dto.TeamReportRowDTO
		if err := rows.Scan(&row.ID, &row.Name, &row.TotalRequests, &row.NewRequests,
			&row.InProgress, &row.Completed, &row.Scrapped); err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

func (r *ReportRepository) GetEquipmentStatus(ctx context.Context) ([]dto.EquipmentStatusRowDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT COALESCE(category, 'Uncategorized') AS category,
			COUNT(*),
			COUNT(*) FILTER (WHERE NOT is_scrapped),
			COUNT(*) FILTER (WHERE is_scrapped),
			COUNT(*) FILTER (WHERE warranty_expiry IS NOT NULL AND warranty_expiry < CURRENT_DATE)
		FROM equipment
		WHERE deleted_at IS NULL
		GROUP BY 1
		ORDER BY 1 ASC`)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()

	list := make([]dto.EquipmentStatusRowDTO, 0)
	for rows.Next() {
		var row dto.EquipmentStatusRowDTO
		if err := rows.Scan(&row.Category, &row.Total, &row.Active, &row.Scrapped, &row.WarrantyExpired); err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

func (r *ReportRepository) GetTechnicianWorkload(ctx context.Context) ([]dto.TechnicianWorkloadRowDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT u.id, u.name, u.email,
			COUNT(r.id),
			COUNT(r.id) FILTER (WHERE r.status IN ('new', 'in_progress')),
			COUNT(r.id) FILTER (WHERE r.status = 'repaired')
		FROM users u
		LEFT JOIN maintenance_requests r ON r.assigned_technician_id = u.id AND r.deleted_at IS NULL
		WHERE u.role = 'technician' AND u.deleted_at IS NULL
		GROUP BY u.id, u.name, u.email
		ORDER BY u.name ASC`)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close()

	list := make([]dto.TechnicianWorkloadRowDTO, 0)
	for rows.Next() {
		var row dto.TechnicianWorkloadRowDTO
		if err := rows.Scan(&row.ID, &row.Name, &row.Email, &row.TotalAssigned, &row.ActiveTasks, &row.CompletedTasks); err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
