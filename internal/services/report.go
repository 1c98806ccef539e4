package services

import (
	"context"
	"sync"

	"gearguard/internal/dto"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"

	"go.uber.org/zap"
)

const recentActivityLimit = 5

type ReportServiceInterface interface {
	GetDashboardStats(ctx context.Context) (*dto.DashboardStatsDTO, error)
	GetCalendarEvents(ctx context.Context, filter dto.CalendarFilter) ([]dto.CalendarEventDTO, error)
	GetMaintenanceByTeam(ctx context.Context) ([]dto.TeamReportRowDTO, error)
	GetEquipmentStatus(ctx context.Context) ([]dto.EquipmentStatusRowDTO, error)
	GetTechnicianWorkload(ctx context.Context) ([]dto.TechnicianWorkloadRowDTO, error)
}

type reportService struct {
	repo   repositories.ReportRepositoryInterface
	logger *zap.Logger
}

func NewReportService(repo repositories.ReportRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &reportService{repo: repo, logger: logger}
}

// GetDashboardStats выполняет независимые запросы параллельно.
func (s *reportService) GetDashboardStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	var (
		wg        sync.WaitGroup
		equipment *dto.EquipmentStatsDTO
		requests  *dto.RequestStatsDTO
		teamCount int64
		recent    []dto.RecentActivityDTO

		errs []error
		mu   sync.Mutex
	)

	addTask := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	addTask(func() (err error) { equipment, err = s.repo.GetEquipmentStats(ctx); return })
	addTask(func() (err error) { requests, err = s.repo.GetRequestStats(ctx); return })
	addTask(func() (err error) { teamCount, err = s.repo.GetTeamCount(ctx); return })
	addTask(func() (err error) { recent, err = s.repo.GetRecentActivity(ctx, recentActivityLimit); return })

	wg.Wait()

	if len(errs) > 0 {
		s.logger.Error("GetDashboardStats: ошибка загрузки дашборда", zap.Errors("errors", errs))
		return nil, errs[0]
	}

	return &dto.DashboardStatsDTO{
		Equipment:      *equipment,
		Requests:       *requests,
		Teams:          dto.TeamStatsDTO{Total: teamCount},
		RecentActivity: recent,
	}, nil
}

func (s *reportService) GetCalendarEvents(ctx context.Context, filter dto.CalendarFilter) ([]dto.CalendarEventDTO, error) {
	from, err := parseDatePtr("start_date", filter.StartDate)
	if err != nil {
		return nil, err
	}
	to, err := parseDatePtr("end_date", filter.EndDate)
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, apperrors.NewInvalidInputError("end_date must not be before start_date")
	}
	return s.repo.GetCalendarEvents(ctx, from, to)
}

func (s *reportService) GetMaintenanceByTeam(ctx context.Context) ([]dto.TeamReportRowDTO, error) {
	return s.repo.GetMaintenanceByTeam(ctx)
}

func (s *reportService) GetEquipmentStatus(ctx context.Context) ([]dto.EquipmentStatusRowDTO, error) {
	return s.repo.GetEquipmentStatus(ctx)
}

func (s *reportService) GetTechnicianWorkload(ctx context.Context) ([]dto.TechnicianWorkloadRowDTO, error) {
	return s.repo.GetTechnicianWorkload(ctx)
}
