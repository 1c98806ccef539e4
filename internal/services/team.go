package services

import (
	"context"
	"strings"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/types"

	"go.uber.org/zap"
)

type TeamServiceInterface interface {
	GetTeams(ctx context.Context, filter types.Filter) ([]dto.TeamDTO, uint64, error)
	FindTeam(ctx context.Context, id uint64) (*dto.TeamDetailDTO, error)
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamDetailDTO, error)
	UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*dto.TeamDetailDTO, error)
	DeleteTeam(ctx context.Context, id uint64) error
	AddMember(ctx context.Context, teamID uint64, payload dto.AddTeamMemberDTO) (*dto.TeamDetailDTO, error)
	RemoveMember(ctx context.Context, teamID, userID uint64) error
}

type TeamService struct {
	repo   repositories.TeamRepositoryInterface
	logger *zap.Logger
}

func NewTeamService(repo repositories.TeamRepositoryInterface, logger *zap.Logger) TeamServiceInterface {
	return &TeamService{repo: repo, logger: logger}
}

func (s *TeamService) GetTeams(ctx context.Context, filter types.Filter) ([]dto.TeamDTO, uint64, error) {
	return s.repo.GetTeams(ctx, filter)
}

func (s *TeamService) FindTeam(ctx context.Context, id uint64) (*dto.TeamDetailDTO, error) {
	return s.repo.FindTeam(ctx, id)
}

func (s *TeamService) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamDetailDTO, error) {
	team := &entities.MaintenanceTeam{
		Name:        strings.TrimSpace(payload.Name),
		Description: trimPtr(payload.Description),
	}
	id, err := s.repo.CreateTeam(ctx, team)
	if err != nil {
		s.logger.Warn("CreateTeam: не удалось создать команду", zap.String("name", team.Name), zap.Error(err))
		return nil, err
	}
	s.logger.Info("CreateTeam: команда создана", zap.Uint64("id", id))
	return s.repo.FindTeam(ctx, id)
}

func (s *TeamService) UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*dto.TeamDetailDTO, error) {
	fields := updateFields{}
	if err := fields.requiredText("name", payload.Name); err != nil {
		return nil, err
	}
	fields.text("description", payload.Description)

	if err := s.repo.UpdateTeam(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repo.FindTeam(ctx, id)
}

func (s *TeamService) DeleteTeam(ctx context.Context, id uint64) error {
	if err := s.repo.DeleteTeam(ctx, id); err != nil {
		return err
	}
	s.logger.Info("DeleteTeam: команда удалена", zap.Uint64("id", id))
	return nil
}

func (s *TeamService) AddMember(ctx context.Context, teamID uint64, payload dto.AddTeamMemberDTO) (*dto.TeamDetailDTO, error) {
	if err := s.repo.AddMember(ctx, teamID, payload.UserID); err != nil {
		s.logger.Warn("AddMember: не удалось добавить участника",
			zap.Uint64("teamID", teamID), zap.Uint64("userID", payload.UserID), zap.Error(err))
		return nil, err
	}
	return s.repo.FindTeam(ctx, teamID)
}

func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID uint64) error {
	return s.repo.RemoveMember(ctx, teamID, userID)
}
