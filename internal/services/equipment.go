package services

import (
	"context"
	"strings"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"

	"go.uber.org/zap"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter dto.EquipmentFilter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDetailDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDetailDTO, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDetailDTO, error)
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	repo   repositories.EquipmentRepositoryInterface
	logger *zap.Logger
}

func NewEquipmentService(repo repositories.EquipmentRepositoryInterface, logger *zap.Logger) EquipmentServiceInterface {
	return &EquipmentService{repo: repo, logger: logger}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter dto.EquipmentFilter) ([]dto.EquipmentDTO, uint64, error) {
	return s.repo.GetEquipments(ctx, filter)
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDetailDTO, error) {
	return s.repo.FindEquipment(ctx, id)
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDetailDTO, error) {
	purchaseDate, err := parseDatePtr("purchase_date", payload.PurchaseDate)
	if err != nil {
		return nil, err
	}
	warrantyExpiry, err := parseDatePtr("warranty_expiry", payload.WarrantyExpiry)
	if err != nil {
		return nil, err
	}

	equipment := &entities.Equipment{
		Name:                strings.TrimSpace(payload.Name),
		SerialNumber:        strings.TrimSpace(payload.SerialNumber),
		Category:            trimPtr(payload.Category),
		PurchaseDate:        purchaseDate,
		WarrantyExpiry:      warrantyExpiry,
		Location:            trimPtr(payload.Location),
		Department:          trimPtr(payload.Department),
		MaintenanceTeamID:   payload.MaintenanceTeamID,
		DefaultTechnicianID: payload.DefaultTechnicianID,
	}

	id, err := s.repo.CreateEquipment(ctx, equipment)
	if err != nil {
		s.logger.Warn("CreateEquipment: не удалось создать оборудование",
			zap.String("serial", equipment.SerialNumber), zap.Error(err))
		return nil, err
	}
	s.logger.Info("CreateEquipment: оборудование создано", zap.Uint64("id", id))
	return s.repo.FindEquipment(ctx, id)
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDetailDTO, error) {
	fields := updateFields{}
	if err := fields.requiredText("name", payload.Name); err != nil {
		return nil, err
	}
	fields.text("category", payload.Category)
	fields.text("location", payload.Location)
	fields.text("department", payload.Department)
	if err := fields.date("purchase_date", payload.PurchaseDate); err != nil {
		return nil, err
	}
	if err := fields.date("warranty_expiry", payload.WarrantyExpiry); err != nil {
		return nil, err
	}
	fields.id("maintenance_team_id", payload.MaintenanceTeamID)
	fields.id("default_technician_id", payload.DefaultTechnicianID)
	fields.boolean("is_scrapped", payload.IsScrapped)

	if err := s.repo.UpdateEquipment(ctx, id, fields); err != nil {
		return nil, err
	}
	s.logger.Info("UpdateEquipment: оборудование обновлено", zap.Uint64("id", id), zap.Int("fields", len(fields)))
	return s.repo.FindEquipment(ctx, id)
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	if err := s.repo.DeleteEquipment(ctx, id); err != nil {
		return err
	}
	s.logger.Info("DeleteEquipment: оборудование удалено", zap.Uint64("id", id))
	return nil
}
