package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/eventbus"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RequestServiceInterface interface {
	GetRequests(ctx context.Context, filter dto.RequestFilter) ([]dto.RequestDTO, uint64, error)
	FindRequest(ctx context.Context, id uint64) (*dto.RequestDetailDTO, error)
	CreateRequest(ctx context.Context, payload dto.CreateRequestDTO, actorID uint64) (*dto.RequestDetailDTO, error)
	UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateRequestDTO) (*dto.RequestDetailDTO, error)
	DeleteRequest(ctx context.Context, id uint64) error
	SetStatus(ctx context.Context, id uint64, newStatus string, actorID uint64) (*dto.StatusChangeDTO, error)
	AddComment(ctx context.Context, requestID uint64, payload dto.CreateCommentDTO, actorID uint64) (*dto.CommentDTO, error)
}

type RequestService struct {
	txManager   repositories.TxManagerInterface
	repo        repositories.RequestRepositoryInterface
	statusRepo  repositories.RequestStatusRepositoryInterface
	commentRepo repositories.CommentRepositoryInterface
	bus         *eventbus.Bus
	strict      bool
	now         func() time.Time
	logger      *zap.Logger
}

func NewRequestService(
	txManager repositories.TxManagerInterface,
	repo repositories.RequestRepositoryInterface,
	statusRepo repositories.RequestStatusRepositoryInterface,
	commentRepo repositories.CommentRepositoryInterface,
	bus *eventbus.Bus,
	strictTransitions bool,
	logger *zap.Logger,
) RequestServiceInterface {
	return &RequestService{
		txManager:   txManager,
		repo:        repo,
		statusRepo:  statusRepo,
		commentRepo: commentRepo,
		bus:         bus,
		strict:      strictTransitions,
		now:         time.Now,
		logger:      logger,
	}
}

func (s *RequestService) GetRequests(ctx context.Context, filter dto.RequestFilter) ([]dto.RequestDTO, uint64, error) {
	if filter.Status != nil && !constants.IsValidStatus(*filter.Status) {
		return nil, 0, apperrors.NewInvalidInputError("Invalid status")
	}
	if filter.RequestType != nil && !constants.IsValidRequestType(*filter.RequestType) {
		return nil, 0, apperrors.NewInvalidInputError("Invalid request type")
	}
	return s.repo.GetRequests(ctx, filter)
}

func (s *RequestService) FindRequest(ctx context.Context, id uint64) (*dto.RequestDetailDTO, error) {
	detail, err := s.repo.FindRequest(ctx, id)
	if err != nil {
		return nil, notFoundAsRequest(err)
	}
	return detail, nil
}

func (s *RequestService) CreateRequest(ctx context.Context, payload dto.CreateRequestDTO, actorID uint64) (*dto.RequestDetailDTO, error) {
	requestType := payload.RequestType
	if requestType == "" {
		requestType = constants.RequestTypeCorrective
	}
	if !constants.IsValidRequestType(requestType) {
		return nil, apperrors.NewInvalidInputError("Invalid request type")
	}
	scheduled, err := parseDatePtr("scheduled_date", payload.ScheduledDate)
	if err != nil {
		return nil, err
	}

	request := &entities.MaintenanceRequest{
		Subject:              strings.TrimSpace(payload.Subject),
		Description:          trimPtr(payload.Description),
		RequestType:          requestType,
		Status:               constants.StatusNew,
		EquipmentID:          payload.EquipmentID,
		MaintenanceTeamID:    payload.MaintenanceTeamID,
		AssignedTechnicianID: payload.AssignedTechnicianID,
		ScheduledDate:        scheduled,
		CreatedBy:            actorID,
	}

	id, err := s.repo.CreateRequest(ctx, request)
	if err != nil {
		s.logger.Warn("CreateRequest: не удалось создать заявку", zap.Uint64("actorID", actorID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("CreateRequest: заявка создана", zap.Uint64("id", id), zap.Uint64("actorID", actorID))
	return s.repo.FindRequest(ctx, id)
}

func (s *RequestService) UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateRequestDTO) (*dto.RequestDetailDTO, error) {
	fields := updateFields{}
	if err := fields.requiredText("subject", payload.Subject); err != nil {
		return nil, err
	}
	fields.text("description", payload.Description)
	if payload.RequestType.Valid {
		if !constants.IsValidRequestType(payload.RequestType.String) {
			return nil, apperrors.NewInvalidInputError("Invalid request type")
		}
		fields["request_type"] = payload.RequestType.String
	}
	fields.id("assigned_technician_id", payload.AssignedTechnicianID)
	if err := fields.date("scheduled_date", payload.ScheduledDate); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRequest(ctx, id, fields); err != nil {
		return nil, notFoundAsRequest(err)
	}
	return s.repo.FindRequest(ctx, id)
}

func (s *RequestService) DeleteRequest(ctx context.Context, id uint64) error {
	if err := s.repo.DeleteRequest(ctx, id); err != nil {
		return notFoundAsRequest(err)
	}
	s.logger.Info("DeleteRequest: заявка удалена", zap.Uint64("id", id))
	return nil
}

// SetStatus меняет статус в одной транзакции: чтение под блокировкой, обновление, запись в журнал.
// old_status в журнале - значение, прочитанное под блокировкой.
func (s *RequestService) SetStatus(ctx context.Context, id uint64, newStatus string, actorID uint64) (*dto.StatusChangeDTO, error) {
	if !constants.IsValidStatus(newStatus) {
		return nil, apperrors.NewInvalidInputError("Invalid status")
	}

	var change dto.StatusChangeDTO
	var changedAt time.Time
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.statusRepo.LockState(ctx, tx, id)
		if err != nil {
			return err
		}

		if s.strict && !constants.CanTransition(current.Status, newStatus) {
			return apperrors.NewHttpError(http.StatusBadRequest, "Invalid status transition", apperrors.ErrInvalidTransition,
				map[string]interface{}{"from": current.Status, "to": newStatus})
		}

		next := entities.ApplyStatusTransition(*current, newStatus, s.now())
		if err := s.statusRepo.SaveState(ctx, tx, id, next); err != nil {
			return err
		}

		entry := &entities.RequestStatusLog{
			RequestID: id,
			OldStatus: current.Status,
			NewStatus: newStatus,
			ChangedBy: actorID,
		}
		if err := s.statusRepo.InsertLog(ctx, tx, entry); err != nil {
			return err
		}

		change = dto.StatusChangeDTO{OldStatus: current.Status, NewStatus: newStatus}
		changedAt = entry.ChangedAt
		return nil
	})
	if err != nil {
		s.logger.Warn("SetStatus: статус не изменён",
			zap.Uint64("requestID", id), zap.String("to", newStatus), zap.Error(err))
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(events.RequestStatusChangedEvent{
			RequestID: id,
			OldStatus: change.OldStatus,
			NewStatus: change.NewStatus,
			ActorID:   actorID,
			ChangedAt: changedAt,
		})
	}
	return &change, nil
}

func (s *RequestService) AddComment(ctx context.Context, requestID uint64, payload dto.CreateCommentDTO, actorID uint64) (*dto.CommentDTO, error) {
	text := strings.TrimSpace(payload.Comment)
	if text == "" {
		return nil, apperrors.NewInvalidInputError("Comment must not be empty")
	}

	comment := &entities.RequestComment{RequestID: requestID, Comment: text, CommentedBy: actorID}
	if _, err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return &dto.CommentDTO{
		ID:          comment.ID,
		Comment:     comment.Comment,
		CommentedBy: comment.CommentedBy,
		CreatedAt:   comment.CreatedAt.Format(time.RFC3339),
	}, nil
}

// notFoundAsRequest уточняет сообщение 404 для заявок.
func notFoundAsRequest(err error) error {
	if err == apperrors.ErrNotFound {
		return apperrors.NewNotFoundError("Request not found")
	}
	return err
}
