package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/metrics"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"

	"go.uber.org/zap"
)

const recentLoginsLimit = 5

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO, ip string) (*dto.AuthResult, error)
	Signup(ctx context.Context, payload dto.SignupDTO) (*dto.UserProfileDTO, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResult, error)
	Logout(ctx context.Context, accessToken, refreshToken string)
	Me(ctx context.Context, userID uint64) (*dto.MeDTO, error)
}

type AuthService struct {
	userRepo    repositories.UserRepositoryInterface
	historyRepo repositories.LoginHistoryRepositoryInterface
	jwtService  service.JWTService
	revoker     TokenRevokerInterface
	metrics     *metrics.AppMetrics
	logger      *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	historyRepo repositories.LoginHistoryRepositoryInterface,
	jwtService service.JWTService,
	revoker TokenRevokerInterface,
	appMetrics *metrics.AppMetrics,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:    userRepo,
		historyRepo: historyRepo,
		jwtService:  jwtService,
		revoker:     revoker,
		metrics:     appMetrics,
		logger:      logger,
	}
}

// normalizeEmail убирает только пробелы по краям. Регистр сохраняется: email сравнивается как есть.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func toProfile(u *entities.User) dto.UserProfileDTO {
	return dto.UserProfileDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
	}
}

// Login проверяет email, пароль и заявленную роль именно в этом порядке.
// Неудачные попытки ничего не меняют: блокировки нет.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO, ip string) (*dto.AuthResult, error) {
	logger := s.logger.With(zap.String("email", payload.Username))

	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(payload.Username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.metrics.IncLogin("invalid_credentials")
			logger.Info("Login: пользователь не найден")
			return nil, apperrors.ErrInvalidCredentials
		}
		logger.Error("Login: ошибка поиска пользователя", zap.Error(err))
		return nil, err
	}

	if !utils.ComparePasswords(user.PasswordHash, payload.Password) {
		s.metrics.IncLogin("invalid_credentials")
		logger.Info("Login: неверный пароль", zap.Uint64("userID", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}

	if payload.Role != user.Role {
		s.metrics.IncLogin("role_mismatch")
		logger.Info("Login: роль не совпадает", zap.String("claimed", payload.Role), zap.String("actual", user.Role))
		return nil, apperrors.ErrRoleMismatch
	}

	result, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	if utils.NeedsRehash(user.PasswordHash) {
		s.upgradeHash(ctx, user.ID, payload.Password)
	}
	s.recordLogin(ctx, user.ID, ip)
	s.metrics.IncLogin("success")

	logger.Info("Login: успешный вход", zap.Uint64("userID", user.ID), zap.String("role", user.Role))
	return result, nil
}

func (s *AuthService) issueTokens(user *entities.User) (*dto.AuthResult, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResult{
		User:         toProfile(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) upgradeHash(ctx context.Context, userID uint64, password string) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		s.logger.Warn("Login: не удалось пересчитать хеш пароля", zap.Uint64("userID", userID), zap.Error(err))
		return
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		s.logger.Warn("Login: не удалось сохранить новый хеш пароля", zap.Uint64("userID", userID), zap.Error(err))
		return
	}
	s.logger.Info("Login: хеш пароля обновлён", zap.Uint64("userID", userID))
}

// recordLogin не влияет на результат входа.
func (s *AuthService) recordLogin(ctx context.Context, userID uint64, ip string) {
	if s.historyRepo == nil {
		return
	}
	entry := &entities.LoginHistory{UserID: userID}
	if ip != "" {
		entry.IPAddress = &ip
	}
	if err := s.historyRepo.Insert(ctx, entry); err != nil {
		s.logger.Warn("Login: не удалось записать историю входа", zap.Uint64("userID", userID), zap.Error(err))
	}
}

// Signup всегда создаёт сотрудника с ролью employee.
func (s *AuthService) Signup(ctx context.Context, payload dto.SignupDTO) (*dto.UserProfileDTO, error) {
	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		s.logger.Error("Signup: ошибка хеширования пароля", zap.Error(err))
		return nil, err
	}

	user := &entities.User{
		Email:        normalizeEmail(payload.Email),
		Name:         strings.TrimSpace(payload.Name),
		Role:         constants.DefaultRole,
		PasswordHash: hash,
	}
	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.logger.Info("Signup: email уже зарегистрирован", zap.String("email", user.Email))
			return nil, apperrors.NewConflictError("Email already registered")
		}
		s.logger.Error("Signup: ошибка создания пользователя", zap.Error(err))
		return nil, err
	}
	user.ID = id

	profile := toProfile(user)
	s.logger.Info("Signup: пользователь создан", zap.Uint64("userID", id))
	return &profile, nil
}

// Refresh выдаёт новую пару токенов по refresh-токену. Старый refresh отзывается.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResult, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken() {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Refresh: не удалось проверить отзыв токена", zap.Error(err))
		return nil, apperrors.ErrUnauthorized
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	result, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		s.logger.Warn("Refresh: не удалось отозвать старый refresh-токен", zap.Error(err))
	}
	return result, nil
}

// Logout никогда не падает: невалидные токены просто пропускаются.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) {
	for _, token := range []string{accessToken, refreshToken} {
		if token == "" {
			continue
		}
		claims, err := s.jwtService.ValidateToken(token)
		if err != nil {
			continue
		}
		if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
			s.logger.Warn("Logout: не удалось отозвать токен", zap.String("typ", claims.TokenType), zap.Error(err))
		}
	}
}

func (s *AuthService) Me(ctx context.Context, userID uint64) (*dto.MeDTO, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	me := &dto.MeDTO{UserProfileDTO: toProfile(user), RecentLogins: []dto.LoginHistoryDTO{}}
	if s.historyRepo != nil {
		history, err := s.historyRepo.GetByUser(ctx, userID, recentLoginsLimit)
		if err != nil {
			s.logger.Warn("Me: не удалось загрузить историю входов", zap.Uint64("userID", userID), zap.Error(err))
			return me, nil
		}
		for _, h := range history {
			me.RecentLogins = append(me.RecentLogins, dto.LoginHistoryDTO{
				LoginTimestamp: h.LoginTimestamp.Format(time.RFC3339),
				IPAddress:      h.IPAddress,
			})
		}
	}
	return me, nil
}
