package middleware

import (
	"context"
	"errors"

	"gearguard/pkg/constants"
	"gearguard/pkg/contextkeys"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserRoleLookup возвращает актуальную роль живого пользователя.
// Для удалённого или отсутствующего пользователя - apperrors.ErrNotFound.
type UserRoleLookup interface {
	GetActiveUserRole(ctx context.Context, userID uint64) (string, error)
}

// RevocationChecker сообщает, отозван ли токен с данным jti.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type AuthMiddleware struct {
	jwtService service.JWTService
	users      UserRoleLookup
	revocation RevocationChecker
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, users UserRoleLookup, revocation RevocationChecker, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		users:      users,
		revocation: revocation,
		logger:     logger,
	}
}

// Authenticated пропускает любого живого пользователя с валидным access-токеном.
func (m *AuthMiddleware) Authenticated() echo.MiddlewareFunc {
	return m.Require(constants.AllRoles...)
}

// Require пропускает запрос, только если актуальная роль пользователя входит в allowedRoles.
// Роль из токена не используется: она могла устареть.
func (m *AuthMiddleware) Require(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := utils.ExtractBearerToken(c, constants.AccessTokenCookie)
			if err != nil {
				m.logger.Debug("AuthMiddleware: токен не передан", zap.Error(err))
				return utils.ErrorResponse(c, err, m.logger)
			}

			claims, err := m.jwtService.ValidateToken(tokenString)
			if err != nil {
				m.logger.Warn("AuthMiddleware: ошибка валидации токена", zap.Error(err))
				return utils.ErrorResponse(c, err, m.logger)
			}

			if claims.IsRefreshToken() {
				m.logger.Warn("AuthMiddleware: попытка доступа с refresh токеном")
				return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
			}

			userID, err := claims.UserID()
			if err != nil {
				return utils.ErrorResponse(c, err, m.logger)
			}

			ctx := c.Request().Context()

			if m.revocation != nil && claims.ID != "" {
				revoked, err := m.revocation.IsRevoked(ctx, claims.ID)
				if err != nil {
					m.logger.Error("AuthMiddleware: не удалось проверить отзыв токена", zap.Error(err))
					return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
				}
				if revoked {
					return utils.ErrorResponse(c, apperrors.ErrTokenRevoked, m.logger)
				}
			}

			role, err := m.users.GetActiveUserRole(ctx, userID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					m.logger.Warn("AuthMiddleware: пользователь удалён или не найден", zap.Uint64("userID", userID))
					return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
				}
				m.logger.Error("AuthMiddleware: ошибка загрузки пользователя", zap.Uint64("userID", userID), zap.Error(err))
				return utils.ErrorResponse(c, err, m.logger)
			}

			if _, ok := allowed[role]; !ok {
				m.logger.Warn("AuthMiddleware: роль не разрешена",
					zap.Uint64("userID", userID),
					zap.String("role", role),
					zap.Strings("allowed", allowedRoles),
				)
				return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
			}

			ctx = context.WithValue(ctx, contextkeys.UserIDKey, userID)
			ctx = context.WithValue(ctx, contextkeys.UserRoleKey, role)
			ctx = context.WithValue(ctx, contextkeys.TokenIDKey, claims.ID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
