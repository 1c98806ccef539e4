package service

import (
	"errors"
	"strconv"
	"time"

	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type JwtCustomClaim struct {
	Role      string `json:"role,omitempty"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// UserID - subject токена как число.
func (c *JwtCustomClaim) UserID() (uint64, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrInvalidToken
	}
	return id, nil
}

func (c *JwtCustomClaim) IsRefreshToken() bool {
	return c.TokenType == constants.TokenTypeRefresh
}

type JWTService interface {
	GenerateAccessToken(userID uint64, role string) (string, error)
	GenerateRefreshToken(userID uint64) (string, error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
}

type jwtService struct {
	secretKey       []byte
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
	now             func() time.Time
	logger          *zap.Logger
}

func NewJWTService(secretKey string, accessTokenExp, refreshTokenExp time.Duration, logger *zap.Logger) JWTService {
	return NewJWTServiceWithClock(secretKey, accessTokenExp, refreshTokenExp, logger, time.Now)
}

func NewJWTServiceWithClock(secretKey string, accessTokenExp, refreshTokenExp time.Duration, logger *zap.Logger, now func() time.Time) JWTService {
	return &jwtService{
		secretKey:       []byte(secretKey),
		accessTokenExp:  accessTokenExp,
		refreshTokenExp: refreshTokenExp,
		now:             now,
		logger:          logger,
	}
}

func (s *jwtService) GenerateAccessToken(userID uint64, role string) (string, error) {
	return s.sign(userID, role, constants.TokenTypeAccess, s.accessTokenExp)
}

func (s *jwtService) GenerateRefreshToken(userID uint64) (string, error) {
	return s.sign(userID, "", constants.TokenTypeRefresh, s.refreshTokenExp)
}

func (s *jwtService) sign(userID uint64, role, tokenType string, ttl time.Duration) (string, error) {
	issuedAt := s.now()
	claims := &JwtCustomClaim{
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		s.logger.Error("Не удалось подписать токен", zap.String("type", tokenType), zap.Error(err))
		return "", err
	}
	return signed, nil
}

func (s *jwtService) GetAccessTokenTTL() time.Duration {
	return s.accessTokenExp
}

func (s *jwtService) GetRefreshTokenTTL() time.Duration {
	return s.refreshTokenExp
}

// ValidateToken проверяет подпись и срок действия.
// Токен действителен до момента exp включительно.
func (s *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenString, &JwtCustomClaim{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return s.secretKey, nil
	})
	if err != nil {
		s.logger.Debug("Ошибка парсинга или проверки подписи токена", zap.Error(err))
		if errors.Is(err, apperrors.ErrInvalidSigningMethod) {
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*JwtCustomClaim)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	if claims.ExpiresAt == nil || claims.Subject == "" {
		return nil, apperrors.ErrInvalidToken
	}
	if claims.TokenType != constants.TokenTypeAccess && claims.TokenType != constants.TokenTypeRefresh {
		return nil, apperrors.ErrInvalidToken
	}

	if s.now().After(claims.ExpiresAt.Time) {
		return nil, apperrors.ErrTokenExpired
	}

	return claims, nil
}
