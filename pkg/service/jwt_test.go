package service

import (
	"testing"
	"time"

	apperrors "gearguard/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestService(clock *fakeClock) JWTService {
	return NewJWTServiceWithClock("test-secret", 30*time.Minute, 7*24*time.Hour, zap.NewNop(), clock.Now)
}

func TestAccessTokenCarriesSubjectAndRole(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(clock)

	token, err := svc.GenerateAccessToken(42, "manager")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
	assert.Equal(t, "manager", claims.Role)
	assert.False(t, claims.IsRefreshToken())
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, clock.t.Add(30*time.Minute), claims.ExpiresAt.Time.UTC())
}

func TestRefreshTokenOmitsRole(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(clock)

	token, err := svc.GenerateRefreshToken(7)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsRefreshToken())
	assert.Empty(t, claims.Role)
	assert.Equal(t, clock.t.Add(7*24*time.Hour), claims.ExpiresAt.Time.UTC())
}

func TestTokenExpiryBoundary(t *testing.T) {
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: issued}
	svc := newTestService(clock)

	token, err := svc.GenerateAccessToken(1, "admin")
	require.NoError(t, err)

	expiry := issued.Add(30 * time.Minute)

	clock.t = expiry.Add(-time.Second)
	_, err = svc.ValidateToken(token)
	assert.NoError(t, err, "до истечения токен действителен")

	clock.t = expiry
	_, err = svc.ValidateToken(token)
	assert.NoError(t, err, "в момент истечения токен ещё действителен")

	clock.t = expiry.Add(time.Nanosecond)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	clock.t = expiry.Add(time.Second)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestService(clock)
	other := NewJWTServiceWithClock("other-secret", time.Minute, time.Hour, zap.NewNop(), clock.Now)

	token, err := other.GenerateAccessToken(1, "admin")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateTokenRejectsMalformedInput(t *testing.T) {
	svc := newTestService(&fakeClock{t: time.Now()})

	for _, input := range []string{"", "abc", "a.b.c", "Bearer x.y.z"} {
		_, err := svc.ValidateToken(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestValidateTokenRejectsOtherAlgorithms(t *testing.T) {
	svc := newTestService(&fakeClock{t: time.Now()})

	claims := &JwtCustomClaim{
		Role:      "admin",
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(unsigned)
	assert.Error(t, err)
}

func TestValidateTokenRequiresTokenType(t *testing.T) {
	svc := newTestService(&fakeClock{t: time.Now()})

	claims := &JwtCustomClaim{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
