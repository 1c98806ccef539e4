package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUsers struct {
	roles map[uint64]string
	err   error
}

func (f *fakeUsers) GetActiveUserRole(ctx context.Context, userID uint64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	role, ok := f.roles[userID]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return role, nil
}

type fakeRevocation struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevocation) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[jti], nil
}

type gateFixture struct {
	jwt        service.JWTService
	users      *fakeUsers
	revocation *fakeRevocation
	mw         *AuthMiddleware
}

func newGateFixture() *gateFixture {
	jwtSvc := service.NewJWTService("secret", 30*time.Minute, time.Hour, zap.NewNop())
	users := &fakeUsers{roles: map[uint64]string{1: constants.RoleAdmin, 2: constants.RoleEmployee}}
	revocation := &fakeRevocation{revoked: map[string]bool{}}
	return &gateFixture{
		jwt:        jwtSvc,
		users:      users,
		revocation: revocation,
		mw:         NewAuthMiddleware(jwtSvc, users, revocation, zap.NewNop()),
	}
}

func (f *gateFixture) serve(t *testing.T, gate echo.MiddlewareFunc, prepare func(r *http.Request)) (*httptest.ResponseRecorder, uint64) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if prepare != nil {
		prepare(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenUserID uint64
	handler := gate(func(c echo.Context) error {
		id, err := utils.GetUserIDFromCtx(c.Request().Context())
		require.NoError(t, err)
		seenUserID = id
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, seenUserID
}

func withCookie(token string) func(r *http.Request) {
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: constants.AccessTokenCookie, Value: "Bearer " + token})
	}
}

func withHeader(token string) func(r *http.Request) {
	return func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
}

func TestRequireAdmitsAllowedRoleFromCookie(t *testing.T) {
	f := newGateFixture()
	token, err := f.jwt.GenerateAccessToken(1, constants.RoleAdmin)
	require.NoError(t, err)

	rec, userID := f.serve(t, f.mw.Require(constants.RoleAdmin, constants.RoleManager), withCookie(token))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(1), userID)
}

func TestRequireAdmitsAllowedRoleFromHeader(t *testing.T) {
	f := newGateFixture()
	token, err := f.jwt.GenerateAccessToken(2, constants.RoleEmployee)
	require.NoError(t, err)

	rec, userID := f.serve(t, f.mw.Authenticated(), withHeader(token))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(2), userID)
}

func TestRequireForbidsRoleOutsideSet(t *testing.T) {
	f := newGateFixture()
	token, err := f.jwt.GenerateAccessToken(2, constants.RoleEmployee)
	require.NoError(t, err)

	rec, _ := f.serve(t, f.mw.Require(constants.RoleAdmin), withCookie(token))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireUsesLiveRoleNotTokenRole(t *testing.T) {
	f := newGateFixture()
	// токен выдан, когда пользователь 2 был админом
	token, err := f.jwt.GenerateAccessToken(2, constants.RoleAdmin)
	require.NoError(t, err)

	rec, _ := f.serve(t, f.mw.Require(constants.RoleAdmin), withCookie(token))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	f.users.roles[2] = constants.RoleAdmin
	rec, _ = f.serve(t, f.mw.Require(constants.RoleAdmin), withCookie(token))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRejectsDeletedUser(t *testing.T) {
	f := newGateFixture()
	token, err := f.jwt.GenerateAccessToken(99, constants.RoleAdmin)
	require.NoError(t, err)

	rec, _ := f.serve(t, f.mw.Require(constants.RoleAdmin), withCookie(token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRejectsMissingAndInvalidTokens(t *testing.T) {
	f := newGateFixture()

	rec, _ := f.serve(t, f.mw.Authenticated(), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = f.serve(t, f.mw.Authenticated(), withHeader("garbage"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = f.serve(t, f.mw.Authenticated(), func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: constants.AccessTokenCookie, Value: "no-scheme"})
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRejectsRefreshToken(t *testing.T) {
	f := newGateFixture()
	token, err := f.jwt.GenerateRefreshToken(1)
	require.NoError(t, err)

	rec, _ := f.serve(t, f.mw.Authenticated(), withCookie(token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRejectsRevokedToken(t *testing.T) {
	f := newGateFixture()
	token, err := f.jwt.GenerateAccessToken(1, constants.RoleAdmin)
	require.NoError(t, err)
	claims, err := f.jwt.ValidateToken(token)
	require.NoError(t, err)

	f.revocation.revoked[claims.ID] = true
	rec, _ := f.serve(t, f.mw.Authenticated(), withCookie(token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireFailsClosedWhenRevocationStoreFails(t *testing.T) {
	f := newGateFixture()
	token, err := f.jwt.GenerateAccessToken(1, constants.RoleAdmin)
	require.NoError(t, err)

	f.revocation.err = errors.New("redis down")
	rec, _ := f.serve(t, f.mw.Authenticated(), withCookie(token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSurfacesStoreErrors(t *testing.T) {
	f := newGateFixture()
	token, err := f.jwt.GenerateAccessToken(1, constants.RoleAdmin)
	require.NoError(t, err)

	f.users.err = errors.New("connection refused")
	rec, _ := f.serve(t, f.mw.Authenticated(), withCookie(token))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
