package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/constants"
	"gearguard/pkg/customvalidator"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/middleware"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type fakeUsers map[uint64]string

func (f fakeUsers) GetActiveUserRole(_ context.Context, userID uint64) (string, error) {
	role, ok := f[userID]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return role, nil
}

type noRevocation struct{}

func (noRevocation) IsRevoked(context.Context, string) (bool, error) { return false, nil }

type fakeAuthService struct {
	services.AuthServiceInterface
	jwt       service.JWTService
	loggedOut []string
}

func (f *fakeAuthService) Login(_ context.Context, payload dto.LoginDTO, _ string) (*dto.AuthResult, error) {
	if payload.Username != "boss@example.com" || payload.Password != "secret" {
		return nil, apperrors.ErrInvalidCredentials
	}
	if payload.Role != constants.RoleManager {
		return nil, apperrors.ErrRoleMismatch
	}
	access, _ := f.jwt.GenerateAccessToken(2, constants.RoleManager)
	refresh, _ := f.jwt.GenerateRefreshToken(2)
	return &dto.AuthResult{User: dto.UserProfileDTO{ID: 2, Role: constants.RoleManager}, AccessToken: access, RefreshToken: refresh}, nil
}

func (f *fakeAuthService) Logout(_ context.Context, accessToken, refreshToken string) {
	f.loggedOut = append(f.loggedOut, accessToken, refreshToken)
}

type fakeEquipmentService struct {
	services.EquipmentServiceInterface
	deleted []uint64
}

func (f *fakeEquipmentService) GetEquipments(context.Context, dto.EquipmentFilter) ([]dto.EquipmentDTO, uint64, error) {
	return []dto.EquipmentDTO{{ID: 1, Name: "Lathe"}}, 1, nil
}

func (f *fakeEquipmentService) DeleteEquipment(_ context.Context, id uint64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRequestService struct {
	services.RequestServiceInterface
	lastStatus string
	lastActor  uint64
}

func (f *fakeRequestService) SetStatus(_ context.Context, id uint64, status string, actorID uint64) (*dto.StatusChangeDTO, error) {
	if !constants.IsValidStatus(status) {
		return nil, apperrors.NewInvalidInputError("Invalid status")
	}
	f.lastStatus, f.lastActor = status, actorID
	return &dto.StatusChangeDTO{OldStatus: constants.StatusNew, NewStatus: status}, nil
}

type fakeReportService struct {
	services.ReportServiceInterface
}

func (fakeReportService) GetMaintenanceByTeam(context.Context) ([]dto.TeamReportRowDTO, error) {
	return []dto.TeamReportRowDTO{{ID: 1, Name: "Mechanics", TotalRequests: 2}}, nil
}

type RouterSuite struct {
	suite.Suite
	e         *echo.Echo
	jwt       service.JWTService
	auth      *fakeAuthService
	equipment *fakeEquipmentService
	requests  *fakeRequestService
}

func (s *RouterSuite) SetupTest() {
	s.e = echo.New()
	v := validator.New()
	s.Require().NoError(customvalidator.RegisterCustomValidations(v))
	s.e.Validator = utils.NewValidator(v)

	s.jwt = service.NewJWTService("router-secret", 30*time.Minute, 7*24*time.Hour, zap.NewNop())
	s.auth = &fakeAuthService{jwt: s.jwt}
	s.equipment = &fakeEquipmentService{}
	s.requests = &fakeRequestService{}

	users := fakeUsers{1: constants.RoleAdmin, 2: constants.RoleManager, 3: constants.RoleTechnician, 4: constants.RoleEmployee}
	authMW := middleware.NewAuthMiddleware(s.jwt, users, noRevocation{}, zap.NewNop())
	nop := zap.NewNop()
	loggers := &Loggers{Main: nop, Auth: nop, Request: nop, Equipment: nop, Team: nop, Report: nop}

	RegisterRoutes(s.e, Services{
		Auth:      s.auth,
		Equipment: s.equipment,
		Request:   s.requests,
		Report:    fakeReportService{},
	}, authMW, s.jwt, loggers, false)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) tokenFor(userID uint64, role string) string {
	token, err := s.jwt.GenerateAccessToken(userID, role)
	s.Require().NoError(err)
	return token
}

func (s *RouterSuite) do(method, target string, body []byte, contentType, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: constants.AccessTokenCookie, Value: constants.BearerPrefix + token})
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *RouterSuite) TestLoginSetsCookiesAndReturnsRawTokens() {
	form := url.Values{"username": {"boss@example.com"}, "password": {"secret"}, "role": {constants.RoleManager}}
	rec := s.do(http.MethodPost, "/auth/login", []byte(form.Encode()), echo.MIMEApplicationForm, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var body dto.TokenResponseDTO
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("bearer", body.TokenType)
	s.NotEmpty(body.AccessToken)

	cookies := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}
	access := cookies[constants.AccessTokenCookie]
	s.Require().NotNil(access)
	s.Equal("Bearer "+body.AccessToken, strings.Trim(access.Value, `"`))
	s.True(access.HttpOnly)
	s.Equal(http.SameSiteLaxMode, access.SameSite)
	s.Equal(1800, access.MaxAge)
	s.Require().NotNil(cookies[constants.RefreshTokenCookie])
}

func (s *RouterSuite) TestLoginErrors() {
	payload := []byte(`{"username":"boss@example.com","password":"wrong","role":"manager"}`)
	rec := s.do(http.MethodPost, "/auth/login", payload, echo.MIMEApplicationJSON, "")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "Incorrect email or password")
	s.Empty(rec.Result().Cookies())

	payload = []byte(`{"username":"boss@example.com","password":"secret","role":"admin"}`)
	rec = s.do(http.MethodPost, "/auth/login", payload, echo.MIMEApplicationJSON, "")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "Role mismatch")

	payload = []byte(`{"username":"not-an-email","password":"secret","role":"manager"}`)
	rec = s.do(http.MethodPost, "/auth/login", payload, echo.MIMEApplicationJSON, "")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "Incorrect email or password")

	rec = s.do(http.MethodPost, "/auth/login", []byte(`{"username":"not-an-email"}`), echo.MIMEApplicationJSON, "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestLogoutAlwaysSucceedsAndClearsCookies() {
	rec := s.do(http.MethodPost, "/auth/logout", nil, "", "")
	s.Equal(http.StatusOK, rec.Code)

	token := s.tokenFor(2, constants.RoleManager)
	rec = s.do(http.MethodPost, "/auth/logout", nil, "", token)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(s.auth.loggedOut, token)

	for _, c := range rec.Result().Cookies() {
		s.Equal(-1, c.MaxAge, c.Name)
	}
}

func (s *RouterSuite) TestDomainRoutesRequireAuthentication() {
	rec := s.do(http.MethodGet, "/api/equipment", nil, "", "")
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/equipment", nil, "", s.tokenFor(4, constants.RoleEmployee))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Lathe")
}

func (s *RouterSuite) TestRoleGate() {
	rec := s.do(http.MethodDelete, "/api/equipment/5", nil, "", s.tokenFor(2, constants.RoleManager))
	s.Equal(http.StatusForbidden, rec.Code)
	s.Empty(s.equipment.deleted)

	rec = s.do(http.MethodDelete, "/api/equipment/5", nil, "", s.tokenFor(1, constants.RoleAdmin))
	s.Equal(http.StatusOK, rec.Code)
	s.Equal([]uint64{5}, s.equipment.deleted)

	// пользователь 99 удалён
	rec = s.do(http.MethodDelete, "/api/equipment/5", nil, "", s.tokenFor(99, constants.RoleAdmin))
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterSuite) TestStatusChangeByTechnician() {
	rec := s.do(http.MethodPatch, "/api/requests/7/status?status=in_progress", nil, "", s.tokenFor(3, constants.RoleTechnician))
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(constants.StatusInProgress, s.requests.lastStatus)
	s.Equal(uint64(3), s.requests.lastActor)

	rec = s.do(http.MethodPatch, "/api/requests/7/status", []byte(`{"status":"repaired"}`), echo.MIMEApplicationJSON, s.tokenFor(3, constants.RoleTechnician))
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(constants.StatusRepaired, s.requests.lastStatus)

	rec = s.do(http.MethodPatch, "/api/requests/7/status?status=done", nil, "", s.tokenFor(3, constants.RoleTechnician))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "Invalid status")

	rec = s.do(http.MethodPatch, "/api/requests/7/status?status=scrap", nil, "", s.tokenFor(4, constants.RoleEmployee))
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *RouterSuite) TestReportExportAsXLSX() {
	rec := s.do(http.MethodGet, "/api/reports/maintenance-by-team?format=xlsx", nil, "", s.tokenFor(4, constants.RoleEmployee))
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(constants.XLSXContentType, rec.Header().Get(echo.HeaderContentType))
	s.Contains(rec.Header().Get(echo.HeaderContentDisposition), "maintenance_by_team_")

	book, err := excelize.OpenReader(rec.Body)
	s.Require().NoError(err)
	defer book.Close()
	rows, err := book.GetRows("Maintenance by team")
	s.Require().NoError(err)
	s.Len(rows, 2)

	rec = s.do(http.MethodGet, "/api/reports/maintenance-by-team", nil, "", s.tokenFor(4, constants.RoleEmployee))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"status":true`)
}
