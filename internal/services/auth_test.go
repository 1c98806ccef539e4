package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/metrics"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "s3cret-pass"

type AuthServiceSuite struct {
	suite.Suite
	users   *fakeUserRepo
	history *fakeHistoryRepo
	cache   *fakeCache
	jwt     service.JWTService
	reg     *prometheus.Registry
	svc     AuthServiceInterface
}

func (s *AuthServiceSuite) SetupTest() {
	hash, err := utils.HashPassword(testPassword)
	s.Require().NoError(err)

	s.users = newFakeUserRepo(
		&entities.User{ID: 1, Email: "tech@example.com", Name: "Tech", Role: constants.RoleTechnician, PasswordHash: hash},
		&entities.User{ID: 2, Email: "boss@example.com", Name: "Boss", Role: constants.RoleManager, PasswordHash: hash},
	)
	s.history = &fakeHistoryRepo{}
	s.cache = newFakeCache()
	s.jwt = service.NewJWTService("test-secret", 30*time.Minute, 7*24*time.Hour, zap.NewNop())
	s.reg = prometheus.NewRegistry()
	s.svc = NewAuthService(s.users, s.history, s.jwt, NewTokenRevoker(s.cache), metrics.NewAppMetrics(s.reg), zap.NewNop())
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) login(email, password, role string) (*dto.AuthResult, error) {
	return s.svc.Login(context.Background(), dto.LoginDTO{Username: email, Password: password, Role: role}, "10.0.0.1")
}

func (s *AuthServiceSuite) TestLoginIssuesTokensWithRoleClaim() {
	res, err := s.login("tech@example.com ", testPassword, constants.RoleTechnician)
	s.Require().NoError(err)
	s.Equal(uint64(1), res.User.ID)

	claims, err := s.jwt.ValidateToken(res.AccessToken)
	s.Require().NoError(err)
	s.Equal(constants.RoleTechnician, claims.Role)
	s.False(claims.IsRefreshToken())

	refresh, err := s.jwt.ValidateToken(res.RefreshToken)
	s.Require().NoError(err)
	s.True(refresh.IsRefreshToken())

	s.Require().Len(s.history.entries, 1)
	s.Equal("10.0.0.1", *s.history.entries[0].IPAddress)
}

func (s *AuthServiceSuite) TestLoginComparesEmailCaseSensitively() {
	hash, err := utils.HashPassword(testPassword)
	s.Require().NoError(err)
	_, err = s.users.Create(context.Background(), &entities.User{
		Email: "Mixed@Example.com", Name: "Mixed", Role: constants.RoleEmployee, PasswordHash: hash,
	})
	s.Require().NoError(err)

	res, err := s.login("Mixed@Example.com", testPassword, constants.RoleEmployee)
	s.Require().NoError(err)
	s.Equal("Mixed@Example.com", res.User.Email)

	_, err = s.login("mixed@example.com", testPassword, constants.RoleEmployee)
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)

	_, err = s.login("TECH@example.com", testPassword, constants.RoleTechnician)
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)

	_, err = s.login("not-an-email", testPassword, constants.RoleTechnician)
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (s *AuthServiceSuite) TestLoginUnknownEmailAndWrongPasswordLookTheSame() {
	_, errUnknown := s.login("nobody@example.com", testPassword, constants.RoleTechnician)
	_, errWrong := s.login("tech@example.com", "wrong", constants.RoleTechnician)

	s.ErrorIs(errUnknown, apperrors.ErrInvalidCredentials)
	s.ErrorIs(errWrong, apperrors.ErrInvalidCredentials)
	s.Equal(apperrors.PublicMessage(errUnknown), apperrors.PublicMessage(errWrong))
	s.Empty(s.history.entries)
}

func (s *AuthServiceSuite) TestLoginRoleMismatchIssuesNoTokens() {
	res, err := s.login("tech@example.com", testPassword, constants.RoleManager)
	s.Nil(res)
	s.ErrorIs(err, apperrors.ErrRoleMismatch)
	s.Equal("Role mismatch", apperrors.PublicMessage(err))
	s.Empty(s.history.entries)

	s.Equal(float64(1), loginAttempts(s.T(), s.reg, "role_mismatch"))
}

func (s *AuthServiceSuite) TestRepeatedFailuresDoNotLockAccount() {
	for i := 0; i < 3; i++ {
		_, err := s.login("tech@example.com", "bad", constants.RoleTechnician)
		s.ErrorIs(err, apperrors.ErrInvalidCredentials)
	}
	res, err := s.login("tech@example.com", testPassword, constants.RoleTechnician)
	s.Require().NoError(err)
	s.NotEmpty(res.AccessToken)
}

func (s *AuthServiceSuite) TestLoginHistoryFailureDoesNotBreakLogin() {
	s.history.err = errors.New("insert failed")
	res, err := s.login("tech@example.com", testPassword, constants.RoleTechnician)
	s.Require().NoError(err)
	s.NotEmpty(res.AccessToken)
}

func (s *AuthServiceSuite) TestLoginUpgradesLegacyBcryptHash() {
	legacy, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	s.Require().NoError(err)
	s.users.users[1].PasswordHash = string(legacy)

	_, err = s.login("tech@example.com", testPassword, constants.RoleTechnician)
	s.Require().NoError(err)

	upgraded, ok := s.users.updated[1]
	s.Require().True(ok)
	s.False(utils.NeedsRehash(upgraded))
	s.True(utils.ComparePasswords(upgraded, testPassword))
}

func (s *AuthServiceSuite) TestSignupForcesEmployeeRole() {
	profile, err := s.svc.Signup(context.Background(), dto.SignupDTO{Email: " New@Example.com", Name: " New ", Password: "123456"})
	s.Require().NoError(err)
	s.Equal(constants.RoleEmployee, profile.Role)
	s.Equal("New@Example.com", profile.Email)
	s.Equal("New", profile.Name)

	stored := s.users.users[profile.ID]
	s.True(utils.ComparePasswords(stored.PasswordHash, "123456"))
	s.NotEqual("123456", stored.PasswordHash)
}

func (s *AuthServiceSuite) TestSignupDuplicateEmail() {
	_, err := s.svc.Signup(context.Background(), dto.SignupDTO{Email: "tech@example.com", Name: "Copy", Password: "123456"})
	s.Require().Error(err)
	s.Equal(400, apperrors.StatusCode(err))
	s.Equal("Email already registered", apperrors.PublicMessage(err))
}

func (s *AuthServiceSuite) TestSignupEmailsDifferingInCaseAreDistinct() {
	first, err := s.svc.Signup(context.Background(), dto.SignupDTO{Email: "Case@x.com", Name: "A", Password: "123456"})
	s.Require().NoError(err)

	second, err := s.svc.Signup(context.Background(), dto.SignupDTO{Email: "case@x.com", Name: "B", Password: "123456"})
	s.Require().NoError(err)
	s.NotEqual(first.ID, second.ID)

	_, err = s.svc.Signup(context.Background(), dto.SignupDTO{Email: "Case@x.com", Name: "C", Password: "123456"})
	s.Equal("Email already registered", apperrors.PublicMessage(err))
}

func (s *AuthServiceSuite) TestRefreshRotatesAndRevokesOldToken() {
	res, err := s.login("boss@example.com", testPassword, constants.RoleManager)
	s.Require().NoError(err)

	rotated, err := s.svc.Refresh(context.Background(), res.RefreshToken)
	s.Require().NoError(err)
	s.NotEqual(res.RefreshToken, rotated.RefreshToken)

	_, err = s.svc.Refresh(context.Background(), res.RefreshToken)
	s.ErrorIs(err, apperrors.ErrTokenRevoked)
}

func (s *AuthServiceSuite) TestRefreshRejectsAccessToken() {
	res, err := s.login("boss@example.com", testPassword, constants.RoleManager)
	s.Require().NoError(err)

	_, err = s.svc.Refresh(context.Background(), res.AccessToken)
	s.ErrorIs(err, apperrors.ErrTokenIsNotRefresh)
}

func (s *AuthServiceSuite) TestRefreshForDeletedUser() {
	res, err := s.login("boss@example.com", testPassword, constants.RoleManager)
	s.Require().NoError(err)
	s.Require().NoError(s.users.Delete(context.Background(), 2))

	_, err = s.svc.Refresh(context.Background(), res.RefreshToken)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AuthServiceSuite) TestLogoutRevokesBothTokensAndIgnoresGarbage() {
	res, err := s.login("tech@example.com", testPassword, constants.RoleTechnician)
	s.Require().NoError(err)

	s.NotPanics(func() {
		s.svc.Logout(context.Background(), res.AccessToken, res.RefreshToken)
		s.svc.Logout(context.Background(), "garbage", "")
	})

	revoker := NewTokenRevoker(s.cache)
	for _, token := range []string{res.AccessToken, res.RefreshToken} {
		claims, err := s.jwt.ValidateToken(token)
		s.Require().NoError(err)
		revoked, err := revoker.IsRevoked(context.Background(), claims.ID)
		s.Require().NoError(err)
		s.True(revoked)
	}
}

func (s *AuthServiceSuite) TestMeReturnsRecentLogins() {
	for i := 0; i < 7; i++ {
		_, err := s.login("tech@example.com", testPassword, constants.RoleTechnician)
		s.Require().NoError(err)
	}
	me, err := s.svc.Me(context.Background(), 1)
	s.Require().NoError(err)
	s.Equal("tech@example.com", me.Email)
	s.Len(me.RecentLogins, recentLoginsLimit)

	_, err = s.svc.Me(context.Background(), 999)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func loginAttempts(t *testing.T, reg *prometheus.Registry, outcome string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != "gearguard_login_attempts_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "outcome" && lp.GetValue() == outcome {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
