package controllers

import (
	"net/http"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthController struct {
	authService   services.AuthServiceInterface
	jwtSvc        service.JWTService
	secureCookies bool
	logger        *zap.Logger
}

func NewAuthController(
	authService services.AuthServiceInterface,
	jwtSvc service.JWTService,
	secureCookies bool,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService:   authService,
		jwtSvc:        jwtSvc,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

// Login принимает форму или JSON. В ответе токены без обёртки {status, body}.
func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Warn("Login: ошибка привязки данных", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewBadRequestError("Invalid login payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	result, err := ctrl.authService.Login(c.Request().Context(), payload, c.RealIP())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	ctrl.setCookies(c, result)
	return c.JSON(http.StatusOK, dto.TokenResponseDTO{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		TokenType:    constants.TokenType,
	})
}

// Logout всегда отвечает 200, даже без токенов.
func (ctrl *AuthController) Logout(c echo.Context) error {
	accessToken, _ := utils.ExtractBearerToken(c, constants.AccessTokenCookie)
	refreshToken := utils.CookieBearerToken(c, constants.RefreshTokenCookie)

	ctrl.authService.Logout(c.Request().Context(), accessToken, refreshToken)
	utils.ClearAuthCookies(c, ctrl.secureCookies)
	return utils.SuccessResponse(c, nil, "Successfully logged out", http.StatusOK)
}

func (ctrl *AuthController) Signup(c echo.Context) error {
	var payload dto.SignupDTO
	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Warn("Signup: ошибка привязки данных", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewBadRequestError("Invalid signup payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	profile, err := ctrl.authService.Signup(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, profile, "User created successfully", http.StatusCreated)
}

func (ctrl *AuthController) Refresh(c echo.Context) error {
	refreshToken, err := utils.ExtractBearerToken(c, constants.RefreshTokenCookie)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	result, err := ctrl.authService.Refresh(c.Request().Context(), refreshToken)
	if err != nil {
		ctrl.logger.Info("Refresh: токен не принят", zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	ctrl.setCookies(c, result)
	return c.JSON(http.StatusOK, dto.TokenResponseDTO{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		TokenType:    constants.TokenType,
	})
}

func (ctrl *AuthController) Me(c echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(c.Request().Context())
	if err != nil {
		ctrl.logger.Error("Me: не удалось получить userID из контекста")
		return ctrl.errorResponse(c, err)
	}

	me, err := ctrl.authService.Me(c.Request().Context(), userID)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, me, "Profile fetched successfully", http.StatusOK)
}

func (ctrl *AuthController) setCookies(c echo.Context, result *dto.AuthResult) {
	utils.SetAuthCookies(c, result.AccessToken, result.RefreshToken, ctrl.secureCookies,
		ctrl.jwtSvc.GetAccessTokenTTL(), ctrl.jwtSvc.GetRefreshTokenTTL())
}
