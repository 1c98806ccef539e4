package utils

import (
	"net/http"
	"strings"
	"time"

	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"

	"github.com/labstack/echo/v4"
)

func newAuthCookie(name, value string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// SetAuthCookies кладёт оба токена в HttpOnly cookie со значением "Bearer <token>".
func SetAuthCookies(c echo.Context, accessToken, refreshToken string, secure bool, accessTTL, refreshTTL time.Duration) {
	c.SetCookie(newAuthCookie(constants.AccessTokenCookie, constants.BearerPrefix+accessToken, accessTTL, secure))
	c.SetCookie(newAuthCookie(constants.RefreshTokenCookie, constants.BearerPrefix+refreshToken, refreshTTL, secure))
}

func ClearAuthCookies(c echo.Context, secure bool) {
	for _, name := range []string{constants.AccessTokenCookie, constants.RefreshTokenCookie} {
		cookie := newAuthCookie(name, "", 0, secure)
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
		c.SetCookie(cookie)
	}
}

// ExtractBearerToken ищет токен сначала в cookie, затем в заголовке Authorization.
func ExtractBearerToken(c echo.Context, cookieName string) (string, error) {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		if token, ok := stripBearer(cookie.Value); ok {
			return token, nil
		}
		return "", apperrors.ErrInvalidToken
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", apperrors.ErrEmptyAuthHeader
	}
	token, ok := stripBearer(authHeader)
	if !ok {
		return "", apperrors.ErrInvalidToken
	}
	return token, nil
}

// CookieBearerToken возвращает токен только из cookie. Пустая строка, если его нет.
func CookieBearerToken(c echo.Context, cookieName string) string {
	cookie, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	token, _ := stripBearer(cookie.Value)
	return token
}

func stripBearer(value string) (string, bool) {
	// браузеры могут вернуть значение cookie в кавычках
	value = strings.Trim(value, `"`)
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
