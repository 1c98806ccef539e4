// pkg/constants/constants.go
package constants

//============== AUTH ==============

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"

	// BearerPrefix - префикс значения cookie и заголовка Authorization.
	BearerPrefix = "Bearer "
	TokenType    = "bearer"
)

// Тип токена в claims.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

//============== EXPORT ==============

const (
	ExportFormatXLSX = "xlsx"
	XLSXContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)
