package dto

// LoginDTO - форма входа. username содержит email.
type LoginDTO struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
	Role     string `json:"role"     form:"role"     validate:"required"`
}

type SignupDTO struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Name     string `json:"name"     validate:"required,min=1,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type TokenResponseDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// AuthResult - результат успешного входа или обновления токенов.
type AuthResult struct {
	User         UserProfileDTO
	AccessToken  string
	RefreshToken string
}

type UserProfileDTO struct {
	ID        uint64  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	AvatarURL *string `json:"avatar_url"`
}

type LoginHistoryDTO struct {
	LoginTimestamp string  `json:"login_timestamp"`
	IPAddress      *string `json:"ip_address"`
}

type MeDTO struct {
	UserProfileDTO
	RecentLogins []LoginHistoryDTO `json:"recent_logins"`
}
