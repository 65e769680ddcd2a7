package dto

// LoginRequest carries the credentials for a login attempt.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"kholo.hr"`
	Password string `json:"password" binding:"required" example:"Password@1"`
}

// RefreshTokenRequest carries the refresh token to exchange for a new pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries a freshly issued token pair.
type TokenResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int64        `json:"expiresIn" example:"900"`
	User         UserResponse `json:"user"`
}
