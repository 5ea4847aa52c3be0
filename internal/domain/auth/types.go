package auth

import "time"

// Config drives dashboard authentication.
type Config struct {
	Secret         string
	TokenTTL       time.Duration
	PasswordHash   string
	GoogleClientID string
	AllowedEmails  []string
}

// TokenRequest exchanges the dashboard password for a bearer token.
type TokenRequest struct {
	Password string `json:"password"`
}

// TokenResponse is returned by a successful exchange.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// Claims describes a verified caller.
type Claims struct {
	Subject   string
	Role      string
	Email     string
	ExpiresAt time.Time
}

const (
	dashboardSubject = "dashboard"
	roleAnalyst      = "analyst"
	tokenTypeBearer  = "Bearer"
)
