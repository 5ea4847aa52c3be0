package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/yanqian/weather-advisor/pkg/errors"
)

// Service guards the analytics dashboard.
type Service interface {
	IssueToken(ctx context.Context, req TokenRequest) (TokenResponse, error)
	ValidateToken(ctx context.Context, token string) (Claims, error)
}

type service struct {
	cfg      Config
	verifier IDTokenVerifier
	logger   *slog.Logger
	now      func() time.Time
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

const defaultTokenTTL = 12 * time.Hour

// NewService constructs a Service instance. verifier may be nil when Google
// sign-in is not configured.
func NewService(cfg Config, verifier IDTokenVerifier, logger *slog.Logger) Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	return &service{
		cfg:      cfg,
		verifier: verifier,
		logger:   logger.With("component", "auth.service"),
		now:      time.Now,
	}
}

func (s *service) IssueToken(_ context.Context, req TokenRequest) (TokenResponse, error) {
	if strings.TrimSpace(s.cfg.PasswordHash) == "" {
		return TokenResponse{}, apperrors.Wrap(apperrors.CodeUnauthorized, "password login is disabled", nil)
	}
	if req.Password == "" {
		return TokenResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "password is required", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("dashboard login rejected")
		return TokenResponse{}, apperrors.Wrap(apperrors.CodeUnauthorized, "invalid credentials", nil)
	}

	now := s.now()
	expires := now.Add(s.cfg.TokenTTL)
	claims := tokenClaims{
		Role: roleAnalyst,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   dashboardSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return TokenResponse{}, apperrors.Wrap("auth_error", "failed to sign token", err)
	}
	return TokenResponse{
		AccessToken: signed,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int64(s.cfg.TokenTTL / time.Second),
	}, nil
}

func (s *service) ValidateToken(ctx context.Context, token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, apperrors.Wrap(apperrors.CodeUnauthorized, "missing bearer token", nil)
	}
	claims, err := s.parseToken(token)
	if err == nil {
		return claims, nil
	}
	if s.verifier == nil {
		return Claims{}, err
	}
	// Tokens we did not sign may still be Google ID tokens.
	identity, gerr := s.verifier.Verify(ctx, token)
	if gerr != nil {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "invalid token", gerr)
	}
	if !s.emailAllowed(identity.Email) {
		s.logger.Warn("google identity not on allowlist", "email", identity.Email)
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "account is not allowed", nil)
	}
	return Claims{
		Subject:   identity.Subject,
		Role:      roleAnalyst,
		Email:     identity.Email,
		ExpiresAt: identity.Expiry,
	}, nil
}

func (s *service) parseToken(token string) (Claims, error) {
	if s.cfg.Secret == "" {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "invalid token", nil)
	}
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token expired", err)
		}
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "invalid token", err)
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || claims.Subject != dashboardSubject {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "invalid token", nil)
	}
	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	return Claims{Subject: claims.Subject, Role: claims.Role, ExpiresAt: expires}, nil
}

func (s *service) emailAllowed(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, allowed := range s.cfg.AllowedEmails {
		if strings.ToLower(strings.TrimSpace(allowed)) == email {
			return true
		}
	}
	return false
}
