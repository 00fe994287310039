package services

import (
	"errors"
	"time"

	"github.com/EngKARANGWA/rugalika-backend/domain"
	serrors "github.com/EngKARANGWA/rugalika-backend/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const passwordResetTTL = time.Hour

// TokenConfig carries the signing setup. Access and refresh secrets are
// independent: compromising one must not let an attacker forge the other
// kind. Clock is injectable for tests and defaults to time.Now.
type TokenConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Clock         func() time.Time
}

// TokenService mints and validates the portal's signed HS256 tokens. Tokens
// are stateless; revocation is the blacklist's concern, not this service's.
type TokenService struct {
	cfg TokenConfig
	now func() time.Time
}

// NewTokenService validates the signing setup and returns the issuer.
// Missing secrets are a startup failure, never a per-request one.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if len(cfg.AccessSecret) == 0 {
		return nil, &serrors.ConfigurationError{Field: "access token secret"}
	}
	if len(cfg.RefreshSecret) == 0 {
		return nil, &serrors.ConfigurationError{Field: "refresh token secret"}
	}
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = 24 * time.Hour
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &TokenService{cfg: cfg, now: now}, nil
}

// IssueAccessToken mints an access token for the user.
func (s *TokenService) IssueAccessToken(user *domain.User) (string, error) {
	return s.issue(user, domain.TokenKindAccess, s.cfg.AccessTTL, s.cfg.AccessSecret)
}

// IssueRefreshToken mints a refresh token, signed with the refresh secret.
func (s *TokenService) IssueRefreshToken(user *domain.User) (string, error) {
	return s.issue(user, domain.TokenKindRefresh, s.cfg.RefreshTTL, s.cfg.RefreshSecret)
}

// IssuePasswordResetToken mints a short-lived reset token on the access
// secret. Its kind claim keeps it from ever passing as an access token.
func (s *TokenService) IssuePasswordResetToken(user *domain.User) (string, error) {
	return s.issue(user, domain.TokenKindPasswordReset, passwordResetTTL, s.cfg.AccessSecret)
}

// VerifyAccessToken checks signature, expiry, and that the token was issued
// as an access token.
func (s *TokenService) VerifyAccessToken(token string) (*domain.TokenClaims, error) {
	return s.verify(token, s.cfg.AccessSecret, domain.TokenKindAccess)
}

// VerifyRefreshToken is VerifyAccessToken for the refresh secret and kind.
func (s *TokenService) VerifyRefreshToken(token string) (*domain.TokenClaims, error) {
	return s.verify(token, s.cfg.RefreshSecret, domain.TokenKindRefresh)
}

// VerifyPasswordResetToken rejects any token whose kind is not
// password_reset, even with a valid signature: a live access token must
// never double as a reset token.
func (s *TokenService) VerifyPasswordResetToken(token string) (*domain.TokenClaims, error) {
	return s.verify(token, s.cfg.AccessSecret, domain.TokenKindPasswordReset)
}

// DecodeExpiry reads the exp claim without verifying the signature. Logout
// uses this: an unverifiable but still-expiring token must stay revocable.
// This is deliberately the only decode-without-verify path in the service.
func (s *TokenService) DecodeExpiry(token string) (time.Time, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, serrors.ErrInvalidToken
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, serrors.ErrInvalidToken
	}
	return exp.Time, nil
}

func (s *TokenService) issue(user *domain.User, kind domain.TokenKind, ttl time.Duration, secret []byte) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"kind":  string(kind),
		"iat":   jwt.NewNumericDate(now).Unix(),
		"exp":   jwt.NewNumericDate(now.Add(ttl)).Unix(),
		"jti":   uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (s *TokenService) verify(token string, secret []byte, kind domain.TokenKind) (*domain.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, jwt.MapClaims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, serrors.ErrTokenExpired
		}
		return nil, serrors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, serrors.ErrInvalidToken
	}
	if k, _ := claims["kind"].(string); k != string(kind) {
		return nil, serrors.ErrInvalidToken
	}

	out := &domain.TokenClaims{Kind: kind}
	out.UserID, _ = claims["sub"].(string)
	out.Email, _ = claims["email"].(string)
	if role, ok := claims["role"].(string); ok {
		out.Role = domain.UserRole(role)
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if out.UserID == "" {
		return nil, serrors.ErrInvalidToken
	}
	return out, nil
}
