package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/EngKARANGWA/rugalika-backend/domain"
	serrors "github.com/EngKARANGWA/rugalika-backend/errors"
	"github.com/EngKARANGWA/rugalika-backend/mail"
	"github.com/rs/zerolog/log"
)

// LoginResult is what a successful code verification returns.
type LoginResult struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *domain.User `json:"user"`
}

// AuthService orchestrates the passwordless login flow: one-time code
// issuance and verification, token issuance, refresh, and revocation. All
// collaborators are injected at construction so tests can substitute
// in-memory stores.
//
// Refresh tokens are not rotated: Refresh mints a new access token and
// leaves the presented refresh token valid for the rest of its 7-day life.
// Rotation would be the stronger design; this keeps the current behavior on
// purpose.
type AuthService struct {
	users   domain.UserRepository
	codes   domain.OneTimeCodeRepository
	revoked domain.RevokedTokenRepository
	tokens  *TokenService
	mailer  mail.Sender
	now     func() time.Time
}

// NewAuthService wires the auth core. clock may be nil, defaulting to
// time.Now; all expiry comparisons inside the service use this single
// source.
func NewAuthService(
	users domain.UserRepository,
	codes domain.OneTimeCodeRepository,
	revoked domain.RevokedTokenRepository,
	tokens *TokenService,
	mailer mail.Sender,
	clock func() time.Time,
) *AuthService {
	if clock == nil {
		clock = time.Now
	}
	return &AuthService{
		users:   users,
		codes:   codes,
		revoked: revoked,
		tokens:  tokens,
		mailer:  mailer,
		now:     clock,
	}
}

// NormalizeEmail lower-cases and trims an address. Every email entering the
// auth core goes through this first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SendCode issues a fresh one-time code for the account and hands it to the
// mailer. Prior unconsumed codes for the email are deleted first, so at most
// one code is ever live, no matter how often the user retries. The code is
// never part of the return value.
func (s *AuthService) SendCode(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !user.IsActive() {
		return serrors.ErrAccountInactive
	}

	if err := s.codes.DeleteUnconsumed(ctx, email); err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	now := s.now()
	record := &domain.OneTimeCode{
		Email:     email,
		Code:      code,
		Consumed:  false,
		CreatedAt: now,
		ExpiresAt: now.Add(domain.OneTimeCodeTTL),
	}
	if err := s.codes.Store(ctx, record); err != nil {
		return err
	}

	if err := s.mailer.SendOneTimeCode(ctx, email, code); err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to deliver one-time code")
		return fmt.Errorf("deliver code: %w", err)
	}

	log.Info().Str("email", email).Msg("one-time code issued")
	return nil
}

// VerifyCode consumes the code and, when it matches, issues the token pair.
// Wrong, expired, consumed, and never-issued codes are indistinguishable to
// the caller. Consumption is atomic in the store, so a raced valid code
// succeeds exactly once.
func (s *AuthService) VerifyCode(ctx context.Context, email, code string) (*LoginResult, error) {
	email = NormalizeEmail(email)

	if err := s.codes.Consume(ctx, email, code, s.now()); err != nil {
		if errors.Is(err, serrors.ErrNotFound) {
			return nil, serrors.ErrInvalidOrExpiredCode
		}
		return nil, err
	}

	// Account status may have changed between send and verify.
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, serrors.ErrAccountInactive
	}

	now := s.now()
	user.LastLoginAt = &now
	user.EmailVerified = true
	if err := s.users.UpdateUser(ctx, user); err != nil {
		// Login still proceeds; the next one records it.
		log.Warn().Err(err).Str("userID", user.ID).Msg("failed to update last login")
	}

	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	log.Info().Str("userID", user.ID).Msg("login successful")
	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh verifies the refresh token and mints a new access token. The
// refresh token itself is returned untouched to its owner and is not
// rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, serrors.ErrTokenExpired) {
			return "", serrors.ErrTokenExpired
		}
		return "", serrors.ErrInvalidRefreshToken
	}

	revoked, err := s.revoked.IsRevoked(ctx, refreshToken, s.now())
	if err != nil {
		return "", err
	}
	if revoked {
		return "", serrors.ErrTokenRevoked
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return "", err
	}
	if !user.IsActive() {
		return "", serrors.ErrAccountInactive
	}

	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return accessToken, nil
}

// Logout blacklists the token until its natural expiry. Only decodability is
// required, not a valid signature: a token we cannot verify can still be
// poisoned. Revoking twice is a success both times.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	expiresAt, err := s.tokens.DecodeExpiry(token)
	if err != nil {
		return err
	}
	return s.revoked.Revoke(ctx, &domain.RevokedToken{
		Token:     token,
		ExpiresAt: expiresAt,
		RevokedAt: s.now(),
	})
}

// AuthenticateRequest gates every protected endpoint. The blacklist is
// consulted before signature verification: a known-bad token is rejected
// without paying for the HMAC.
func (s *AuthService) AuthenticateRequest(ctx context.Context, token string) (*domain.User, error) {
	revoked, err := s.revoked.IsRevoked(ctx, token, s.now())
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, serrors.ErrTokenRevoked
	}

	claims, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, serrors.ErrAccountInactive
	}
	return user, nil
}

// GetUserFromToken is the soft-auth variant of AuthenticateRequest: any
// failure yields nil rather than an error.
func (s *AuthService) GetUserFromToken(ctx context.Context, token string) *domain.User {
	user, err := s.AuthenticateRequest(ctx, token)
	if err != nil {
		return nil
	}
	return user
}

// PurgeExpired sweeps both auth stores. The TTL indexes do this on their
// own; the sweep exists for the admin maintenance endpoint and is idempotent.
func (s *AuthService) PurgeExpired(ctx context.Context) (codes, tokens int64, err error) {
	now := s.now()
	codes, err = s.codes.DeleteExpired(ctx, now)
	if err != nil {
		return 0, 0, err
	}
	tokens, err = s.revoked.PurgeExpired(ctx, now)
	if err != nil {
		return codes, 0, err
	}
	return codes, tokens, nil
}

// generateCode draws a 6-digit code uniformly from [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
