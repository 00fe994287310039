package services

import (
	"testing"
	"time"

	"github.com/EngKARANGWA/rugalika-backend/domain"
	serrors "github.com/EngKARANGWA/rugalika-backend/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *domain.User {
	return &domain.User{
		ID:     "user-1",
		Email:  "resident@example.com",
		Role:   domain.RoleCitizen,
		Status: domain.UserStatusActive,
	}
}

func newTestTokenService(t *testing.T, clock func() time.Time) *TokenService {
	t.Helper()
	svc, err := NewTokenService(TokenConfig{
		AccessSecret:  []byte("access-secret-for-tests"),
		RefreshSecret: []byte("refresh-secret-for-tests"),
		Clock:         clock,
	})
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_MissingSecrets(t *testing.T) {
	_, err := NewTokenService(TokenConfig{RefreshSecret: []byte("r")})
	var cfgErr *serrors.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)

	_, err = NewTokenService(TokenConfig{AccessSecret: []byte("a")})
	require.ErrorAs(t, err, &cfgErr)
}

func TestTokenService_IssueAndVerifyAccessToken(t *testing.T) {
	svc := newTestTokenService(t, nil)
	user := testUser()

	token, err := svc.IssueAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, domain.RoleCitizen, claims.Role)
	assert.Equal(t, domain.TokenKindAccess, claims.Kind)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt, time.Minute)
}

func TestTokenService_KindIsolation(t *testing.T) {
	svc := newTestTokenService(t, nil)
	user := testUser()

	access, err := svc.IssueAccessToken(user)
	require.NoError(t, err)
	refresh, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)
	reset, err := svc.IssuePasswordResetToken(user)
	require.NoError(t, err)

	t.Run("refresh token rejected as access", func(t *testing.T) {
		_, err := svc.VerifyAccessToken(refresh)
		assert.ErrorIs(t, err, serrors.ErrInvalidToken)
	})

	t.Run("access token rejected as refresh", func(t *testing.T) {
		_, err := svc.VerifyRefreshToken(access)
		assert.ErrorIs(t, err, serrors.ErrInvalidToken)
	})

	t.Run("access token rejected as password reset", func(t *testing.T) {
		// Same signing secret, different kind claim. The kind check alone
		// must stop this.
		_, err := svc.VerifyPasswordResetToken(access)
		assert.ErrorIs(t, err, serrors.ErrInvalidToken)
	})

	t.Run("password reset token rejected as access", func(t *testing.T) {
		_, err := svc.VerifyAccessToken(reset)
		assert.ErrorIs(t, err, serrors.ErrInvalidToken)
	})

	t.Run("each token passes its own verifier", func(t *testing.T) {
		_, err := svc.VerifyAccessToken(access)
		assert.NoError(t, err)
		_, err = svc.VerifyRefreshToken(refresh)
		assert.NoError(t, err)
		_, err = svc.VerifyPasswordResetToken(reset)
		assert.NoError(t, err)
	})
}

func TestTokenService_Expiry(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	svc := newTestTokenService(t, clock)

	token, err := svc.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	require.NoError(t, err)

	now = now.Add(25 * time.Hour)
	_, err = svc.VerifyAccessToken(token)
	assert.ErrorIs(t, err, serrors.ErrTokenExpired)
}

func TestTokenService_WrongSecret(t *testing.T) {
	svc := newTestTokenService(t, nil)
	other, err := NewTokenService(TokenConfig{
		AccessSecret:  []byte("a completely different secret"),
		RefreshSecret: []byte("another different secret"),
	})
	require.NoError(t, err)

	token, err := svc.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(token)
	assert.ErrorIs(t, err, serrors.ErrInvalidToken)
}

func TestTokenService_Garbage(t *testing.T) {
	svc := newTestTokenService(t, nil)

	for _, tok := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		_, err := svc.VerifyAccessToken(tok)
		assert.ErrorIs(t, err, serrors.ErrInvalidToken)
	}
}

func TestTokenService_DecodeExpiry(t *testing.T) {
	now := time.Now()
	svc := newTestTokenService(t, func() time.Time { return now })

	token, err := svc.IssueRefreshToken(testUser())
	require.NoError(t, err)

	exp, err := svc.DecodeExpiry(token)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(7*24*time.Hour), exp, 2*time.Second)

	t.Run("tampered signature still decodes", func(t *testing.T) {
		tampered := token[:len(token)-4] + "AAAA"
		exp, err := svc.DecodeExpiry(tampered)
		require.NoError(t, err)
		assert.False(t, exp.IsZero())
	})

	t.Run("garbage does not decode", func(t *testing.T) {
		_, err := svc.DecodeExpiry("garbage")
		assert.ErrorIs(t, err, serrors.ErrInvalidToken)
	})
}
