package domain

import "time"

// TokenKind discriminates the signed token flavors. A token is only accepted
// in the verification context matching its kind claim.
type TokenKind string

const (
	TokenKindAccess        TokenKind = "access"
	TokenKindRefresh       TokenKind = "refresh"
	TokenKindPasswordReset TokenKind = "password_reset"
)

// TokenClaims are the decoded claims of a signed portal token.
type TokenClaims struct {
	UserID    string
	Email     string
	Role      UserRole
	Kind      TokenKind
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// RevokedToken is a blacklist entry for a logically-invalidated token. The
// raw token string is the unique key; the entry only matters until the
// token's own expiry, after which a TTL index reclaims the document.
type RevokedToken struct {
	Token     string    `bson:"token"`
	ExpiresAt time.Time `bson:"expires_at"`
	RevokedAt time.Time `bson:"revoked_at"`
}

// TokenPair is what a successful code verification hands back.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
