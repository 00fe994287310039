package domain

import (
	"context"
	"time"
)

// UserRepository is the user directory consumed by the auth core. Email
// lookups expect a lower-cased, trimmed address.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
	CountUsers(ctx context.Context) (int64, error)
}

// OneTimeCodeRepository stores short-lived login codes. The store, not the
// service, is the source of truth for the single-use guarantee: Consume must
// be atomic so that concurrent attempts on the same code yield exactly one
// success.
type OneTimeCodeRepository interface {
	// DeleteUnconsumed removes every unconsumed code for the email.
	DeleteUnconsumed(ctx context.Context, email string) error
	// Store persists a freshly issued code.
	Store(ctx context.Context, code *OneTimeCode) error
	// Consume marks the matching unconsumed, unexpired code as consumed.
	// Returns ErrNotFound when no such code exists.
	Consume(ctx context.Context, email, code string, now time.Time) error
	// DeleteExpired removes codes past their expiry. The TTL index does this
	// too; this exists for explicit sweeps.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// RevokedTokenRepository is the token blacklist. Revoking an already-revoked
// token is a success, and entries past their expiry count as not revoked.
type RevokedTokenRepository interface {
	Revoke(ctx context.Context, entry *RevokedToken) error
	IsRevoked(ctx context.Context, token string, now time.Time) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// NewsRepository stores portal articles.
type NewsRepository interface {
	Create(ctx context.Context, n *News) error
	GetByID(ctx context.Context, id string) (*News, error)
	List(ctx context.Context, onlyPublished bool, category NewsCategory, limit, offset int64) ([]*News, error)
	Update(ctx context.Context, n *News) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	CountPublished(ctx context.Context) (int64, error)
}

// FeedbackRepository stores citizen feedback on articles.
type FeedbackRepository interface {
	Create(ctx context.Context, f *Feedback) error
	GetByID(ctx context.Context, id string) (*Feedback, error)
	ListByNews(ctx context.Context, newsID string) ([]*Feedback, error)
	ListByStatus(ctx context.Context, status FeedbackStatus, limit, offset int64) ([]*Feedback, error)
	Update(ctx context.Context, f *Feedback) error
	CountByStatus(ctx context.Context, status FeedbackStatus) (int64, error)
}

// HelpRequestRepository stores department-routed help requests.
type HelpRequestRepository interface {
	Create(ctx context.Context, r *HelpRequest) error
	GetByID(ctx context.Context, id string) (*HelpRequest, error)
	ListByDepartment(ctx context.Context, dept Department, status HelpRequestStatus, limit, offset int64) ([]*HelpRequest, error)
	ListByUser(ctx context.Context, userID string) ([]*HelpRequest, error)
	Update(ctx context.Context, r *HelpRequest) error
	CountOpenByDepartment(ctx context.Context) (map[Department]int64, error)
}

// UploadRepository stores file metadata documents.
type UploadRepository interface {
	Create(ctx context.Context, u *Upload) error
	GetByID(ctx context.Context, id string) (*Upload, error)
	ListByUploader(ctx context.Context, uploaderID string) ([]*Upload, error)
}
