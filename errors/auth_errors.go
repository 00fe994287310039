package errors

import (
	"errors"
	"fmt"
)

// Sentinel error kinds recovered at the service boundary. Handlers map these
// to HTTP statuses; anything else is logged and reported generically.
var (
	// ErrUserNotFound means no account exists for the email or token subject.
	ErrUserNotFound = errors.New("user not found")
	// ErrAccountInactive means the account exists but may not authenticate.
	ErrAccountInactive = errors.New("account is inactive")
	// ErrInvalidOrExpiredCode covers every code failure mode: wrong code,
	// expired, already consumed, or never issued. Deliberately a single kind
	// so callers cannot enumerate which one occurred.
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")
	// ErrInvalidToken means the token failed signature or structural checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired means the token's exp claim has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenRevoked means the token is on the blacklist.
	ErrTokenRevoked = errors.New("token revoked")
	// ErrInvalidRefreshToken means the refresh token failed verification.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	// ErrNotFound is the generic missing-document kind for portal entities.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition rejects a disallowed help-request status change.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrForbidden means the caller's role does not permit the action.
	ErrForbidden = errors.New("forbidden")
)

// StorageError wraps an underlying store failure so handlers can report a
// generic 5xx while the cause is logged server-side.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError wraps err with the failing operation name.
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// ConfigurationError is fatal at startup: the process must not serve
// requests with an incomplete signing setup.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: missing %s", e.Field)
}
