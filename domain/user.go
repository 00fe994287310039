package domain

import "time"

// UserRole defines the portal roles.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleCitizen UserRole = "citizen"
)

// UserStatus defines the possible statuses of a user account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// User represents a resident or administrator account. The auth core reads and
// updates login metadata on it but does not own its lifecycle.
type User struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	Email         string     `bson:"email" json:"email"`
	FirstName     string     `bson:"first_name,omitempty" json:"firstName,omitempty"`
	LastName      string     `bson:"last_name,omitempty" json:"lastName,omitempty"`
	Role          UserRole   `bson:"role" json:"role"`
	Status        UserStatus `bson:"status" json:"status"`
	EmailVerified bool       `bson:"email_verified" json:"emailVerified"`
	CreatedAt     time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updated_at" json:"updatedAt"`
	LastLoginAt   *time.Time `bson:"last_login_at,omitempty" json:"lastLoginAt,omitempty"`
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
