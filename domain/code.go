package domain

import "time"

// OneTimeCodeTTL is the fixed validity window of a login code.
const OneTimeCodeTTL = 5 * time.Minute

// OneTimeCode is a short-lived, single-use numeric login code bound to an
// email address. At most one unconsumed, unexpired code exists per email:
// issuing a new code removes every prior unconsumed one first. Expired
// documents are reclaimed by a TTL index on expires_at.
type OneTimeCode struct {
	ID        string    `bson:"_id,omitempty"`
	Email     string    `bson:"email"`
	Code      string    `bson:"code"`
	Consumed  bool      `bson:"consumed"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}
