package booking

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"venuebook/internal/pkg/errs"
)

const responseTokenBytes = 32

// NewResponseToken mints an opaque single-booking credential. It carries no
// claims; validity lives entirely in the bookings row (token + expiry).
func NewResponseToken() (string, error) {
	buf := make([]byte, responseTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errs.Wrap(err, "failed to generate response token")
	}
	return hex.EncodeToString(buf), nil
}

// VerifyToken checks the presented token against the stored one and its
// expiry. Rotation invalidates old tokens because the stored value changes,
// so a mismatch and a missing token look identical to the caller. Expiry is
// judged against now plus the caller's grace window; only a genuine expiry
// yields ErrTokenExpired, which callers must keep distinct from mismatch.
func (b *Booking) VerifyToken(presented string, now time.Time, grace time.Duration) error {
	if b.responseToken == "" || presented == "" {
		return ErrTokenMismatch
	}
	if subtle.ConstantTimeCompare([]byte(b.responseToken), []byte(presented)) != 1 {
		return ErrTokenMismatch
	}
	if b.tokenExpiresAt > 0 && now.Unix() > b.tokenExpiresAt+int64(grace/time.Second) {
		return ErrTokenExpired
	}
	return nil
}

// RotateToken replaces the stored token, invalidating every previously
// issued link for this booking.
func (b *Booking) RotateToken(now time.Time, ttl time.Duration) (string, error) {
	token, err := NewResponseToken()
	if err != nil {
		return "", err
	}
	b.responseToken = token
	b.tokenExpiresAt = now.Add(ttl).Unix()
	return token, nil
}

// ClearToken revokes customer access without issuing a replacement, used
// when a booking reaches a state where no further customer action exists.
func (b *Booking) ClearToken() {
	b.responseToken = ""
	b.tokenExpiresAt = 0
}
