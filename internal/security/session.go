package security

import (
	"crypto/ed25519"
	"errors"
	"strconv"
	"time"

	"rentby-escrow/internal/domain"
)

const sessionPrefix = "rentby-session:"

var (
	ErrInvalidSignature = errors.New("invalid session signature")
	ErrStaleSession     = errors.New("session timestamp outside allowed window")
)

// SessionMessage is the byte string a party signs with its identity key to
// open a session.
func SessionMessage(timestamp int64) []byte {
	return []byte(sessionPrefix + strconv.FormatInt(timestamp, 10))
}

// VerifySession checks that sig is id's ed25519 signature over the session
// message for timestamp, and that timestamp is within skew of now.
func VerifySession(id domain.Identity, timestamp int64, sig []byte, now time.Time, skew time.Duration) error {
	ts := time.Unix(timestamp, 0)
	if ts.Before(now.Add(-skew)) || ts.After(now.Add(skew)) {
		return ErrStaleSession
	}
	if len(sig) != ed25519.SignatureSize {
		return ErrInvalidSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(id.Bytes()), SessionMessage(timestamp), sig) {
		return ErrInvalidSignature
	}
	return nil
}
