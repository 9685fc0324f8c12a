package util

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrResetTokenInvalid = errors.New("reset token is invalid")
	ErrResetTokenExpired = errors.New("reset token has expired")
)

// Password-reset tokens are stateless: nothing is stored server-side.
// A token is "<base36 unix ts>-<base64url hmac>", where the MAC covers the
// user ID, the current password hash and the issue timestamp. Keying the MAC
// on the password hash makes every outstanding token single-use in practice:
// completing a reset (or any password change) changes the hash, so no prior
// token verifies again.

// MakeResetToken issues a reset token for the given account state.
func MakeResetToken(userID uint, passwordHash, secret string, now time.Time) string {
	ts := strconv.FormatInt(now.Unix(), 36)
	return ts + "-" + resetTokenMAC(userID, passwordHash, ts, secret)
}

// CheckResetToken verifies a reset token against current account state.
// Validity is entirely re-derived from the token and the account; maxAge
// bounds the token lifetime from its embedded issue timestamp.
func CheckResetToken(token string, userID uint, passwordHash, secret string, maxAge time.Duration, now time.Time) error {
	ts, sig, ok := strings.Cut(token, "-")
	if !ok || ts == "" || sig == "" {
		return ErrResetTokenInvalid
	}

	issuedUnix, err := strconv.ParseInt(ts, 36, 64)
	if err != nil {
		return ErrResetTokenInvalid
	}

	expected := resetTokenMAC(userID, passwordHash, ts, secret)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return ErrResetTokenInvalid
	}

	issued := time.Unix(issuedUnix, 0)
	if issued.After(now) {
		return ErrResetTokenInvalid
	}
	if now.Sub(issued) > maxAge {
		return ErrResetTokenExpired
	}

	return nil
}

func resetTokenMAC(userID uint, passwordHash, ts, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatUint(uint64(userID), 10)))
	mac.Write([]byte{'|'})
	mac.Write([]byte(passwordHash))
	mac.Write([]byte{'|'})
	mac.Write([]byte(ts))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// EncodeUID encodes an account ID for use as a reset-link path segment.
func EncodeUID(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

// DecodeUID reverses EncodeUID.
func DecodeUID(encoded string) (uint, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return 0, ErrResetTokenInvalid
	}
	id, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrResetTokenInvalid
	}
	return uint(id), nil
}
