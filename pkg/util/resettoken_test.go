package util

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resetSecret = "test-reset-secret"

func TestMakeAndCheckResetToken(t *testing.T) {
	now := time.Now()
	hash := "$2a$12$somebcrypthashvalue"

	token := MakeResetToken(7, hash, resetSecret, now)
	require.NotEmpty(t, token)

	err := CheckResetToken(token, 7, hash, resetSecret, time.Hour, now.Add(5*time.Minute))
	assert.NoError(t, err)
}

func TestCheckResetToken_Rejections(t *testing.T) {
	now := time.Now()
	hash := "$2a$12$somebcrypthashvalue"
	token := MakeResetToken(7, hash, resetSecret, now)

	tests := []struct {
		name    string
		token   string
		userID  uint
		hash    string
		secret  string
		at      time.Time
		wantErr error
	}{
		{
			name:    "Tampered token",
			token:   token + "x",
			userID:  7,
			hash:    hash,
			secret:  resetSecret,
			at:      now,
			wantErr: ErrResetTokenInvalid,
		},
		{
			name:    "Wrong account",
			token:   token,
			userID:  8,
			hash:    hash,
			secret:  resetSecret,
			at:      now,
			wantErr: ErrResetTokenInvalid,
		},
		{
			name:    "Password hash changed since issue",
			token:   token,
			userID:  7,
			hash:    "$2a$12$adifferenthash",
			secret:  resetSecret,
			at:      now,
			wantErr: ErrResetTokenInvalid,
		},
		{
			name:    "Wrong secret",
			token:   token,
			userID:  7,
			hash:    hash,
			secret:  "other-secret",
			at:      now,
			wantErr: ErrResetTokenInvalid,
		},
		{
			name:    "Expired",
			token:   token,
			userID:  7,
			hash:    hash,
			secret:  resetSecret,
			at:      now.Add(2 * time.Hour),
			wantErr: ErrResetTokenExpired,
		},
		{
			name:    "Malformed token",
			token:   "not-a-real-token-at-all",
			userID:  7,
			hash:    hash,
			secret:  resetSecret,
			at:      now,
			wantErr: ErrResetTokenInvalid,
		},
		{
			name:    "Empty token",
			token:   "",
			userID:  7,
			hash:    hash,
			secret:  resetSecret,
			at:      now,
			wantErr: ErrResetTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckResetToken(tt.token, tt.userID, tt.hash, tt.secret, time.Hour, tt.at)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckResetToken_FutureTimestamp(t *testing.T) {
	now := time.Now()
	hash := "$2a$12$somebcrypthashvalue"

	// A token "issued" in the future is forged; it must not validate even
	// though it is not expired
	token := MakeResetToken(7, hash, resetSecret, now.Add(time.Hour))
	err := CheckResetToken(token, 7, hash, resetSecret, time.Hour, now)
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestUIDCodec(t *testing.T) {
	for _, id := range []uint{1, 42, 99999} {
		encoded := EncodeUID(id)
		assert.NotEmpty(t, encoded)
		assert.NotContains(t, encoded, "/")

		decoded, err := DecodeUID(encoded)
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}
}

func TestDecodeUID_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{name: "Empty", encoded: ""},
		{name: "Not base64", encoded: "!!!"},
		{name: "Not a number", encoded: base64.RawURLEncoding.EncodeToString([]byte("abc"))},
		{name: "Zero id", encoded: base64.RawURLEncoding.EncodeToString([]byte("0"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeUID(tt.encoded)
			assert.Error(t, err)
		})
	}
}
