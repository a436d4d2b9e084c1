// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/habitrack/internal/platform/sec"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newSigner(t *testing.T) (*sec.SessionSigner, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC))
	signer, err := sec.NewSessionSigner(testSecret, clock)
	require.NoError(t, err)
	return signer, clock
}

/*
TestSession_RoundTrip verifies that a freshly issued token verifies to its user.
*/
func TestSession_RoundTrip(t *testing.T) {
	signer, clock := newSigner(t)

	token, expiresAt, err := signer.Issue("user-1")
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(24*time.Hour), expiresAt)

	claims, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, 24*time.Hour, claims.Remaining(clock.Now()))
}

/*
TestSession_Expiry verifies that tokens are rejected once the lifetime elapses.
*/
func TestSession_Expiry(t *testing.T) {
	signer, clock := newSigner(t)

	token, _, err := signer.Issue("user-1")
	require.NoError(t, err)

	clock.Advance(23 * time.Hour)
	_, err = signer.Verify(token)
	assert.NoError(t, err)

	clock.Advance(time.Hour + time.Second)
	_, err = signer.Verify(token)
	assert.ErrorIs(t, err, sec.ErrInvalidSession)
}

/*
TestSession_RejectsTampering verifies that every kind of bad token collapses to
the same error.
*/
func TestSession_RejectsTampering(t *testing.T) {
	signer, clock := newSigner(t)

	token, _, err := signer.Issue("user-1")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	otherSigner, err := sec.NewSessionSigner(strings.Repeat("x", 32), clock)
	require.NoError(t, err)
	foreign, _, err := otherSigner.Issue("user-1")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"uid": "user-1", "sub": "user-1", "iss": "habitrack",
		"exp": clock.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"tampered payload", parts[0] + "." + parts[1] + "x." + parts[2]},
		{"tampered signature", parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))},
		{"foreign key", foreign},
		{"alg none", noneToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := signer.Verify(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, sec.ErrInvalidSession)
		})
	}
}

func TestNewSessionSigner_RequiresStrongSecret(t *testing.T) {
	_, err := sec.NewSessionSigner("short", clockwork.NewFakeClock())
	assert.ErrorIs(t, err, sec.ErrWeakSecret)
}

func TestIssue_RequiresUserID(t *testing.T) {
	signer, _ := newSigner(t)
	_, _, err := signer.Issue("")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("correct horse", hash))
	assert.False(t, sec.CheckPasswordHash("wrong horse", hash))
}
