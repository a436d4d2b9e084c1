// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and session token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, Token Signing) from
// the domain logic. Session tokens are HS256 JWTs signed with the process-wide
// SESSION_SECRET. They are self-contained: verification needs no database
// lookup, only the key and the current time from the injected clock.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"github.com/taibuivan/habitrack/internal/platform/constants"
	"github.com/taibuivan/habitrack/pkg/uuid"
)

// ErrInvalidSession is the single error returned for every verification
// failure. Callers must not be able to tell a bad signature from an expired
// or malformed token.
var ErrInvalidSession = errors.New("sec: invalid session")

// ErrWeakSecret is returned when the signing key is shorter than [MinSecretLength].
var ErrWeakSecret = errors.New("sec: session secret too short")

// MinSecretLength is the minimum HMAC key size in bytes.
const MinSecretLength = 32

// SessionClaims represents the payload embedded inside a session token.
type SessionClaims struct {
	jwt.RegisteredClaims

	// UserID is abbreviated to keep the payload small.
	UserID string `json:"uid"`
}

// Remaining returns how long the token stays valid after now.
func (c *SessionClaims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(c.ExpiresAt.Sub(now), 0)
}

// SessionSigner issues and verifies HS256 session tokens.
type SessionSigner struct {
	secret []byte
	issuer string
	ttl    time.Duration
	clock  clockwork.Clock
}

// NewSessionSigner creates a signer using the given key and clock.
// There is no fallback key: a missing or short secret is an error.
func NewSessionSigner(secret string, clock clockwork.Clock) (*SessionSigner, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &SessionSigner{
		secret: []byte(secret),
		issuer: constants.AuthIssuer,
		ttl:    constants.SessionTTL,
		clock:  clock,
	}, nil
}

// TTL returns the lifetime given to newly issued tokens.
func (signer *SessionSigner) TTL() time.Duration {
	return signer.ttl
}

// Issue creates a signed token for userID that expires [constants.SessionTTL]
// after the current clock time.
func (signer *SessionSigner) Issue(userID string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, fmt.Errorf("sec: cannot issue session without user id")
	}

	issuedAt := signer.clock.Now().Truncate(time.Second)
	expiresAt := issuedAt.Add(signer.ttl)

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Subject:   userID,
			Issuer:    signer.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(signer.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to sign session: %w", err)
	}

	return signedToken, expiresAt, nil
}

// Verify checks the signature, expiry and issuer of a token string.
// Any failure yields [ErrInvalidSession].
func (signer *SessionSigner) Verify(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidSession
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(signer.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(signer.clock.Now),
	)

	claims := &SessionClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return signer.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	// The subject and the uid claim must agree.
	if claims.UserID == "" || claims.Subject != claims.UserID {
		return nil, ErrInvalidSession
	}

	return claims, nil
}
