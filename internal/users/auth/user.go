// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements user accounts and session management.

# Architecture

  - Entities: [User] and the [Session] returned by login.
  - Repository: users in PostgreSQL or SQLite; revoked sessions in Redis.
  - Service: registration, login, logout, profile, session verification.
  - Handler: chi routes under /api/v1/auth.

Sessions are stateless signed tokens. The only server-side session state is
the optional revocation denylist.
*/
package auth

import "time"

// # Domain Entities

// User represents a registered member of Habitrack.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Tagline      *string   `json:"tagline"`
	Image        *string   `json:"image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session is the result of a successful login.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

// # Constraints

const (
	MaxEmailLength   = 254
	MaxNameLength    = 100
	MaxTaglineLength = 160
	MaxImageLength   = 2048

	// MaxPasswordLength is the bcrypt input limit in bytes.
	MaxPasswordLength = 72
)

// # Field Identifiers

const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "name"
	FieldTagline  = "tagline"
	FieldImage    = "image"
)
