// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		Create persists a brand-new user.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: dberr.ErrConflict when the email is taken
	*/
	Create(context context.Context, user *User) error

	/*
		FindByID returns the user with the given ID.

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound when absent
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the user registered under the normalized email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound when absent
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Update writes the profile fields (email, name, tagline, image) and
		updated-at. A miss yields dberr.ErrNotFound; a taken email yields
		dberr.ErrConflict.
	*/
	Update(context context.Context, user *User) error
}

// RevocationStore is the denylist of logged-out session ids.
type RevocationStore interface {

	/*
		Revoke denies the session id for ttl, the token's remaining lifetime.

		Parameters:
		  - context: context.Context
		  - sessionID: string (jti claim)
		  - ttl: time.Duration

		Returns:
		  - error: Storage failures
	*/
	Revoke(context context.Context, sessionID string, ttl time.Duration) error

	// IsRevoked reports whether the session id is on the denylist.
	IsRevoked(context context.Context, sessionID string) (bool, error)
}
