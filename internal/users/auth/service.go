// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/taibuivan/habitrack/internal/platform/apperr"
	"github.com/taibuivan/habitrack/internal/platform/metrics"
	"github.com/taibuivan/habitrack/internal/platform/sec"
	"github.com/taibuivan/habitrack/internal/platform/validate"
	"github.com/taibuivan/habitrack/pkg/normalize"
	"github.com/taibuivan/habitrack/pkg/pointer"
	"github.com/taibuivan/habitrack/pkg/uuid"
)

// invalidCredentials is shared by the unknown-email and wrong-password paths.
const invalidCredentials = "Invalid credentials"

// # Service

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, login or
// session verification must keep every failure path indistinguishable to
// the client.
type Service struct {
	users       UserRepository
	revocations RevocationStore
	signer      *sec.SessionSigner
	clock       clockwork.Clock
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewService constructs a new auth [Service]. A nil revocation store disables
// server-side logout; metrics may be nil.
func NewService(
	users UserRepository,
	revocations RevocationStore,
	signer *sec.SessionSigner,
	clock clockwork.Clock,
	collector *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	if revocations == nil {
		revocations = NoopRevocationStore{}
	}
	return &Service{
		users:       users,
		revocations: revocations,
		signer:      signer,
		clock:       clock,
		metrics:     collector,
		logger:      logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

/*
Register validates, hashes, and persists a brand new user account.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: VALIDATION_ERROR, CONFLICT (email taken) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	email := normalize.Email(input.Email)
	name := normalize.Text(input.Name)

	validator := &validate.Validator{}
	validator.
		Required(FieldEmail, email).
		MaxLen(FieldEmail, email, MaxEmailLength).
		Email(FieldEmail, email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, sec.MinPasswordLength).
		Custom(FieldPassword, len(input.Password) > MaxPasswordLength, fmt.Sprintf("Maximum %d bytes", MaxPasswordLength)).
		Required(FieldName, name).
		MaxLen(FieldName, name, MaxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Fast path for a friendly error; the unique index settles races.
	if _, err := service.users.FindByEmail(context, email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	} else if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	now := service.clock.Now()
	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.users.Create(context, user); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return nil, apperr.Conflict("Email is already registered")
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID))
	return user, nil
}

// # Session Flow

// LoginInput holds the credentials of a login attempt.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Login verifies credentials and issues a session token.

Unknown emails and wrong passwords produce the same error after the same
amount of bcrypt work.

Returns:
  - *Session: Token, expiry and user
  - error: VALIDATION_ERROR or UNAUTHORIZED "Invalid credentials"
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	email := normalize.Email(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.users.FindByEmail(context, email)
	if err != nil {
		if !apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, fmt.Errorf("auth_service_login_failed: %w", err)
		}
		sec.BurnPasswordCheck(input.Password)
		service.metrics.LoginAttempt(false)
		return nil, apperr.Unauthorized(invalidCredentials)
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		service.metrics.LoginAttempt(false)
		service.logger.Warn("login_failed", slog.String("user_id", user.ID))
		return nil, apperr.Unauthorized(invalidCredentials)
	}

	token, expiresAt, err := service.signer.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_issue_failed: %w", err)
	}

	service.metrics.LoginAttempt(true)
	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))

	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

/*
Logout revokes the session for the rest of its lifetime when a revocation
store is configured. Anonymous calls are a no-op.
*/
func (service *Service) Logout(context context.Context, claims *sec.SessionClaims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}

	if err := service.revocations.Revoke(context, claims.ID, claims.Remaining(service.clock.Now())); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	service.logger.Info("user_logged_out", slog.String("user_id", claims.UserID))
	return nil
}

/*
VerifySession validates a token and checks it against the denylist.

A denylist lookup error fails closed: the session is treated as invalid.

Returns:
  - *sec.SessionClaims: Verified claims
  - error: sec.ErrInvalidSession or a wrapped store error
*/
func (service *Service) VerifySession(context context.Context, token string) (*sec.SessionClaims, error) {
	claims, err := service.signer.Verify(token)
	if err != nil {
		return nil, err
	}

	revoked, err := service.revocations.IsRevoked(context, claims.ID)
	if err != nil {
		service.logger.Error("session_revocation_lookup_failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", sec.ErrInvalidSession, err)
	}
	if revoked {
		return nil, sec.ErrInvalidSession
	}

	return claims, nil
}

// # Profile

// Me returns the account behind a session.
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	user, err := service.users.FindByID(context, userID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("auth_service_me_failed: %w", err)
	}
	return user, nil
}

// ProfileInput is a partial profile update. Nil fields are unchanged; an
// empty tagline or image clears it.
type ProfileInput struct {
	Email   *string `json:"email"`
	Name    *string `json:"name"`
	Tagline *string `json:"tagline"`
	Image   *string `json:"image"`
}

/*
UpdateProfile applies a partial update to the user's profile.

Returns:
  - *User: Updated entity
  - error: VALIDATION_ERROR, CONFLICT when the new email belongs to someone else
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input ProfileInput) (*User, error) {
	user, err := service.Me(context, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = normalize.Email(*input.Email)
	}
	if input.Name != nil {
		user.Name = normalize.Text(*input.Name)
	}
	if input.Tagline != nil {
		user.Tagline = pointer.NonEmpty(normalize.Text(*input.Tagline))
	}
	if input.Image != nil {
		user.Image = pointer.NonEmpty(*input.Image)
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldEmail, user.Email).
		MaxLen(FieldEmail, user.Email, MaxEmailLength).
		Email(FieldEmail, user.Email).
		Required(FieldName, user.Name).
		MaxLen(FieldName, user.Name, MaxNameLength).
		MaxLen(FieldTagline, pointer.Val(user.Tagline), MaxTaglineLength)
	if user.Image != nil {
		validator.MaxLen(FieldImage, *user.Image, MaxImageLength).URL(FieldImage, *user.Image)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Email != nil {
		existing, err := service.users.FindByEmail(context, user.Email)
		switch {
		case err == nil && existing.ID != user.ID:
			return nil, apperr.Conflict("Email already in use")
		case err != nil && !apperr.HasCode(err, apperr.CodeNotFound):
			return nil, fmt.Errorf("auth_service_profile_failed: %w", err)
		}
	}

	user.UpdatedAt = service.clock.Now()
	if err := service.users.Update(context, user); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return nil, apperr.Conflict("Email already in use")
		}
		return nil, fmt.Errorf("auth_service_profile_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", user.ID))
	return user, nil
}
