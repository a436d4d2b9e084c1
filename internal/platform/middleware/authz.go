// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/habitrack/internal/platform/apperr"
	"github.com/taibuivan/habitrack/internal/platform/constants"
	"github.com/taibuivan/habitrack/internal/platform/ctxutil"
	"github.com/taibuivan/habitrack/internal/platform/respond"
	"github.com/taibuivan/habitrack/internal/platform/sec"
)

// invalidSessionMessage is the only message a client ever sees for a bad token.
const invalidSessionMessage = "Invalid or expired session"

// SessionVerifier defines the interface needed to verify sessions in middleware.
//
// Defining it here decouples the middleware from the auth service
// implementation (which also consults the revocation list), allowing us to
// inject stubs during unit testing.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (*sec.SessionClaims, error)
}

type identityHolderKey struct{}

// identityHolder lets StructuredLogger, which runs earlier in the chain, see
// the user id resolved by Authenticate.
type identityHolder struct {
	userID string
}

// Authenticate resolves the session token of the request.
//
// # Flow
//  1. Prefer 'Authorization: Bearer <token>'; otherwise read the session cookie.
//  2. If neither is present, the request proceeds as anonymous.
//  3. A malformed or invalid bearer token is rejected with 401.
//  4. An invalid cookie is ignored (the request proceeds as anonymous), so a
//     stale browser cookie never blocks the login endpoint.
//  5. Verified [*sec.SessionClaims] are injected into the request context.
func Authenticate(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			// ── 1. Token Extraction ───────────────────────────────────────────
			token, fromHeader, ok := extractToken(request)
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized(invalidSessionMessage))
				return
			}

			// ── 2. Anonymous Access ───────────────────────────────────────────
			if token == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifySession(ctx, token)
			if err != nil {
				ctxutil.GetLogger(ctx).DebugContext(ctx, "session_rejected",
					slog.Bool("bearer", fromHeader),
					slog.String("error", err.Error()),
				)
				if fromHeader {
					respond.Error(writer, request, apperr.Unauthorized(invalidSessionMessage))
					return
				}
				next.ServeHTTP(writer, request)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			if holder, found := ctx.Value(identityHolderKey{}).(*identityHolder); found {
				holder.userID = claims.UserID
			}

			ctx = ctxutil.WithSession(ctx, claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// extractToken returns the presented token and whether it came from the
// Authorization header. ok is false for a malformed Authorization header.
func extractToken(request *http.Request) (token string, fromHeader bool, ok bool) {
	if authHeader := request.Header.Get(constants.HeaderAuthorization); authHeader != "" {
		scheme, value, found := strings.Cut(authHeader, " ")
		value = strings.TrimSpace(value)
		if !found || !strings.EqualFold(scheme, "bearer") || value == "" {
			return "", true, false
		}
		return value, true, true
	}

	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, false, true
	}

	return "", false, true
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetSession(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
