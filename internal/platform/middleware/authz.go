// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/kaminari/internal/platform/apperr"
	"github.com/taibuivan/kaminari/internal/platform/constants"
	"github.com/taibuivan/kaminari/internal/platform/ctxutil"
	"github.com/taibuivan/kaminari/internal/platform/respond"
	"github.com/taibuivan/kaminari/internal/platform/sec"
)

// # Session Contracts

// TokenVerifier validates a raw bearer token and extracts its claims.
type TokenVerifier interface {
	Verify(tokenString string) (*sec.AuthClaims, error)
}

// UserLoader resolves a token subject into a live user snapshot.
//
// Implementations must fail with an unauthorized error when the account no
// longer exists or has not completed email verification. A stale token must
// never grant access to a deleted or unverified account.
type UserLoader interface {
	LoadCurrentUser(context context.Context, userID string) (*sec.CurrentUser, error)
}

// # Gates

// Authenticate protects a route group with bearer-token authentication.
//
// The gate walks a strict ladder, every rung failing closed with 401:
//
//  1. The Authorization header must carry a "Bearer <token>" value.
//  2. The token must pass signature and expiry verification.
//  3. The subject must resolve to an existing, email-verified account.
//
// On success the fresh account snapshot is attached to the request context,
// so downstream handlers always see current role and credit values rather
// than whatever was baked into the token at issue time.
func Authenticate(verifier TokenVerifier, loader UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Extract the bearer token from the Authorization header
			rawToken, ok := extractBearerToken(request)
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// 2. Verify the token signature and expiry
			claims, err := verifier.Verify(rawToken)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired session"))
				return
			}

			// 3. Resolve the subject to a live, verified account
			currentUser, err := loader.LoadCurrentUser(request.Context(), claims.UserID)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// 4. Attach the identity snapshot for downstream handlers
			ctx := ctxutil.WithCurrentUser(request.Context(), currentUser)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireRoles restricts a route group to accounts whose role belongs to the
// allowed set. Membership is a flat check: roles carry no implied hierarchy,
// so an Admin is rejected from an Artist-only route unless listed explicitly.
//
// Must be mounted after Authenticate; a request without an identity fails
// with 401 rather than 403.
func RequireRoles(allowed ...sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			currentUser := ctxutil.GetCurrentUser(request.Context())
			if currentUser == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if !currentUser.Role.In(allowed...) {
				respond.Error(writer, request, apperr.Forbidden("You do not have permission to perform this action"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Helpers

// extractBearerToken pulls the token out of "Authorization: Bearer <token>".
func extractBearerToken(request *http.Request) (string, bool) {
	header := request.Header.Get(constants.HeaderAuthorization)
	if header == "" {
		return "", false
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", false
	}

	return token, true
}
