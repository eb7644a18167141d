// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kaminari/internal/platform/apperr"
	"github.com/taibuivan/kaminari/internal/platform/ctxutil"
	"github.com/taibuivan/kaminari/internal/platform/sec"
)

type fakeVerifier struct {
	claims *sec.AuthClaims
	err    error
}

func (verifier *fakeVerifier) Verify(tokenString string) (*sec.AuthClaims, error) {
	if verifier.err != nil {
		return nil, verifier.err
	}
	return verifier.claims, nil
}

type fakeLoader struct {
	user *sec.CurrentUser
	err  error
}

func (loader *fakeLoader) LoadCurrentUser(context context.Context, userID string) (*sec.CurrentUser, error) {
	if loader.err != nil {
		return nil, loader.err
	}
	return loader.user, nil
}

func okHandler(t *testing.T) (http.Handler, *bool) {
	t.Helper()
	called := false
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		called = true
		writer.WriteHeader(http.StatusOK)
	}), &called
}

func TestAuthenticate(t *testing.T) {
	validClaims := &sec.AuthClaims{UserID: "user-1", Role: string(sec.RoleUser)}
	validUser := &sec.CurrentUser{ID: "user-1", Username: "rika", Email: "rika@example.com", Role: sec.RoleUser}

	testCases := []struct {
		name       string
		authHeader string
		verifier   *fakeVerifier
		loader     *fakeLoader
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "missing header is rejected",
			authHeader: "",
			verifier:   &fakeVerifier{claims: validClaims},
			loader:     &fakeLoader{user: validUser},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "non bearer scheme is rejected",
			authHeader: "Basic dXNlcjpwYXNz",
			verifier:   &fakeVerifier{claims: validClaims},
			loader:     &fakeLoader{user: validUser},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "bearer with empty token is rejected",
			authHeader: "Bearer ",
			verifier:   &fakeVerifier{claims: validClaims},
			loader:     &fakeLoader{user: validUser},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token is rejected",
			authHeader: "Bearer bad-token",
			verifier:   &fakeVerifier{err: sec.ErrTokenInvalid},
			loader:     &fakeLoader{user: validUser},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token is rejected",
			authHeader: "Bearer stale-token",
			verifier:   &fakeVerifier{err: sec.ErrTokenExpired},
			loader:     &fakeLoader{user: validUser},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "deleted account is rejected",
			authHeader: "Bearer good-token",
			verifier:   &fakeVerifier{claims: validClaims},
			loader:     &fakeLoader{err: apperr.Unauthorized("User not found")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unverified account is rejected",
			authHeader: "Bearer good-token",
			verifier:   &fakeVerifier{claims: validClaims},
			loader:     &fakeLoader{err: apperr.EmailNotVerified()},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid session passes through",
			authHeader: "Bearer good-token",
			verifier:   &fakeVerifier{claims: validClaims},
			loader:     &fakeLoader{user: validUser},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			handler, called := okHandler(t)
			gate := Authenticate(testCase.verifier, testCase.loader)(handler)

			request := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if testCase.authHeader != "" {
				request.Header.Set("Authorization", testCase.authHeader)
			}

			recorder := httptest.NewRecorder()
			gate.ServeHTTP(recorder, request)

			assert.Equal(t, testCase.wantStatus, recorder.Code)
			assert.Equal(t, testCase.wantNext, *called)
		})
	}
}

func TestAuthenticateAttachesSnapshot(t *testing.T) {
	snapshot := &sec.CurrentUser{ID: "user-7", Username: "sora", Role: sec.RoleArtist, Credits: 42}

	var seen *sec.CurrentUser
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetCurrentUser(request.Context())
		writer.WriteHeader(http.StatusOK)
	})

	gate := Authenticate(
		&fakeVerifier{claims: &sec.AuthClaims{UserID: "user-7", Role: string(sec.RoleArtist)}},
		&fakeLoader{user: snapshot},
	)(handler)

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer good-token")

	recorder := httptest.NewRecorder()
	gate.ServeHTTP(recorder, request)

	require.NotNil(t, seen)
	assert.Equal(t, "user-7", seen.ID)
	assert.Equal(t, sec.RoleArtist, seen.Role)
	assert.Equal(t, 42, seen.Credits)
}

func TestRequireRoles(t *testing.T) {
	testCases := []struct {
		name       string
		user       *sec.CurrentUser
		allowed    []sec.UserRole
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "no identity yields 401",
			user:       nil,
			allowed:    []sec.UserRole{sec.RoleAdmin},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "member role passes",
			user:       &sec.CurrentUser{ID: "u1", Role: sec.RoleManager},
			allowed:    []sec.UserRole{sec.RoleAdmin, sec.RoleManager},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "non member role yields 403",
			user:       &sec.CurrentUser{ID: "u2", Role: sec.RoleUser},
			allowed:    []sec.UserRole{sec.RoleAdmin, sec.RoleManager},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin has no implicit access to artist routes",
			user:       &sec.CurrentUser{ID: "u3", Role: sec.RoleAdmin},
			allowed:    []sec.UserRole{sec.RoleArtist},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			handler, called := okHandler(t)
			gate := RequireRoles(testCase.allowed...)(handler)

			request := httptest.NewRequest(http.MethodGet, "/staff", nil)
			if testCase.user != nil {
				request = request.WithContext(ctxutil.WithCurrentUser(request.Context(), testCase.user))
			}

			recorder := httptest.NewRecorder()
			gate.ServeHTTP(recorder, request)

			assert.Equal(t, testCase.wantStatus, recorder.Code)
			assert.Equal(t, testCase.wantNext, *called)
		})
	}
}
