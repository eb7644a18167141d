// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"net/url"
	"time"

	"github.com/taibuivan/kaminari/internal/platform/apperr"
	"github.com/taibuivan/kaminari/internal/platform/respond"
	"github.com/taibuivan/kaminari/internal/platform/sec"
)

// # Social Sign-In Transport
//
// These endpoints are browser redirects, not JSON calls: the entry point
// bounces to the provider consent screen, the callback lands back here and
// bounces again to the front end with the session token in the query.

// oauthStateCookie carries the CSRF state between redirect and callback.
const oauthStateCookie = "kaminari_oauth_state"

// SetFrontendURL wires the post-login landing page, e.g. a base of
// "https://kaminari.app" sends browsers to "https://kaminari.app/auth/callback".
func (handler *Handler) SetFrontendURL(base string) {
	handler.frontendCallbackURL = base + "/auth/callback"
}

/*
socialRedirect starts a provider sign-in.

GET /api/v1/auth/{provider}

Description: Generates a random state value, parks it in a short-lived
cookie, and redirects to the provider consent screen.
*/
func (handler *Handler) socialRedirect(provider string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		state, err := sec.GenerateSecureToken(16)
		if err != nil {
			respond.Error(writer, request, apperr.Internal(err))
			return
		}

		consentURL, err := handler.socialService.AuthURL(provider, state)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		http.SetCookie(writer, &http.Cookie{
			Name:     oauthStateCookie,
			Value:    state,
			Path:     "/api/v1/auth",
			Expires:  time.Now().Add(10 * time.Minute),
			Secure:   true,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(writer, request, consentURL, http.StatusTemporaryRedirect)
	}
}

/*
socialCallback completes a provider sign-in.

GET /api/v1/auth/{provider}/callback

Description: Verifies the state echo against the parked cookie, exchanges
the code, and redirects the browser to the front end with the session token
in the query string.
*/
func (handler *Handler) socialCallback(provider string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		// CSRF check: the state must round-trip through our own cookie
		stateCookie, err := request.Cookie(oauthStateCookie)
		if err != nil || stateCookie.Value == "" || stateCookie.Value != request.URL.Query().Get("state") {
			respond.Error(writer, request, apperr.Unauthorized("Invalid sign-in state"))
			return
		}

		// The cookie is single-use
		http.SetCookie(writer, &http.Cookie{
			Name:     oauthStateCookie,
			Value:    "",
			Path:     "/api/v1/auth",
			MaxAge:   -1,
			Secure:   true,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		code := request.URL.Query().Get("code")
		if code == "" {
			respond.Error(writer, request, apperr.Unauthorized("Provider denied the sign-in"))
			return
		}

		sessionToken, err := handler.socialService.HandleCallback(request.Context(), provider, code)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		target := handler.frontendCallbackURL + "?token=" + url.QueryEscape(sessionToken)
		http.Redirect(writer, request, target, http.StatusTemporaryRedirect)
	}
}
