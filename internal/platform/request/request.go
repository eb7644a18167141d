// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/kaminari/internal/platform/apperr"
	"github.com/taibuivan/kaminari/internal/platform/ctxutil"
	"github.com/taibuivan/kaminari/internal/platform/sec"
	"github.com/taibuivan/kaminari/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
User extracts the authenticated identity from the request context.

Returns nil if the request is not authenticated.
*/
func User(request *http.Request) *sec.CurrentUser {
	return ctxutil.GetCurrentUser(request.Context())
}

/*
RequiredUser ensures the request is authenticated and returns the identity.

Returns:
  - *sec.CurrentUser: The authenticated identity
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredUser(request *http.Request) (*sec.CurrentUser, error) {

	// Get the identity attached by the authentication middleware
	user := ctxutil.GetCurrentUser(request.Context())

	// If the user is not authenticated, return an error
	if user == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return user, nil
}

/*
ClientIP tries to extract the real IP address of a user over proxy environments.
*/
func ClientIP(request *http.Request) string {

	ip := request.Header.Get("X-Real-IP")
	if ip == "" {
		ip = request.Header.Get("X-Forwarded-For")
	}

	if ip == "" {
		ip = request.RemoteAddr
	}
	return ip
}
