// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/kaminari/internal/platform/request"
	"github.com/taibuivan/kaminari/internal/platform/respond"
)

// Handler implements the HTTP layer for the authenticated user's profile.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] with the account endpoints.
//
// Must be mounted behind the authentication gate.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/me", handler.getMe)

	return router
}

/*
GetMe returns the authenticated user's own profile.

GET /api/v1/users/me

Description: The front end's session check. The answer is read fresh from
storage, so role or credit changes made since the token was issued are
already visible here.

Response:
  - 200: Profile: Private self-view
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	currentUser, err := requestutil.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.GetProfile(request.Context(), currentUser.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}
