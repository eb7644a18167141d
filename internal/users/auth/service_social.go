// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"

	"github.com/taibuivan/kaminari/internal/platform/apperr"
	"github.com/taibuivan/kaminari/internal/platform/sec"
	"github.com/taibuivan/kaminari/pkg/uuid"
)

// # Social Sign-In

// Supported identity providers.
const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

// SocialProfile is the provider-agnostic identity extracted from a userinfo
// endpoint. Linking and account creation operate only on this projection,
// never on raw provider payloads.
type SocialProfile struct {
	ProviderUserID string
	Email          string
	Name           string
}

// ProfileFetcher retrieves the profile behind an exchanged access token.
//
// The indirection keeps the account-resolution logic free of HTTP concerns
// and lets tests drive the bridge without a live provider.
type ProfileFetcher interface {
	Fetch(context context.Context, provider string, token *oauth2.Token) (*SocialProfile, error)
}

// SocialConfig carries the provider credentials and the callback base URL.
type SocialConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	FacebookAppID      string
	FacebookAppSecret  string

	// CallbackBaseURL is the public base of this API, e.g. "https://api.kaminari.app".
	CallbackBaseURL string
}

// SocialService implements the OAuth2 social sign-in bridge.
type SocialService struct {
	userRepository UserRepository
	tokenIssuer    TokenIssuer
	fetcher        ProfileFetcher
	configs        map[string]*oauth2.Config
}

// NewSocialService constructs the bridge with per-provider OAuth2 configs.
func NewSocialService(
	userRepo UserRepository,
	issuer TokenIssuer,
	fetcher ProfileFetcher,
	cfg SocialConfig,
) *SocialService {
	return &SocialService{
		userRepository: userRepo,
		tokenIssuer:    issuer,
		fetcher:        fetcher,
		configs: map[string]*oauth2.Config{
			ProviderGoogle: {
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				RedirectURL:  cfg.CallbackBaseURL + "/api/v1/auth/google/callback",
				Scopes:       []string{"openid", "email", "profile"},
				Endpoint:     google.Endpoint,
			},
			ProviderFacebook: {
				ClientID:     cfg.FacebookAppID,
				ClientSecret: cfg.FacebookAppSecret,
				RedirectURL:  cfg.CallbackBaseURL + "/api/v1/auth/facebook/callback",
				Scopes:       []string{"email", "public_profile"},
				Endpoint:     facebook.Endpoint,
			},
		},
	}
}

/*
AuthURL builds the provider consent-screen URL for a sign-in attempt.

Parameters:
  - provider: string ("google" or "facebook")
  - state: string (CSRF token echoed back on the callback)

Returns:
  - string: Redirect target
  - err: apperr.NotFound for unknown providers
*/
func (service *SocialService) AuthURL(provider, state string) (string, error) {
	config, ok := service.configs[provider]
	if !ok {
		return "", apperr.NotFound("Provider")
	}
	return config.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

/*
HandleCallback completes a social sign-in from the provider redirect.

Description: Exchanges the authorization code, fetches the profile, resolves
it to a local account, and mints a standard session token. Social sign-ins
always get the standard (non-remembered) session length.

Parameters:
  - context: context.Context
  - provider: string
  - code: string (authorization code from the provider redirect)

Returns:
  - string: Signed session token
  - err: Unauthorized for failed exchanges, or storage failures
*/
func (service *SocialService) HandleCallback(context context.Context, provider, code string) (string, error) {
	config, ok := service.configs[provider]
	if !ok {
		return "", apperr.NotFound("Provider")
	}

	// Exchange the one-shot authorization code for an access token
	oauthToken, err := config.Exchange(context, code)
	if err != nil {
		return "", apperr.Unauthorized("Social sign-in failed")
	}

	profile, err := service.fetcher.Fetch(context, provider, oauthToken)
	if err != nil {
		return "", apperr.Unauthorized("Could not retrieve profile from provider")
	}

	user, err := service.Resolve(context, provider, profile)
	if err != nil {
		return "", err
	}

	sessionToken, err := service.tokenIssuer.Issue(user.ID, user.Role, SessionTokenTTL)
	if err != nil {
		return "", fmt.Errorf("auth_social_token_generation_failed: %w", err)
	}

	return sessionToken, nil
}

/*
Resolve maps a provider profile onto a local account.

Description: Resolution ladder:

 1. An account already linked to this provider identity wins.
 2. An account sharing the verified email gets the identity linked.
 3. Otherwise a brand-new account is created: verified (the provider vouches
    for the email), role User, and no password hash.

Parameters:
  - context: context.Context
  - provider: string
  - profile: *SocialProfile

Returns:
  - *User: Resolved local account
  - err: Validation or storage failures
*/
func (service *SocialService) Resolve(context context.Context, provider string, profile *SocialProfile) (*User, error) {

	if profile.Email == "" {
		return nil, apperr.ValidationError("Provider did not supply an email address")
	}

	// 1. Already linked
	if user, err := service.userRepository.FindBySocialID(context, provider, profile.ProviderUserID); err == nil {
		return user, nil
	}

	// 2. Same email: link the identity to the existing account
	email := normalizeEmail(profile.Email)
	if user, err := service.userRepository.FindByEmail(context, email); err == nil {
		if err := service.userRepository.LinkSocialAccount(context, user.ID, provider, profile.ProviderUserID); err != nil {
			return nil, err
		}
		return user, nil
	}

	// 3. Fresh account: verified up front, no password path
	user := &User{
		ID:         uuid.New(),
		Username:   usernameFromEmail(email),
		Email:      email,
		Role:       sec.RoleUser,
		IsVerified: true,
	}

	switch provider {
	case ProviderGoogle:
		user.GoogleID = &profile.ProviderUserID
	case ProviderFacebook:
		user.FacebookID = &profile.ProviderUserID
	}

	err := service.userRepository.Create(context, user)
	if err == nil {
		return user, nil
	}

	// Username collision with an unrelated account: retry once with a suffix
	if appError := apperr.As(err); appError != nil && appError.Code == "CONFLICT" {
		user.Username = user.Username + "-" + uuid.New()[:8]
		if retryErr := service.userRepository.Create(context, user); retryErr == nil {
			return user, nil
		}
	}

	return nil, err
}

// usernameFromEmail derives a default username from the email local part.
func usernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return "member"
	}
	return local
}

// # HTTP Profile Fetcher

// userinfo endpoints per provider.
const (
	googleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
	facebookUserInfoURL = "https://graph.facebook.com/me?fields=id,name,email"
)

// HTTPProfileFetcher implements ProfileFetcher against the real provider APIs.
type HTTPProfileFetcher struct {
	client *http.Client
}

// NewHTTPProfileFetcher creates a fetcher using the given client, or
// http.DefaultClient when nil.
func NewHTTPProfileFetcher(client *http.Client) *HTTPProfileFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProfileFetcher{client: client}
}

// Fetch calls the provider's userinfo endpoint with the bearer token.
func (fetcher *HTTPProfileFetcher) Fetch(context context.Context, provider string, token *oauth2.Token) (*SocialProfile, error) {

	var endpoint string
	switch provider {
	case ProviderGoogle:
		endpoint = googleUserInfoURL
	case ProviderFacebook:
		endpoint = facebookUserInfoURL
	default:
		return nil, fmt.Errorf("profile_fetcher_unknown_provider: %q", provider)
	}

	request, err := http.NewRequestWithContext(context, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("profile_fetcher_request_failed: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+token.AccessToken)

	response, err := fetcher.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("profile_fetcher_call_failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile_fetcher_bad_status: %d", response.StatusCode)
	}

	// Both providers agree on these field names for the values we need
	var payload struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("profile_fetcher_decode_failed: %w", err)
	}

	return &SocialProfile{
		ProviderUserID: payload.ID,
		Email:          payload.Email,
		Name:           payload.Name,
	}, nil
}
