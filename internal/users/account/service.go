// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
)

// # Service Layer

// Service orchestrates profile reads for the authenticated user.
type Service struct {
	accountRepository AccountRepository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository) *Service {
	return &Service{accountRepository: accountRepo}
}

/*
GetProfile retrieves the private self-view of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Profile: The hydrated private profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*Profile, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		ID:               user.ID,
		Username:         user.Username,
		Email:            user.Email,
		Role:             string(user.Role),
		Credits:          user.Credits,
		TwoFactorEnabled: user.TwoFactorEnabled,
		HasPassword:      user.HasPassword(),
		LastLoginAt:      user.LastLoginAt,
		CreatedAt:        user.CreatedAt,
	}, nil
}
