package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/store"
)

// UserService handles the local user and onboarding.
type UserService struct {
	store  store.UserStore
	logger *zap.Logger
}

// Get returns the user, or store.ErrNotFound before onboarding.
func (s *UserService) Get(ctx context.Context) (model.User, error) {
	return s.store.GetUser(ctx)
}

// Exists reports whether a user row is present.
func (s *UserService) Exists(ctx context.Context) (bool, error) {
	return s.store.UserExists(ctx)
}

// Create inserts a user.
func (s *UserService) Create(ctx context.Context, in model.UserInput) (model.User, error) {
	u, err := s.store.CreateUser(ctx, in)
	if err != nil {
		return model.User{}, err
	}
	s.logger.Info("user created", zap.Int64("id", u.ID))
	return u, nil
}

// Update applies a sparse patch to the user with the given id.
func (s *UserService) Update(ctx context.Context, id int64, patch model.UserPatch) (model.User, error) {
	return s.store.UpdateUser(ctx, id, patch)
}

// NeedsOnboarding reports whether the onboarding flow should be shown.
func (s *UserService) NeedsOnboarding(ctx context.Context) (bool, error) {
	u, err := s.store.GetUser(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return !u.OnboardingCompleted, nil
}

// CompleteOnboarding creates the user when absent, then marks onboarding
// done. The two writes are separate statements, so a failure in between
// leaves a user without the flag; calling again finishes the job without
// creating a second user.
func (s *UserService) CompleteOnboarding(ctx context.Context, in model.UserInput) (model.User, error) {
	u, err := s.store.GetUser(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		u, err = s.Create(ctx, in)
		if err != nil {
			return model.User{}, err
		}
	case err != nil:
		return model.User{}, err
	}

	patch := model.UserPatch{OnboardingCompleted: model.Some(true)}
	if name := strings.TrimSpace(in.Name); name != "" && name != u.Name {
		patch.Name = model.Some(name)
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		patch.Email = model.Some(&email)
	}

	u, err = s.store.UpdateUser(ctx, u.ID, patch)
	if err != nil {
		return model.User{}, err
	}
	s.logger.Info("onboarding completed", zap.Int64("id", u.ID))
	return u, nil
}
