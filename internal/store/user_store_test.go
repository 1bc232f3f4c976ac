package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/store"
	"github.com/nhle/dayboard/tests/testutil"
)

func TestGetUserOnEmptyStore(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.GetUser(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)

	exists, err := s.UserExists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateUser(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, model.UserInput{Name: "Sam"})
	require.NoError(t, err)
	assert.Positive(t, u.ID)
	assert.Nil(t, u.Email)
	assert.False(t, u.OnboardingCompleted)

	got, err := s.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "Sam", got.Name)
	assert.Nil(t, got.Email)

	exists, err := s.UserExists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = s.CreateUser(ctx, model.UserInput{Name: "  "})
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestGetUserReturnsFirstRow(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	first, err := s.CreateUser(ctx, model.UserInput{Name: "one"})
	require.NoError(t, err)
	_, err = s.CreateUser(ctx, model.UserInput{Name: "two"})
	require.NoError(t, err)

	got, err := s.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestUpdateUserWritesOnlySetFields(t *testing.T) {
	clock := testutil.NewClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	s := testutil.NewTestStore(t, store.WithClock(clock.Now))
	ctx := context.Background()

	u, err := s.CreateUser(ctx, model.UserInput{Name: "Sam", Email: "sam@example.com"})
	require.NoError(t, err)
	require.NotNil(t, u.Email)

	clock.Advance(time.Hour)
	updated, err := s.UpdateUser(ctx, u.ID, model.UserPatch{
		OnboardingCompleted: model.Some(true),
	})
	require.NoError(t, err)
	assert.True(t, updated.OnboardingCompleted)
	assert.Equal(t, "Sam", updated.Name)
	require.NotNil(t, updated.Email)
	assert.Equal(t, "sam@example.com", *updated.Email)
	assert.True(t, updated.UpdatedAt.After(u.UpdatedAt))
	assert.True(t, updated.CreatedAt.Equal(u.CreatedAt))

	cleared, err := s.UpdateUser(ctx, u.ID, model.UserPatch{
		Email: model.Some[*string](nil),
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.Email)
	assert.True(t, cleared.OnboardingCompleted)
}

func TestUpdateUserNormalizesEmail(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	u, err := s.CreateUser(ctx, model.UserInput{Name: "Sam", Email: "   "})
	require.NoError(t, err)
	assert.Nil(t, u.Email)

	padded := "  sam@example.com "
	updated, err := s.UpdateUser(ctx, u.ID, model.UserPatch{Email: model.Some(&padded)})
	require.NoError(t, err)
	require.NotNil(t, updated.Email)
	assert.Equal(t, "sam@example.com", *updated.Email)

	blank := ""
	cleared, err := s.UpdateUser(ctx, u.ID, model.UserPatch{Email: model.Some(&blank)})
	require.NoError(t, err)
	assert.Nil(t, cleared.Email)
}

func TestUpdateUserEmptyPatchBumpsTimestamp(t *testing.T) {
	clock := testutil.NewClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	s := testutil.NewTestStore(t, store.WithClock(clock.Now))
	ctx := context.Background()

	u, err := s.CreateUser(ctx, model.UserInput{Name: "Sam"})
	require.NoError(t, err)

	clock.Advance(time.Minute)
	got, err := s.UpdateUser(ctx, u.ID, model.UserPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Sam", got.Name)
	assert.True(t, got.UpdatedAt.After(u.UpdatedAt))
}

func TestUpdateUserErrors(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.UpdateUser(ctx, 7, model.UserPatch{Name: model.Some("x")})
	require.ErrorIs(t, err, store.ErrNotFound)

	u, err := s.CreateUser(ctx, model.UserInput{Name: "Sam"})
	require.NoError(t, err)
	_, err = s.UpdateUser(ctx, u.ID, model.UserPatch{Name: model.Some("")})
	require.ErrorIs(t, err, model.ErrValidation)
}
