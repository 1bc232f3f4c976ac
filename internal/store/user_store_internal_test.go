package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dayboard/internal/model"
)

func TestBuildUserUpdateColumnOrder(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	email := "a@b.c"

	tests := []struct {
		name      string
		patch     model.UserPatch
		wantSQL   string
		wantNArgs int
	}{
		{
			name:      "empty patch bumps updated_at only",
			patch:     model.UserPatch{},
			wantSQL:   "UPDATE users SET updated_at = ? WHERE id = ?",
			wantNArgs: 2,
		},
		{
			name: "all fields",
			patch: model.UserPatch{
				OnboardingCompleted: model.Some(true),
				Email:               model.Some(&email),
				Name:                model.Some("Sam"),
			},
			wantSQL:   "UPDATE users SET name = ?, email = ?, onboarding_completed = ?, updated_at = ? WHERE id = ?",
			wantNArgs: 5,
		},
		{
			name:      "onboarding only",
			patch:     model.UserPatch{OnboardingCompleted: model.Some(false)},
			wantSQL:   "UPDATE users SET onboarding_completed = ?, updated_at = ? WHERE id = ?",
			wantNArgs: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildUserUpdate(3, tt.patch, now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, query)
			require.Len(t, args, tt.wantNArgs)
			assert.Equal(t, int64(3), args[len(args)-1])
		})
	}
}

func TestClosedStoreFailsWithNotInitialized(t *testing.T) {
	s, err := NewSQLiteStore(memoryPath)
	require.NoError(t, err)
	require.NoError(t, s.Initialize(t.Context()))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.GetAllTodos(t.Context())
	require.ErrorIs(t, err, ErrNotInitialized)
	require.ErrorIs(t, s.Initialize(t.Context()), ErrNotInitialized)

	var nilStore *SQLiteStore
	_, err = nilStore.GetUser(t.Context())
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestMigrationsAreRecorded(t *testing.T) {
	s, err := NewSQLiteStore(memoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	version, err := currentVersion(t.Context(), s.db)
	require.NoError(t, err)
	assert.Equal(t, migrations[len(migrations)-1].version, version)

	require.NoError(t, runMigrations(t.Context(), s.db))
	again, err := currentVersion(t.Context(), s.db)
	require.NoError(t, err)
	assert.Equal(t, version, again)
}
