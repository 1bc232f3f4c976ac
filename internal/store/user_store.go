package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/nhle/dayboard/internal/model"
)

const userColumns = "id, name, email, onboarding_completed, created_at, updated_at"

// GetUser returns the application user: the first row by id.
func (s *SQLiteStore) GetUser(ctx context.Context) (model.User, error) {
	db, err := s.conn()
	if err != nil {
		return model.User{}, err
	}

	var u model.User
	err = db.GetContext(ctx, &u,
		"SELECT "+userColumns+" FROM users ORDER BY id LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("user: %w", ErrNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// getUserByID loads a specific user row.
func (s *SQLiteStore) getUserByID(ctx context.Context, id int64) (model.User, error) {
	db, err := s.conn()
	if err != nil {
		return model.User{}, err
	}

	var u model.User
	err = db.GetContext(ctx, &u,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("getting user %d: %w", id, err)
	}
	return u, nil
}

// CreateUser inserts a user. An empty email is stored as NULL.
func (s *SQLiteStore) CreateUser(ctx context.Context, in model.UserInput) (model.User, error) {
	db, err := s.conn()
	if err != nil {
		return model.User{}, err
	}
	if err := in.Validate(); err != nil {
		return model.User{}, err
	}

	u := model.User{
		Name:      strings.TrimSpace(in.Name),
		CreatedAt: s.timestamp(),
	}
	u.UpdatedAt = u.CreatedAt
	u.Email = normalizeEmail(&in.Email)

	result, err := db.ExecContext(ctx, `
		INSERT INTO users (name, email, onboarding_completed, created_at, updated_at)
		VALUES (?, ?, 0, ?, ?)`,
		u.Name, u.Email, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return model.User{}, fmt.Errorf("creating user: %w", err)
	}
	u.ID, err = result.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("reading new user id: %w", err)
	}
	return u, nil
}

// UpdateUser writes only the fields set in patch; updated_at is always
// bumped. Returns the row as stored after the update.
func (s *SQLiteStore) UpdateUser(ctx context.Context, id int64, patch model.UserPatch) (model.User, error) {
	db, err := s.conn()
	if err != nil {
		return model.User{}, err
	}
	if err := patch.Validate(); err != nil {
		return model.User{}, err
	}

	query, args, err := buildUserUpdate(id, patch, s.timestamp())
	if err != nil {
		return model.User{}, fmt.Errorf("building user update: %w", err)
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return model.User{}, fmt.Errorf("updating user %d: %w", id, err)
	}
	if err := expectRow(result, "user", id); err != nil {
		return model.User{}, err
	}
	return s.getUserByID(ctx, id)
}

// UserExists reports whether GetUser would return a row.
func (s *SQLiteStore) UserExists(ctx context.Context) (bool, error) {
	_, err := s.GetUser(ctx)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// normalizeEmail trims email; a missing or blank address is stored as NULL.
func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*email)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// buildUserUpdate emits the sparse UPDATE for patch. Columns always appear
// in the order name, email, onboarding_completed, updated_at, so equal
// patches produce identical statements.
func buildUserUpdate(id int64, patch model.UserPatch, now time.Time) (string, []any, error) {
	q := sq.Update("users")
	if v, ok := patch.Name.Get(); ok {
		q = q.Set("name", strings.TrimSpace(v))
	}
	if v, ok := patch.Email.Get(); ok {
		q = q.Set("email", normalizeEmail(v))
	}
	if v, ok := patch.OnboardingCompleted.Get(); ok {
		q = q.Set("onboarding_completed", boolToInt(v))
	}
	q = q.Set("updated_at", now).
		Where(sq.Eq{"id": id})

	return q.ToSql()
}
