package model

import (
	"strings"
	"time"
)

// User is the single local application user. The first row by id is the
// one the application uses.
type User struct {
	ID                  int64     `json:"id" db:"id"`
	Name                string    `json:"name" db:"name"`
	Email               *string   `json:"email,omitempty" db:"email"`
	OnboardingCompleted bool      `json:"onboarding_completed" db:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// UserInput carries the fields collected during onboarding.
type UserInput struct {
	Name  string
	Email string
}

// Validate requires a non-blank name.
func (in UserInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewValidationError("name", "must not be empty")
	}
	return nil
}

// Optional models a field that is either absent or explicitly set.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// IsSet reports whether a value was provided.
func (o Optional[T]) IsSet() bool { return o.set }

// Get returns the value and whether it was provided.
func (o Optional[T]) Get() (T, bool) { return o.value, o.set }

// UserPatch is a sparse update: only set fields are written.
type UserPatch struct {
	Name                Optional[string]
	Email               Optional[*string]
	OnboardingCompleted Optional[bool]
}

// Empty reports whether no field is set.
func (p UserPatch) Empty() bool {
	return !p.Name.IsSet() && !p.Email.IsSet() && !p.OnboardingCompleted.IsSet()
}

// Validate rejects a patch that would blank out the name.
func (p UserPatch) Validate() error {
	if name, ok := p.Name.Get(); ok && strings.TrimSpace(name) == "" {
		return NewValidationError("name", "must not be empty")
	}
	return nil
}

// Apply returns u with the set fields of p applied.
func (p UserPatch) Apply(u User) User {
	if v, ok := p.Name.Get(); ok {
		u.Name = v
	}
	if v, ok := p.Email.Get(); ok {
		u.Email = v
	}
	if v, ok := p.OnboardingCompleted.Get(); ok {
		u.OnboardingCompleted = v
	}
	return u
}
