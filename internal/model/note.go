package model

import "time"

// Note is a freeform text snippet shown in the quick-note widget.
type Note struct {
	ID        int64     `json:"id" db:"id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
