package store

import (
	"context"
	"fmt"

	"github.com/nhle/dayboard/internal/model"
)

// GetAllNotes returns every note, most recently updated first.
func (s *SQLiteStore) GetAllNotes(ctx context.Context) ([]model.Note, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	notes := []model.Note{}
	err = db.SelectContext(ctx, &notes, `
		SELECT id, content, created_at, updated_at
		FROM notes
		ORDER BY updated_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	return notes, nil
}

// AddNote inserts a note with both timestamps set to now.
func (s *SQLiteStore) AddNote(ctx context.Context, content string) (model.Note, error) {
	db, err := s.conn()
	if err != nil {
		return model.Note{}, err
	}

	now := s.timestamp()
	result, err := db.ExecContext(ctx,
		"INSERT INTO notes (content, created_at, updated_at) VALUES (?, ?, ?)",
		content, now, now,
	)
	if err != nil {
		return model.Note{}, fmt.Errorf("creating note: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.Note{}, fmt.Errorf("reading new note id: %w", err)
	}

	return model.Note{ID: id, Content: content, CreatedAt: now, UpdatedAt: now}, nil
}

// UpdateNote replaces the content and bumps updated_at.
func (s *SQLiteStore) UpdateNote(ctx context.Context, id int64, content string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx,
		"UPDATE notes SET content = ?, updated_at = ? WHERE id = ?",
		content, s.timestamp(), id,
	)
	if err != nil {
		return fmt.Errorf("updating note %d: %w", id, err)
	}
	return expectRow(result, "note", id)
}

// DeleteNote removes a note by id, reporting whether a row was removed.
func (s *SQLiteStore) DeleteNote(ctx context.Context, id int64) (bool, error) {
	db, err := s.conn()
	if err != nil {
		return false, err
	}

	result, err := db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting note %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting note %d: %w", id, err)
	}
	return rows > 0, nil
}
