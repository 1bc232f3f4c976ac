package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/nhle/dayboard/internal/model"
	"github.com/nhle/dayboard/internal/store"
)

// NoteService handles quick-note requests.
type NoteService struct {
	store  store.NoteStore
	logger *zap.Logger
}

// GetAll returns every note, newest edit first.
func (s *NoteService) GetAll(ctx context.Context) ([]model.Note, error) {
	return s.store.GetAllNotes(ctx)
}

// Add creates a note.
func (s *NoteService) Add(ctx context.Context, content string) (model.Note, error) {
	note, err := s.store.AddNote(ctx, content)
	if err != nil {
		return model.Note{}, err
	}
	s.logger.Debug("note added", zap.Int64("id", note.ID))
	return note, nil
}

// Update replaces a note's content.
func (s *NoteService) Update(ctx context.Context, id int64, content string) (Result, error) {
	if err := s.store.UpdateNote(ctx, id, content); err != nil {
		return Result{}, err
	}
	return Result{Success: true}, nil
}

// Delete removes a note. Success is false when no such note existed.
func (s *NoteService) Delete(ctx context.Context, id int64) (Result, error) {
	deleted, err := s.store.DeleteNote(ctx, id)
	if err != nil {
		return Result{}, err
	}
	return Result{Success: deleted}, nil
}
