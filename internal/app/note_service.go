package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"studyprep-api/internal/identity"
	"studyprep-api/internal/model"
)

type NoteStore interface {
	Create(ctx context.Context, note *model.Note) error
	ListByOwner(ctx context.Context, owner string) ([]model.Note, error)
}

type NoteService struct {
	store     NoteStore
	publisher RecordEventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

type CreateNoteInput struct {
	Owner               identity.Identity
	Title               string
	Body                string
	StructuredQuestions json.RawMessage
	PageCount           int
}

func NewNoteService(store NoteStore, publisher RecordEventPublisher, logger *slog.Logger) *NoteService {
	return &NoteService{
		store:     store,
		publisher: publisher,
		logger:    loggerOrDefault(logger),
		now:       time.Now,
	}
}

func (s *NoteService) CreateNote(ctx context.Context, input CreateNoteInput) (*model.Note, error) {
	owner, err := ownerOf(input.Owner.String())
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Body)
	if title == "" || body == "" || input.PageCount < 0 {
		return nil, ErrInvalidInput
	}

	var questions json.RawMessage
	if raw := strings.TrimSpace(string(input.StructuredQuestions)); raw != "" && raw != "null" {
		if !json.Valid([]byte(raw)) {
			return nil, ErrInvalidInput
		}
		questions = json.RawMessage(raw)
	}

	note := &model.Note{
		Owner:               owner,
		Title:               title,
		Body:                body,
		StructuredQuestions: questions,
		PageCount:           input.PageCount,
		CreatedAt:           s.now(),
	}
	if err := s.store.Create(ctx, note); err != nil {
		return nil, err
	}

	announce(ctx, s.publisher, s.logger, newRecordEvent(model.RecordKindNote, note.ID, owner, note.Title, note.CreatedAt))
	return note, nil
}

// ListNotes returns the identity's notes, newest first.
func (s *NoteService) ListNotes(ctx context.Context, id identity.Identity) ([]model.Note, error) {
	owner, err := ownerOf(id.String())
	if err != nil {
		return nil, err
	}
	return s.store.ListByOwner(ctx, owner)
}
