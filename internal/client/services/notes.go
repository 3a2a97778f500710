package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/client/client"
	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/client/session"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
)

const MsgIDRequired = "Note id is required"

// NotesService is session-bound access to the note store. Every call reads
// the current token; with none stored it fails with client.ErrNoToken and
// sends nothing. Authorization failures are returned as is and never clear
// the session.
type NotesService interface {
	List(ctx context.Context) ([]models.Note, error)
	// Create reports whether a request was sent. Blank content is a no-op.
	Create(ctx context.Context, content string) (bool, error)
	Remove(ctx context.Context, id string) error
}

type notesService struct {
	client client.Client
	store  session.TokenStore
	logger logging.Logger
}

func NewNotesService(c client.Client, store session.TokenStore, logger logging.Logger) NotesService {
	return &notesService{client: c, store: store, logger: logger}
}

func (s *notesService) token(ctx context.Context) (string, error) {
	token, err := s.store.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", client.ErrNoToken, err)
	}
	if token == "" {
		return "", client.ErrNoToken
	}
	return token, nil
}

func (s *notesService) List(ctx context.Context) ([]models.Note, error) {
	token, err := s.token(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := s.client.ListNotes(ctx, token)
	if err != nil {
		s.logger.Warn(ctx, "list notes failed", "error", err)
		return nil, err
	}
	return notes, nil
}

func (s *notesService) Create(ctx context.Context, content string) (bool, error) {
	if strings.TrimSpace(content) == "" {
		return false, nil
	}
	token, err := s.token(ctx)
	if err != nil {
		return false, err
	}
	if err := s.client.CreateNote(ctx, token, content); err != nil {
		s.logger.Warn(ctx, "create note failed", "error", err)
		return false, err
	}
	return true, nil
}

func (s *notesService) Remove(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return client.Invalid("id", MsgIDRequired)
	}
	token, err := s.token(ctx)
	if err != nil {
		return err
	}
	if err := s.client.DeleteNote(ctx, token, id); err != nil {
		s.logger.Warn(ctx, "delete note failed", "error", err, "note_id", id)
		return err
	}
	return nil
}
