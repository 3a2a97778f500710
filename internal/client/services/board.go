package services

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/client/client"
	"github.com/dmitrijs2005/notekeeper/internal/client/models"
)

const (
	MsgFetchFailed  = "Failed to fetch notes"
	MsgAddFailed    = "Failed to add note"
	MsgDeleteFailed = "Failed to delete note"
)

// Board is the state behind the notes view. Mutations never patch Notes
// locally: a successful create or delete is followed by a full Refresh.
type Board struct {
	notes NotesService

	Notes []models.Note
	// Draft is the pending note text. It survives a failed Add.
	Draft string
	// Error is the last user-visible failure, "" after a success.
	Error string
}

func NewBoard(notes NotesService) *Board {
	return &Board{notes: notes}
}

// Reset drops everything held for the previous session.
func (b *Board) Reset() {
	b.Notes = nil
	b.Draft = ""
	b.Error = ""
}

// Refresh replaces Notes with the service's list. On failure Notes keeps its
// last good value.
func (b *Board) Refresh(ctx context.Context) error {
	notes, err := b.notes.List(ctx)
	if err != nil {
		b.Error = client.MessageOf(err, MsgFetchFailed)
		return err
	}
	b.Notes = notes
	b.Error = ""
	return nil
}

// Add creates a note from Draft.
func (b *Board) Add(ctx context.Context) error {
	sent, err := b.notes.Create(ctx, b.Draft)
	if err != nil {
		b.Error = client.MessageOf(err, MsgAddFailed)
		return err
	}
	if !sent {
		return nil
	}
	b.Draft = ""
	return b.Refresh(ctx)
}

func (b *Board) Delete(ctx context.Context, id string) error {
	if err := b.notes.Remove(ctx, id); err != nil {
		b.Error = client.MessageOf(err, MsgDeleteFailed)
		return err
	}
	return b.Refresh(ctx)
}
