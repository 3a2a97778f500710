package client

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
)

// Client is the remote contract consumed by the auth flow and the notes service.
type Client interface {
	SendOTP(ctx context.Context, name, email string) error
	VerifyOTP(ctx context.Context, email, otp string) (string, error)
	GoogleLogin(ctx context.Context, credential string) (string, error)

	ListNotes(ctx context.Context, token string) ([]models.Note, error)
	CreateNote(ctx context.Context, token, content string) error
	DeleteNote(ctx context.Context, token, id string) error
}
