package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/notekeeper/internal/client/client"
	"github.com/dmitrijs2005/notekeeper/internal/client/models"
)

// ---- fake client ----

// fakeClient implements client.Client and counts every dispatched call.
type fakeClient struct {
	SendOTPErr error

	VerifyRet string
	VerifyErr error

	GoogleRet string
	GoogleErr error

	ListRet   []models.Note
	ListErr   error
	CreateErr error
	DeleteErr error

	Calls []string

	LastName, LastEmail, LastOTP, LastCredential string
	LastToken, LastContent, LastID               string
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) SendOTP(_ context.Context, name, email string) error {
	f.Calls = append(f.Calls, "send-otp")
	f.LastName, f.LastEmail = name, email
	return f.SendOTPErr
}

func (f *fakeClient) VerifyOTP(_ context.Context, email, otp string) (string, error) {
	f.Calls = append(f.Calls, "verify-otp")
	f.LastEmail, f.LastOTP = email, otp
	return f.VerifyRet, f.VerifyErr
}

func (f *fakeClient) GoogleLogin(_ context.Context, credential string) (string, error) {
	f.Calls = append(f.Calls, "google-login")
	f.LastCredential = credential
	return f.GoogleRet, f.GoogleErr
}

func (f *fakeClient) ListNotes(_ context.Context, token string) ([]models.Note, error) {
	f.Calls = append(f.Calls, "list")
	f.LastToken = token
	return f.ListRet, f.ListErr
}

func (f *fakeClient) CreateNote(_ context.Context, token, content string) error {
	f.Calls = append(f.Calls, "create")
	f.LastToken, f.LastContent = token, content
	return f.CreateErr
}

func (f *fakeClient) DeleteNote(_ context.Context, token, id string) error {
	f.Calls = append(f.Calls, "delete")
	f.LastToken, f.LastID = token, id
	return f.DeleteErr
}

// failingStore is a TokenStore whose writes and reads fail.
type failingStore struct{ err error }

func (s failingStore) Get(context.Context) (string, error) { return "", s.err }
func (s failingStore) Set(context.Context, string) error   { return s.err }
func (s failingStore) Clear(context.Context) error         { return s.err }

var errDisk = errors.New("disk full")
