// Package services contains the client-side application services: the
// authentication flow and session-bound note access.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/client/client"
	"github.com/dmitrijs2005/notekeeper/internal/client/session"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
)

// State is the position of an authentication attempt.
type State int

const (
	StateAwaitingCredentials State = iota
	StateAwaitingOTP
	StateAuthenticating
	StateDone
)

func (s State) String() string {
	switch s {
	case StateAwaitingCredentials:
		return "awaiting_credentials"
	case StateAwaitingOTP:
		return "awaiting_otp"
	case StateAuthenticating:
		return "authenticating"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// User-visible fallbacks for failures that carry no service message.
const (
	MsgSendOTPFailed     = "Failed to send OTP"
	MsgVerifyOTPFailed   = "OTP verification failed"
	MsgGoogleLoginFailed = "Google login failed"
	MsgCredentialMissing = "Google credential missing"
	MsgEmailRequired     = "Email is required"
	MsgCodeRequired      = "OTP code is required"
)

// Identity is what the user claims when asking for an OTP.
type Identity struct {
	Name  string
	Email string
}

// AuthFlow drives one authentication attempt. Successful verification or
// OAuth exchange writes the token to the store and reports
// session.EventAuthSucceeded; the caller decides where to go next.
//
// AuthFlow is not safe for concurrent use.
type AuthFlow struct {
	client client.Client
	store  session.TokenStore
	logger logging.Logger

	state State
	email string
	err   string
}

func NewAuthFlow(c client.Client, store session.TokenStore, logger logging.Logger) *AuthFlow {
	return &AuthFlow{client: c, store: store, logger: logger}
}

func (f *AuthFlow) State() State { return f.state }

// Error returns the last user-visible failure message, "" when none.
func (f *AuthFlow) Error() string { return f.err }

// Email returns the address the pending OTP was sent to.
func (f *AuthFlow) Email() string { return f.email }

// Reset starts a fresh attempt.
func (f *AuthFlow) Reset() {
	f.state = StateAwaitingCredentials
	f.email = ""
	f.err = ""
}

// RequestOTP asks the identity service to mail a code to id.Email. The name
// is sent as given, empty included.
func (f *AuthFlow) RequestOTP(ctx context.Context, id Identity) (session.Event, error) {
	if strings.TrimSpace(id.Email) == "" {
		return f.reject(client.Invalid("email", MsgEmailRequired))
	}

	prev := f.begin()
	if err := f.client.SendOTP(ctx, id.Name, id.Email); err != nil {
		f.logger.Warn(ctx, "otp request failed", "error", err)
		return f.fail(prev, err, client.MessageOf(err, MsgSendOTPFailed))
	}

	f.state = StateAwaitingOTP
	f.email = id.Email
	f.err = ""
	return session.EventNone, nil
}

// VerifyOTP exchanges code for a session token. An empty email means the one
// the pending code was requested for.
func (f *AuthFlow) VerifyOTP(ctx context.Context, email, code string) (session.Event, error) {
	if email == "" {
		email = f.email
	}
	if strings.TrimSpace(email) == "" {
		return f.reject(client.Invalid("email", MsgEmailRequired))
	}
	if strings.TrimSpace(code) == "" {
		return f.reject(client.Invalid("otp", MsgCodeRequired))
	}

	prev := f.begin()
	token, err := f.client.VerifyOTP(ctx, email, code)
	if err != nil {
		f.logger.Warn(ctx, "otp verification failed", "error", err)
		return f.fail(prev, err, client.MessageOf(err, MsgVerifyOTPFailed))
	}
	return f.establish(ctx, prev, token, MsgVerifyOTPFailed)
}

// LoginWithOAuthCredential exchanges a Google ID token for a session token.
// Remote failures always surface the generic message.
func (f *AuthFlow) LoginWithOAuthCredential(ctx context.Context, credential string) (session.Event, error) {
	if strings.TrimSpace(credential) == "" {
		return f.reject(client.Invalid("credential", MsgCredentialMissing))
	}

	prev := f.begin()
	token, err := f.client.GoogleLogin(ctx, credential)
	if err != nil {
		f.logger.Warn(ctx, "google login failed", "error", err)
		return f.fail(prev, err, MsgGoogleLoginFailed)
	}
	return f.establish(ctx, prev, token, MsgGoogleLoginFailed)
}

func (f *AuthFlow) begin() State {
	prev := f.state
	f.state = StateAuthenticating
	return prev
}

func (f *AuthFlow) establish(ctx context.Context, prev State, token, fallback string) (session.Event, error) {
	if err := f.store.Set(ctx, token); err != nil {
		f.logger.Error(ctx, "failed to persist session token", "error", err)
		return f.fail(prev, err, fallback)
	}
	f.state = StateDone
	f.err = ""
	return session.EventAuthSucceeded, nil
}

// reject records a precondition failure. No request was sent and the state
// is unchanged.
func (f *AuthFlow) reject(err error) (session.Event, error) {
	f.err = client.MessageOf(err, err.Error())
	return session.EventNone, err
}

func (f *AuthFlow) fail(prev State, err error, msg string) (session.Event, error) {
	f.state = prev
	f.err = msg
	return session.EventNone, err
}
