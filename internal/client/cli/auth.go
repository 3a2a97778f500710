package cli

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/client/services"
)

// Signup asks for a display name and an email, requests an OTP and reads it.
func (a *App) Signup(ctx context.Context) error {
	a.enter(ViewSignup)

	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	return a.requestAndVerify(ctx, services.Identity{Name: name, Email: email})
}

// Login is Signup without the name; the configured placeholder is sent
// instead.
func (a *App) Login(ctx context.Context) error {
	a.enter(ViewLogin)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	return a.requestAndVerify(ctx, services.Identity{Name: a.config.LoginDisplayName, Email: email})
}

// Code reads the OTP for the request already pending.
func (a *App) Code(ctx context.Context) error {
	if a.flow.State() != services.StateAwaitingOTP {
		a.printf("No code pending, run signup or login first\n")
		return nil
	}
	return a.verify(ctx)
}

func (a *App) Google(ctx context.Context) error {
	cred, err := a.google.Credential(ctx)
	if err != nil {
		a.logger.Warn(ctx, "google credential unavailable", "error", err)
		a.printf("%s\n", services.MsgGoogleLoginFailed)
		return err
	}

	ev, err := a.flow.LoginWithOAuthCredential(ctx, cred)
	if err != nil {
		a.printf("%s\n", a.flow.Error())
		return err
	}
	return a.handle(ctx, ev)
}

// enter switches to an anonymous view, starting a fresh attempt.
func (a *App) enter(v View) {
	if a.view != v {
		a.flow.Reset()
	}
	a.view = v
}

func (a *App) requestAndVerify(ctx context.Context, id services.Identity) error {
	if _, err := a.flow.RequestOTP(ctx, id); err != nil {
		a.printf("%s\n", a.flow.Error())
		return err
	}
	a.printf("A code was sent to %s\n", a.flow.Email())
	return a.verify(ctx)
}

func (a *App) verify(ctx context.Context) error {
	code, err := getSecret("Enter code", a.out)
	if err != nil {
		return err
	}
	ev, err := a.flow.VerifyOTP(ctx, "", code)
	if err != nil {
		a.printf("%s\n", a.flow.Error())
		a.printf("Type 'code' to try again\n")
		return err
	}
	return a.handle(ctx, ev)
}
