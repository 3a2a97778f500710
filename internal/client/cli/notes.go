package cli

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/client/session"
)

var errNotInNotes = errors.New("notes view is not open")

// Notes runs the session guard and, when admitted, opens the notes view.
func (a *App) Notes(ctx context.Context) error {
	claims, err := a.guard.Enter(ctx)
	if err != nil {
		a.printf("Please sign up or log in first\n")
		a.view = ViewSignup
		a.claims = session.Claims{}
		a.board.Reset()
		return err
	}
	return a.admit(ctx, claims)
}

// admit opens the notes view for claims. Coming from outside the view, the
// board starts empty so nothing from an earlier session is shown or sent.
func (a *App) admit(ctx context.Context, claims session.Claims) error {
	if a.view != ViewNotes {
		a.board.Reset()
	}
	a.view = ViewNotes
	a.claims = claims
	a.printf("Welcome, %s!\n", claims.DisplayName(a.config.LoginDisplayName))
	return a.Refresh(ctx)
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.requireNotes(); err != nil {
		return err
	}
	err := a.board.Refresh(ctx)
	a.show()
	return err
}

// Add reads the note text. An empty answer retries a draft left by a
// failed add.
func (a *App) Add(ctx context.Context) error {
	if err := a.requireNotes(); err != nil {
		return err
	}

	prompt := "Enter note"
	if a.board.Draft != "" {
		prompt = "Enter note (empty to retry the unsaved one)"
	}
	text, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if text != "" {
		a.board.Draft = text
	}

	err = a.board.Add(ctx)
	a.show()
	return err
}

func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.requireNotes(); err != nil {
		return err
	}
	err := a.board.Delete(ctx, id)
	a.show()
	return err
}

func (a *App) Whoami(context.Context) error {
	if err := a.requireNotes(); err != nil {
		return err
	}
	name := a.claims.DisplayName(a.config.LoginDisplayName)
	if a.claims.Email != "" {
		a.printf("%s <%s>\n", name, a.claims.Email)
	} else {
		a.printf("%s\n", name)
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	ev, err := a.guard.Logout(ctx)
	if err != nil {
		a.printf("Could not clear the local session: %v\n", err)
	}
	_ = a.handle(ctx, ev)
	a.printf("Signed out\n")
	return err
}

func (a *App) requireNotes() error {
	if a.view != ViewNotes {
		a.printf("Open your notes first (type 'notes')\n")
		return errNotInNotes
	}
	return nil
}

// show prints the board: the last error, if any, then the notes.
func (a *App) show() {
	if a.board.Error != "" {
		a.printf("Error: %s\n", a.board.Error)
	}
	if len(a.board.Notes) == 0 {
		a.printf("No notes yet\n")
		return
	}
	for _, n := range a.board.Notes {
		if n.CreatedAt.IsZero() {
			a.printf("  [%s] %s\n", n.ID, n.Content)
			continue
		}
		a.printf("  [%s] %s  (%s)\n", n.ID, n.Content, n.CreatedAt.Local().Format(time.DateTime))
	}
}
