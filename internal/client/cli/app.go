package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/notekeeper/internal/client/client"
	"github.com/dmitrijs2005/notekeeper/internal/client/config"
	"github.com/dmitrijs2005/notekeeper/internal/client/oauth"
	"github.com/dmitrijs2005/notekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/notekeeper/internal/client/services"
	"github.com/dmitrijs2005/notekeeper/internal/client/session"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
)

// View is the screen the REPL currently stands on.
type View string

const (
	ViewSignup View = "signup"
	ViewLogin  View = "login"
	ViewNotes  View = "notes"
)

type App struct {
	config *config.Config
	logger logging.Logger

	flow   *services.AuthFlow
	guard  *session.Guard
	board  *services.Board
	google oauth.CredentialSource

	view   View
	claims session.Claims

	reader *bufio.Reader
	out    io.Writer
}

var _ execIface = (*App)(nil)

// NewApp wires the services over db and the configured remote endpoint.
func NewApp(c *config.Config, db *sql.DB, logger logging.Logger) *App {
	store := session.NewPersistentStore(metadata.NewSQLiteRepository(db))
	api := client.NewHTTPClient(c.ServiceURL, c.RequestTimeout, logger)

	a := &App{
		config: c,
		logger: logger,
		flow:   services.NewAuthFlow(api, store, logger),
		guard:  session.NewGuard(store, session.NewUnverifiedDecoder(), logger),
		board:  services.NewBoard(services.NewNotesService(api, store, logger)),
		view:   ViewSignup,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	a.google = a.credentialSource()
	return a
}

// credentialSource uses the device flow when a client id is configured and
// otherwise asks the user to paste an ID token.
func (a *App) credentialSource() oauth.CredentialSource {
	if a.config.GoogleEnabled() {
		return oauth.NewGoogleDeviceFlow(a.config.GoogleClientID, a.config.GoogleClientSecret, func(uri, code string) {
			fmt.Fprintf(a.out, "Open %s and enter code %s\n", uri, code)
		})
	}
	return oauth.SourceFunc(func(context.Context) (string, error) {
		return getSecret("Paste Google ID token", a.out)
	})
}

// Run resumes a stored session if there is one and then blocks in the REPL.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to notekeeper (type 'help' for commands)")

	if claims, err := a.guard.Enter(ctx); err == nil {
		_ = a.admit(ctx, claims)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) currentView() View { return a.view }

func (a *App) getStatus() string {
	if a.view == ViewNotes {
		if name := a.claims.DisplayName(""); name != "" {
			return fmt.Sprintf("(%s %s)", name, a.view)
		}
	}
	return fmt.Sprintf("(%s)", a.view)
}

// handle maps a core event onto a view change.
func (a *App) handle(ctx context.Context, ev session.Event) error {
	switch ev {
	case session.EventAuthSucceeded:
		return a.Notes(ctx)
	case session.EventSessionEnded:
		a.view = ViewSignup
		a.claims = session.Claims{}
		a.board.Reset()
		a.flow.Reset()
	}
	return nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
