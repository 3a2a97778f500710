package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	currentView() View
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Code(ctx context.Context) error
	Google(ctx context.Context) error
	Notes(ctx context.Context) error
	Add(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Refresh(ctx context.Context) error
	Whoami(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: signup, login, code, google, notes, exit"
	helpNotes     = "Available commands: add, delete <id>, refresh, whoami, logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Outside the notes view:
//
//	signup      — request an OTP for a new account, then enter it
//	login       — request an OTP for an existing account, then enter it
//	code        — enter the OTP for the pending request again
//	google      — sign in with a Google ID token
//	notes       — open the notes view (requires a session)
//
// In the notes view:
//
//	add         — add a note
//	delete <id> — delete a note
//	refresh     — reload the list
//	whoami      — show the signed-in identity
//	logout      — end the session
//
// Errors returned by command handlers are ignored here; handlers report
// them to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("nk %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.currentView() == ViewNotes {
				printlnFn(helpNotes)
			} else {
				printlnFn(helpAnonymous)
			}

		case "signup":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "code":
			_ = a.Code(ctx)

		case "google":
			_ = a.Google(ctx)

		case "notes":
			_ = a.Notes(ctx)

		case "add":
			_ = a.Add(ctx)

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "refresh":
			_ = a.Refresh(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
