// Package cli provides the interactive notekeeper command-line client.
//
// The REPL stands in for the pages of a browser client. It has three views:
// signup (the anonymous default), login and notes. Core services never
// navigate. They report session events and the App maps them onto views:
// EventAuthSucceeded opens notes, EventSessionEnded returns to signup.
// Opening notes always runs the session guard once.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
