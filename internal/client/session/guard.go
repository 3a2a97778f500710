package session

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
)

// ErrNoSession is returned by Guard.Enter when the user must be sent to the
// anonymous view.
var ErrNoSession = errors.New("no valid session")

// Guard admits the user into session-bound views. It runs once per view
// activation and never refreshes tokens.
type Guard struct {
	store   TokenStore
	decoder Decoder
	logger  logging.Logger
}

func NewGuard(store TokenStore, decoder Decoder, logger logging.Logger) *Guard {
	return &Guard{store: store, decoder: decoder, logger: logger}
}

// Enter reads the stored token and decodes it. An empty store, an
// undecodable token or an unreadable store all yield ErrNoSession.
func (g *Guard) Enter(ctx context.Context) (Claims, error) {
	token, err := g.store.Get(ctx)
	if err != nil {
		g.logger.Warn(ctx, "token store unreadable, treating as anonymous", "error", err)
		return Claims{}, ErrNoSession
	}
	if token == "" {
		return Claims{}, ErrNoSession
	}

	claims, ok := g.decoder.Decode(token)
	if !ok {
		g.logger.Info(ctx, "stored token is not decodable, ejecting")
		return Claims{}, ErrNoSession
	}
	return claims, nil
}

// Logout clears the store and always reports EventSessionEnded. A store
// failure is returned alongside the event; it does not keep the user in.
func (g *Guard) Logout(ctx context.Context) (Event, error) {
	if err := g.store.Clear(ctx); err != nil {
		g.logger.Error(ctx, "failed to clear token store", "error", err)
		return EventSessionEnded, err
	}
	return EventSessionEnded, nil
}
