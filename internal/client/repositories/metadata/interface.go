// Package metadata is the local key/value store backing client state that must
// survive restarts.
package metadata

import (
	"context"
)

// Repository is a durable key/value slot store. Get returns (nil, nil) for an
// absent key; Delete of an absent key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
