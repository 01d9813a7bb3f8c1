// Package credentials persists the bearer token and author identifier between
// runs. It is the only durable state the client holds: written by the session
// store, read once at startup.
package credentials

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates no credential has been persisted.
	ErrNotFound = errors.New("credentials not found")
	// ErrSealed indicates the stored credential could not be opened with the
	// configured key.
	ErrSealed = errors.New("credentials sealed with a different key")
)

// Credentials is the persisted session seed.
type Credentials struct {
	Token    string `json:"token"`
	AuthorID string `json:"authorId"`
}

// Store abstracts durable credential persistence.
type Store interface {
	Load(ctx context.Context) (Credentials, error)
	Save(ctx context.Context, creds Credentials) error
	Clear(ctx context.Context) error
}
