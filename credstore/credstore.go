// Package credstore persists username/password pairs and answers exactly two
// questions: can this account be created, and do these credentials match.
// Backends are interchangeable behind Store; the relay core never sees how
// credentials are kept.
package credstore

import (
	"context"
	"errors"
)

var ErrUsernameTaken = errors.New("username already exists")

type Store interface {
	// Register creates the account. Returns ErrUsernameTaken if the
	// username is already present.
	Register(ctx context.Context, username, password string) error

	// Validate reports whether the credentials match an existing account.
	Validate(ctx context.Context, username, password string) (bool, error)

	Close() error
}
