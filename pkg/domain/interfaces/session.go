package interfaces

import (
	"context"
	"errors"

	"github.com/glockstar/fanpage/pkg/domain/types"
)

// ErrSessionKeyNotFound is returned when a session has no value for a key.
var ErrSessionKeyNotFound = errors.New("session key not found")

// SessionStore is a string key-value store scoped to one visitor's browser
// session. It is the only place where OAuth credentials persist between
// requests; expiry of a whole session is governed by the store.
type SessionStore interface {
	Get(ctx context.Context, id types.SessionID, key string) (string, error)
	Set(ctx context.Context, id types.SessionID, key, value string) error
	Delete(ctx context.Context, id types.SessionID, key string) error
	DeleteSession(ctx context.Context, id types.SessionID) error
}
