package types

import "context"

// SessionID identifies one visitor's browser session.
type SessionID string

// NewSessionID generates a new session ID
func NewSessionID(ctx context.Context) SessionID {
	return SessionID(newUUID(ctx))
}

func (x SessionID) String() string {
	return string(x)
}

// IsValid checks if the session ID is a valid UUID format
func (x SessionID) IsValid() bool {
	return isValidUUID(string(x))
}
