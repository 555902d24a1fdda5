package memory

import (
	"context"
	"sync"
	"time"

	"github.com/glockstar/fanpage/pkg/domain/interfaces"
	"github.com/glockstar/fanpage/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const defaultTTL = time.Hour

type sessionData struct {
	values    map[string]string
	expiresAt time.Time
}

type store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[types.SessionID]*sessionData
}

// New creates an in-memory session store. Sessions expire ttl after their
// last write; a non-positive ttl falls back to one hour.
func New(ttl time.Duration) interfaces.SessionStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &store{
		ttl:      ttl,
		sessions: make(map[types.SessionID]*sessionData),
	}
}

func (s *store) Get(ctx context.Context, id types.SessionID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.sessions[id]
	if !exists || time.Now().After(data.expiresAt) {
		return "", interfaces.ErrSessionKeyNotFound
	}

	value, ok := data.values[key]
	if !ok {
		return "", interfaces.ErrSessionKeyNotFound
	}

	return value, nil
}

func (s *store) Set(ctx context.Context, id types.SessionID, key, value string) error {
	if !id.IsValid() {
		return goerr.New("invalid session ID", goerr.V("sessionID", id))
	}
	if key == "" {
		return goerr.New("session key is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, exists := s.sessions[id]
	if !exists || time.Now().After(data.expiresAt) {
		data = &sessionData{values: make(map[string]string)}
		s.sessions[id] = data
	}

	data.values[key] = value
	data.expiresAt = time.Now().Add(s.ttl)

	// Clean up expired sessions while we have the lock
	s.cleanupExpiredLocked()

	return nil
}

func (s *store) Delete(ctx context.Context, id types.SessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, exists := s.sessions[id]
	if !exists {
		return nil
	}

	delete(data.values, key)
	return nil
}

func (s *store) DeleteSession(ctx context.Context, id types.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// cleanupExpiredLocked removes expired sessions (must be called with lock held)
func (s *store) cleanupExpiredLocked() {
	now := time.Now()
	for id, data := range s.sessions {
		if now.After(data.expiresAt) {
			delete(s.sessions, id)
		}
	}
}
