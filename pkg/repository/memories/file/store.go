// Package file provides a JSON-file-backed memories store.
package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/glockstar/fanpage/pkg/domain/interfaces"
	"github.com/glockstar/fanpage/pkg/domain/model/memory"
	"github.com/m-mizutani/goerr/v2"
)

// Store persists memories as one JSON array on disk. Writes rewrite the
// whole file; the data set is small (a fan-site gallery), so this is fine.
type Store struct {
	mu       sync.RWMutex
	path     string
	memories []*memory.Memory
}

// Open loads the memories file, creating an empty store when the file does
// not exist yet.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, goerr.New("memories file path is required")
	}
	path = filepath.Clean(path)

	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, goerr.Wrap(err, "failed to read memories file", goerr.V("path", path))
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.memories); err != nil {
			return nil, goerr.Wrap(err, "failed to parse memories file", goerr.V("path", path))
		}
	}

	return s, nil
}

func (s *Store) Create(ctx context.Context, m *memory.Memory) error {
	if m == nil {
		return goerr.New("memory is nil")
	}
	if err := m.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.memories = append(s.memories, m)
	if err := s.saveLocked(); err != nil {
		s.memories = s.memories[:len(s.memories)-1]
		return err
	}

	return nil
}

func (s *Store) List(ctx context.Context, offset, limit int) ([]*memory.Memory, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.memories)
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = total
	}

	// Newest first
	result := make([]*memory.Memory, 0, limit)
	for i := total - 1 - offset; i >= 0 && len(result) < limit; i-- {
		result = append(result, s.memories[i])
	}

	return result, total, nil
}

// saveLocked writes the file atomically (must be called with lock held).
func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(s.memories, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal memories")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return goerr.Wrap(err, "failed to write memories file", goerr.V("path", tmp))
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return goerr.Wrap(err, "failed to replace memories file", goerr.V("path", s.path))
	}

	return nil
}

var _ interfaces.MemoryRepository = (*Store)(nil)
