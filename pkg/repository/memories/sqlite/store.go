// Package sqlite provides a SQLite-backed memories store.
package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"github.com/glockstar/fanpage/pkg/domain/interfaces"
	"github.com/glockstar/fanpage/pkg/domain/model/memory"
	"github.com/glockstar/fanpage/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS memories (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL DEFAULT '',
	text TEXT NOT NULL DEFAULT '',
	image_path TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_memories_created_at ON memories(created_at);
`

// Store persists memories in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite memories store and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, goerr.New("memories database path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite db", goerr.V("path", path))
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to ping sqlite db", goerr.V("path", path))
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to apply schema")
	}

	return &Store{db: db}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Create(ctx context.Context, m *memory.Memory) error {
	if m == nil {
		return goerr.New("memory is nil")
	}
	if err := m.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO memories (id, title, text, image_path, created_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID.String(), m.Title, m.Text, m.ImagePath, m.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to insert memory", goerr.V("id", m.ID))
	}

	return nil
}

func (s *Store) List(ctx context.Context, offset, limit int) ([]*memory.Memory, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = -1 // no limit in sqlite
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM memories`).Scan(&total); err != nil {
		return nil, 0, goerr.Wrap(err, "failed to count memories")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, text, image_path, created_at FROM memories
		 ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, goerr.Wrap(err, "failed to query memories")
	}
	defer rows.Close()

	var memories []*memory.Memory
	for rows.Next() {
		var (
			m         memory.Memory
			id        string
			createdAt int64
		)
		if err := rows.Scan(&id, &m.Title, &m.Text, &m.ImagePath, &createdAt); err != nil {
			return nil, 0, goerr.Wrap(err, "failed to scan memory row")
		}
		m.ID = types.MemoryID(id)
		m.CreatedAt = time.UnixMilli(createdAt).UTC()
		memories = append(memories, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, goerr.Wrap(err, "failed to iterate memory rows")
	}

	return memories, total, nil
}

var _ interfaces.MemoryRepository = (*Store)(nil)
