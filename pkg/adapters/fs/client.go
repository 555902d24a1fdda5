package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/glockstar/fanpage/pkg/domain/interfaces"
)

// Client stores uploaded gallery images on the local filesystem.
type Client struct {
	baseDir     string
	permissions os.FileMode
	mu          sync.RWMutex
}

// New creates a new filesystem storage client
func New(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := config.EnsureDirectory(); err != nil {
		return nil, fmt.Errorf("failed to ensure directory: %w", err)
	}

	return &Client{
		baseDir:     config.BaseDirectory,
		permissions: config.Permissions,
	}, nil
}

// Put stores data with the given key
func (c *Client) Put(ctx context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	filePath := c.filePath(key)

	if err := os.MkdirAll(filepath.Dir(filePath), c.permissions); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Get retrieves data by the given key
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	// #nosec G304 - Path is validated by validateKey() to prevent traversal
	data, err := os.ReadFile(c.filePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, interfaces.ErrStorageKeyNotFound
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}

// validateKey rejects keys that could escape the base directory.
func validateKey(key string) error {
	if key == "" {
		return interfaces.ErrInvalidStorageKey
	}

	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return interfaces.ErrInvalidStorageKey
	}

	for _, char := range key {
		if char < 32 || char == 127 { // Control characters
			return interfaces.ErrInvalidStorageKey
		}
	}

	return nil
}

func (c *Client) filePath(key string) string {
	return filepath.Join(c.baseDir, key)
}

var _ interfaces.StorageAdapter = (*Client)(nil)
