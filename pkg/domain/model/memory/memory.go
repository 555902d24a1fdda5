package memory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/glockstar/fanpage/pkg/domain/types"
)

var (
	ErrInvalidMemory  = errors.New("memory needs a text or an image")
	ErrMemoryNotFound = errors.New("memory not found")
)

// Memory is one image+text post of the gallery.
type Memory struct {
	ID        types.MemoryID `json:"id"`
	Title     string         `json:"title"`
	Text      string         `json:"text"`
	ImagePath string         `json:"image_path,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// New creates a gallery memory.
func New(ctx context.Context, title, text, imagePath string) *Memory {
	return &Memory{
		ID:        types.NewMemoryID(ctx),
		Title:     strings.TrimSpace(title),
		Text:      strings.TrimSpace(text),
		ImagePath: imagePath,
		CreatedAt: time.Now(),
	}
}

// Validate checks that the memory has something to show.
func (m *Memory) Validate() error {
	if m.Text == "" && m.ImagePath == "" {
		return ErrInvalidMemory
	}
	if !m.ID.IsValid() {
		return ErrInvalidMemory
	}
	return nil
}
