package usecase

import (
	"context"
	"path"
	"strings"

	"github.com/glockstar/fanpage/pkg/domain/interfaces"
	memorymodel "github.com/glockstar/fanpage/pkg/domain/model/memory"
	"github.com/glockstar/fanpage/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Memories manages the image+text gallery.
type Memories struct {
	repo    interfaces.MemoryRepository
	storage interfaces.StorageAdapter
}

// NewMemories creates the gallery use cases.
func NewMemories(repo interfaces.MemoryRepository, storage interfaces.StorageAdapter) *Memories {
	return &Memories{
		repo:    repo,
		storage: storage,
	}
}

// allowed image extensions for uploads
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// CreateMemory stores the uploaded image (if any) and persists the memory.
func (u *Memories) CreateMemory(ctx context.Context, input *interfaces.CreateMemoryInput) (*memorymodel.Memory, error) {
	var imagePath string

	if len(input.ImageData) > 0 {
		if u.storage == nil {
			return nil, goerr.New("image storage is not configured")
		}

		ext := strings.ToLower(path.Ext(input.ImageName))
		if !imageExtensions[ext] {
			return nil, goerr.New("unsupported image type", goerr.V("name", input.ImageName))
		}

		id := types.NewMemoryID(ctx)
		imagePath = "memories/" + id.String() + ext
		if err := u.storage.Put(ctx, imagePath, input.ImageData); err != nil {
			return nil, goerr.Wrap(err, "failed to store image")
		}

		m := memorymodel.New(ctx, input.Title, input.Text, imagePath)
		m.ID = id
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if err := u.repo.Create(ctx, m); err != nil {
			return nil, goerr.Wrap(err, "failed to persist memory")
		}
		return m, nil
	}

	m := memorymodel.New(ctx, input.Title, input.Text, "")
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, m); err != nil {
		return nil, goerr.Wrap(err, "failed to persist memory")
	}

	return m, nil
}

// ListMemories lists memories newest first.
func (u *Memories) ListMemories(ctx context.Context, offset, limit int) ([]*memorymodel.Memory, int, error) {
	return u.repo.List(ctx, offset, limit)
}

// GetImage fetches a stored gallery image.
func (u *Memories) GetImage(ctx context.Context, key string) ([]byte, error) {
	if u.storage == nil {
		return nil, interfaces.ErrStorageKeyNotFound
	}
	return u.storage.Get(ctx, key)
}

var _ interfaces.MemoryUseCases = (*Memories)(nil)
