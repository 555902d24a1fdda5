package interfaces

import (
	"context"

	"github.com/glockstar/fanpage/pkg/domain/model/memory"
)

// MemoryRepository manages gallery memory persistence. The file-backed and
// table-backed implementations are interchangeable behind this interface,
// selected by configuration.
type MemoryRepository interface {
	Create(ctx context.Context, m *memory.Memory) error
	List(ctx context.Context, offset, limit int) ([]*memory.Memory, int, error)
}
