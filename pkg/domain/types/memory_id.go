package types

import (
	"context"

	"github.com/google/uuid"
)

// MemoryID identifies one gallery memory.
type MemoryID string

// NewMemoryID generates a new memory ID
func NewMemoryID(ctx context.Context) MemoryID {
	return MemoryID(newUUID(ctx))
}

func (x MemoryID) String() string {
	return string(x)
}

// IsValid checks if the memory ID is a valid UUID format
func (x MemoryID) IsValid() bool {
	return isValidUUID(string(x))
}

func isValidUUID(s string) bool {
	if s == "" {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
