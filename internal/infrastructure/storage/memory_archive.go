package storage

import (
	"context"
	"errors"
	"sync"

	financeapp "github.com/strivehq/backend/internal/application/finance"
)

// Ensure MemoryStatementArchive implements StatementArchive
var _ financeapp.StatementArchive = (*MemoryStatementArchive)(nil)

// MemoryStatementArchive keeps archived files in memory. Used in tests and
// when object storage is disabled in configuration.
type MemoryStatementArchive struct {
	mu      sync.RWMutex
	objects map[string]archivedObject
}

type archivedObject struct {
	contentType string
	data        []byte
}

// NewMemoryStatementArchive creates a new in-memory archive
func NewMemoryStatementArchive() *MemoryStatementArchive {
	return &MemoryStatementArchive{
		objects: make(map[string]archivedObject),
	}
}

// Store keeps a copy of the file in memory
func (a *MemoryStatementArchive) Store(_ context.Context, key, contentType string, data []byte) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	a.objects[key] = archivedObject{contentType: contentType, data: stored}
	return nil
}

// Get returns an archived file by key
func (a *MemoryStatementArchive) Get(key string) ([]byte, string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	obj, ok := a.objects[key]
	if !ok {
		return nil, "", false
	}
	return obj.data, obj.contentType, true
}

// Len returns the number of archived files
func (a *MemoryStatementArchive) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.objects)
}
