package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/libris-app/libris/internal/core/domain"
	"github.com/libris-app/libris/internal/core/ports/driven"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is an in-memory implementation of driven.ArtifactStore.
// Keys embed a sequence number instead of a timestamp so repeated
// writes in one test always get distinct keys.
type ArtifactStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	seq   int
}

// NewArtifactStore creates a new in-memory artifact store.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{blobs: make(map[string][]byte)}
}

// Put stores the content of r under a generated key and returns it.
func (s *ArtifactStore) Put(_ context.Context, _ domain.FileKind, originalName string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read artifact content: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	key := fmt.Sprintf("%06d_%s", s.seq, originalName)
	s.blobs[key] = data
	return key, nil
}

// Open returns a reader over the stored artifact.
func (s *ArtifactStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes an artifact.
func (s *ArtifactStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[key]; !ok {
		return domain.ErrNotFound
	}
	delete(s.blobs, key)
	return nil
}

// Len returns the number of stored artifacts. Test helper.
func (s *ArtifactStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
