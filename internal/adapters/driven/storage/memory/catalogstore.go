// Package memory provides in-memory implementations of the driven
// storage ports, used in tests and as the session backing.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/libris-app/libris/internal/core/domain"
	"github.com/libris-app/libris/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is an in-memory implementation of driven.CatalogStore.
type CatalogStore struct {
	mu     sync.RWMutex
	books  map[int64]domain.Book
	nextID int64
}

// NewCatalogStore creates a new in-memory catalogue store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{books: make(map[int64]domain.Book), nextID: 1}
}

// Insert stores a new book, assigning ID and CreatedAt.
func (s *CatalogStore) Insert(_ context.Context, book domain.Book) (*domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book.ID = s.nextID
	s.nextID++
	book.CreatedAt = time.Now().UTC()
	s.books[book.ID] = book
	return &book, nil
}

// Get retrieves a book by ID.
func (s *CatalogStore) Get(_ context.Context, id int64) (*domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	book, ok := s.books[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &book, nil
}

// ListAll returns every book, newest first.
func (s *CatalogStore) ListAll(_ context.Context) ([]domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(func(domain.Book) bool { return true }), nil
}

// ListRecent returns the n most recently added books.
func (s *CatalogStore) ListRecent(_ context.Context, n int) ([]domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	books := s.sortedLocked(func(domain.Book) bool { return true })
	if len(books) > n {
		books = books[:n]
	}
	return books, nil
}

// Search returns books matching the substring on title or author.
func (s *CatalogStore) Search(_ context.Context, substring string) ([]domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(substring)
	return s.sortedLocked(func(b domain.Book) bool {
		return strings.Contains(strings.ToLower(b.Title), needle) ||
			strings.Contains(strings.ToLower(b.Author), needle)
	}), nil
}

// Delete removes a book and returns the removed record.
func (s *CatalogStore) Delete(_ context.Context, id int64) (*domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(s.books, id)
	return &book, nil
}

// Close is a no-op for the in-memory store.
func (s *CatalogStore) Close() error {
	return nil
}

// Len returns the number of stored books. Test helper.
func (s *CatalogStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books)
}

func (s *CatalogStore) sortedLocked(keep func(domain.Book) bool) []domain.Book {
	var books []domain.Book
	for _, b := range s.books {
		if keep(b) {
			books = append(books, b)
		}
	}
	sort.Slice(books, func(i, j int) bool {
		if books[i].CreatedAt.Equal(books[j].CreatedAt) {
			return books[i].ID > books[j].ID
		}
		return books[i].CreatedAt.After(books[j].CreatedAt)
	})
	return books
}
