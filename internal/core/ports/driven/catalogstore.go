package driven

import (
	"context"

	"github.com/libris-app/libris/internal/core/domain"
)

// CatalogStore persists book metadata. A single embedded relational
// engine backs it; conflicting writes are serialised at the storage
// layer and every mutation is atomic with respect to a single record.
type CatalogStore interface {
	// Insert stores a new book, assigning ID and CreatedAt.
	// The input's ID and CreatedAt are ignored.
	Insert(ctx context.Context, book domain.Book) (*domain.Book, error)

	// Get retrieves a book by ID. Returns domain.ErrNotFound when the
	// ID does not resolve.
	Get(ctx context.Context, id int64) (*domain.Book, error)

	// ListAll returns every book ordered by CreatedAt descending.
	ListAll(ctx context.Context) ([]domain.Book, error)

	// ListRecent returns the n most recently added books.
	ListRecent(ctx context.Context, n int) ([]domain.Book, error)

	// Search returns books whose title or author contains the
	// substring, case-insensitively, ordered by CreatedAt descending.
	// A book matching both fields appears once. Routing the empty
	// query to "list all" is the caller's responsibility.
	Search(ctx context.Context, substring string) ([]domain.Book, error)

	// Delete removes a book and returns the removed record so the
	// caller can cascade artifact deletion. Returns domain.ErrNotFound
	// when the ID does not resolve.
	Delete(ctx context.Context, id int64) (*domain.Book, error)

	// Close releases the underlying storage handle.
	Close() error
}
