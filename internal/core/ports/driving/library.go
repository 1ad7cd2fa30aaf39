package driving

import (
	"context"
	"io"

	"github.com/libris-app/libris/internal/core/domain"
)

// Upload is a seekable byte stream plus the declared original filename
// supplied by the uploading caller. Size is the declared length, used
// to enforce ceilings before the stream is read.
type Upload struct {
	Name    string
	Size    int64
	Content io.ReadSeeker
}

// IngestInput carries the metadata and files for one book ingestion.
// Cover is optional; when present it must validate independently.
type IngestInput struct {
	Title       string
	Author      string
	Description string
	Document    Upload
	Cover       *Upload
}

// LibraryService exposes the catalogue operations consumed by the thin
// UI/routing glue.
type LibraryService interface {
	// Ingest validates and stores a new book as one unit: document,
	// optional cover, then the catalogue record. Partial failures roll
	// back any stored artifacts before returning. Only the configured
	// allow-listed identity may ingest.
	Ingest(ctx context.Context, req domain.RequestInfo, in IngestInput) (*domain.Book, error)

	// ListAll returns every book, newest first.
	ListAll(ctx context.Context) ([]domain.Book, error)

	// ListRecent returns the n most recently added books.
	ListRecent(ctx context.Context, n int) ([]domain.Book, error)

	// Search finds books by title or author substring. Empty queries
	// are rejected; the boundary routes those to ListAll instead.
	Search(ctx context.Context, query string) ([]domain.Book, error)

	// Get retrieves a single book by ID.
	Get(ctx context.Context, id int64) (*domain.Book, error)

	// Delete removes a book and cascades deletion to its artifacts.
	// Only the configured allow-listed identity may delete.
	Delete(ctx context.Context, req domain.RequestInfo, id int64) error

	// OpenDocument returns the book and a reader over its stored PDF
	// for download.
	OpenDocument(ctx context.Context, id int64) (*domain.Book, io.ReadCloser, error)
}
