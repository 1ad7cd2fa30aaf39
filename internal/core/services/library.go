package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/libris-app/libris/internal/core/domain"
	"github.com/libris-app/libris/internal/core/ports/driven"
	"github.com/libris-app/libris/internal/core/ports/driving"
)

// Ensure Library implements the interface.
var _ driving.LibraryService = (*Library)(nil)

// Library manages the catalogue and the ingestion pipeline. It owns
// the ordering of validation, artifact storage and catalogue insert,
// and the compensating rollback when a later step fails.
type Library struct {
	catalog      driven.CatalogStore
	artifacts    driven.ArtifactStore
	validator    driven.FormatValidator
	curatorEmail string
	log          *slog.Logger
}

// NewLibrary creates a new library service. curatorEmail is the single
// allow-listed identity permitted to ingest and delete books.
func NewLibrary(
	catalog driven.CatalogStore,
	artifacts driven.ArtifactStore,
	validator driven.FormatValidator,
	curatorEmail string,
	log *slog.Logger,
) *Library {
	if log == nil {
		log = slog.Default()
	}
	return &Library{
		catalog:      catalog,
		artifacts:    artifacts,
		validator:    validator,
		curatorEmail: curatorEmail,
		log:          log,
	}
}

// Ingest validates and stores a new book as one unit.
//
// Validation happens before any write: metadata first, then the
// document, then the optional cover. A cover that fails validation
// rejects the whole ingestion; no book-without-validated-cover is
// created. After artifacts are written, a failed catalogue insert
// deletes them again synchronously before the failure is returned,
// so no orphaned files outlive the call.
//
// Ingest is not idempotent: retrying identical input creates a second
// record with distinct artifact keys. Callers needing idempotent
// retries must dedupe upstream.
func (s *Library) Ingest(ctx context.Context, req domain.RequestInfo, in driving.IngestInput) (*domain.Book, error) {
	if err := s.authorize(req); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Title) == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "required"}
	}
	if strings.TrimSpace(in.Author) == "" {
		return nil, &domain.ValidationError{Field: "author", Reason: "required"}
	}
	if in.Document.Content == nil || in.Document.Name == "" {
		return nil, &domain.ValidationError{Field: "document", Reason: "required"}
	}
	if in.Document.Size > domain.MaxDocumentBytes {
		return nil, &domain.ValidationError{Field: "document", Reason: "too_large"}
	}

	res, err := s.validator.Classify(in.Document.Content, in.Document.Name, domain.FileDocument)
	if err != nil {
		return nil, &domain.StorageError{Op: "read document upload", Err: err}
	}
	if !res.Accepted {
		return nil, &domain.ValidationError{Field: "document", Reason: string(res.Reason)}
	}

	if in.Cover != nil {
		if in.Cover.Size > domain.MaxCoverBytes {
			return nil, &domain.ValidationError{Field: "cover", Reason: "too_large"}
		}
		res, err := s.validator.Classify(in.Cover.Content, in.Cover.Name, domain.FileImage)
		if err != nil {
			return nil, &domain.StorageError{Op: "read cover upload", Err: err}
		}
		if !res.Accepted {
			return nil, &domain.ValidationError{Field: "cover", Reason: string(res.Reason)}
		}
	}

	documentKey, err := s.artifacts.Put(ctx, domain.FileDocument, in.Document.Name, in.Document.Content)
	if err != nil {
		return nil, &domain.StorageError{Op: "store document", Err: err}
	}

	var coverKey string
	if in.Cover != nil {
		coverKey, err = s.artifacts.Put(ctx, domain.FileImage, in.Cover.Name, in.Cover.Content)
		if err != nil {
			s.rollbackArtifacts(ctx, documentKey)
			return nil, &domain.StorageError{Op: "store cover", Err: err}
		}
	}

	book, err := s.catalog.Insert(ctx, domain.Book{
		Title:       strings.TrimSpace(in.Title),
		Author:      strings.TrimSpace(in.Author),
		Description: strings.TrimSpace(in.Description),
		DocumentKey: documentKey,
		CoverKey:    coverKey,
	})
	if err != nil {
		s.rollbackArtifacts(ctx, documentKey, coverKey)
		return nil, &domain.StorageError{Op: "catalog insert", Err: err}
	}

	s.log.Info("book ingested",
		"id", book.ID,
		"title", book.Title,
		"document", book.DocumentKey,
		"cover", book.CoverKey)
	return book, nil
}

// ListAll returns every book, newest first.
func (s *Library) ListAll(ctx context.Context) ([]domain.Book, error) {
	return s.catalog.ListAll(ctx)
}

// ListRecent returns the n most recently added books.
func (s *Library) ListRecent(ctx context.Context, n int) ([]domain.Book, error) {
	return s.catalog.ListRecent(ctx, n)
}

// Search finds books by title or author substring, newest first.
// An empty query is invalid here; the boundary routes it to ListAll.
func (s *Library) Search(ctx context.Context, query string) ([]domain.Book, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &domain.ValidationError{Field: "query", Reason: "required"}
	}
	return s.catalog.Search(ctx, strings.TrimSpace(query))
}

// Get retrieves a single book by ID.
func (s *Library) Get(ctx context.Context, id int64) (*domain.Book, error) {
	return s.catalog.Get(ctx, id)
}

// Delete removes a book and cascades deletion to its artifacts. A
// missing artifact does not fail the deletion; it is logged as a
// warning since the catalogue row is already gone.
func (s *Library) Delete(ctx context.Context, req domain.RequestInfo, id int64) error {
	if err := s.authorize(req); err != nil {
		return err
	}

	removed, err := s.catalog.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return &domain.StorageError{Op: "catalog delete", Err: err}
	}

	s.cascadeDelete(ctx, removed.DocumentKey)
	if removed.HasCover() {
		s.cascadeDelete(ctx, removed.CoverKey)
	}

	s.log.Info("book deleted", "id", id, "title", removed.Title)
	return nil
}

// OpenDocument returns the book and a reader over its stored PDF.
func (s *Library) OpenDocument(ctx context.Context, id int64) (*domain.Book, io.ReadCloser, error) {
	book, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.artifacts.Open(ctx, book.DocumentKey)
	if err != nil {
		return nil, nil, fmt.Errorf("open document %s: %w", book.DocumentKey, err)
	}
	return book, rc, nil
}

func (s *Library) authorize(req domain.RequestInfo) error {
	if !req.Authenticated || req.Identity != s.curatorEmail {
		return domain.ErrForbidden
	}
	return nil
}

// rollbackArtifacts deletes artifacts written before a later ingestion
// step failed. It runs synchronously so the caller never observes
// orphaned files after a reported failure.
func (s *Library) rollbackArtifacts(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.artifacts.Delete(ctx, key); err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.log.Error("rollback failed, artifact may be orphaned", "key", key, "error", err)
		}
	}
}

// cascadeDelete removes an artifact after its catalogue row was
// deleted. A missing key is only a warning.
func (s *Library) cascadeDelete(ctx context.Context, key string) {
	err := s.artifacts.Delete(ctx, key)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		s.log.Warn("artifact already missing during cascade delete", "key", key)
	default:
		s.log.Error("artifact cascade delete failed", "key", key, "error", err)
	}
}
