package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libris-app/libris/internal/adapters/driven/storage/memory"
	"github.com/libris-app/libris/internal/core/domain"
	"github.com/libris-app/libris/internal/core/ports/driving"
)

const curatorEmail = "curator@example.com"

// --- Mock implementations ---

// mockValidator implements driven.FormatValidator for testing.
type mockValidator struct {
	rejectDocument bool
	rejectCover    bool
	classifyErr    error
}

func (m *mockValidator) Classify(r io.ReadSeeker, _ string, kind domain.FileKind) (domain.ValidationResult, error) {
	if m.classifyErr != nil {
		return domain.ValidationResult{}, m.classifyErr
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return domain.ValidationResult{}, err
	}
	if kind == domain.FileDocument && m.rejectDocument {
		return domain.Reject(domain.RejectDisallowedType), nil
	}
	if kind == domain.FileImage && m.rejectCover {
		return domain.Reject(domain.RejectInvalidContent), nil
	}
	return domain.Accept("pdf"), nil
}

// flakyArtifactStore wraps the in-memory store and fails Put calls for
// a chosen file kind.
type flakyArtifactStore struct {
	*memory.ArtifactStore
	failKind domain.FileKind
	failPut  bool
}

func (s *flakyArtifactStore) Put(ctx context.Context, kind domain.FileKind, name string, r io.Reader) (string, error) {
	if s.failPut && kind == s.failKind {
		return "", errors.New("disk full")
	}
	return s.ArtifactStore.Put(ctx, kind, name, r)
}

// flakyCatalogStore wraps the in-memory store and fails Insert.
type flakyCatalogStore struct {
	*memory.CatalogStore
	insertErr error
}

func (s *flakyCatalogStore) Insert(ctx context.Context, book domain.Book) (*domain.Book, error) {
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	return s.CatalogStore.Insert(ctx, book)
}

// --- Helpers ---

func curator() domain.RequestInfo {
	return domain.RequestInfo{Authenticated: true, Identity: curatorEmail, Locale: domain.LocaleEnglish}
}

func upload(name, content string) driving.Upload {
	return driving.Upload{Name: name, Size: int64(len(content)), Content: strings.NewReader(content)}
}

func validInput() driving.IngestInput {
	return driving.IngestInput{
		Title:    "Romeo and Juliet",
		Author:   "William Shakespeare",
		Document: upload("romeo.pdf", "%PDF-1.4 fake"),
	}
}

func newTestLibrary() (*Library, *memory.CatalogStore, *memory.ArtifactStore) {
	catalog := memory.NewCatalogStore()
	artifacts := memory.NewArtifactStore()
	lib := NewLibrary(catalog, artifacts, &mockValidator{}, curatorEmail, nil)
	return lib, catalog, artifacts
}

// --- Tests ---

func TestLibrary_Ingest_Success(t *testing.T) {
	lib, catalog, artifacts := newTestLibrary()

	in := validInput()
	in.Description = "  A tragedy in five acts.  "
	book, err := lib.Ingest(context.Background(), curator(), in)

	require.NoError(t, err)
	assert.Equal(t, "Romeo and Juliet", book.Title)
	assert.Equal(t, "William Shakespeare", book.Author)
	assert.Equal(t, "A tragedy in five acts.", book.Description)
	assert.NotEmpty(t, book.DocumentKey)
	assert.False(t, book.HasCover())
	assert.Equal(t, 1, catalog.Len())
	assert.Equal(t, 1, artifacts.Len())
}

func TestLibrary_Ingest_WithCover(t *testing.T) {
	lib, _, artifacts := newTestLibrary()

	in := validInput()
	cover := upload("cover.png", "pngbytes")
	in.Cover = &cover
	book, err := lib.Ingest(context.Background(), curator(), in)

	require.NoError(t, err)
	assert.True(t, book.HasCover())
	assert.Equal(t, 2, artifacts.Len())
}

func TestLibrary_Ingest_Unauthenticated(t *testing.T) {
	lib, _, _ := newTestLibrary()

	_, err := lib.Ingest(context.Background(), domain.RequestInfo{}, validInput())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLibrary_Ingest_WrongIdentity(t *testing.T) {
	lib, _, _ := newTestLibrary()

	req := domain.RequestInfo{Authenticated: true, Identity: "someone@example.com"}
	_, err := lib.Ingest(context.Background(), req, validInput())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLibrary_Ingest_MissingMetadata(t *testing.T) {
	lib, _, _ := newTestLibrary()

	in := validInput()
	in.Title = "   "
	_, err := lib.Ingest(context.Background(), curator(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validInput()
	in.Author = ""
	_, err = lib.Ingest(context.Background(), curator(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLibrary_Ingest_MissingDocument(t *testing.T) {
	lib, _, _ := newTestLibrary()

	in := validInput()
	in.Document = driving.Upload{}
	_, err := lib.Ingest(context.Background(), curator(), in)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "document", verr.Field)
	assert.Equal(t, "required", verr.Reason)
}

func TestLibrary_Ingest_DocumentTooLarge(t *testing.T) {
	lib, _, artifacts := newTestLibrary()

	in := validInput()
	in.Document.Size = domain.MaxDocumentBytes + 1
	_, err := lib.Ingest(context.Background(), curator(), in)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "too_large", verr.Reason)
	assert.Equal(t, 0, artifacts.Len())
}

func TestLibrary_Ingest_DocumentRejected(t *testing.T) {
	catalog := memory.NewCatalogStore()
	artifacts := memory.NewArtifactStore()
	lib := NewLibrary(catalog, artifacts, &mockValidator{rejectDocument: true}, curatorEmail, nil)

	_, err := lib.Ingest(context.Background(), curator(), validInput())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "document", verr.Field)
	assert.Equal(t, string(domain.RejectDisallowedType), verr.Reason)
	assert.Equal(t, 0, artifacts.Len())
	assert.Equal(t, 0, catalog.Len())
}

func TestLibrary_Ingest_CoverRejected(t *testing.T) {
	catalog := memory.NewCatalogStore()
	artifacts := memory.NewArtifactStore()
	lib := NewLibrary(catalog, artifacts, &mockValidator{rejectCover: true}, curatorEmail, nil)

	in := validInput()
	cover := upload("cover.png", "not a png")
	in.Cover = &cover
	_, err := lib.Ingest(context.Background(), curator(), in)

	// A bad cover rejects the whole ingestion, nothing is written.
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "cover", verr.Field)
	assert.Equal(t, 0, artifacts.Len())
	assert.Equal(t, 0, catalog.Len())
}

func TestLibrary_Ingest_CoverTooLarge(t *testing.T) {
	lib, catalog, artifacts := newTestLibrary()

	in := validInput()
	cover := upload("cover.png", "pngbytes")
	cover.Size = domain.MaxCoverBytes + 1
	in.Cover = &cover
	_, err := lib.Ingest(context.Background(), curator(), in)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "cover", verr.Field)
	assert.Equal(t, "too_large", verr.Reason)
	assert.Equal(t, 0, artifacts.Len())
	assert.Equal(t, 0, catalog.Len())
}

func TestLibrary_Ingest_CoverStoreFailureRollsBackDocument(t *testing.T) {
	catalog := memory.NewCatalogStore()
	artifacts := &flakyArtifactStore{
		ArtifactStore: memory.NewArtifactStore(),
		failKind:      domain.FileImage,
		failPut:       true,
	}
	lib := NewLibrary(catalog, artifacts, &mockValidator{}, curatorEmail, nil)

	in := validInput()
	cover := upload("cover.png", "pngbytes")
	in.Cover = &cover
	_, err := lib.Ingest(context.Background(), curator(), in)

	var serr *domain.StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 0, artifacts.Len())
	assert.Equal(t, 0, catalog.Len())
}

func TestLibrary_Ingest_CatalogFailureRollsBackArtifacts(t *testing.T) {
	catalog := &flakyCatalogStore{
		CatalogStore: memory.NewCatalogStore(),
		insertErr:    errors.New("database is locked"),
	}
	artifacts := memory.NewArtifactStore()
	lib := NewLibrary(catalog, artifacts, &mockValidator{}, curatorEmail, nil)

	in := validInput()
	cover := upload("cover.png", "pngbytes")
	in.Cover = &cover
	_, err := lib.Ingest(context.Background(), curator(), in)

	var serr *domain.StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 0, artifacts.Len())
}

func TestLibrary_Search(t *testing.T) {
	lib, _, _ := newTestLibrary()
	ctx := context.Background()

	_, err := lib.Ingest(ctx, curator(), validInput())
	require.NoError(t, err)
	in := driving.IngestInput{
		Title:    "2001: A Space Odyssey",
		Author:   "Arthur C. Clarke",
		Document: upload("odyssey.pdf", "%PDF-1.4 fake"),
	}
	_, err = lib.Ingest(ctx, curator(), in)
	require.NoError(t, err)

	books, err := lib.Search(ctx, "shakespeare")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Romeo and Juliet", books[0].Title)

	books, err = lib.Search(ctx, "Space")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Arthur C. Clarke", books[0].Author)

	books, err = lib.Search(ctx, "dickens")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestLibrary_Search_EmptyQuery(t *testing.T) {
	lib, _, _ := newTestLibrary()

	_, err := lib.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLibrary_Delete_CascadesArtifacts(t *testing.T) {
	lib, catalog, artifacts := newTestLibrary()
	ctx := context.Background()

	in := validInput()
	cover := upload("cover.png", "pngbytes")
	in.Cover = &cover
	book, err := lib.Ingest(ctx, curator(), in)
	require.NoError(t, err)
	require.Equal(t, 2, artifacts.Len())

	require.NoError(t, lib.Delete(ctx, curator(), book.ID))
	assert.Equal(t, 0, catalog.Len())
	assert.Equal(t, 0, artifacts.Len())

	_, err = lib.Get(ctx, book.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLibrary_Delete_MissingArtifactStillSucceeds(t *testing.T) {
	lib, catalog, artifacts := newTestLibrary()
	ctx := context.Background()

	book, err := lib.Ingest(ctx, curator(), validInput())
	require.NoError(t, err)
	require.NoError(t, artifacts.Delete(ctx, book.DocumentKey))

	assert.NoError(t, lib.Delete(ctx, curator(), book.ID))
	assert.Equal(t, 0, catalog.Len())
}

func TestLibrary_Delete_NotFound(t *testing.T) {
	lib, _, _ := newTestLibrary()

	err := lib.Delete(context.Background(), curator(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLibrary_Delete_Forbidden(t *testing.T) {
	lib, _, _ := newTestLibrary()
	ctx := context.Background()

	book, err := lib.Ingest(ctx, curator(), validInput())
	require.NoError(t, err)

	err = lib.Delete(ctx, domain.RequestInfo{Authenticated: true, Identity: "reader@example.com"}, book.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = lib.Get(ctx, book.ID)
	assert.NoError(t, err)
}

func TestLibrary_OpenDocument(t *testing.T) {
	lib, _, _ := newTestLibrary()
	ctx := context.Background()

	book, err := lib.Ingest(ctx, curator(), validInput())
	require.NoError(t, err)

	got, rc, err := lib.OpenDocument(ctx, book.ID)
	require.NoError(t, err)
	defer rc.Close()

	assert.Equal(t, book.ID, got.ID)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))
}

func TestLibrary_OpenDocument_NotFound(t *testing.T) {
	lib, _, _ := newTestLibrary()

	_, _, err := lib.OpenDocument(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
