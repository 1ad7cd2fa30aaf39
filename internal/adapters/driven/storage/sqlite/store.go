package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/libris-app/libris/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/libris-app/libris/internal/core/domain"
	"github.com/libris-app/libris/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CatalogStore = (*Store)(nil)

// Store is a SQLite-backed CatalogStore. A single connection pool with
// WAL mode serialises conflicting writers at the storage layer.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite catalogue store in the specified data
// directory, creating it if needed.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "library.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

const bookColumns = "id, title, author, description, document_key, cover_key, created_at"

// Insert stores a new book, assigning ID and CreatedAt.
func (s *Store) Insert(ctx context.Context, book domain.Book) (*domain.Book, error) {
	book.CreatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO books (title, author, description, document_key, cover_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, book.Title, book.Author, book.Description, book.DocumentKey,
		nullString(book.CoverKey), book.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting book: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading inserted book id: %w", err)
	}
	book.ID = id

	return &book, nil
}

// Get retrieves a book by ID.
func (s *Store) Get(ctx context.Context, id int64) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+bookColumns+" FROM books WHERE id = ?", id)

	book, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning book: %w", err)
	}
	return book, nil
}

// ListAll returns every book ordered by CreatedAt descending.
func (s *Store) ListAll(ctx context.Context) ([]domain.Book, error) {
	return s.queryBooks(ctx,
		"SELECT "+bookColumns+" FROM books ORDER BY created_at DESC, id DESC")
}

// ListRecent returns the n most recently added books.
func (s *Store) ListRecent(ctx context.Context, n int) ([]domain.Book, error) {
	return s.queryBooks(ctx,
		"SELECT "+bookColumns+" FROM books ORDER BY created_at DESC, id DESC LIMIT ?", n)
}

// Search returns books whose title or author contains the substring,
// case-insensitively, ordered by CreatedAt descending. LIKE wildcards
// in the user's input are escaped so they match literally.
func (s *Store) Search(ctx context.Context, substring string) ([]domain.Book, error) {
	pattern := "%" + escapeLike(substring) + "%"
	return s.queryBooks(ctx, `
		SELECT `+bookColumns+` FROM books
		WHERE title LIKE ? ESCAPE '\' OR author LIKE ? ESCAPE '\'
		ORDER BY created_at DESC, id DESC
	`, pattern, pattern)
}

// Delete removes a book and returns the removed record. The read and
// the delete run in one transaction so no partial state is visible.
func (s *Store) Delete(ctx context.Context, id int64) (*domain.Book, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		"SELECT "+bookColumns+" FROM books WHERE id = ?", id)
	book, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning book: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("deleting book: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing delete: %w", err)
	}
	return book, nil
}

func (s *Store) queryBooks(ctx context.Context, query string, args ...any) ([]domain.Book, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book //nolint:prealloc // size unknown from query
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		books = append(books, *book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}
	return books, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*domain.Book, error) {
	var book domain.Book
	var coverKey sql.NullString
	var createdAt sql.NullTime
	if err := row.Scan(&book.ID, &book.Title, &book.Author, &book.Description,
		&book.DocumentKey, &coverKey, &createdAt); err != nil {
		return nil, err
	}
	book.CoverKey = coverKey.String
	if createdAt.Valid {
		book.CreatedAt = createdAt.Time
	}
	return &book, nil
}

// nullString converts empty strings to NULL for optional columns.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// escapeLike escapes SQL LIKE wildcards in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
