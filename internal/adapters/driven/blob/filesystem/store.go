// Package filesystem provides a filesystem-backed ArtifactStore. All
// artifacts live in a single flat directory; keys embed an ingestion
// timestamp and the sanitised original filename, so two artifacts
// stored in the same second with different names still differ. Same
// name in the same second means the later write wins, which callers
// accept under normal ingestion rates.
package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/libris-app/libris/internal/core/domain"
	"github.com/libris-app/libris/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ArtifactStore = (*Store)(nil)

// keyTimeLayout gives second granularity, matching the practical
// uniqueness the contract requires.
const keyTimeLayout = "20060102_150405"

// Store is a filesystem artifact store rooted at a single directory.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates an artifact store rooted at dir, creating the
// directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// Dir returns the artifact directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Put stores the content of r under a generated key and returns it.
func (s *Store) Put(_ context.Context, _ domain.FileKind, originalName string, r io.Reader) (string, error) {
	key := s.now().Format(keyTimeLayout) + "_" + Sanitize(originalName)

	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", fmt.Errorf("create artifact %s: %w", key, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write artifact %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close artifact %s: %w", key, err)
	}
	return key, nil
}

// Open returns a reader over the stored artifact.
func (s *Store) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if !validKey(key) {
		return nil, domain.ErrNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("open artifact %s: %w", key, err)
	}
	return f, nil
}

// Delete removes an artifact. A missing key is domain.ErrNotFound so
// cascade callers can warn without failing.
func (s *Store) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return domain.ErrNotFound
	}
	if err := os.Remove(filepath.Join(s.dir, key)); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete artifact %s: %w", key, err)
	}
	return nil
}

// Sanitize strips path separators and any characters outside a safe
// allow-list from an untrusted filename. A name with nothing left
// becomes "file" so the key is never empty.
func Sanitize(name string) string {
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}

	clean := strings.Trim(b.String(), "._")
	if clean == "" {
		return "file"
	}
	return clean
}

// validKey rejects anything that could escape the flat namespace.
func validKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	return !strings.ContainsAny(key, `/\`)
}
