package driven

import (
	"context"
	"io"

	"github.com/libris-app/libris/internal/core/domain"
)

// ArtifactStore holds uploaded binaries in a flat namespace. Keys are
// generated at write time from a timestamp plus the sanitised original
// filename, so concurrent writes need no additional locking. A
// catalogue record holds the key as a weak reference; deleting the
// record must explicitly cascade to Delete.
type ArtifactStore interface {
	// Put stores the content of r and returns the generated key.
	// The original name is sanitised before it becomes part of the
	// key; it is never used as a path verbatim.
	Put(ctx context.Context, kind domain.FileKind, originalName string, r io.Reader) (string, error)

	// Open returns a reader over the stored artifact. Returns
	// domain.ErrNotFound when the key does not resolve.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an artifact. A missing key is reported as
	// domain.ErrNotFound so cascade callers can warn, but they treat
	// it as success.
	Delete(ctx context.Context, key string) error
}
