package driven

import (
	"context"

	"github.com/libris-app/libris/internal/core/domain"
)

// SessionStore is the key/value session backing consumed by the HTTP
// boundary. The core only ever sees the derived domain.RequestInfo;
// it never reads sessions directly.
type SessionStore interface {
	// Create issues a new session, assigning Token and CreatedAt.
	Create(ctx context.Context, session domain.Session) (domain.Session, error)

	// Get resolves a session token. Returns domain.ErrNotFound for
	// unknown or expired tokens.
	Get(ctx context.Context, token string) (*domain.Session, error)

	// SetLocale updates the per-session language selection.
	SetLocale(ctx context.Context, token string, locale domain.Locale) error

	// Delete ends a session. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}
