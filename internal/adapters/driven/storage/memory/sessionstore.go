package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/libris-app/libris/internal/core/domain"
	"github.com/libris-app/libris/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
// Sessions live for the lifetime of the process; there is no
// persistence or expiry beyond restart.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.Session)}
}

// Create issues a new session, assigning Token and CreatedAt.
func (s *SessionStore) Create(_ context.Context, session domain.Session) (domain.Session, error) {
	session.Token = uuid.New().String()
	session.CreatedAt = time.Now().UTC()
	if session.Locale == "" {
		session.Locale = domain.LocaleArabic
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return session, nil
}

// Get resolves a session token.
func (s *SessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &session, nil
}

// SetLocale updates the per-session language selection.
func (s *SessionStore) SetLocale(_ context.Context, token string, locale domain.Locale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok {
		return domain.ErrNotFound
	}
	session.Locale = locale
	s.sessions[token] = session
	return nil
}

// Delete ends a session. Deleting an unknown token is not an error.
func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
