package session

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"

	"discount24/internal/domain"
)

// Store holds the current session token and mirrors it to a TokenStore.
type Store struct {
	mu      sync.RWMutex
	token   string
	backend domain.TokenStore
	log     *slog.Logger
}

// New returns an anonymous Store persisting through backend. Call Hydrate to
// pick up a token saved by a previous run.
func New(backend domain.TokenStore, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{backend: backend, log: log}
}

// Hydrate loads the persisted token, replacing the in-memory value.
func (s *Store) Hydrate() error {
	token, ok, err := s.backend.LoadToken()
	if err != nil {
		return fmt.Errorf("hydrate session: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.token = token
	} else {
		s.token = ""
	}
	s.log.Debug("session hydrated", "authenticated", ok)
	return nil
}

// SetToken persists token and makes it current.
func (s *Store) SetToken(token string) error {
	if token == "" {
		return domain.Invalid("token", "must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.SaveToken(token); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.token = token
	return nil
}

// ClearToken removes the session. Clearing an anonymous session is a no-op.
func (s *Store) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked()
}

// Invalidate clears the session only if token is still the current one and
// reports whether it did. A stale rejection of an older token must not log
// out a session created after it.
func (s *Store) Invalidate(token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" || s.token != token {
		return false, nil
	}
	if err := s.clearLocked(); err != nil {
		return true, err
	}
	return true, nil
}

func (s *Store) clearLocked() error {
	// Memory first: even if the file cannot be removed this process is
	// anonymous from now on.
	s.token = ""
	if err := s.backend.DeleteToken(); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Token returns the current token and whether one is present.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// IsAuthenticated reports whether a non-empty token is present.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

// Fingerprint returns a short hex digest of the current token, or "" when
// anonymous. It lets a user tell sessions apart without printing the token.
//
// SHA-256 truncated to 10 bytes (20 hex chars).
func (s *Store) Fingerprint() string {
	token, ok := s.Token()
	if !ok {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:10])
}

// Compile-time assertion that Store implements domain.Session.
var _ domain.Session = (*Store)(nil)
