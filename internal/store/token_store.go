package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"discount24/internal/domain"
)

// TokenFilename is the fixed name of the persisted session entry.
const TokenFilename = "vendorToken.json"

// tokenRecord is the plain on-disk form, used when no passphrase is set.
type tokenRecord struct {
	Token string `json:"token"`
}

// TokenFileStore persists the session token to a single file under dir.
//
// With a passphrase the token is sealed with scrypt + ChaCha20-Poly1305;
// without one it is written as plain JSON readable only by the owner.
type TokenFileStore struct {
	dir        string
	passphrase string
	mu         sync.Mutex
}

// NewTokenFileStore returns a TokenFileStore rooted at dir.
func NewTokenFileStore(dir, passphrase string) *TokenFileStore {
	return &TokenFileStore{dir: dir, passphrase: passphrase}
}

// Path returns the location of the token file.
func (s *TokenFileStore) Path() string { return filepath.Join(s.dir, TokenFilename) }

// SaveToken writes token, replacing any previous value.
func (s *TokenFileStore) SaveToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveLocked(token)
}

func (s *TokenFileStore) saveLocked(token string) error {
	if s.passphrase == "" {
		return writeJSON(s.Path(), tokenRecord{Token: token}, 0o600)
	}
	raw, err := json.Marshal(tokenRecord{Token: token})
	if err != nil {
		return err
	}
	defer wipe(raw)
	N, r, p := scryptParamsDefault()
	blob, err := seal(s.passphrase, raw, N, r, p)
	if err != nil {
		return fmt.Errorf("seal session: %w", err)
	}
	return writeFile(s.Path(), blob, 0o600)
}

// LoadToken returns the stored token and whether one was present.
//
// With a passphrase set, a plain token file left by an earlier run is sealed
// in place, and a file whose key derivation parameters are out of range is
// treated as absent.
func (s *TokenFileStore) LoadToken() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.Path())
	if err != nil {
		return "", false, err
	}
	if b == nil {
		return "", false, nil
	}
	if s.passphrase != "" {
		pt, err := open(s.passphrase, b)
		switch {
		case errors.Is(err, errNotSealed):
			return s.resealLocked(b)
		case errors.Is(err, errBadParams):
			return "", false, nil
		case err != nil:
			return "", false, err
		}
		b = pt
	}
	return decodeRecord(b)
}

// resealLocked upgrades a plain token file to the sealed form.
func (s *TokenFileStore) resealLocked(b []byte) (string, bool, error) {
	token, ok, err := decodeRecord(b)
	if err != nil || !ok {
		return "", false, nil
	}
	if err := s.saveLocked(token); err != nil {
		return "", false, fmt.Errorf("seal plain session: %w", err)
	}
	return token, true, nil
}

func decodeRecord(b []byte) (string, bool, error) {
	var rec tokenRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return "", false, fmt.Errorf("decode session file: %w", err)
	}
	if rec.Token == "" {
		return "", false, nil
	}
	return rec.Token, true, nil
}

// DeleteToken removes the token file. Deleting a missing file succeeds.
func (s *TokenFileStore) DeleteToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return removeFile(s.Path())
}

// Compile-time assertion that TokenFileStore implements domain.TokenStore.
var _ domain.TokenStore = (*TokenFileStore)(nil)
