package session_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discount24/internal/domain"
	"discount24/internal/session"
	"discount24/internal/store"
)

type failingBackend struct{ err error }

func (f failingBackend) SaveToken(string) error           { return f.err }
func (f failingBackend) LoadToken() (string, bool, error) { return "", false, f.err }
func (f failingBackend) DeleteToken() error               { return f.err }

func TestStore_SetAndClear(t *testing.T) {
	s := session.New(store.NewTokenFileStore(t.TempDir(), ""), nil)
	assert.False(t, s.IsAuthenticated())

	require.NoError(t, s.SetToken("t1"))
	tok, ok := s.Token()
	assert.True(t, ok)
	assert.Equal(t, "t1", tok)
	assert.True(t, s.IsAuthenticated())

	require.NoError(t, s.ClearToken())
	assert.False(t, s.IsAuthenticated())
	require.NoError(t, s.ClearToken(), "clear must be idempotent")
}

func TestStore_HydrateAcrossRestarts(t *testing.T) {
	home := t.TempDir()
	first := session.New(store.NewTokenFileStore(home, "pw"), nil)
	require.NoError(t, first.SetToken("persisted"))

	second := session.New(store.NewTokenFileStore(home, "pw"), nil)
	assert.False(t, second.IsAuthenticated(), "reads must not hit disk before Hydrate")
	require.NoError(t, second.Hydrate())
	tok, ok := second.Token()
	assert.True(t, ok)
	assert.Equal(t, "persisted", tok)

	require.NoError(t, second.ClearToken())
	third := session.New(store.NewTokenFileStore(home, "pw"), nil)
	require.NoError(t, third.Hydrate())
	assert.False(t, third.IsAuthenticated())
}

func TestStore_SetTokenRejectsEmpty(t *testing.T) {
	s := session.New(store.NewTokenFileStore(t.TempDir(), ""), nil)
	var ve *domain.ValidationError
	assert.ErrorAs(t, s.SetToken(""), &ve)
}

func TestStore_SetTokenKeepsOldValueOnPersistFailure(t *testing.T) {
	boom := errors.New("disk full")
	s := session.New(failingBackend{err: boom}, nil)

	err := s.SetToken("t")
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.IsAuthenticated())
}

func TestStore_ClearIsEffectiveEvenIfDeleteFails(t *testing.T) {
	boom := errors.New("read-only fs")
	s := session.New(failingBackend{err: boom}, nil)

	assert.ErrorIs(t, s.Hydrate(), boom)
	assert.ErrorIs(t, s.ClearToken(), boom)
	assert.False(t, s.IsAuthenticated())
}

func TestStore_InvalidateComparesToken(t *testing.T) {
	s := session.New(store.NewTokenFileStore(t.TempDir(), ""), nil)
	require.NoError(t, s.SetToken("new"))

	cleared, err := s.Invalidate("old")
	require.NoError(t, err)
	assert.False(t, cleared)
	assert.True(t, s.IsAuthenticated())

	cleared, err = s.Invalidate("new")
	require.NoError(t, err)
	assert.True(t, cleared)
	assert.False(t, s.IsAuthenticated())

	cleared, err = s.Invalidate("new")
	require.NoError(t, err)
	assert.False(t, cleared, "second invalidation of the same token is a no-op")
}

func TestStore_Fingerprint(t *testing.T) {
	s := session.New(store.NewTokenFileStore(t.TempDir(), ""), nil)
	assert.Empty(t, s.Fingerprint())

	require.NoError(t, s.SetToken("tok-a"))
	a := s.Fingerprint()
	assert.Len(t, a, 20)
	assert.NotContains(t, a, "tok-a")
	assert.Equal(t, a, s.Fingerprint())

	require.NoError(t, s.SetToken("tok-b"))
	assert.NotEqual(t, a, s.Fingerprint())
}
