package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.ozon.dev/qwestard/storefront/internal/models"
	"gitlab.ozon.dev/qwestard/storefront/internal/session"
)

func newStore(t *testing.T) (*session.Store, string) {
	path := filepath.Join(t.TempDir(), "session.json")
	return session.New(path), path
}

func TestHydrateMissingFile(t *testing.T) {
	st, _ := newStore(t)
	require.NoError(t, st.Hydrate())
	assert.False(t, st.IsAuthenticated())
	assert.Empty(t, st.Token())
	assert.Nil(t, st.User())
}

func TestSetSessionRoundTrip(t *testing.T) {
	st, path := newStore(t)
	require.NoError(t, st.Hydrate())

	user := &models.User{ID: 7, Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, st.SetSession("tok-123", user))
	assert.True(t, st.IsAuthenticated())

	// A fresh store hydrating the same file sees the same session.
	st2 := session.New(path)
	require.NoError(t, st2.Hydrate())
	assert.Equal(t, "tok-123", st2.Token())
	require.NotNil(t, st2.User())
	assert.Equal(t, "alice@example.com", st2.User().Email)
}

func TestSetUserKeepsToken(t *testing.T) {
	st, _ := newStore(t)
	require.NoError(t, st.SetSession("tok-1", &models.User{ID: 1, Name: "old"}))
	require.NoError(t, st.SetUser(&models.User{ID: 1, Name: "new"}))
	assert.Equal(t, "tok-1", st.Token())
	assert.Equal(t, "new", st.User().Name)
}

func TestClear(t *testing.T) {
	st, path := newStore(t)
	require.NoError(t, st.SetSession("tok-1", nil))
	require.NoError(t, st.Clear())
	assert.False(t, st.IsAuthenticated())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-cleared session is fine.
	assert.NoError(t, st.Clear())
}

func TestHydrateCorruptFile(t *testing.T) {
	st, path := newStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	assert.Error(t, st.Hydrate())
}
