package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRegistry_RoundTrip(t *testing.T) {
	r := NewMemoryRegistry()

	ok, err := r.Contains("testuser123")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Add("testuser123"))
	ok, err = r.Contains("testuser123")
	require.NoError(t, err)
	assert.True(t, ok)

	// Повторное добавление идемпотентно
	require.NoError(t, r.Add("testuser123"))

	require.NoError(t, r.Remove("testuser123"))
	ok, err = r.Contains("testuser123")
	require.NoError(t, err)
	assert.False(t, ok)

	// Повторное удаление — no-op
	require.NoError(t, r.Remove("testuser123"))
	require.NoError(t, r.Close())
}

func TestSQLiteRegistry_RoundTrip(t *testing.T) {
	r, err := NewSQLiteRegistry(Config{
		Type: "sqlite",
		Path: filepath.Join(t.TempDir(), "registry.db"),
		Name: "activeUsers",
	})
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.Add("testuser123"))
	ok, err := r.Contains("testuser123")
	require.NoError(t, err)
	assert.True(t, ok)

	// Идемпотентность на уровне БД
	require.NoError(t, r.Add("testuser123"))

	require.NoError(t, r.Remove("testuser123"))
	ok, err = r.Contains("testuser123")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNew_SelectsImplementation(t *testing.T) {
	mem, err := New(Config{Type: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryRegistry{}, mem)

	_, err = New(Config{Type: "etcd"})
	assert.Error(t, err)
}
