package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStoreTest(t *testing.T) *Store {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestStore_SetGet(t *testing.T) {
	store := setupStoreTest(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	err := store.Set("sample", payload{Name: "apples", Count: 3})
	assert.NoError(t, err)

	var out payload
	found, err := store.Get("sample", &out)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "apples", out.Name)
	assert.Equal(t, 3, out.Count)
}

func TestStore_GetMissing(t *testing.T) {
	store := setupStoreTest(t)

	var out map[string]string
	found, err := store.Get("never-set", &out)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestStore_Remove(t *testing.T) {
	store := setupStoreTest(t)

	require.NoError(t, store.Set("key", "value"))
	assert.True(t, store.Has("key"))

	assert.NoError(t, store.Remove("key"))
	assert.False(t, store.Has("key"))

	// Removing again is a no-op
	assert.NoError(t, store.Remove("key"))
}

func TestStore_OverwriteReplaces(t *testing.T) {
	store := setupStoreTest(t)

	require.NoError(t, store.Set("key", []int{1, 2, 3}))
	require.NoError(t, store.Set("key", []int{9}))

	var out []int
	found, err := store.Get("key", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []int{9}, out)
}

func TestStore_InvalidKey(t *testing.T) {
	store := setupStoreTest(t)

	assert.Error(t, store.Set("", "x"))
	assert.Error(t, store.Set("a/b", "x"))

	var out string
	_, err := store.Get(`a\b`, &out)
	assert.Error(t, err)
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	first, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set("theme", "dark"))

	second, err := New(dir)
	require.NoError(t, err)

	var theme string
	found, err := second.Get("theme", &theme)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dark", theme)
}

func TestStore_NoStrayTempFiles(t *testing.T) {
	store := setupStoreTest(t)
	require.NoError(t, store.Set("key", "value"))

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotEqual(t, ".tmp", filepath.Ext(entry.Name()))
	}
}
