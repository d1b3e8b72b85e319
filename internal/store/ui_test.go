package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcomico/dotmarket-client/internal/storage"
)

func TestUI_DefaultsToLight(t *testing.T) {
	mirror, err := storage.New(t.TempDir())
	require.NoError(t, err)

	ui := NewUI(mirror)
	assert.Equal(t, ThemeLight, ui.Theme())
	assert.False(t, ui.IsDark())
}

func TestUI_TogglePersists(t *testing.T) {
	mirror, err := storage.New(t.TempDir())
	require.NoError(t, err)

	ui := NewUI(mirror)
	assert.Equal(t, ThemeDark, ui.Toggle())
	assert.True(t, ui.IsDark())

	// Preference survives reconstruction
	reloaded := NewUI(mirror)
	assert.Equal(t, ThemeDark, reloaded.Theme())

	assert.Equal(t, ThemeLight, reloaded.Toggle())
	assert.Equal(t, ThemeLight, NewUI(mirror).Theme())
}

func TestUI_SetThemeValidates(t *testing.T) {
	ui := NewUI(nil)
	ui.SetTheme(ThemeDark)
	assert.Equal(t, ThemeDark, ui.Theme())

	ui.SetTheme(Theme("sepia"))
	assert.Equal(t, ThemeDark, ui.Theme())
}

func TestUI_IgnoresUnknownPersistedTheme(t *testing.T) {
	mirror, err := storage.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, mirror.Set(ThemeStorageKey, "neon"))

	ui := NewUI(mirror)
	assert.Equal(t, ThemeLight, ui.Theme())
}
