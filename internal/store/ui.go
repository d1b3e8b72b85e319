package store

import (
	"sync"

	"github.com/dotcomico/dotmarket-client/internal/storage"
	"github.com/dotcomico/dotmarket-client/pkg/logger"
)

// ThemeStorageKey is the fixed key the theme preference lives under.
const ThemeStorageKey = "theme"

// Theme is the user's presentation preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// UI holds presentation preferences, persisted across restarts. The
// default is light.
type UI struct {
	mu     sync.Mutex
	theme  Theme
	mirror *storage.Store
}

// NewUI restores the persisted theme, defaulting to light.
func NewUI(mirror *storage.Store) *UI {
	u := &UI{theme: ThemeLight, mirror: mirror}

	if mirror != nil {
		var saved Theme
		found, err := mirror.Get(ThemeStorageKey, &saved)
		if err == nil && found && (saved == ThemeLight || saved == ThemeDark) {
			u.theme = saved
		}
	}
	return u
}

// Theme returns the current preference.
func (u *UI) Theme() Theme {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.theme
}

// IsDark reports whether the dark theme is active.
func (u *UI) IsDark() bool {
	return u.Theme() == ThemeDark
}

// Toggle flips between light and dark and persists the result.
func (u *UI) Toggle() Theme {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.theme == ThemeDark {
		u.theme = ThemeLight
	} else {
		u.theme = ThemeDark
	}
	u.persistLocked()
	return u.theme
}

// SetTheme sets an explicit preference and persists it.
func (u *UI) SetTheme(theme Theme) {
	if theme != ThemeLight && theme != ThemeDark {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.theme = theme
	u.persistLocked()
}

func (u *UI) persistLocked() {
	if u.mirror == nil {
		return
	}
	if err := u.mirror.Set(ThemeStorageKey, u.theme); err != nil {
		logger.Warn("Failed to persist theme", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
