package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetTheme_SwitchesPaletteAndFallsBackToDark(t *testing.T) {
	defer SetTheme("dark")

	SetTheme("light")
	assert.Equal(t, lightPalette, CurrentTheme().Colors)

	SetTheme("nonsense")
	assert.Equal(t, darkPalette, CurrentTheme().Colors)
}

func TestSaveAndLoadSettings_RoundTrips(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	SaveSettings(map[string]any{"volume": 0.8, "theme": "dark"})
	got := LoadSettings()

	assert.Equal(t, 0.8, got["volume"])
	assert.Equal(t, "dark", got["theme"])
}

func TestLoadSettings_MissingFileReturnsEmptyMap(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	assert.Empty(t, LoadSettings())
}

func TestDataDir_CreatesAndReturnsStableDirectory(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	d1 := DataDir()
	d2 := DataDir()
	assert.Equal(t, d1, d2)
}
