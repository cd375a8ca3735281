// Package config holds application constants and the persisted settings
// file, plus the dark/light color palettes the ui package renders with.
//
// Grounded on original_source/utils/config.py: the same constant names
// (translated to Go naming), the same dark/light COLORS_DARK/COLORS_LIGHT
// palettes, and the same best-effort (never-fails) settings JSON load/save.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	AppName    = "Glitch Maker"
	AppVersion = "1.0"

	// RecordingSampleRate and RecordingChannels are the format new clips
	// are captured/decoded at before being placed on the timeline.
	RecordingSampleRate = 44100
	RecordingChannels   = 2
)

// AudioExtensions lists the audio file extensions recognised for clip
// ingestion. decode.Load decodes only part of this set: it returns
// ErrUnsupportedFormat for .m4a and .aac, and it also accepts .aif, which
// is not listed here. ProjectExtension (.gspi) is the save-format
// counterpart.
var AudioExtensions = map[string]bool{
	".wav": true, ".mp3": true, ".m4a": true, ".flac": true,
	".ogg": true, ".aiff": true, ".aac": true,
}

const ProjectExtension = ".gspi"

// Palette is a named set of UI colors, hex strings ready for
// lipgloss.Color(...).
type Palette struct {
	BGDark          string
	BGMedium        string
	BGPanel         string
	BGLight         string
	Accent          string
	AccentHover     string
	AccentSecondary string
	Border          string
	Text            string
	TextDim         string
	ButtonBG        string
	ButtonHover     string
	Scrollbar       string
	Playhead        string
	Selection       string
	Recording       string
	ClipHighlight   string
}

var darkPalette = Palette{
	BGDark: "#0d0d1a", BGMedium: "#151528", BGPanel: "#1a1a30", BGLight: "#222244",
	Accent: "#6c5ce7", AccentHover: "#7c6cf7", AccentSecondary: "#533483",
	Border: "#2a2a4a", Text: "#e0e0e8", TextDim: "#8888aa",
	ButtonBG: "#252545", ButtonHover: "#303060", Scrollbar: "#3a3a5a",
	Playhead: "#00d4aa", Selection: "#e94560", Recording: "#e94560", ClipHighlight: "#16c79a",
}

var lightPalette = Palette{
	BGDark: "#f0f0f5", BGMedium: "#e4e4ec", BGPanel: "#eaeaf2", BGLight: "#ffffff",
	Accent: "#6c5ce7", AccentHover: "#7c6cf7", AccentSecondary: "#8b7cf0",
	Border: "#c8c8d8", Text: "#1a1a2e", TextDim: "#666680",
	ButtonBG: "#d8d8e8", ButtonHover: "#c0c0d8", Scrollbar: "#b0b0c8",
	Playhead: "#00b894", Selection: "#e94560", Recording: "#e94560", ClipHighlight: "#16c79a",
}

// TagColors assigns a fixed accent color to each built-in preset tag.
var TagColors = map[string]string{
	"Autotune": "#f72585", "Hyperpop": "#ff006e", "Digicore": "#7209b7",
	"Emocore": "#e94560", "Glitch": "#9b2226", "Vocal": "#4cc9f0",
	"Ambient": "#2a9d8f", "Lo-fi": "#606c38", "Aggressive": "#bb3e03",
	"Experimental": "#b5179e", "Electro": "#0ea5e9", "Tape": "#6b705c",
	"Clean": "#16c79a", "Subtle": "#457b9d", "Dariacore": "#c74b50",
	"Rhythmic": "#e07c24", "Psychedelic": "#6d597a", "Bass": "#264653",
	"Cinematic": "#3d5a80",
}

// Theme is the active color scheme, switched at runtime.
type Theme struct {
	name    string
	Colors  Palette
}

var activeTheme = Theme{name: "dark", Colors: darkPalette}

// CurrentTheme returns the active theme.
func CurrentTheme() Theme { return activeTheme }

// SetTheme switches between "dark" and "light"; any other value keeps dark.
func SetTheme(name string) {
	if name == "light" {
		activeTheme = Theme{name: "light", Colors: lightPalette}
	} else {
		activeTheme = Theme{name: "dark", Colors: darkPalette}
	}
}

// dataDir returns the portable per-user settings directory, creating it if
// needed. Unlike the original's exe-relative layout (meaningful for a
// frozen PyInstaller build), this uses os.UserConfigDir — the idiomatic Go
// equivalent for a non-frozen binary.
func dataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	d := filepath.Join(base, "glitchmaker")
	_ = os.MkdirAll(d, 0o755)
	return d
}

// DataDir exposes dataDir for other packages that need a per-user storage
// root alongside settings.json — namely preset.NewManager's user preset/tag
// files.
func DataDir() string { return dataDir() }

func settingsPath() string {
	return filepath.Join(dataDir(), "settings.json")
}

// LoadSettings reads settings.json, returning an empty map on any error —
// matching the original's never-fails load_settings.
func LoadSettings() map[string]any {
	data, err := os.ReadFile(settingsPath())
	if err != nil {
		return map[string]any{}
	}
	var s map[string]any
	if err := json.Unmarshal(data, &s); err != nil {
		return map[string]any{}
	}
	return s
}

// SaveSettings writes settings.json, silently doing nothing on error —
// matching the original's never-fails save_settings.
func SaveSettings(s map[string]any) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(settingsPath(), data, 0o644)
}
