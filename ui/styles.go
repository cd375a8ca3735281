package ui

import (
	"github.com/charmbracelet/lipgloss"

	"glitchmaker/config"
)

// Color palette — dark theme values by default; ApplyTheme re-points the
// themed variables at the active config.Palette and rebuilds every
// lipgloss.Style from them. ColorAccent, ColorSolo and ColorFaderBg are not
// part of the palette and keep these values under every theme.
var (
	ColorPrimary    = lipgloss.Color("#7C3AED") // Purple (accent)
	ColorSecondary  = lipgloss.Color("#16c79a") // Green (clip highlight)
	ColorAccent     = lipgloss.Color("#F59E0B") // Amber
	ColorMuted      = lipgloss.Color("#e94560") // Red (selection/recording)
	ColorSolo       = lipgloss.Color("#3B82F6") // Blue
	ColorBackground = lipgloss.Color("#0d0d1a") // bg_dark
	ColorSurface    = lipgloss.Color("#1a1a30") // bg_panel
	ColorText       = lipgloss.Color("#e0e0e8") // text
	ColorTextDim    = lipgloss.Color("#8888aa") // text_dim
	ColorFader      = lipgloss.Color("#00d4aa") // playhead
	ColorFaderBg    = lipgloss.Color("#374151") // Fader background
)

// ApplyTheme re-derives the package palette from config's active theme.
// The teacher never had more than one theme; this is the light/dark switch
// original_source/utils/config.py's set_theme offers.
func ApplyTheme() {
	p := config.CurrentTheme().Colors
	ColorBackground = lipgloss.Color(p.BGDark)
	ColorSurface = lipgloss.Color(p.BGPanel)
	ColorText = lipgloss.Color(p.Text)
	ColorTextDim = lipgloss.Color(p.TextDim)
	ColorPrimary = lipgloss.Color(p.Accent)
	ColorSecondary = lipgloss.Color(p.ClipHighlight)
	ColorMuted = lipgloss.Color(p.Selection)
	ColorFader = lipgloss.Color(p.Playhead)
	rebuildStyles()
}

// Styles — built by rebuildStyles() rather than declared as var literals,
// since a theme switch needs to re-derive every style from the current
// Color* variables rather than the ones captured at package init.
var (
	BaseStyle             lipgloss.Style
	TitleStyle            lipgloss.Style
	OpStyle               lipgloss.Style
	SelectedOpStyle       lipgloss.Style
	DisabledOpStyle       lipgloss.Style
	OverriddenOpStyle     lipgloss.Style
	ClipStyle             lipgloss.Style
	SelectedClipStyle     lipgloss.Style
	NameStyle             lipgloss.Style
	TrackStyle            lipgloss.Style
	FillStyle             lipgloss.Style
	ValueStyle            lipgloss.Style
	EnabledBadgeStyle     lipgloss.Style
	DisabledBadgeStyle    lipgloss.Style
	PlayingBadgeStyle     lipgloss.Style
	PanStyle              lipgloss.Style
	HelpStyle             lipgloss.Style
	StatusStyle           lipgloss.Style
	ListStyle             lipgloss.Style
	ListItemStyle         lipgloss.Style
	ListSelectedStyle     lipgloss.Style
	MasterStyle           lipgloss.Style
)

func init() { rebuildStyles() }

// rebuildStyles recomputes every lipgloss.Style from the current Color*
// package variables. Called once at init and again by ApplyTheme.
func rebuildStyles() {
	BaseStyle = lipgloss.NewStyle().
		Background(ColorBackground).
		Foreground(ColorText)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1).
		MarginBottom(1)

	// Operation-ledger row styles.
	OpStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1)

	SelectedOpStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Padding(0, 1)

	DisabledOpStyle = lipgloss.NewStyle().
		Foreground(ColorTextDim).
		Strikethrough(true).
		Padding(0, 1)

	OverriddenOpStyle = lipgloss.NewStyle().
		Foreground(ColorTextDim).
		Faint(true).
		Padding(0, 1)

	// Timeline clip strip styles.
	ClipStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 1)

	SelectedClipStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)

	NameStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Align(lipgloss.Center)

	TrackStyle = lipgloss.NewStyle().
		Foreground(ColorFaderBg)

	FillStyle = lipgloss.NewStyle().
		Foreground(ColorFader)

	ValueStyle = lipgloss.NewStyle().
		Foreground(ColorTextDim).
		Align(lipgloss.Center)

	// Transport badges.
	EnabledBadgeStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorBackground).
		Background(ColorSecondary).
		Padding(0, 1)

	DisabledBadgeStyle = lipgloss.NewStyle().
		Foreground(ColorTextDim).
		Padding(0, 1)

	PlayingBadgeStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorBackground).
		Background(ColorSolo).
		Padding(0, 1)

	PanStyle = lipgloss.NewStyle().
		Foreground(ColorAccent)

	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextDim).
		MarginTop(1)

	StatusStyle = lipgloss.NewStyle().
		Foreground(ColorTextDim).
		MarginTop(1)

	// Generic picker list styles (preset picker, clip-file browser —
	// replaces the teacher's MIDI device list).
	ListStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(1).
		Width(50)

	ListItemStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 2)

	ListSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Padding(0, 2)

	MasterStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(ColorAccent).
		Padding(1).
		Width(12).
		Align(lipgloss.Center)
}
