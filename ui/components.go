package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"glitchmaker/ledger"
	"glitchmaker/timeline"
)

const (
	WaveformWidth  = 80
	WaveformHeight = 8
)

// RenderOpRow renders one ledger.Operation as a single line: its enabled
// badge, name, and (for processing ops) the [start:end] range it covers.
// Adapted from the teacher's RenderChannel — a single-item strip renderer
// — repurposed for a ledger row instead of a mixer channel strip.
func RenderOpRow(op *ledger.Operation, selected, overridden bool) string {
	badge := EnabledBadgeStyle.Render("●")
	if !op.Enabled {
		badge = DisabledBadgeStyle.Render("○")
	}

	label := op.Name
	if !op.Kind.IsStructural() {
		label = fmt.Sprintf("%s [%d:%d]", label, op.Start, op.End)
	}
	if op.Failed {
		label += " (failed, skipped)"
	}

	line := fmt.Sprintf("%s %s", badge, label)

	switch {
	case op.Failed:
		return DisabledOpStyle.Render(line)
	case selected:
		return SelectedOpStyle.Render(line)
	case overridden:
		return OverriddenOpStyle.Render(line)
	case !op.Enabled:
		return DisabledOpStyle.Render(line)
	default:
		return OpStyle.Render(line)
	}
}

// RenderOpList renders the full operation ledger, one row per op, in
// order, flagging overridden and selected rows.
func RenderOpList(l *ledger.Ledger, selectedIdx int) string {
	if len(l.Ops) == 0 {
		return HelpStyle.Render("(no operations yet)")
	}
	var lines []string
	for i, op := range l.Ops {
		lines = append(lines, RenderOpRow(op, i == selectedIdx, l.IsOverridden(i)))
	}
	return strings.Join(lines, "\n")
}

// RenderClip renders one timeline.Clip as a bordered block sized roughly
// proportional to its duration, replacing the teacher's RenderChannel
// fader/pan/mute strip with a clip's name, color swatch, and duration.
func RenderClip(c *timeline.Clip, selected bool, sampleRate int) string {
	var parts []string

	name := c.Name
	if len(name) > 12 {
		name = name[:12]
	}
	parts = append(parts, NameStyle.Render(name))

	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("████")
	parts = append(parts, swatch)

	secs := 0.0
	if sampleRate > 0 {
		secs = float64(c.DurationSamples()) / float64(sampleRate)
	}
	parts = append(parts, ValueStyle.Render(fmt.Sprintf("%.2fs", secs)))

	content := strings.Join(parts, "\n")
	if selected {
		return SelectedClipStyle.Render(content)
	}
	return ClipStyle.Render(content)
}

// RenderTimeline renders every clip on tl left to right in position order,
// replacing the teacher's RenderMixer channel-strip row.
func RenderTimeline(tl *timeline.Timeline, selectedID string) string {
	if len(tl.Clips) == 0 {
		return HelpStyle.Render("(timeline is empty)")
	}
	var clipViews []string
	for _, c := range tl.Clips {
		clipViews = append(clipViews, RenderClip(c, c.ID == selectedID, tl.SampleRate))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, clipViews...)
}

// RenderTransport renders the playback position, total length, and
// playing/paused state as a small status block; loop state is not shown —
// the ledger/timeline counterpart to the teacher's RenderMasterFader.
func RenderTransport(positionSamples, totalSamples, sampleRate int, playing bool) string {
	posSec := float64(positionSamples) / float64(maxInt(sampleRate, 1))
	totSec := float64(totalSamples) / float64(maxInt(sampleRate, 1))

	badge := DisabledBadgeStyle.Render("▌▌ paused")
	if playing {
		badge = PlayingBadgeStyle.Render("▶ playing")
	}

	return MasterStyle.Render(fmt.Sprintf("%s\n%.2fs / %.2fs", badge, posSec, totSec))
}

// RenderHelp renders the help bar for ledger/timeline/transport keybindings.
func RenderHelp() string {
	help := "←/→: Select op  ↑/↓: Select clip  Space: Play/Pause  U: Undo  R: Redo  Del: Delete op  Q: Quit"
	return HelpStyle.Render(help)
}

// RenderStatus renders a one-line status bar; callers pass whatever
// context string is relevant (loaded file, project path, error message).
func RenderStatus(status string) string {
	return StatusStyle.Render(status)
}

// Waveform block characters for different amplitudes (unused by the
// block-row renderer below but kept for a future sparkline variant).
var waveBlocks = []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// RenderWaveform renders a stereo waveform oscilloscope. Kept close to the
// teacher's RenderWaveform — a domain-agnostic amplitude visualizer — just
// rewired to playback.Engine.GetWaveform's return shape instead of
// audio.Engine.GetWaveform's.
func RenderWaveform(leftWave, rightWave []float64) string {
	if len(leftWave) == 0 || len(rightWave) == 0 {
		return ""
	}
	_ = waveBlocks

	width := WaveformWidth
	height := WaveformHeight

	step := len(leftWave) / width
	if step < 1 {
		step = 1
	}

	var lines []string
	headerStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	lines = append(lines, headerStyle.Render("┌─ WAVEFORM ─────────────────────────────────────────────────────────────────┐"))

	display := make([][]string, height)
	for i := range display {
		display[i] = make([]string, width)
		for j := range display[i] {
			display[i][j] = " "
		}
	}

	leftStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))
	rightStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#D946EF"))

	halfHeight := height / 2

	for x := 0; x < width && x*step < len(leftWave); x++ {
		lSample := leftWave[x*step]
		rSample := rightWave[x*step]

		lY := int((1 - lSample) * float64(halfHeight-1))
		rY := halfHeight + int((1-rSample)*float64(halfHeight-1))

		if lY < 0 {
			lY = 0
		}
		if lY >= halfHeight {
			lY = halfHeight - 1
		}
		if rY < halfHeight {
			rY = halfHeight
		}
		if rY >= height {
			rY = height - 1
		}

		display[lY][x] = "L"
		display[rY][x] = "R"
	}

	for y := 0; y < height; y++ {
		var line strings.Builder
		line.WriteString("│")
		for x := 0; x < width; x++ {
			switch display[y][x] {
			case "L":
				line.WriteString(leftStyle.Render("█"))
			case "R":
				line.WriteString(rightStyle.Render("█"))
			default:
				if y == halfHeight-1 || y == halfHeight {
					line.WriteString(lipgloss.NewStyle().Foreground(ColorSurface).Render("─"))
				} else {
					line.WriteString(" ")
				}
			}
		}
		line.WriteString("│")
		lines = append(lines, line.String())
	}

	footerStyle := lipgloss.NewStyle().Foreground(ColorTextDim)
	lines = append(lines, footerStyle.Render("└─ ")+leftStyle.Render("■ LEFT")+footerStyle.Render("  ")+rightStyle.Render("■ RIGHT")+footerStyle.Render(" ──────────────────────────────────────────────────────────┘"))

	return strings.Join(lines, "\n")
}

// RenderVUMeter renders a horizontal stereo VU meter, kept near-verbatim
// from the teacher (pure amplitude math, no mixer-specific concepts).
func RenderVUMeter(leftWave, rightWave []float64) string {
	var leftRMS, rightRMS float64
	for i := range leftWave {
		leftRMS += leftWave[i] * leftWave[i]
		rightRMS += rightWave[i] * rightWave[i]
	}
	if len(leftWave) > 0 {
		leftRMS = math.Sqrt(leftRMS / float64(len(leftWave)))
		rightRMS = math.Sqrt(rightRMS / float64(len(rightWave)))
	}

	width := 40
	leftBars := int(leftRMS * float64(width) * 2)
	rightBars := int(rightRMS * float64(width) * 2)
	if leftBars > width {
		leftBars = width
	}
	if rightBars > width {
		rightBars = width
	}

	greenStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	yellowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EAB308"))
	redStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	dimStyle := lipgloss.NewStyle().Foreground(ColorSurface)

	renderBar := func(level int) string {
		var bar strings.Builder
		for i := 0; i < width; i++ {
			if i < level {
				switch {
				case i < width*6/10:
					bar.WriteString(greenStyle.Render("█"))
				case i < width*8/10:
					bar.WriteString(yellowStyle.Render("█"))
				default:
					bar.WriteString(redStyle.Render("█"))
				}
			} else {
				bar.WriteString(dimStyle.Render("░"))
			}
		}
		return bar.String()
	}

	leftLabel := lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")).Render("L ")
	rightLabel := lipgloss.NewStyle().Foreground(lipgloss.Color("#D946EF")).Render("R ")

	return leftLabel + renderBar(leftBars) + "\n" + rightLabel + renderBar(rightBars)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
