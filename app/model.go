package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"glitchmaker/dsp"
	"glitchmaker/ledger"
	"glitchmaker/playback"
	"glitchmaker/ui"
)

// quickEffects is the fixed, numbered effect bar the '1'..'9' keys apply —
// each with its registered default ParamSpec values, global in range.
// Mirrors the original's quick-access toolbar (original_source/gui/
// main_window.py's QUICK_EFFECTS), trimmed to what fits a single digit row.
var quickEffects = []dsp.EffectID{
	dsp.Volume, dsp.Filter, dsp.Reverse, dsp.Delay, dsp.Bitcrusher,
	dsp.Chorus, dsp.Phaser, dsp.Tremolo, dsp.Vinyl,
}

// tickMsg drives the periodic redraw while audio is playing.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(66*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the bubbletea root model: a *ledger.Ledger + *playback.Engine
// pair replacing the teacher's *mixer.State, with keybindings that drive
// ledger operations and transport instead of MIDI mixer channel faders.
type Model struct {
	session *Session
	engine  *playback.Engine

	selectedOp   int
	selectedClip int

	width, height int
	status        string
	err           error
}

// NewModel builds the root model for an already-loaded session.
func NewModel(s *Session) (*Model, error) {
	engine, err := playback.NewEngine(s.Ledger.SampleRate, 2)
	if err != nil {
		return nil, fmt.Errorf("app: open audio device: %w", err)
	}
	engine.Load(s.Ledger.CurrentAudio)

	return &Model{
		session: s,
		engine:  engine,
		status:  fmt.Sprintf("loaded %s", s.Source),
	}, nil
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		select {
		case <-m.engine.FinishedCh():
			m.status = "playback finished"
		default:
		}
		return m, tick()

	case error:
		m.err = msg
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := m.session.Ledger

	switch msg.String() {
	case "q", "ctrl+c":
		m.engine.Close()
		return m, tea.Quit

	case " ":
		if m.engine.IsPlaying() {
			m.engine.Pause()
		} else {
			m.engine.Resume()
		}

	case "left", "h":
		if m.selectedOp > 0 {
			m.selectedOp--
		}

	case "right", "l":
		if m.selectedOp < len(l.Ops)-1 {
			m.selectedOp++
		}

	case "up", "k":
		if m.selectedClip > 0 {
			m.selectedClip--
		}

	case "down", "j":
		if m.selectedClip < len(l.Timeline.Clips)-1 {
			m.selectedClip++
		}

	case "t":
		m.toggleSelectedOp()

	case "backspace", "delete":
		m.deleteSelectedOp(false)

	case "D":
		m.deleteSelectedOp(true)

	case "u":
		if l.Undo() {
			m.engine.Load(l.CurrentAudio)
			m.status = "undo"
		}

	case "r":
		if l.Redo() {
			m.engine.Load(l.CurrentAudio)
			m.status = "redo"
		}

	case "[":
		m.engine.Seek(m.engine.Position() - l.SampleRate)

	case "]":
		m.engine.Seek(m.engine.Position() + l.SampleRate)

	case "m":
		mt := m.engine.Metronome()
		mt.Enabled = !mt.Enabled

	default:
		if n := digitIndex(msg.String()); n >= 0 && n < len(quickEffects) {
			m.applyQuickEffect(quickEffects[n])
		}
	}

	return m, nil
}

func digitIndex(s string) int {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return -1
	}
	return int(s[0] - '1')
}

func (m *Model) applyQuickEffect(id dsp.EffectID) {
	effect, ok := dsp.Get(id)
	if !ok {
		return
	}
	op := ledger.NewOperation(ledger.KindEffect, string(id))
	op.EffectID = id
	op.IsGlobal = true
	params := dsp.Params{}
	for _, spec := range effect.Params() {
		params[spec.Key] = spec.Default
	}
	op.Params = params

	if err := m.session.Ledger.AppendProcessingOp(op); err != nil {
		m.err = err
		return
	}
	m.engine.Load(m.session.Ledger.CurrentAudio)
	m.status = "applied " + string(id)
}

func (m *Model) toggleSelectedOp() {
	l := m.session.Ledger
	if m.selectedOp < 0 || m.selectedOp >= len(l.Ops) {
		return
	}
	uid := l.Ops[m.selectedOp].UID
	if err := l.ToggleOp(uid); err != nil {
		m.err = err
		return
	}
	m.engine.Load(l.CurrentAudio)
}

func (m *Model) deleteSelectedOp(confirmed bool) {
	l := m.session.Ledger
	if m.selectedOp < 0 || m.selectedOp >= len(l.Ops) {
		return
	}
	uid := l.Ops[m.selectedOp].UID
	if err := l.DeleteOp(uid, confirmed); err != nil {
		if err == ledger.ErrConfirmationRequired {
			m.status = "press D to confirm: deleting this discards later history"
			return
		}
		m.err = err
		return
	}
	if m.selectedOp >= len(l.Ops) {
		m.selectedOp = len(l.Ops) - 1
	}
	m.engine.Load(l.CurrentAudio)
	m.status = "deleted"
}

func (m Model) View() string {
	l := m.session.Ledger

	var selectedClipID string
	if m.selectedClip >= 0 && m.selectedClip < len(l.Timeline.Clips) {
		selectedClipID = l.Timeline.Clips[m.selectedClip].ID
	}

	left, right := m.engine.GetWaveform()

	sections := []string{
		ui.TitleStyle.Render("GLITCH MAKER"),
		ui.RenderTimeline(l.Timeline, selectedClipID),
		ui.RenderOpList(l, m.selectedOp),
		ui.RenderTransport(m.engine.Position(), l.CurrentAudio.Frames(), l.SampleRate, m.engine.IsPlaying()),
		ui.RenderWaveform(left, right),
		ui.RenderVUMeter(left, right),
		ui.RenderStatus(m.status),
	}
	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
		sections = append(sections, errStyle.Render(fmt.Sprintf("error: %v", m.err)))
	}
	sections = append(sections, ui.RenderHelp())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// RunTUI loads path and runs the interactive bubbletea program.
func RunTUI(path string) error {
	session, err := Load(path)
	if err != nil {
		return err
	}
	model, err := NewModel(session)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
