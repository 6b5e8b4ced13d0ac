// Package ui is the terminal front-end: a timeline over the journey with
// play/pause, seek, mute and volume, and a spectrum of the live output.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simukka/journey-soundscape/audio"
	"github.com/simukka/journey-soundscape/journey"
)

const (
	seekStep   = 5 * time.Second
	volumeStep = 0.05
	tickRate   = 50 * time.Millisecond
)

// Engine is the part of audio.Engine the UI controls.
type Engine interface {
	audio.Player
	WarmUp() error
	SetEnabled(enabled bool)
	SetVolume(v float64)
	Volume() float64
	State() audio.EngineState
	Targets() audio.Targets
}

// Sampler supplies recent output samples for the spectrum.
type Sampler interface {
	Samples(n int) []float64
}

type tickMsg time.Time

// Model is the bubbletea model.
type Model struct {
	engine   Engine
	adapter  *audio.Adapter
	playhead *journey.Playhead
	tap      Sampler
	vis      *Visualizer

	last     time.Time
	quitting bool
	width    int
}

// NewModel wires the playhead to the engine. tap may be nil.
func NewModel(e Engine, p *journey.Playhead, tap Sampler, sampleRate float64) Model {
	return Model{
		engine:   e,
		adapter:  audio.NewAdapter(e),
		playhead: p,
		tap:      tap,
		vis:      NewVisualizer(sampleRate),
	}
}

// Init starts the tick timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), tea.WindowSize())
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles key presses, ticks and resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
		if m.quitting {
			return m, tea.Quit
		}
		m.sync()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		now := time.Time(msg)
		if !m.last.IsZero() {
			m.playhead.Advance(now.Sub(m.last))
		}
		m.last = now
		m.sync()
		return m, tickCmd()
	}
	return m, nil
}

// sync hands the playhead state to the engine.
func (m *Model) sync() {
	progress, playing := m.playhead.State()
	m.adapter.Sync(progress, m.playhead.Duration().Seconds(), playing)
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
	case " ":
		// The key press is the user gesture that may create the context.
		// Audio failures are logged by the engine and never stop the journey.
		if _, playing := m.playhead.State(); !playing {
			_ = m.engine.WarmUp()
		}
		m.playhead.Toggle()
	case "left", "h":
		m.playhead.SeekBy(-seekStep)
	case "right", "l":
		m.playhead.SeekBy(seekStep)
	case "home":
		m.playhead.Seek(0)
	case "m":
		m.engine.SetEnabled(!m.engine.Enabled())
	case "+", "=", "up":
		m.engine.SetVolume(m.engine.Volume() + volumeStep)
	case "-", "_", "down":
		m.engine.SetVolume(m.engine.Volume() - volumeStep)
	}
}
