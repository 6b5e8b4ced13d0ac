package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/simukka/journey-soundscape/audio"
	"github.com/simukka/journey-soundscape/journey"
)

const (
	panelWidth = 59
	volBarW    = 22
	mantleKM   = 2900
)

// View renders the full frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	sections := []string{
		titleStyle.Render("J O U R N E Y   T O   T H E   C E N T E R"),
		m.renderPhase(),
		m.renderTimeStatus(),
		"",
		m.renderSpectrum(),
		m.renderSeekBar(),
		"",
		m.renderVolume(),
		m.renderAudio(),
		"",
		helpStyle.Render("[Space]Play/Pause  [←→]Seek  [M]ute  [+-]Vol  [Q]uit"),
	}
	return frameStyle.Render(strings.Join(sections, "\n"))
}

func (m Model) renderPhase() string {
	at := m.playhead.Elapsed()
	ph := journey.PhaseAt(at)
	depth := journey.DepthAt(at)

	style := phaseStyle
	if depth >= mantleKM {
		style = deepStyle
	}
	left := style.Render(ph.Name)
	right := dimStyle.Render(fmt.Sprintf("%.0f km", depth))
	return left + strings.Repeat(" ", gap(left, right)) + right
}

func (m Model) renderTimeStatus() string {
	timeStr := fmt.Sprintf("%s / %s", clock(m.playhead.Elapsed()), clock(m.playhead.Duration()))

	var status string
	if _, playing := m.playhead.State(); playing {
		status = statusStyle.Render("▶ Playing")
	} else {
		status = dimStyle.Render("❚❚ Paused")
	}
	left := timeStyle.Render(timeStr)
	return left + strings.Repeat(" ", gap(left, status)) + status
}

func (m Model) renderSpectrum() string {
	var samples []float64
	if m.tap != nil {
		samples = m.tap.Samples(fftSize)
	}
	return m.vis.Render(m.vis.Analyze(samples))
}

func (m Model) renderSeekBar() string {
	progress, _ := m.playhead.State()
	filled := int(progress * float64(panelWidth-1))
	return seekFillStyle.Render(strings.Repeat("━", filled)) +
		seekFillStyle.Render("●") +
		seekDimStyle.Render(strings.Repeat("━", max(0, panelWidth-filled-1)))
}

func (m Model) renderVolume() string {
	vol := m.engine.Volume()
	filled := int(vol * volBarW)
	bar := volBarStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", volBarW-filled))
	muted := ""
	if !m.engine.Enabled() {
		muted = phaseStyle.Render("  MUTED")
	}
	return labelStyle.Render("VOL ") + bar + dimStyle.Render(fmt.Sprintf(" %3.0f%%", vol*100)) + muted
}

func (m Model) renderAudio() string {
	state := m.engine.State()
	if state == audio.StateUnsupported {
		return dimStyle.Render("audio unavailable on this device")
	}
	line := labelStyle.Render("AUDIO ") + dimStyle.Render(state.String())
	if w := m.engine.Targets().Window; w != "" {
		line += dimStyle.Render("  ·  ") + phaseStyle.Render(w)
	}
	return line
}

func gap(left, right string) int {
	return max(1, panelWidth-lipgloss.Width(left)-lipgloss.Width(right))
}

func clock(d time.Duration) string {
	s := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
