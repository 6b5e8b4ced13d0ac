package ui

import "github.com/charmbracelet/lipgloss"

// Palette uses ANSI colors so it follows the terminal theme.
var (
	colorBorder = lipgloss.ANSIColor(8)
	colorTitle  = lipgloss.ANSIColor(14) // bright cyan
	colorText   = lipgloss.ANSIColor(7)
	colorDim    = lipgloss.ANSIColor(8)
	colorAccent = lipgloss.ANSIColor(11)
	colorDeep   = lipgloss.ANSIColor(9) // bright red, used past the mantle
	colorVolume = lipgloss.ANSIColor(2)

	spectrumLow  = lipgloss.ANSIColor(4)  // blue
	spectrumMid  = lipgloss.ANSIColor(13) // bright magenta
	spectrumHigh = lipgloss.ANSIColor(9)
)

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2).
			Width(panelWidth + 6)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorTitle).
			Bold(true)

	phaseStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	deepStyle = lipgloss.NewStyle().
			Foreground(colorDeep)

	timeStyle = lipgloss.NewStyle().
			Foreground(colorText)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorTitle).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	seekFillStyle = lipgloss.NewStyle().Foreground(colorAccent)
	seekDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	volBarStyle   = lipgloss.NewStyle().Foreground(colorVolume)
)
