package ui

import (
	"math"
	"math/cmplx"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/madelynnblue/go-dsp/fft"
)

const (
	numBands = 10
	fftSize  = 4096
	barWidth = 5
)

var barBlocks = []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// Band edges lean low: most of the soundscape lives under 1 kHz.
var bandEdges = [numBands + 1]float64{25, 50, 80, 120, 180, 270, 400, 650, 1100, 2500, 6000}

var (
	specLowStyle  = lipgloss.NewStyle().Foreground(spectrumLow)
	specMidStyle  = lipgloss.NewStyle().Foreground(spectrumMid)
	specHighStyle = lipgloss.NewStyle().Foreground(spectrumHigh)
)

// Visualizer turns output samples into smoothed spectrum bars.
type Visualizer struct {
	prev [numBands]float64
	sr   float64
	buf  []float64
}

// NewVisualizer creates a Visualizer for the given sample rate.
func NewVisualizer(sampleRate float64) *Visualizer {
	return &Visualizer{
		sr:  sampleRate,
		buf: make([]float64, fftSize),
	}
}

// Analyze returns normalized band levels in [0,1].
func (v *Visualizer) Analyze(samples []float64) [numBands]float64 {
	var bands [numBands]float64
	if len(samples) == 0 {
		for b := range bands {
			bands[b] = v.prev[b] * 0.8
			v.prev[b] = bands[b]
		}
		return bands
	}

	clear(v.buf)
	copy(v.buf, samples)

	// Hann window
	for i := range v.buf {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(fftSize-1)))
		v.buf[i] *= w
	}

	spectrum := fft.FFTReal(v.buf)
	binHz := v.sr / float64(fftSize)
	halfLen := len(spectrum) / 2

	for b := range bands {
		lo := max(1, int(bandEdges[b]/binHz))
		hi := min(halfLen-1, int(bandEdges[b+1]/binHz))

		var sum float64
		count := 0
		for i := lo; i <= hi; i++ {
			sum += cmplx.Abs(spectrum[i])
			count++
		}
		if count > 0 {
			sum /= float64(count)
		}
		if sum > 0 {
			bands[b] = (20*math.Log10(sum) + 10) / 50
		}
		bands[b] = max(0, min(1, bands[b]))

		// Fast attack, slow decay
		if bands[b] > v.prev[b] {
			bands[b] = bands[b]*0.6 + v.prev[b]*0.4
		} else {
			bands[b] = bands[b]*0.25 + v.prev[b]*0.75
		}
		v.prev[b] = bands[b]
	}
	return bands
}

// Render draws band levels as colored bars.
func (v *Visualizer) Render(bands [numBands]float64) string {
	var sb strings.Builder
	for i, level := range bands {
		idx := int(level * float64(len(barBlocks)-1))
		idx = max(0, min(idx, len(barBlocks)-1))

		style := specLowStyle
		switch {
		case level > 0.75:
			style = specHighStyle
		case level > 0.45:
			style = specMidStyle
		}
		sb.WriteString(style.Render(strings.Repeat(barBlocks[idx], barWidth)))
		if i < numBands-1 {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}
