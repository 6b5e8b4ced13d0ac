package ui

import (
	"math"
	"testing"
)

func TestVisualizer_SilenceDecays(t *testing.T) {
	v := NewVisualizer(48000)
	v.prev[0] = 1

	bands := v.Analyze(nil)
	if bands[0] != 0.8 {
		t.Errorf("Expected 0.8 after one decay step, got %f", bands[0])
	}
}

func TestVisualizer_SineLandsInItsBand(t *testing.T) {
	v := NewVisualizer(48000)
	samples := make([]float64, fftSize)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*100*float64(i)/48000)
	}

	var bands [numBands]float64
	for i := 0; i < 10; i++ {
		bands = v.Analyze(samples)
	}
	loudest := 0
	for b := range bands {
		if bands[b] > bands[loudest] {
			loudest = b
		}
	}
	if loudest != 2 {
		t.Errorf("Expected 100 Hz in band 2 (80-120 Hz), got band %d: %v", loudest, bands)
	}
}

func TestVisualizer_RenderWidth(t *testing.T) {
	v := NewVisualizer(48000)
	var bands [numBands]float64
	out := v.Render(bands)
	if len([]rune(out)) < numBands*barWidth {
		t.Errorf("Expected at least %d cells, got %q", numBands*barWidth, out)
	}
}
