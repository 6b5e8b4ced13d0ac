package audio

import (
	"errors"
	"testing"
)

type brokenStore struct{}

func (brokenStore) Get(string) (string, error) { return "", errors.New("storage disabled") }
func (brokenStore) Set(string, string) error   { return errors.New("storage disabled") }

func TestLoadVolume_Defaults(t *testing.T) {
	s := NewMemoryStore()
	if v := LoadVolume(s, 0.8); v != 0.8 {
		t.Errorf("Expected default for missing key, got %f", v)
	}
	s.Set(VolumeKey, "loud")
	if v := LoadVolume(s, 0.8); v != 0.8 {
		t.Errorf("Expected default for unparseable value, got %f", v)
	}
	s.Set(VolumeKey, "NaN")
	if v := LoadVolume(s, 0.8); v != 0.8 {
		t.Errorf("Expected default for NaN, got %f", v)
	}
	if v := LoadVolume(brokenStore{}, 0.8); v != 0.8 {
		t.Errorf("Expected default for failing store, got %f", v)
	}
	if v := LoadVolume(nil, 0.5); v != 0.5 {
		t.Errorf("Expected default for nil store, got %f", v)
	}
}

func TestLoadVolume_Clamps(t *testing.T) {
	s := NewMemoryStore()
	s.Set(VolumeKey, "3")
	if v := LoadVolume(s, 0.8); v != 1 {
		t.Errorf("Expected 1, got %f", v)
	}
}

func TestSaveVolume_DecimalString(t *testing.T) {
	s := NewMemoryStore()
	if err := SaveVolume(s, 0.37); err != nil {
		t.Fatal(err)
	}
	raw, _ := s.Get(VolumeKey)
	if raw != "0.37" {
		t.Errorf("Expected \"0.37\", got %q", raw)
	}
}

func TestDrumCell_ZeroBeforeStore(t *testing.T) {
	var c DrumCell
	if c.Load() != (DrumState{}) {
		t.Error("Expected zero state before first store")
	}
	c.Store(DrumState{Volume: 1, Tempo: 0.5})
	if got := c.Load(); got.Tempo != 0.5 {
		t.Errorf("Expected tempo 0.5, got %f", got.Tempo)
	}
}

func TestBeatInterval_Bounds(t *testing.T) {
	cfg := DefaultConfig()
	for _, tempo := range []float64{-1, 0, 0.25, 0.5, 0.75, 1, 2} {
		d := cfg.BeatInterval(tempo).Milliseconds()
		if d < 400 || d > 1000 {
			t.Errorf("Expected interval in [400,1000] ms for tempo %f, got %d", tempo, d)
		}
	}
	if d := cfg.BeatInterval(1).Milliseconds(); d != 400 {
		t.Errorf("Expected 400ms at tempo 1, got %d", d)
	}
	if d := cfg.BeatInterval(0).Milliseconds(); d != 1000 {
		t.Errorf("Expected 1000ms at tempo 0, got %d", d)
	}
}

func TestFadeFactor(t *testing.T) {
	cfg := DefaultConfig()
	if f, fading := cfg.FadeFactor(0.5); fading || f != 1 {
		t.Errorf("Expected no fade at 0.5, got %f %v", f, fading)
	}
	if f, fading := cfg.FadeFactor(1); !fading || f != 0 {
		t.Errorf("Expected full fade at 1, got %f %v", f, fading)
	}
	a, _ := cfg.FadeFactor(0.97)
	b, _ := cfg.FadeFactor(0.99)
	if b >= a {
		t.Errorf("Expected fade to fall with progress: %f then %f", a, b)
	}
}
