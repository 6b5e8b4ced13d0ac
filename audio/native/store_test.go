package native

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/simukka/journey-soundscape/audio"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")
	s := NewFileStore(path)

	if _, err := s.Get(audio.VolumeKey); !errors.Is(err, audio.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound before any write, got %v", err)
	}
	if err := audio.SaveVolume(s, 0.37); err != nil {
		t.Fatalf("Expected save to succeed, got %v", err)
	}

	reopened := NewFileStore(path)
	if got := audio.LoadVolume(reopened, 0.5); got != 0.37 {
		t.Errorf("Expected 0.37 after reopening, got %f", got)
	}
}

func TestFileStore_KeepsOtherKeys(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "prefs.json"))
	if err := s.Set("a", "1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("b", "2"); err != nil {
		t.Fatal(err)
	}
	if v, err := s.Get("a"); err != nil || v != "1" {
		t.Errorf("Expected a=1, got %q (%v)", v, err)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(path)

	if got := audio.LoadVolume(s, 0.6); got != 0.6 {
		t.Errorf("Expected default volume for a corrupt file, got %f", got)
	}
	if err := audio.SaveVolume(s, 0.2); err != nil {
		t.Fatalf("Expected save to replace a corrupt file, got %v", err)
	}
	if got := audio.LoadVolume(s, 0.6); got != 0.2 {
		t.Errorf("Expected 0.2, got %f", got)
	}
}
