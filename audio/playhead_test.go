package audio_test

import (
	"testing"

	"github.com/simukka/journey-soundscape/audio"
)

type recordingPlayer struct {
	enabled bool
	updates []float64
	plays   []bool
}

func (p *recordingPlayer) Enabled() bool           { return p.enabled }
func (p *recordingPlayer) Update(progress float64) { p.updates = append(p.updates, progress) }
func (p *recordingPlayer) SetPlaying(playing bool) { p.plays = append(p.plays, playing) }

func TestAdapter_RoutesEdges(t *testing.T) {
	p := &recordingPlayer{enabled: true}
	a := audio.NewAdapter(p)

	a.Sync(0, 210, false)
	a.Sync(0.1, 210, true)
	a.Sync(0.2, 210, true)
	a.Sync(0.3, 210, false)

	if len(p.updates) != 4 {
		t.Errorf("Expected 4 updates, got %d", len(p.updates))
	}
	want := []bool{false, true, false}
	if len(p.plays) != len(want) {
		t.Fatalf("Expected %v, got %v", want, p.plays)
	}
	for i := range want {
		if p.plays[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, p.plays)
		}
	}
}

func TestAdapter_SkipsUpdatesWhenMuted(t *testing.T) {
	p := &recordingPlayer{}
	a := audio.NewAdapter(p)
	a.Sync(0.5, 210, true)
	if len(p.updates) != 0 {
		t.Errorf("Expected no updates while muted, got %d", len(p.updates))
	}
	if len(p.plays) != 1 || !p.plays[0] {
		t.Errorf("Expected play transition regardless of mute, got %v", p.plays)
	}
}
