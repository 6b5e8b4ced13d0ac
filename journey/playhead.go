// Package journey holds the playhead that drives the soundscape and the
// phase table of the descent.
package journey

import (
	"sync"
	"time"
)

// TotalDuration is the length of the journey.
const TotalDuration = 210 * time.Second

// Playhead is a normalized position in [0,1] that advances while playing
// and pauses itself on reaching the end.
type Playhead struct {
	mu       sync.Mutex
	duration time.Duration
	progress float64
	playing  bool
}

// NewPlayhead creates a paused playhead at 0. A non-positive duration
// selects TotalDuration.
func NewPlayhead(duration time.Duration) *Playhead {
	if duration <= 0 {
		duration = TotalDuration
	}
	return &Playhead{duration: duration}
}

// Duration returns the journey length.
func (p *Playhead) Duration() time.Duration { return p.duration }

// Play starts advancing. Playing at the end restarts from 0.
func (p *Playhead) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.progress >= 1 {
		p.progress = 0
	}
	p.playing = true
}

// Pause stops advancing.
func (p *Playhead) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
}

// Toggle flips between playing and paused and returns the new state.
func (p *Playhead) Toggle() bool {
	p.mu.Lock()
	playing := p.playing
	p.mu.Unlock()
	if playing {
		p.Pause()
	} else {
		p.Play()
	}
	return !playing
}

// Seek moves to progress, clamped to [0,1]. It does not change the play
// state.
func (p *Playhead) Seek(progress float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.progress = clamp01(progress)
}

// SeekBy moves by d of journey time.
func (p *Playhead) SeekBy(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.progress = clamp01(p.progress + float64(d)/float64(p.duration))
}

// Advance moves forward by elapsed wall time while playing and returns the
// new state. Reaching 1 pauses.
func (p *Playhead) Advance(elapsed time.Duration) (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing || elapsed <= 0 {
		return p.progress, p.playing
	}
	p.progress = clamp01(p.progress + float64(elapsed)/float64(p.duration))
	if p.progress >= 1 {
		p.playing = false
	}
	return p.progress, p.playing
}

// State returns the current progress and play state.
func (p *Playhead) State() (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.progress, p.playing
}

// Elapsed returns the journey time at the current progress.
func (p *Playhead) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return time.Duration(p.progress * float64(p.duration))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
