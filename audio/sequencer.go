package audio

import (
	"sync"
	"time"

	"github.com/pion/logging"
)

const (
	envFloor     = 0.0001 // Exponential ramps cannot start or end at 0
	envAttack    = 0.005  // seconds
	envRelease   = 0.001
	voiceTail    = 0.05 // Extra time before a voice is stopped
	softKickTime = 0.7  // Soft kick decay relative to the main kick
)

// BeatInterval maps tempo (clamped to 0..1) onto the time between ticks:
// tempo 1 gives MinBeatInterval, tempo 0 gives MaxBeatInterval.
func (c *Config) BeatInterval(tempo float64) time.Duration {
	tempo = clamp01(tempo)
	ms := c.MinBeatInterval + (1-tempo)*(c.MaxBeatInterval-c.MinBeatInterval)
	return time.Duration(ms * float64(time.Millisecond))
}

// Sequencer is the self-rescheduling percussion clock. It is idle when no
// tick is pending and running while exactly one is.
type Sequencer struct {
	g      *Graph
	cfg    *Config
	cell   *DrumCell
	timers Timers
	log    logging.LeveledLogger

	mu      sync.Mutex
	pending Timer
	gen     uint64 // Bumped on every Start/Stop so stale ticks drop out
	step    int
}

// NewSequencer creates an idle sequencer feeding g's percussion bus.
func NewSequencer(g *Graph, cell *DrumCell, timers Timers, log logging.LeveledLogger) *Sequencer {
	return &Sequencer{
		g:      g,
		cfg:    g.cfg,
		cell:   cell,
		timers: timers,
		log:    log,
	}
}

// Start schedules the first tick. It is a no-op while running.
func (s *Sequencer) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return
	}
	s.gen++
	gen := s.gen
	s.pending = s.timers.AfterFunc(0, func() { s.tick(gen) })
	s.log.Debug("sequencer started")
}

// Stop cancels the pending tick. Voices already fired play out.
func (s *Sequencer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return
	}
	s.pending.Stop()
	s.pending = nil
	s.gen++
	s.log.Debug("sequencer stopped")
}

// Running reports whether a tick is pending.
func (s *Sequencer) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Step returns the step the next tick will play.
func (s *Sequencer) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *Sequencer) tick(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.pending == nil {
		s.mu.Unlock()
		return
	}
	state := s.cell.Load()
	step := s.step
	s.step++
	if s.step >= s.cfg.Steps {
		s.step = 0
	}
	s.pending = s.timers.AfterFunc(s.cfg.BeatInterval(state.Tempo), func() { s.tick(gen) })
	s.mu.Unlock()

	s.Trigger(step, state)
}

// Trigger fires the voices for one step and returns how many it started.
// Nothing plays when volume or tempo is zero.
func (s *Sequencer) Trigger(step int, state DrumState) int {
	volume := clamp01(state.Volume)
	intensity := clamp01(state.Intensity)
	if volume <= 0 || state.Tempo <= 0 {
		return 0
	}

	cfg := s.cfg
	now := s.g.ctx.CurrentTime()
	voices := 0

	switch step % 4 {
	case 0:
		s.kick(now, cfg.KickPeak*volume, cfg.KickDecay)
		voices++
	case 2:
		if intensity > cfg.SoftKickThreshold {
			s.kick(now, cfg.KickPeak*cfg.SoftKickScale*volume, cfg.KickDecay*softKickTime)
			voices++
		}
	}
	if step%2 == 1 && intensity > 0 {
		s.hit(now, cfg.PercPeak*intensity*volume, cfg.PercDecay)
		voices++
	}
	return voices
}

// kick is a sine with a falling pitch and an exponential gain envelope.
func (s *Sequencer) kick(now, peak, decay float64) {
	ctx := s.g.ctx
	cfg := s.cfg

	osc := ctx.CreateOscillator()
	osc.SetType(WaveSine)
	freq := osc.Frequency()
	freq.SetValueAtTime(cfg.KickStartFreq, now)
	freq.ExponentialRampToValueAtTime(cfg.KickEndFreq, now+decay)

	env := ctx.CreateGain()
	envelope(env.Gain(), now, peak, decay)

	osc.Connect(env)
	env.Connect(s.g.DrumFilter)
	osc.OnEnded(func() {
		osc.Disconnect()
		env.Disconnect()
	})
	osc.Start(now)
	osc.Stop(now + decay + voiceTail)
}

// hit is a short burst of the shared noise buffer through a bandpass.
func (s *Sequencer) hit(now, peak, decay float64) {
	ctx := s.g.ctx

	src := ctx.CreateBufferSource()
	src.SetBuffer(s.g.NoiseBurst)

	filter := newFilter(ctx, FilterBandpass, s.cfg.PercCutoff, 1.5)

	env := ctx.CreateGain()
	envelope(env.Gain(), now, peak, decay)

	src.Connect(filter)
	filter.Connect(env)
	env.Connect(s.g.DrumFilter)
	src.OnEnded(func() {
		src.Disconnect()
		filter.Disconnect()
		env.Disconnect()
	})
	src.Start(now)
	src.Stop(now + decay + voiceTail)
}

func envelope(p Param, now, peak, decay float64) {
	if peak < envFloor {
		peak = envFloor
	}
	p.SetValueAtTime(envFloor, now)
	p.LinearRampToValueAtTime(peak, now+envAttack)
	p.ExponentialRampToValueAtTime(envRelease, now+decay)
}
