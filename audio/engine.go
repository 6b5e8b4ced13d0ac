package audio

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/pion/logging"

	"github.com/simukka/journey-soundscape/common"
)

// EngineState is the lifecycle state reported by Engine.State.
type EngineState int

const (
	StateUninitialized EngineState = iota
	StateSuspended
	StateRunning
	StateUnsupported
)

func (s EngineState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateSuspended:
		return "suspended"
	case StateRunning:
		return "running"
	case StateUnsupported:
		return "unsupported"
	}
	return fmt.Sprintf("EngineState(%d)", int(s))
}

// Options configures an Engine. Zero fields get defaults.
type Options struct {
	// NewContext creates the output context. It is called from Init, which
	// the caller runs inside a user gesture. Returning an error wrapping
	// ErrUnsupported disables the engine for the session.
	NewContext func() (Context, error)

	Timers        Timers
	Store         Store
	LoggerFactory logging.LoggerFactory
	Config        *Config
	Schedule      *Schedule
	RNG           Random
}

// Engine owns one output context and one synthesis graph. It is never torn
// down; UI code drops its reference and picks the same engine up again.
type Engine struct {
	opts Options
	cfg  *Config
	log  logging.LeveledLogger

	mu          sync.Mutex
	ctx         Context
	graph       *Graph
	seq         *Sequencer
	auto        *Automation
	drums       DrumCell
	unsupported bool
	warmed      bool

	enabled   bool
	playing   bool
	volume    float64
	progress  float64
	holdUntil float64 // Master ramps may not end before this context time
	last      Targets
}

// NewEngine creates an uninitialized engine. No audio resources are
// allocated until Init.
func NewEngine(opts Options) *Engine {
	if opts.Timers == nil {
		opts.Timers = RealTimers{}
	}
	if opts.Store == nil {
		opts.Store = NewMemoryStore()
	}
	if opts.LoggerFactory == nil {
		opts.LoggerFactory = logging.NewDefaultLoggerFactory()
	}
	if opts.Config == nil {
		opts.Config = DefaultConfig()
	}
	if opts.RNG == nil {
		opts.RNG = common.NewSessionRNG()
	}
	return &Engine{
		opts:    opts,
		cfg:     opts.Config,
		log:     opts.LoggerFactory.NewLogger("soundscape"),
		enabled: true,
		volume:  LoadVolume(opts.Store, opts.Config.DefaultVolume),
	}
}

// Init creates the context and graph, or resumes the existing context.
// It must run synchronously inside a user gesture.
func (e *Engine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initLocked()
}

func (e *Engine) initLocked() error {
	if e.unsupported {
		return ErrUnsupported
	}
	if e.ctx != nil {
		e.resumeLocked()
		return nil
	}
	if e.opts.NewContext == nil {
		e.markUnsupported(ErrUnsupported)
		return ErrUnsupported
	}

	ctx, err := e.opts.NewContext()
	if err != nil {
		if errors.Is(err, ErrUnsupported) {
			e.markUnsupported(err)
			return err
		}
		// Anything else may be a rejected gesture; the next one can retry.
		e.log.Warnf("audio init failed: %v", err)
		return fmt.Errorf("create audio context: %w", err)
	}

	e.ctx = ctx
	e.graph = BuildGraph(ctx, e.cfg, e.opts.RNG)
	e.seq = NewSequencer(e.graph, &e.drums, e.opts.Timers, e.log)
	e.auto = NewAutomation(e.cfg, e.opts.Schedule, &e.drums)
	e.log.Debugf("audio graph built at %.0f Hz", ctx.SampleRate())

	e.resumeLocked()
	e.last = e.auto.Targets(e.graph, e.progress, ctx.CurrentTime())
	e.auto.Apply(e.graph, e.last)
	if e.playing {
		e.startLocked()
	}
	return nil
}

// WarmUp is Init plus a one-frame silent buffer played straight away, which
// stricter mobile browsers need to unlock output.
func (e *Engine) WarmUp() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.initLocked(); err != nil {
		return err
	}
	if e.warmed {
		return nil
	}
	e.warmed = true
	ctx := e.ctx
	buf := ctx.CreateBuffer(1, 1, ctx.SampleRate())
	src := ctx.CreateBufferSource()
	src.SetBuffer(buf)
	src.Connect(ctx.Destination())
	src.OnEnded(src.Disconnect)
	src.Start(0)
	return nil
}

// Resume resumes a suspended context. It is a no-op before Init.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ctx != nil && !e.unsupported {
		e.resumeLocked()
	}
}

func (e *Engine) resumeLocked() {
	if e.ctx.State() != ContextSuspended {
		return
	}
	if err := e.ctx.Resume(); err != nil {
		e.log.Debugf("audio resume: %v", err)
	}
}

func (e *Engine) markUnsupported(err error) {
	e.unsupported = true
	e.log.Warnf("audio disabled: %v", err)
}

// SetEnabled is the mute control. It ramps master to the volume or to
// silence without touching play/pause.
func (e *Engine) SetEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.enabled == enabled {
		return
	}
	e.enabled = enabled
	if e.graph == nil {
		return
	}
	if enabled {
		// Bring the layers to the current position before they are heard.
		e.updateLocked()
	}
	e.rampMasterLocked(e.cfg.MuteRampTime)
}

// SetVolume clamps v to [0,1], persists it and ramps master if audible.
func (e *Engine) SetVolume(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.unsupported {
		return
	}
	e.volume = clamp01(v)
	if err := SaveVolume(e.opts.Store, e.volume); err != nil {
		e.log.Debugf("save volume: %v", err)
	}
	if e.graph != nil && e.enabled && e.playing {
		e.rampMasterLocked(e.cfg.RampTime)
	}
}

// SetPlaying handles play/pause transitions. Before Init it only records
// the state, and Init starts playback if it is set.
func (e *Engine) SetPlaying(playing bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.playing == playing {
		return
	}
	e.playing = playing
	if e.graph == nil {
		return
	}
	if playing {
		e.startLocked()
	} else {
		e.stopLocked()
	}
}

func (e *Engine) startLocked() {
	e.resumeLocked()
	now := e.ctx.CurrentTime()
	e.graph.Start(now)
	e.seq.Start()
	e.log.Debug("playback started")

	e.last = e.auto.Targets(e.graph, e.progress, now)
	e.auto.Apply(e.graph, e.last)
	e.rampMasterLocked(e.cfg.FadeInTime)
}

// Oscillators keep running so the next play is instant and click-free.
func (e *Engine) stopLocked() {
	e.rampMasterLocked(e.cfg.FadeOutTime)
	e.seq.Stop()
	e.log.Debug("playback paused")
}

// Update runs the automation pass for progress. Progress is always
// recorded; the pass runs only once initialized and enabled.
func (e *Engine) Update(progress float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.progress = clamp01(progress)
	if e.graph == nil || !e.enabled {
		return
	}
	e.updateLocked()
}

func (e *Engine) updateLocked() {
	e.last = e.auto.UpdateSoundscape(e.graph, e.progress, e.levelLocked(), e.holdUntil)
}

// levelLocked is the master level wanted before the final fade.
func (e *Engine) levelLocked() float64 {
	if !e.enabled || !e.playing {
		return 0
	}
	return e.volume
}

func (e *Engine) rampMasterLocked(dur float64) {
	now := e.ctx.CurrentTime()
	level := e.levelLocked()
	if fade, fading := e.cfg.FadeFactor(e.progress); fading && level > 0 {
		level = math.Max(level*fade, e.cfg.SilenceFloor)
	}
	e.holdUntil = now + dur
	rampTo(e.graph.Master.Gain(), level, now, e.holdUntil)
}

// State reports the lifecycle state.
func (e *Engine) State() EngineState {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case e.unsupported:
		return StateUnsupported
	case e.ctx == nil:
		return StateUninitialized
	case e.ctx.State() == ContextRunning:
		return StateRunning
	}
	return StateSuspended
}

// Volume returns the volume preference.
func (e *Engine) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

// Enabled reports whether sound is unmuted.
func (e *Engine) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled
}

// Playing reports the last play/pause state.
func (e *Engine) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// Targets returns the last applied automation targets.
func (e *Engine) Targets() Targets {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// Graph returns the synthesis graph, or nil before Init.
func (e *Engine) Graph() *Graph {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph
}

// Sequencer returns the percussion clock, or nil before Init.
func (e *Engine) Sequencer() *Sequencer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seq
}
