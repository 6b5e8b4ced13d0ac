package audio

import "math"

// Targets is the value every automated parameter should reach for one
// progress value at one context time.
type Targets struct {
	Progress float64
	Time     float64 // Context time the pan LFOs were evaluated at
	Window   string

	PadFreqs  [PadVoices]float64
	PadPans   [PadVoices]float64
	PadGain   float64
	PadCutoff float64
	PadQ      float64

	SubFreq float64
	SubGain float64

	WindGain   float64
	WindCutoff float64
	WindQ      float64
	WindPan    float64

	DroneFreqs  [DroneVoices]float64
	DronePans   [DroneVoices]float64
	DroneGain   float64
	DroneCutoff float64

	ShimmerPans   [ShimmerVoices]float64
	ShimmerGain   float64
	ShimmerCutoff float64

	Dry   float64
	Lush  float64
	Space float64

	Fading bool
	Fade   float64 // Master multiplier, 1 outside the final fade

	Drums DrumState
}

// Automation maps playhead progress onto the graph through a window
// schedule.
type Automation struct {
	Config   *Config
	Schedule *Schedule
	Drums    *DrumCell
}

// NewAutomation creates an automation pass. A nil schedule selects the
// default preset.
func NewAutomation(cfg *Config, schedule *Schedule, drums *DrumCell) *Automation {
	if schedule == nil {
		schedule = GetSchedule(DefaultScheduleName)
	}
	return &Automation{Config: cfg, Schedule: schedule, Drums: drums}
}

// Targets computes the parameter snapshot for progress at context time now.
// It reads only the graph's per-session pan phases and never mutates it.
func (a *Automation) Targets(g *Graph, progress, now float64) Targets {
	cfg := a.Config
	p := clamp01(progress)
	mix, name := a.Schedule.At(p)

	t := Targets{
		Progress:  p,
		Time:      now,
		Window:    name,
		PadGain:   mix.PadGain,
		PadCutoff: mix.PadCutoff,
		PadQ:      mix.PadQ,

		SubFreq: mix.SubFreq,
		SubGain: mix.SubGain,

		WindGain:   mix.WindGain,
		WindCutoff: mix.WindCutoff,
		WindQ:      mix.WindQ,
		WindPan:    panAt(0, cfg.WindPanDepth, cfg.WindPanRate, now, g.WindPhase),

		DroneGain:   mix.DroneGain,
		DroneCutoff: mix.DroneCutoff,

		ShimmerGain:   mix.ShimmerGain,
		ShimmerCutoff: mix.ShimmerCutoff,

		Dry:   mix.Dry,
		Lush:  mix.Lush,
		Space: mix.Space,

		Fade: 1,
		Drums: DrumState{
			Volume:    mix.DrumVolume,
			Tempo:     mix.DrumTempo,
			Intensity: mix.DrumIntensity,
		},
	}

	for i, v := range g.Pad {
		t.PadFreqs[i] = mix.PadRoot * cfg.PadRatios[i]
		t.PadPans[i] = panAt(cfg.PadSpread[i]*mix.PadWidth, cfg.PadPanDepth, cfg.PadPanRate, now, v.Phase)
	}

	// The drone sinks as the journey goes deeper.
	drift := math.Pow(2, -cfg.DroneDriftCents*p/1200)
	for i, v := range g.Drone {
		t.DroneFreqs[i] = mix.DroneRoot * cfg.DroneRatios[i] * drift
		t.DronePans[i] = panAt(cfg.DroneSpread[i]*mix.DroneWidth, cfg.DronePanDepth, cfg.DronePanRate, now, v.Phase)
	}

	for i, v := range g.Shimmer {
		t.ShimmerPans[i] = panAt(cfg.ShimmerSpread[i]*mix.ShimmerWidth, cfg.ShimmerPanDepth, cfg.ShimmerPanRate, now, v.Phase)
	}
	if p < cfg.ShimmerWindowFrom || p > cfg.ShimmerWindowTo {
		t.ShimmerGain = 0
	}

	t.Fade, t.Fading = cfg.FadeFactor(p)
	return t
}

// FadeFactor returns the master multiplier for the final fade-out and
// whether progress p is inside it. The factor falls quadratically from 1 at
// FadeStart to 0 at the end.
func (c *Config) FadeFactor(p float64) (float64, bool) {
	if p <= c.FadeStart || c.FadeStart >= 1 {
		return 1, false
	}
	r := clamp01((1 - p) / (1 - c.FadeStart))
	return r * r, true
}

// Apply ramps every layer parameter toward t and publishes the drum state.
// Master is left to ApplyMaster.
func (a *Automation) Apply(g *Graph, t Targets) {
	now := t.Time
	end := now + a.Config.RampTime

	for i, v := range g.Pad {
		rampTo(v.Osc.Frequency(), t.PadFreqs[i], now, end)
		rampTo(v.Panner.Pan(), t.PadPans[i], now, end)
	}
	rampTo(g.PadGain.Gain(), t.PadGain, now, end)
	rampTo(g.PadFilter.Frequency(), t.PadCutoff, now, end)
	rampTo(g.PadFilter.Q(), t.PadQ, now, end)

	rampTo(g.Sub.Frequency(), t.SubFreq, now, end)
	rampTo(g.SubGain.Gain(), t.SubGain, now, end)

	rampTo(g.WindGain.Gain(), t.WindGain, now, end)
	rampTo(g.WindFilter.Frequency(), t.WindCutoff, now, end)
	rampTo(g.WindFilter.Q(), t.WindQ, now, end)
	rampTo(g.WindPanner.Pan(), t.WindPan, now, end)

	for i, v := range g.Drone {
		rampTo(v.Osc.Frequency(), t.DroneFreqs[i], now, end)
		rampTo(v.Panner.Pan(), t.DronePans[i], now, end)
	}
	rampTo(g.DroneGain.Gain(), t.DroneGain, now, end)
	rampTo(g.DroneFilter.Frequency(), t.DroneCutoff, now, end)

	for i, v := range g.Shimmer {
		rampTo(v.Panner.Pan(), t.ShimmerPans[i], now, end)
	}
	rampTo(g.ShimmerGain.Gain(), t.ShimmerGain, now, end)
	rampTo(g.ShimmerFilter.Frequency(), t.ShimmerCutoff, now, end)

	rampTo(g.Dry.Gain(), t.Dry, now, end)
	rampTo(g.LushSend.Gain(), t.Lush, now, end)
	rampTo(g.SpaceSend.Gain(), t.Space, now, end)

	if a.Drums != nil {
		a.Drums.Store(t.Drums)
	}
}

// ApplyMaster drives master toward level, or toward the final fade when
// t is past FadeStart. A ramp never ends before hold, so an engine fade-in
// in progress keeps its length. level 0 leaves master to the engine.
func (a *Automation) ApplyMaster(g *Graph, t Targets, level, hold float64) {
	if level <= 0 {
		return
	}
	cfg := a.Config
	master := g.Master.Gain()
	if t.Fading {
		target := math.Max(level*t.Fade, cfg.SilenceFloor)
		anchor(master, t.Time)
		master.SetTargetAtTime(target, t.Time, cfg.FadeTimeConst)
		return
	}
	rampTo(master, level, t.Time, math.Max(t.Time+cfg.RampTime, hold))
}

// UpdateSoundscape runs one full automation pass at the graph's current
// time and returns the targets it applied.
func (a *Automation) UpdateSoundscape(g *Graph, progress, level, hold float64) Targets {
	t := a.Targets(g, progress, g.ctx.CurrentTime())
	a.Apply(g, t)
	a.ApplyMaster(g, t, level, hold)
	return t
}

// anchor pins p at its present value so new automation starts from there
// instead of jumping back to an older event.
func anchor(p Param, now float64) {
	v := p.Value()
	p.CancelScheduledValues(now)
	p.SetValueAtTime(v, now)
}

// rampTo replaces p's pending automation with a linear ramp ending at end.
func rampTo(p Param, v, now, end float64) {
	if end <= now {
		end = now + minRamp
	}
	anchor(p, now)
	p.LinearRampToValueAtTime(v, end)
}

const minRamp = 0.01

func panAt(base, depth, rate, now, phase float64) float64 {
	return clamp(base+depth*math.Sin(2*math.Pi*rate*now+phase), -1, 1)
}
