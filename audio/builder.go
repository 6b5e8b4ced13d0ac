package audio

import "math"

// Voice is one oscillator of a bank with its own stereo position.
type Voice struct {
	Osc    OscillatorNode
	Gain   GainNode // nil for banks without per-voice gains
	Panner StereoPannerNode
	Phase  float64 // Pan LFO phase offset (radians)
}

// Graph is the persistent synthesis graph of one audio session. Every node
// the automation pass or the sequencer touches is exposed here.
type Graph struct {
	ctx Context
	cfg *Config

	// Pad: detuned oscillators through a shared lowpass
	Pad       [PadVoices]Voice
	PadFilter BiquadFilterNode
	PadGain   GainNode

	// Sub bass
	Sub     OscillatorNode
	SubGain GainNode

	// Wind texture
	Wind       BufferSourceNode
	WindFilter BiquadFilterNode
	WindPanner StereoPannerNode
	WindGain   GainNode

	// Drone: root, fifth, octave
	Drone       [DroneVoices]Voice
	DroneFilter BiquadFilterNode
	DroneGain   GainNode

	// Shimmer: high sines, randomly detuned at build
	Shimmer       [ShimmerVoices]Voice
	ShimmerDetune [ShimmerVoices]float64 // cents, chosen at build
	ShimmerFilter BiquadFilterNode
	ShimmerGain   GainNode

	// Percussion bus fed by sequencer voices
	DrumFilter BiquadFilterNode
	DrumGain   GainNode
	NoiseBurst Buffer

	// Sends: layer bus -> dry / lush reverb / space reverb -> master
	Bus       GainNode
	Dry       GainNode
	LushSend  GainNode
	Lush      ConvolverNode
	SpaceSend GainNode
	Space     ConvolverNode
	Master    GainNode

	WindPhase float64 // Wind pan LFO phase offset (radians)

	running bool
}

// BuildGraph creates the whole node graph. It must run once per context.
func BuildGraph(ctx Context, cfg *Config, rng Random) *Graph {
	g := &Graph{ctx: ctx, cfg: cfg}
	sr := ctx.SampleRate()

	// === OUTPUT & SENDS ===
	// Master starts silent so the first audible sound is always a fade-in.
	g.Master = ctx.CreateGain()
	g.Master.Gain().SetValueAtTime(0, 0)
	g.Master.Connect(ctx.Destination())

	g.Bus = ctx.CreateGain()
	g.Bus.Gain().SetValueAtTime(1, 0)

	g.Dry = ctx.CreateGain()
	g.Dry.Gain().SetValueAtTime(cfg.DryLevel, 0)
	g.Bus.Connect(g.Dry)
	g.Dry.Connect(g.Master)

	g.Lush = ctx.CreateConvolver()
	g.Lush.SetBuffer(NewBufferFrom(ctx, GenerateReverbImpulse(rng, sr, cfg.LushLength, cfg.LushDecay), sr))
	g.LushSend = ctx.CreateGain()
	g.LushSend.Gain().SetValueAtTime(cfg.LushLevel, 0)
	g.Bus.Connect(g.LushSend)
	g.LushSend.Connect(g.Lush)
	g.Lush.Connect(g.Master)

	g.Space = ctx.CreateConvolver()
	g.Space.SetBuffer(NewBufferFrom(ctx, GenerateSpaceImpulse(rng, sr, cfg.SpaceLength, cfg.SpaceDecay), sr))
	g.SpaceSend = ctx.CreateGain()
	g.SpaceSend.Gain().SetValueAtTime(cfg.SpaceLevel, 0)
	g.Bus.Connect(g.SpaceSend)
	g.SpaceSend.Connect(g.Space)
	g.Space.Connect(g.Master)

	// === PAD ===
	g.PadFilter = newFilter(ctx, FilterLowpass, 800, 0.7)
	g.PadGain = newSilentGain(ctx)
	g.PadFilter.Connect(g.PadGain)
	g.PadGain.Connect(g.Bus)
	for i := range g.Pad {
		osc := ctx.CreateOscillator()
		osc.SetType(WaveSawtooth)
		osc.Detune().SetValueAtTime(cfg.PadDetune[i], 0)

		gain := ctx.CreateGain()
		gain.Gain().SetValueAtTime(cfg.PadWeights[i], 0)

		panner := ctx.CreateStereoPanner()
		panner.Pan().SetValueAtTime(cfg.PadSpread[i], 0)

		osc.Connect(gain)
		gain.Connect(panner)
		panner.Connect(g.PadFilter)
		g.Pad[i] = Voice{Osc: osc, Gain: gain, Panner: panner, Phase: voicePhase(i, PadVoices, rng)}
	}

	// === SUB ===
	g.Sub = ctx.CreateOscillator()
	g.Sub.SetType(WaveSine)
	g.SubGain = newSilentGain(ctx)
	g.Sub.Connect(g.SubGain)
	g.SubGain.Connect(g.Bus)

	// === WIND ===
	g.Wind = ctx.CreateBufferSource()
	g.Wind.SetBuffer(NewBufferFrom(ctx, GenerateColoredNoise(rng, cfg.WindLength, sr, 2), sr))
	g.Wind.SetLoop(true)
	g.WindFilter = newFilter(ctx, FilterBandpass, 400, 0.8)
	g.WindPanner = ctx.CreateStereoPanner()
	g.WindGain = newSilentGain(ctx)
	g.Wind.Connect(g.WindFilter)
	g.WindFilter.Connect(g.WindPanner)
	g.WindPanner.Connect(g.WindGain)
	g.WindGain.Connect(g.Bus)
	g.WindPhase = rng.Random() * 2 * math.Pi

	// === DRONE ===
	g.DroneFilter = newFilter(ctx, FilterLowpass, 600, cfg.DroneQ)
	g.DroneGain = newSilentGain(ctx)
	g.DroneFilter.Connect(g.DroneGain)
	g.DroneGain.Connect(g.Bus)
	for i := range g.Drone {
		osc := ctx.CreateOscillator()
		osc.SetType(cfg.DroneWaveform)
		panner := ctx.CreateStereoPanner()
		panner.Pan().SetValueAtTime(cfg.DroneSpread[i], 0)
		osc.Connect(panner)
		panner.Connect(g.DroneFilter)
		g.Drone[i] = Voice{Osc: osc, Panner: panner, Phase: voicePhase(i, DroneVoices, rng)}
	}

	// === SHIMMER ===
	g.ShimmerFilter = newFilter(ctx, FilterBandpass, 2500, cfg.ShimmerQ)
	g.ShimmerGain = newSilentGain(ctx)
	g.ShimmerFilter.Connect(g.ShimmerGain)
	g.ShimmerGain.Connect(g.Bus)
	for i := range g.Shimmer {
		osc := ctx.CreateOscillator()
		osc.SetType(WaveSine)
		osc.Frequency().SetValueAtTime(cfg.ShimmerFreqs[i], 0)
		g.ShimmerDetune[i] = (rng.Random()*2 - 1) * cfg.ShimmerDetune
		osc.Detune().SetValueAtTime(g.ShimmerDetune[i], 0)
		panner := ctx.CreateStereoPanner()
		panner.Pan().SetValueAtTime(cfg.ShimmerSpread[i], 0)
		osc.Connect(panner)
		panner.Connect(g.ShimmerFilter)
		g.Shimmer[i] = Voice{Osc: osc, Panner: panner, Phase: voicePhase(i, ShimmerVoices, rng)}
	}

	// === PERCUSSION BUS ===
	g.DrumFilter = newFilter(ctx, FilterLowpass, cfg.DrumCutoff, 0.7)
	g.DrumGain = ctx.CreateGain()
	g.DrumGain.Gain().SetValueAtTime(cfg.DrumTrim, 0)
	g.DrumFilter.Connect(g.DrumGain)
	g.DrumGain.Connect(g.Bus)
	g.NoiseBurst = NewBufferFrom(ctx, GenerateColoredNoise(rng, cfg.NoiseBurstLength, sr, 1), sr)

	return g
}

// Context returns the output context the graph was built on.
func (g *Graph) Context() Context {
	return g.ctx
}

// Start starts every continuous source. Sources may only be started once,
// so repeated calls are no-ops.
func (g *Graph) Start(when float64) {
	if g.running {
		return
	}
	g.running = true
	for _, v := range g.Pad {
		v.Osc.Start(when)
	}
	g.Sub.Start(when)
	g.Wind.Start(when)
	for _, v := range g.Drone {
		v.Osc.Start(when)
	}
	for _, v := range g.Shimmer {
		v.Osc.Start(when)
	}
}

// Running reports whether Start has been called.
func (g *Graph) Running() bool {
	return g.running
}

func newSilentGain(ctx Context) GainNode {
	gain := ctx.CreateGain()
	gain.Gain().SetValueAtTime(0, 0)
	return gain
}

func newFilter(ctx Context, t FilterType, freq, q float64) BiquadFilterNode {
	f := ctx.CreateBiquadFilter()
	f.SetType(t)
	f.Frequency().SetValueAtTime(freq, 0)
	f.Q().SetValueAtTime(q, 0)
	return f
}

// voicePhase spreads voices evenly around the circle, rotated by a random
// per-session offset.
func voicePhase(i, n int, rng Random) float64 {
	return 2*math.Pi*float64(i)/float64(n) + rng.Random()*2*math.Pi
}
