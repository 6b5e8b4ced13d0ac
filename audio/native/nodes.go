package native

import (
	"math"

	"github.com/simukka/journey-soundscape/audio"
)

// CreateGain implements audio.Context.
func (c *Context) CreateGain() audio.GainNode {
	g := &gainNode{}
	g.ctx, g.self = c, g
	g.gain = g.newParam(1)
	return g
}

// CreateOscillator implements audio.Context.
func (c *Context) CreateOscillator() audio.OscillatorNode {
	o := &oscillator{wave: audio.WaveSine, stop: math.Inf(1)}
	o.ctx, o.self = c, o
	o.freq = o.newParam(440)
	o.detune = o.newParam(0)
	return o
}

// CreateBiquadFilter implements audio.Context.
func (c *Context) CreateBiquadFilter() audio.BiquadFilterNode {
	f := &biquad{typ: audio.FilterLowpass}
	f.ctx, f.self = c, f
	f.freq = f.newParam(350)
	f.q = f.newParam(1)
	return f
}

// CreateStereoPanner implements audio.Context.
func (c *Context) CreateStereoPanner() audio.StereoPannerNode {
	p := &panner{}
	p.ctx, p.self = c, p
	p.pan = p.newParam(0)
	return p
}

// CreateBufferSource implements audio.Context.
func (c *Context) CreateBufferSource() audio.BufferSourceNode {
	s := &bufferSource{stop: math.Inf(1)}
	s.ctx, s.self = c, s
	return s
}

// CreateBuffer implements audio.Context.
func (c *Context) CreateBuffer(channels, length int, sampleRate float64) audio.Buffer {
	b := &buffer{rate: sampleRate, data: make([][]float32, channels)}
	for i := range b.data {
		b.data[i] = make([]float32, length)
	}
	return b
}

type buffer struct {
	data [][]float32
	rate float64
}

func (b *buffer) NumberOfChannels() int { return len(b.data) }
func (b *buffer) SampleRate() float64   { return b.rate }

func (b *buffer) Length() int {
	if len(b.data) == 0 {
		return 0
	}
	return len(b.data[0])
}

func (b *buffer) CopyToChannel(data []float32, ch int) {
	if ch < len(b.data) {
		copy(b.data[ch], data)
	}
}

// === GAIN ===

type gainNode struct {
	node
	gain *param
}

func (g *gainNode) Gain() audio.Param { return g.gain }

func (g *gainNode) process(out *block, q int64, t0 float64) {
	g.mix(out, q, t0)
	v0 := g.gain.valueAt(t0)
	v1 := g.gain.valueAt(t0 + quantum/g.ctx.rate)
	for i := range out.s {
		k := v0 + (v1-v0)*float64(i)/quantum
		out.s[i][0] *= k
		out.s[i][1] *= k
	}
}

// === OSCILLATOR ===

type oscillator struct {
	node
	wave   audio.Waveform
	freq   *param
	detune *param

	phase   float64
	started bool
	start   float64
	stop    float64
	onEnded func()
}

func (o *oscillator) SetType(w audio.Waveform) {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	o.wave = w
}

func (o *oscillator) Frequency() audio.Param { return o.freq }
func (o *oscillator) Detune() audio.Param    { return o.detune }

// Start may only take effect once.
func (o *oscillator) Start(when float64) {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	if o.started {
		return
	}
	o.started = true
	o.start = when
	o.ctx.schedule(o)
}

func (o *oscillator) Stop(when float64) {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	o.stop = when
}

func (o *oscillator) OnEnded(f func()) {
	o.ctx.mu.Lock()
	defer o.ctx.mu.Unlock()
	o.onEnded = f
}

func (o *oscillator) finished(now float64) bool { return o.started && now >= o.stop }
func (o *oscillator) endedFunc() func()         { return o.onEnded }

func (o *oscillator) process(out *block, q int64, t0 float64) {
	out.clear()
	if !o.started {
		return
	}
	rate := o.ctx.rate
	f := o.freq.valueAt(t0) * math.Pow(2, o.detune.valueAt(t0)/1200)
	dt := f / rate
	for i := range out.s {
		t := t0 + float64(i)/rate
		if t < o.start || t >= o.stop {
			continue
		}
		v := waveform(o.wave, o.phase, dt)
		out.s[i] = [2]float64{v, v}
		o.phase += dt
		o.phase -= math.Floor(o.phase)
	}
}

func waveform(w audio.Waveform, phase, dt float64) float64 {
	switch w {
	case audio.WaveSawtooth:
		return 2*phase - 1 - polyBLEP(phase, dt)
	case audio.WaveSquare:
		v := -1.0
		if phase < 0.5 {
			v = 1
		}
		return v + polyBLEP(phase, dt) - polyBLEP(math.Mod(phase+0.5, 1), dt)
	case audio.WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// polyBLEP smooths the step at a waveform discontinuity.
// t is the phase in [0,1), dt the phase increment per sample.
func polyBLEP(t, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	if t < dt {
		t /= dt
		return t + t - t*t - 1
	}
	if t > 1-dt {
		t = (t - 1) / dt
		return t*t + t + t + 1
	}
	return 0
}

// === BIQUAD ===

type biquad struct {
	node
	typ  audio.FilterType
	freq *param
	q    *param

	x1, x2, y1, y2     [2]float64
	b0, b1, b2, a1, a2 float64
}

func (f *biquad) SetType(t audio.FilterType) {
	f.ctx.mu.Lock()
	defer f.ctx.mu.Unlock()
	f.typ = t
}

func (f *biquad) Frequency() audio.Param { return f.freq }
func (f *biquad) Q() audio.Param         { return f.q }

// coefficients follows RBJ's cookbook. The bandpass has 0 dB peak gain.
func (f *biquad) coefficients(fc, q float64) {
	rate := f.ctx.rate
	fc = math.Max(10, math.Min(fc, rate*0.49))
	q = math.Max(q, 0.0001)
	w0 := 2 * math.Pi * fc / rate
	cos := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	var b0, b1, b2 float64
	switch f.typ {
	case audio.FilterHighpass:
		b0 = (1 + cos) / 2
		b1 = -(1 + cos)
		b2 = (1 + cos) / 2
	case audio.FilterBandpass:
		b0 = alpha
		b1 = 0
		b2 = -alpha
	default:
		b0 = (1 - cos) / 2
		b1 = 1 - cos
		b2 = (1 - cos) / 2
	}
	a0 := 1 + alpha
	f.b0, f.b1, f.b2 = b0/a0, b1/a0, b2/a0
	f.a1, f.a2 = -2*cos/a0, (1-alpha)/a0
}

func (f *biquad) process(out *block, q int64, t0 float64) {
	f.mix(out, q, t0)
	f.coefficients(f.freq.valueAt(t0), f.q.valueAt(t0))
	for i := range out.s {
		for ch := 0; ch < 2; ch++ {
			x := out.s[i][ch]
			y := f.b0*x + f.b1*f.x1[ch] + f.b2*f.x2[ch] - f.a1*f.y1[ch] - f.a2*f.y2[ch]
			f.x2[ch] = f.x1[ch]
			f.x1[ch] = x
			f.y2[ch] = f.y1[ch]
			f.y1[ch] = y
			out.s[i][ch] = y
		}
	}
}

// === PANNER ===

type panner struct {
	node
	pan *param
}

func (p *panner) Pan() audio.Param { return p.pan }

// process uses equal-power panning: mono input is placed between the
// channels, stereo input has one side folded into the other.
func (p *panner) process(out *block, q int64, t0 float64) {
	p.mix(out, q, t0)
	mono := out.mono
	out.mono = false
	v0 := p.pan.valueAt(t0)
	v1 := p.pan.valueAt(t0 + quantum/p.ctx.rate)
	for i := range out.s {
		pan := math.Max(-1, math.Min(1, v0+(v1-v0)*float64(i)/quantum))
		l, r := out.s[i][0], out.s[i][1]
		if mono {
			x := (pan + 1) / 2
			out.s[i] = [2]float64{l * math.Cos(x*math.Pi/2), l * math.Sin(x*math.Pi/2)}
			continue
		}
		if pan <= 0 {
			x := pan + 1
			out.s[i] = [2]float64{l + r*math.Cos(x*math.Pi/2), r * math.Sin(x*math.Pi/2)}
		} else {
			x := pan
			out.s[i] = [2]float64{l * math.Cos(x*math.Pi/2), r + l*math.Sin(x*math.Pi/2)}
		}
	}
}

// === BUFFER SOURCE ===

type bufferSource struct {
	node
	buf  *buffer
	loop bool

	pos     int
	started bool
	done    bool
	start   float64
	stop    float64
	onEnded func()
}

func (s *bufferSource) SetBuffer(b audio.Buffer) {
	s.ctx.mu.Lock()
	defer s.ctx.mu.Unlock()
	s.buf, _ = b.(*buffer)
}

func (s *bufferSource) SetLoop(loop bool) {
	s.ctx.mu.Lock()
	defer s.ctx.mu.Unlock()
	s.loop = loop
}

func (s *bufferSource) Start(when float64) {
	s.ctx.mu.Lock()
	defer s.ctx.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.start = when
	s.ctx.schedule(s)
}

func (s *bufferSource) Stop(when float64) {
	s.ctx.mu.Lock()
	defer s.ctx.mu.Unlock()
	s.stop = when
}

func (s *bufferSource) OnEnded(f func()) {
	s.ctx.mu.Lock()
	defer s.ctx.mu.Unlock()
	s.onEnded = f
}

func (s *bufferSource) finished(now float64) bool {
	return s.started && (s.done || now >= s.stop)
}

func (s *bufferSource) endedFunc() func() { return s.onEnded }

func (s *bufferSource) process(out *block, q int64, t0 float64) {
	out.clear()
	if !s.started || s.done || s.buf == nil || s.buf.Length() == 0 {
		return
	}
	left := s.buf.data[0]
	right := left
	if len(s.buf.data) > 1 {
		right = s.buf.data[1]
		out.mono = false
	}
	rate := s.ctx.rate
	for i := range out.s {
		t := t0 + float64(i)/rate
		if t < s.start {
			continue
		}
		if t >= s.stop {
			s.done = true
			return
		}
		if s.pos >= len(left) {
			if !s.loop {
				s.done = true
				return
			}
			s.pos = 0
		}
		out.s[i] = [2]float64{float64(left[s.pos]), float64(right[s.pos])}
		s.pos++
	}
}
