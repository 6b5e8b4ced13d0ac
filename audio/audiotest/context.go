// Package audiotest provides a recording audio.Context and a manual timer
// clock for exercising the soundscape engine without an output device.
package audiotest

import (
	"errors"
	"sync"

	"github.com/simukka/journey-soundscape/audio"
)

// EventKind names a scheduled Param change.
type EventKind string

const (
	EventSet         EventKind = "set"
	EventLinear      EventKind = "linear"
	EventExponential EventKind = "exponential"
	EventTarget      EventKind = "target"
	EventCancel      EventKind = "cancel"
)

// Event is one recorded Param call.
type Event struct {
	Kind         EventKind
	Value        float64
	Time         float64
	TimeConstant float64
	Prev         float64 // Param value before the call
}

// Param records automation calls. Value reports the latest scheduled
// target rather than an interpolated value.
type Param struct {
	Owner  string
	Name   string
	value  float64
	Events []Event
}

func (p *Param) record(e Event) {
	e.Prev = p.value
	p.Events = append(p.Events, e)
}

// Value implements audio.Param.
func (p *Param) Value() float64 { return p.value }

// SetValueAtTime implements audio.Param.
func (p *Param) SetValueAtTime(v, t float64) {
	p.record(Event{Kind: EventSet, Value: v, Time: t})
	p.value = v
}

// LinearRampToValueAtTime implements audio.Param.
func (p *Param) LinearRampToValueAtTime(v, t float64) {
	p.record(Event{Kind: EventLinear, Value: v, Time: t})
	p.value = v
}

// ExponentialRampToValueAtTime implements audio.Param.
func (p *Param) ExponentialRampToValueAtTime(v, t float64) {
	p.record(Event{Kind: EventExponential, Value: v, Time: t})
	p.value = v
}

// SetTargetAtTime implements audio.Param.
func (p *Param) SetTargetAtTime(target, start, tc float64) {
	p.record(Event{Kind: EventTarget, Value: target, Time: start, TimeConstant: tc})
	p.value = target
}

// CancelScheduledValues implements audio.Param.
func (p *Param) CancelScheduledValues(t float64) {
	p.record(Event{Kind: EventCancel, Time: t, Value: p.value})
}

// Last returns the most recent event, or false if there is none.
func (p *Param) Last() (Event, bool) {
	if len(p.Events) == 0 {
		return Event{}, false
	}
	return p.Events[len(p.Events)-1], true
}

// Reset forgets recorded events but keeps the value.
func (p *Param) Reset() { p.Events = nil }

// Node is the shared part of every recorded node.
type Node struct {
	Kind         string
	Outputs      []audio.Node
	Disconnected int
}

// Connect implements audio.Node.
func (n *Node) Connect(dst audio.Node) { n.Outputs = append(n.Outputs, dst) }

// Disconnect implements audio.Node.
func (n *Node) Disconnect() {
	n.Outputs = nil
	n.Disconnected++
}

// Gain is a recorded GainNode.
type Gain struct {
	Node
	gain *Param
}

// Gain implements audio.GainNode.
func (g *Gain) Gain() audio.Param { return g.gain }

// GainParam exposes the concrete Param.
func (g *Gain) GainParam() *Param { return g.gain }

// Oscillator is a recorded OscillatorNode.
type Oscillator struct {
	Node
	Type   audio.Waveform
	freq   *Param
	detune *Param
	Starts int
	StopAt float64
	Stops  int
	ended  func()
}

func (o *Oscillator) SetType(w audio.Waveform) { o.Type = w }
func (o *Oscillator) Frequency() audio.Param   { return o.freq }
func (o *Oscillator) Detune() audio.Param      { return o.detune }
func (o *Oscillator) FrequencyParam() *Param   { return o.freq }
func (o *Oscillator) Start(when float64)       { o.Starts++ }
func (o *Oscillator) OnEnded(f func())         { o.ended = f }
func (o *Oscillator) Stop(when float64) {
	o.Stops++
	o.StopAt = when
}

// Filter is a recorded BiquadFilterNode.
type Filter struct {
	Node
	Type audio.FilterType
	freq *Param
	q    *Param
}

func (f *Filter) SetType(t audio.FilterType) { f.Type = t }
func (f *Filter) Frequency() audio.Param     { return f.freq }
func (f *Filter) Q() audio.Param             { return f.q }

// Panner is a recorded StereoPannerNode.
type Panner struct {
	Node
	pan *Param
}

func (p *Panner) Pan() audio.Param { return p.pan }

// Convolver is a recorded ConvolverNode.
type Convolver struct {
	Node
	Buffer audio.Buffer
}

func (c *Convolver) SetBuffer(b audio.Buffer) { c.Buffer = b }

// BufferSource is a recorded BufferSourceNode.
type BufferSource struct {
	Node
	Buffer audio.Buffer
	Loop   bool
	Starts int
	Stops  int
	StopAt float64
	ended  func()
}

func (s *BufferSource) SetBuffer(b audio.Buffer) { s.Buffer = b }
func (s *BufferSource) SetLoop(loop bool)        { s.Loop = loop }
func (s *BufferSource) Start(when float64)       { s.Starts++ }
func (s *BufferSource) OnEnded(f func())         { s.ended = f }
func (s *BufferSource) Stop(when float64) {
	s.Stops++
	s.StopAt = when
}

// Buffer is an in-memory audio.Buffer.
type Buffer struct {
	Data [][]float32
	Rate float64
}

func (b *Buffer) NumberOfChannels() int { return len(b.Data) }
func (b *Buffer) SampleRate() float64   { return b.Rate }
func (b *Buffer) Length() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}
func (b *Buffer) CopyToChannel(data []float32, ch int) { copy(b.Data[ch], data) }

// ErrResume is returned by Resume when RejectResume is set.
var ErrResume = errors.New("audiotest: resume rejected")

// Context is a recording audio.Context. Time only moves when the test moves
// it. It starts suspended, like a browser context created without a gesture.
type Context struct {
	mu sync.Mutex

	Time         float64
	Rate         float64
	state        audio.ContextState
	RejectResume bool
	ResumeCalls  int

	dest        *Node
	Params      []*Param
	Gains       []*Gain
	Oscillators []*Oscillator
	Filters     []*Filter
	Panners     []*Panner
	Convolvers  []*Convolver
	Sources     []*BufferSource
	Buffers     []*Buffer
}

// NewContext creates a suspended context at 48 kHz.
func NewContext() *Context {
	return &Context{
		Rate:  48000,
		state: audio.ContextSuspended,
		dest:  &Node{Kind: "destination"},
	}
}

// Factory returns an Options.NewContext func handing out c.
func (c *Context) Factory() func() (audio.Context, error) {
	return func() (audio.Context, error) { return c, nil }
}

func (c *Context) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Time
}

func (c *Context) SampleRate() float64 { return c.Rate }

func (c *Context) State() audio.ContextState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetState forces the context state, e.g. to simulate an OS interruption.
func (c *Context) SetState(s audio.ContextState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

func (c *Context) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ResumeCalls++
	if c.RejectResume {
		return ErrResume
	}
	if c.state == audio.ContextSuspended {
		c.state = audio.ContextRunning
	}
	return nil
}

// Advance moves context time forward.
func (c *Context) Advance(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Time += seconds
}

func (c *Context) Destination() audio.Node { return c.dest }

func (c *Context) param(owner, name string, v float64) *Param {
	p := &Param{Owner: owner, Name: name, value: v}
	c.Params = append(c.Params, p)
	return p
}

func (c *Context) CreateGain() audio.GainNode {
	c.mu.Lock()
	defer c.mu.Unlock()
	g := &Gain{Node: Node{Kind: "gain"}, gain: c.param("gain", "gain", 1)}
	c.Gains = append(c.Gains, g)
	return g
}

func (c *Context) CreateOscillator() audio.OscillatorNode {
	c.mu.Lock()
	defer c.mu.Unlock()
	o := &Oscillator{
		Node:   Node{Kind: "oscillator"},
		Type:   audio.WaveSine,
		freq:   c.param("oscillator", "frequency", 440),
		detune: c.param("oscillator", "detune", 0),
	}
	c.Oscillators = append(c.Oscillators, o)
	return o
}

func (c *Context) CreateBiquadFilter() audio.BiquadFilterNode {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := &Filter{
		Node: Node{Kind: "biquad"},
		Type: audio.FilterLowpass,
		freq: c.param("biquad", "frequency", 350),
		q:    c.param("biquad", "Q", 1),
	}
	c.Filters = append(c.Filters, f)
	return f
}

func (c *Context) CreateStereoPanner() audio.StereoPannerNode {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := &Panner{Node: Node{Kind: "panner"}, pan: c.param("panner", "pan", 0)}
	c.Panners = append(c.Panners, p)
	return p
}

func (c *Context) CreateConvolver() audio.ConvolverNode {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := &Convolver{Node: Node{Kind: "convolver"}}
	c.Convolvers = append(c.Convolvers, v)
	return v
}

func (c *Context) CreateBufferSource() audio.BufferSourceNode {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := &BufferSource{Node: Node{Kind: "buffersource"}}
	c.Sources = append(c.Sources, s)
	return s
}

func (c *Context) CreateBuffer(channels, length int, sampleRate float64) audio.Buffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	b := &Buffer{Data: make([][]float32, channels), Rate: sampleRate}
	for i := range b.Data {
		b.Data[i] = make([]float32, length)
	}
	c.Buffers = append(c.Buffers, b)
	return b
}

// OscillatorStarts returns the total Start calls over the given oscillators.
func OscillatorStarts(oscs []*Oscillator) int {
	n := 0
	for _, o := range oscs {
		n += o.Starts
	}
	return n
}

// EndVoices fires the ended callback of every stopped one-shot source whose
// stop time has passed, the way an output context would.
func (c *Context) EndVoices() int {
	c.mu.Lock()
	var due []func()
	for _, o := range c.Oscillators {
		if o.Stops > 0 && o.StopAt <= c.Time && o.ended != nil {
			due = append(due, o.ended)
			o.ended = nil
		}
	}
	for _, s := range c.Sources {
		if s.Stops > 0 && s.StopAt <= c.Time && s.ended != nil {
			due = append(due, s.ended)
			s.ended = nil
		}
	}
	c.mu.Unlock()
	for _, f := range due {
		f()
	}
	return len(due)
}
