package audio

import "errors"

// ErrUnsupported is returned by a context factory when the platform has no
// realtime audio API.
var ErrUnsupported = errors.New("audio: realtime audio API unavailable")

// ContextState mirrors the Web Audio AudioContext.state values.
type ContextState string

const (
	ContextSuspended ContextState = "suspended"
	ContextRunning   ContextState = "running"
	ContextClosed    ContextState = "closed"
)

// Waveform is an oscillator shape.
type Waveform string

const (
	WaveSine     Waveform = "sine"
	WaveSquare   Waveform = "square"
	WaveSawtooth Waveform = "sawtooth"
	WaveTriangle Waveform = "triangle"
)

// FilterType is a biquad filter response.
type FilterType string

const (
	FilterLowpass  FilterType = "lowpass"
	FilterHighpass FilterType = "highpass"
	FilterBandpass FilterType = "bandpass"
)

// Context is the output context the soundscape is built on. It follows the
// shape of the Web Audio API so the browser backend is a thin wrapper, and
// the native backend renders the same graph in Go.
type Context interface {
	CurrentTime() float64
	SampleRate() float64
	State() ContextState
	Resume() error
	Destination() Node

	CreateGain() GainNode
	CreateOscillator() OscillatorNode
	CreateBiquadFilter() BiquadFilterNode
	CreateStereoPanner() StereoPannerNode
	CreateConvolver() ConvolverNode
	CreateBufferSource() BufferSourceNode
	CreateBuffer(channels, length int, sampleRate float64) Buffer
}

// Node is any vertex of the signal graph.
type Node interface {
	Connect(dst Node)
	Disconnect()
}

// Param is an automatable node parameter (AudioParam).
type Param interface {
	Value() float64
	SetValueAtTime(value, t float64)
	LinearRampToValueAtTime(value, t float64)
	ExponentialRampToValueAtTime(value, t float64)
	SetTargetAtTime(target, start, timeConstant float64)
	CancelScheduledValues(t float64)
}

// GainNode scales its summed input.
type GainNode interface {
	Node
	Gain() Param
}

// OscillatorNode is a periodic source. Start may be called once per node.
type OscillatorNode interface {
	Node
	SetType(w Waveform)
	Frequency() Param
	Detune() Param
	Start(when float64)
	Stop(when float64)
	OnEnded(f func())
}

// BiquadFilterNode is a second-order filter.
type BiquadFilterNode interface {
	Node
	SetType(t FilterType)
	Frequency() Param
	Q() Param
}

// StereoPannerNode positions its input between -1 (left) and 1 (right).
type StereoPannerNode interface {
	Node
	Pan() Param
}

// ConvolverNode convolves its input with an impulse response.
type ConvolverNode interface {
	Node
	SetBuffer(b Buffer)
}

// BufferSourceNode plays a Buffer, optionally looping.
type BufferSourceNode interface {
	Node
	SetBuffer(b Buffer)
	SetLoop(loop bool)
	Start(when float64)
	Stop(when float64)
	OnEnded(f func())
}

// Buffer holds planar float32 sample data.
type Buffer interface {
	NumberOfChannels() int
	Length() int
	SampleRate() float64
	CopyToChannel(data []float32, channel int)
}

// NewBufferFrom allocates a context buffer and fills it with planar samples.
func NewBufferFrom(ctx Context, data [][]float32, sampleRate float64) Buffer {
	length := 0
	if len(data) > 0 {
		length = len(data[0])
	}
	buf := ctx.CreateBuffer(len(data), length, sampleRate)
	for ch, samples := range data {
		buf.CopyToChannel(samples, ch)
	}
	return buf
}
