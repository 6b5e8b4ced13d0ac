//go:build js
// +build js

package webaudio

import (
	"fmt"

	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/journey-soundscape/audio"
)

type jsNode interface {
	object() *js.Object
}

type node struct {
	obj *js.Object
}

func (n *node) object() *js.Object { return n.obj }

func (n *node) Connect(dst audio.Node) {
	d, ok := dst.(jsNode)
	if !ok {
		panic(fmt.Sprintf("webaudio: cannot connect to %T", dst))
	}
	n.obj.Call("connect", d.object())
}

// Disconnect ignores nodes that are already disconnected.
func (n *node) Disconnect() {
	defer func() { recover() }()
	n.obj.Call("disconnect")
}

type param struct {
	obj *js.Object
}

func (p *param) Value() float64 { return p.obj.Get("value").Float() }

func (p *param) SetValueAtTime(v, t float64) {
	p.obj.Call("setValueAtTime", v, t)
}

func (p *param) LinearRampToValueAtTime(v, t float64) {
	p.obj.Call("linearRampToValueAtTime", v, t)
}

func (p *param) ExponentialRampToValueAtTime(v, t float64) {
	p.obj.Call("exponentialRampToValueAtTime", v, t)
}

func (p *param) SetTargetAtTime(target, start, tc float64) {
	p.obj.Call("setTargetAtTime", target, start, tc)
}

func (p *param) CancelScheduledValues(t float64) {
	p.obj.Call("cancelScheduledValues", t)
}

type gain struct {
	node
	gain *param
}

func (g *gain) Gain() audio.Param { return g.gain }

type oscillator struct {
	node
}

func (o *oscillator) SetType(w audio.Waveform) { o.obj.Set("type", string(w)) }
func (o *oscillator) Frequency() audio.Param   { return &param{o.obj.Get("frequency")} }
func (o *oscillator) Detune() audio.Param      { return &param{o.obj.Get("detune")} }
func (o *oscillator) Start(when float64)       { o.obj.Call("start", when) }
func (o *oscillator) Stop(when float64)        { o.obj.Call("stop", when) }
func (o *oscillator) OnEnded(f func())         { o.obj.Set("onended", f) }

type biquad struct {
	node
}

func (b *biquad) SetType(t audio.FilterType) { b.obj.Set("type", string(t)) }
func (b *biquad) Frequency() audio.Param     { return &param{b.obj.Get("frequency")} }
func (b *biquad) Q() audio.Param             { return &param{b.obj.Get("Q")} }

type panner struct {
	node
}

func (p *panner) Pan() audio.Param { return &param{p.obj.Get("pan")} }

type convolver struct {
	node
}

func (c *convolver) SetBuffer(b audio.Buffer) {
	if buf, ok := b.(*buffer); ok {
		c.obj.Set("buffer", buf.obj)
	}
}

type bufferSource struct {
	node
}

func (s *bufferSource) SetBuffer(b audio.Buffer) {
	if buf, ok := b.(*buffer); ok {
		s.obj.Set("buffer", buf.obj)
	}
}

func (s *bufferSource) SetLoop(loop bool)  { s.obj.Set("loop", loop) }
func (s *bufferSource) Start(when float64) { s.obj.Call("start", when) }
func (s *bufferSource) Stop(when float64)  { s.obj.Call("stop", when) }
func (s *bufferSource) OnEnded(f func())   { s.obj.Set("onended", f) }

type buffer struct {
	obj *js.Object
}

func (b *buffer) NumberOfChannels() int { return b.obj.Get("numberOfChannels").Int() }
func (b *buffer) Length() int           { return b.obj.Get("length").Int() }
func (b *buffer) SampleRate() float64   { return b.obj.Get("sampleRate").Float() }

// CopyToChannel passes data as a Float32Array.
func (b *buffer) CopyToChannel(data []float32, ch int) {
	b.obj.Call("copyToChannel", data, ch)
}
