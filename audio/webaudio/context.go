//go:build js
// +build js

// Package webaudio backs the soundscape with the browser's Web Audio API.
package webaudio

import (
	"fmt"

	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/journey-soundscape/audio"
)

// Context wraps an AudioContext.
type Context struct {
	obj  *js.Object
	dest *node
}

func defined(o *js.Object) bool {
	return o != nil && o != js.Undefined
}

// New creates an AudioContext. It returns audio.ErrUnsupported when the
// browser has no Web Audio API.
func New() (ctx audio.Context, err error) {
	ctor := js.Global.Get("AudioContext")
	if !defined(ctor) {
		ctor = js.Global.Get("webkitAudioContext")
	}
	if !defined(ctor) {
		return nil, audio.ErrUnsupported
	}

	defer func() {
		if r := recover(); r != nil {
			ctx, err = nil, fmt.Errorf("create AudioContext: %v", r)
		}
	}()
	obj := ctor.New()
	if !defined(obj.Get("createStereoPanner")) {
		obj.Call("close")
		return nil, fmt.Errorf("%w: no StereoPannerNode", audio.ErrUnsupported)
	}
	return &Context{obj: obj, dest: &node{obj.Get("destination")}}, nil
}

// Object returns the underlying AudioContext.
func (c *Context) Object() *js.Object { return c.obj }

func (c *Context) CurrentTime() float64 { return c.obj.Get("currentTime").Float() }
func (c *Context) SampleRate() float64  { return c.obj.Get("sampleRate").Float() }

func (c *Context) State() audio.ContextState {
	return audio.ContextState(c.obj.Get("state").String())
}

// Resume requests a resume. The returned promise is only logged by the
// browser when the gesture requirement is not met.
func (c *Context) Resume() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("resume: %v", r)
		}
	}()
	if c.State() == audio.ContextSuspended {
		c.obj.Call("resume")
	}
	return nil
}

func (c *Context) Destination() audio.Node { return c.dest }

func (c *Context) CreateGain() audio.GainNode {
	obj := c.obj.Call("createGain")
	return &gain{node{obj}, &param{obj.Get("gain")}}
}

func (c *Context) CreateOscillator() audio.OscillatorNode {
	obj := c.obj.Call("createOscillator")
	return &oscillator{node{obj}}
}

func (c *Context) CreateBiquadFilter() audio.BiquadFilterNode {
	obj := c.obj.Call("createBiquadFilter")
	return &biquad{node{obj}}
}

func (c *Context) CreateStereoPanner() audio.StereoPannerNode {
	obj := c.obj.Call("createStereoPanner")
	return &panner{node{obj}}
}

func (c *Context) CreateConvolver() audio.ConvolverNode {
	obj := c.obj.Call("createConvolver")
	// Impulses are normalized here the same way the native renderer does.
	obj.Set("normalize", true)
	return &convolver{node{obj}}
}

func (c *Context) CreateBufferSource() audio.BufferSourceNode {
	return &bufferSource{node{c.obj.Call("createBufferSource")}}
}

func (c *Context) CreateBuffer(channels, length int, sampleRate float64) audio.Buffer {
	return &buffer{c.obj.Call("createBuffer", channels, length, sampleRate)}
}
