// Package native renders the soundscape graph in Go and plays it through
// the system audio device.
package native

import (
	"fmt"
	"sync"

	"github.com/simukka/journey-soundscape/audio"
)

// quantum is the render block size in frames. Parameters are evaluated at
// block boundaries.
const quantum = 128

// compactEvery is how many quanta pass between automation timeline
// compactions.
const compactEvery = 64

type block struct {
	s    [quantum][2]float64
	mono bool // Both channels carry the same signal
}

func (b *block) clear() {
	b.s = [quantum][2]float64{}
	b.mono = true
}

type renderer interface {
	base() *node
	process(out *block, q int64, t0 float64)
}

// source is a scheduled node that can end.
type source interface {
	finished(now float64) bool
	endedFunc() func()
}

// Context is an audio.Context rendering in Go. It implements beep.Streamer
// so it can be handed straight to the speaker. A new context is suspended
// and outputs silence without advancing time until Resume.
type Context struct {
	mu    sync.Mutex
	rate  float64
	state audio.ContextState

	q    int64 // Quanta rendered
	cur  block
	pos  int
	dest *node

	sources []source
	ended   []func()

	tap *Tap
}

// NewContext creates a suspended context rendering at sampleRate.
func NewContext(sampleRate float64) *Context {
	c := &Context{
		rate:  sampleRate,
		state: audio.ContextSuspended,
		pos:   quantum,
	}
	c.dest = &node{ctx: c}
	c.dest.self = destination{c.dest}
	return c
}

// SetTap copies every rendered frame into t.
func (c *Context) SetTap(t *Tap) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tap = t
}

func (c *Context) timeLocked() float64 {
	return float64(c.q*quantum) / c.rate
}

// CurrentTime implements audio.Context.
func (c *Context) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timeLocked()
}

// SampleRate implements audio.Context.
func (c *Context) SampleRate() float64 { return c.rate }

// State implements audio.Context.
func (c *Context) State() audio.ContextState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Resume implements audio.Context.
func (c *Context) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == audio.ContextClosed {
		return fmt.Errorf("native: resume: context closed")
	}
	c.state = audio.ContextRunning
	return nil
}

// Suspend stops the clock; the output plays silence.
func (c *Context) Suspend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == audio.ContextRunning {
		c.state = audio.ContextSuspended
	}
}

// Close stops rendering for good.
func (c *Context) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = audio.ContextClosed
}

// Destination implements audio.Context.
func (c *Context) Destination() audio.Node { return c.dest }

// Stream implements beep.Streamer. It never runs dry.
func (c *Context) Stream(samples [][2]float64) (int, bool) {
	c.mu.Lock()
	if c.state != audio.ContextRunning {
		tap := c.tap
		c.mu.Unlock()
		for i := range samples {
			samples[i] = [2]float64{}
		}
		if tap != nil {
			tap.Write(samples)
		}
		return len(samples), true
	}
	for i := range samples {
		if c.pos == quantum {
			c.renderLocked()
			c.pos = 0
		}
		samples[i] = c.cur.s[c.pos]
		c.pos++
	}
	ended := c.ended
	c.ended = nil
	tap := c.tap
	c.mu.Unlock()

	// Ended callbacks may touch the graph, so they run unlocked.
	for _, f := range ended {
		f()
	}
	if tap != nil {
		tap.Write(samples)
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (c *Context) Err() error { return nil }

// Render pulls frames without an output device, starting the clock if
// needed. It is used for tests and diagnostics.
func (c *Context) Render(frames int) [][2]float64 {
	c.Resume()
	out := make([][2]float64, frames)
	c.Stream(out)
	return out
}

func (c *Context) renderLocked() {
	t0 := c.timeLocked()
	b := c.dest.pull(c.q, t0)
	c.cur = *b
	for i := range c.cur.s {
		for ch := 0; ch < 2; ch++ {
			if v := c.cur.s[i][ch]; v > 1 {
				c.cur.s[i][ch] = 1
			} else if v < -1 {
				c.cur.s[i][ch] = -1
			}
		}
	}
	c.q++

	now := c.timeLocked()
	live := c.sources[:0]
	for _, s := range c.sources {
		if s.finished(now) {
			if f := s.endedFunc(); f != nil {
				c.ended = append(c.ended, f)
			}
			continue
		}
		live = append(live, s)
	}
	for i := len(live); i < len(c.sources); i++ {
		c.sources[i] = nil
	}
	c.sources = live
}

func (c *Context) schedule(s source) {
	c.sources = append(c.sources, s)
}

// node is the shared part of every graph vertex.
type node struct {
	ctx      *Context
	self     renderer
	inputs   []*node
	outputs  []*node
	params   []*param
	rendered int64 // Last rendered quantum plus one
	out      block
}

func (n *node) base() *node { return n }

func (n *node) newParam(def float64) *param {
	p := newParam(n.ctx, def)
	n.params = append(n.params, p)
	return p
}

// Connect implements audio.Node. Only nodes of the same context connect.
func (n *node) Connect(dst audio.Node) {
	d, ok := dst.(interface{ base() *node })
	if !ok || d.base().ctx != n.ctx {
		panic(fmt.Sprintf("native: cannot connect to %T", dst))
	}
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()
	to := d.base()
	n.outputs = append(n.outputs, to)
	to.inputs = append(to.inputs, n)
}

// Disconnect implements audio.Node.
func (n *node) Disconnect() {
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()
	for _, to := range n.outputs {
		for i, in := range to.inputs {
			if in == n {
				to.inputs = append(to.inputs[:i], to.inputs[i+1:]...)
				break
			}
		}
	}
	n.outputs = nil
}

// pull renders the node once per quantum. Caller holds ctx.mu.
func (n *node) pull(q int64, t0 float64) *block {
	if n.rendered == q+1 {
		return &n.out
	}
	n.rendered = q + 1
	n.self.process(&n.out, q, t0)
	if q%compactEvery == 0 {
		for _, p := range n.params {
			p.compact(t0)
		}
	}
	return &n.out
}

// mix sums every input into out.
func (n *node) mix(out *block, q int64, t0 float64) {
	out.clear()
	for _, in := range n.inputs {
		b := in.pull(q, t0)
		if !b.mono {
			out.mono = false
		}
		for i := range out.s {
			out.s[i][0] += b.s[i][0]
			out.s[i][1] += b.s[i][1]
		}
	}
}

type destination struct{ *node }

func (d destination) process(out *block, q int64, t0 float64) {
	d.mix(out, q, t0)
}
