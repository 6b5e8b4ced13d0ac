package native

import (
	"math"
	"sort"
)

type eventKind int

const (
	evSet eventKind = iota
	evLinear
	evExponential
	evTarget
)

type event struct {
	kind  eventKind
	value float64
	time  float64
	tc    float64
}

// param is an automation timeline evaluated the way an AudioParam is:
// events are ordered by time, ramps run from the previous event to their
// own time, and a target approach runs until the next event.
type param struct {
	ctx    *Context
	def    float64
	events []event
}

func newParam(ctx *Context, def float64) *param {
	return &param{ctx: ctx, def: def}
}

func (p *param) insert(e event) {
	i := sort.Search(len(p.events), func(i int) bool { return p.events[i].time > e.time })
	p.events = append(p.events, event{})
	copy(p.events[i+1:], p.events[i:])
	p.events[i] = e
}

func (p *param) Value() float64 {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	return p.valueAt(p.ctx.timeLocked())
}

func (p *param) SetValueAtTime(v, t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.insert(event{kind: evSet, value: v, time: t})
}

func (p *param) LinearRampToValueAtTime(v, t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.insert(event{kind: evLinear, value: v, time: t})
}

func (p *param) ExponentialRampToValueAtTime(v, t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.insert(event{kind: evExponential, value: v, time: t})
}

func (p *param) SetTargetAtTime(target, start, tc float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.insert(event{kind: evTarget, value: target, time: start, tc: tc})
}

func (p *param) CancelScheduledValues(t float64) {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	i := sort.Search(len(p.events), func(i int) bool { return p.events[i].time >= t })
	p.events = p.events[:i]
}

// valueAt evaluates the timeline at t. Caller holds ctx.mu.
func (p *param) valueAt(t float64) float64 {
	val, at := p.def, 0.0
	var target *event

	current := func(x float64) float64 {
		if target == nil || target.tc <= 0 {
			if target != nil {
				return target.value
			}
			return val
		}
		return target.value + (val-target.value)*math.Exp(-(x-at)/target.tc)
	}

	for i := range p.events {
		e := &p.events[i]
		switch e.kind {
		case evSet:
			if e.time > t {
				return current(t)
			}
			val, at, target = e.value, e.time, nil

		case evTarget:
			if e.time > t {
				return current(t)
			}
			val = current(e.time)
			at = e.time
			target = e

		case evLinear, evExponential:
			startV := current(at)
			startT := at
			if e.time <= t {
				val, at, target = e.value, e.time, nil
				continue
			}
			if t <= startT || e.time <= startT {
				return startV
			}
			frac := (t - startT) / (e.time - startT)
			if e.kind == evLinear {
				return startV + (e.value-startV)*frac
			}
			if startV == 0 || e.value == 0 || (startV > 0) != (e.value > 0) {
				return startV
			}
			return startV * math.Pow(e.value/startV, frac)
		}
	}
	return current(t)
}

// compact drops events that can no longer affect values at or after t.
// Caller holds ctx.mu.
func (p *param) compact(t float64) {
	last := -1
	for i, e := range p.events {
		if e.time > t {
			break
		}
		if e.kind != evTarget {
			last = i
		}
	}
	if last <= 0 {
		return
	}
	e := p.events[last]
	e.kind = evSet
	p.events[last] = e
	p.events = append(p.events[:0], p.events[last:]...)
}
