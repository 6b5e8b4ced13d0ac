//go:build js
// +build js

package webaudio

import (
	"time"

	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/journey-soundscape/audio"
)

// Timers schedules sequencer ticks with setTimeout.
type Timers struct{}

type timeout struct {
	id   *js.Object
	done bool
}

func (Timers) AfterFunc(d time.Duration, f func()) audio.Timer {
	t := &timeout{}
	t.id = js.Global.Call("setTimeout", func() {
		t.done = true
		f()
	}, float64(d)/float64(time.Millisecond))
	return t
}

func (t *timeout) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	js.Global.Call("clearTimeout", t.id)
	return true
}
