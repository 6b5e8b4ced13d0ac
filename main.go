//go:build js
// +build js

package main

import (
	"strings"

	"github.com/gopherjs/gopherjs/js"
	"github.com/pion/logging"

	"github.com/simukka/journey-soundscape/audio"
	"github.com/simukka/journey-soundscape/audio/webaudio"
)

func options(schedule *audio.Schedule) audio.Options {
	return audio.Options{
		NewContext:    webaudio.New,
		Timers:        webaudio.Timers{},
		Store:         webaudio.LocalStorage{},
		LoggerFactory: logging.NewDefaultLoggerFactory(),
		Schedule:      schedule,
	}
}

func main() {
	audio.Configure(options(nil))
	var adapter *audio.Adapter

	// The engine is created on first use so a schedule fetched before then
	// still applies.
	engine := func() *audio.Engine {
		e := audio.Shared()
		if adapter == nil {
			adapter = audio.NewAdapter(e)
		}
		return e
	}

	js.Global.Set("Soundscape", map[string]interface{}{
		"init": func() bool {
			return engine().Init() == nil
		},
		"warmUp": func() bool {
			return engine().WarmUp() == nil
		},
		"setEnabled": func(enabled bool) {
			engine().SetEnabled(enabled)
		},
		"setVolume": func(v float64) {
			engine().SetVolume(v)
		},
		"volume": func() float64 {
			return engine().Volume()
		},
		"update": func(progress, duration float64, isPlaying bool) {
			engine()
			adapter.Sync(progress, duration, isPlaying)
		},
		"state": func() string {
			return engine().State().String()
		},
		"loadSchedule": func(data string) bool {
			s, err := audio.LoadSchedule(strings.NewReader(data))
			if err != nil {
				js.Global.Get("console").Call("warn", err.Error())
				return false
			}
			return audio.Configure(options(s))
		},
	})

	// Browsers may suspend the context while the tab is hidden.
	doc := js.Global.Get("document")
	doc.Call("addEventListener", "visibilitychange", func() {
		if doc.Get("visibilityState").String() == "visible" {
			engine().Resume()
		}
	})

	select {}
}
