package native

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/simukka/journey-soundscape/audio"
)

// DefaultSampleRate is the device rate used by the CLI.
const DefaultSampleRate = beep.SampleRate(48000)

// Open initializes the speaker and starts streaming a new, suspended
// context into it. A missing or unusable device is reported as
// audio.ErrUnsupported.
func Open(sampleRate beep.SampleRate, latency time.Duration) (*Context, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(latency)); err != nil {
		return nil, fmt.Errorf("%w: %v", audio.ErrUnsupported, err)
	}
	ctx := NewContext(float64(sampleRate))
	speaker.Play(ctx)
	return ctx, nil
}

// Factory returns an engine context factory that opens the speaker on
// first use. tap may be nil.
func Factory(sampleRate beep.SampleRate, latency time.Duration, tap *Tap) func() (audio.Context, error) {
	return func() (audio.Context, error) {
		ctx, err := Open(sampleRate, latency)
		if err != nil {
			return nil, err
		}
		ctx.SetTap(tap)
		return ctx, nil
	}
}

// Shutdown closes ctx and releases the speaker.
func Shutdown(ctx *Context) {
	if ctx != nil {
		ctx.Close()
	}
	speaker.Clear()
	speaker.Close()
}
