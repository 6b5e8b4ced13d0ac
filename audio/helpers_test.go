package audio_test

import (
	"io"
	"math"
	"testing"

	"github.com/pion/logging"

	"github.com/simukka/journey-soundscape/audio"
	"github.com/simukka/journey-soundscape/audio/audiotest"
	"github.com/simukka/journey-soundscape/common"
)

const tolerance = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func quietLoggers(w io.Writer) logging.LoggerFactory {
	if w == nil {
		w = io.Discard
	}
	return &logging.DefaultLoggerFactory{
		Writer:          w,
		DefaultLogLevel: logging.LogLevelWarn,
		ScopeLevels:     map[string]logging.LogLevel{},
	}
}

type rig struct {
	ctx    *audiotest.Context
	clock  *audiotest.Clock
	store  *audio.MemoryStore
	engine *audio.Engine
}

func newRig(t *testing.T) *rig {
	t.Helper()
	ctx := audiotest.NewContext()
	clock := audiotest.NewClock(ctx)
	store := audio.NewMemoryStore()
	e := audio.NewEngine(audio.Options{
		NewContext:    ctx.Factory(),
		Timers:        clock,
		Store:         store,
		LoggerFactory: quietLoggers(nil),
		RNG:           common.NewSeededRNG(1),
	})
	return &rig{ctx: ctx, clock: clock, store: store, engine: e}
}

func (r *rig) master(t *testing.T) *audiotest.Param {
	t.Helper()
	g := r.engine.Graph()
	if g == nil {
		t.Fatal("Expected graph after Init")
	}
	return g.Master.Gain().(*audiotest.Param)
}

// continuous returns the graph's long-lived sources.
func continuous(g *audio.Graph) ([]*audiotest.Oscillator, *audiotest.BufferSource) {
	var oscs []*audiotest.Oscillator
	for _, v := range g.Pad {
		oscs = append(oscs, v.Osc.(*audiotest.Oscillator))
	}
	oscs = append(oscs, g.Sub.(*audiotest.Oscillator))
	for _, v := range g.Drone {
		oscs = append(oscs, v.Osc.(*audiotest.Oscillator))
	}
	for _, v := range g.Shimmer {
		oscs = append(oscs, v.Osc.(*audiotest.Oscillator))
	}
	return oscs, g.Wind.(*audiotest.BufferSource)
}

func newGraph(seed uint32) (*audiotest.Context, *audio.Graph) {
	ctx := audiotest.NewContext()
	g := audio.BuildGraph(ctx, audio.DefaultConfig(), common.NewSeededRNG(seed))
	return ctx, g
}
