package audio_test

import (
	"testing"

	"github.com/simukka/journey-soundscape/audio"
	"github.com/simukka/journey-soundscape/audio/audiotest"
)

func newAutomation(preset string) (*audio.Automation, *audio.DrumCell) {
	cell := &audio.DrumCell{}
	return audio.NewAutomation(audio.DefaultConfig(), audio.GetSchedule(preset), cell), cell
}

func paramValues(ctx *audiotest.Context) []float64 {
	out := make([]float64, len(ctx.Params))
	for i, p := range ctx.Params {
		out[i] = p.Value()
	}
	return out
}

func TestAutomation_Idempotent(t *testing.T) {
	ctx, g := newGraph(1)
	auto, _ := newAutomation("descent")

	for _, p := range []float64{0, 0.03, 0.2, 0.5, 0.75, 0.97, 1} {
		a := auto.Targets(g, p, 12.5)
		b := auto.Targets(g, p, 12.5)
		if a != b {
			t.Errorf("Expected identical targets at progress %f", p)
		}

		auto.Apply(g, a)
		first := paramValues(ctx)
		auto.Apply(g, a)
		second := paramValues(ctx)
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("Progress %f: param %d drifted from %f to %f", p, i, first[i], second[i])
			}
		}
	}
}

func TestAutomation_ScrubBackward(t *testing.T) {
	ctxA, gA := newGraph(7)
	ctxB, gB := newGraph(7)
	autoA, cellA := newAutomation("descent")
	autoB, cellB := newAutomation("descent")

	autoA.UpdateSoundscape(gA, 0.9, 0.8, 0)
	got := autoA.UpdateSoundscape(gA, 0.2, 0.8, 0)
	want := autoB.UpdateSoundscape(gB, 0.2, 0.8, 0)

	if got != want {
		t.Error("Expected targets after scrubbing back to match a fresh pass")
	}
	a, b := paramValues(ctxA), paramValues(ctxB)
	for i := range a {
		if !near(a[i], b[i]) {
			t.Errorf("Param %d (%s.%s): %f after scrub, %f fresh", i, ctxA.Params[i].Owner, ctxA.Params[i].Name, a[i], b[i])
		}
	}
	if cellA.Load() != cellB.Load() {
		t.Errorf("Expected drum state %+v, got %+v", cellB.Load(), cellA.Load())
	}
}

func TestAutomation_RampsNeverStep(t *testing.T) {
	ctx, g := newGraph(3)
	auto, _ := newAutomation("classic")
	for _, p := range ctx.Params {
		p.Reset()
	}

	for i := 0; i <= 120; i++ {
		auto.UpdateSoundscape(g, float64(i)/120, 0.8, 0)
		ctx.Advance(1.0 / 60)
	}
	assertNoSteps(t, ctx.Params)
}

func assertNoSteps(t *testing.T, params []*audiotest.Param) {
	t.Helper()
	for _, p := range params {
		for i, e := range p.Events {
			switch e.Kind {
			case audiotest.EventSet:
				if e.Value != e.Prev {
					t.Errorf("%s.%s: jump from %f to %f at %f", p.Owner, p.Name, e.Prev, e.Value, e.Time)
				}
			case audiotest.EventLinear:
				if i == 0 || e.Time <= p.Events[i-1].Time {
					t.Errorf("%s.%s: zero-length ramp to %f at %f", p.Owner, p.Name, e.Value, e.Time)
				}
			case audiotest.EventTarget:
				if e.TimeConstant <= 0 {
					t.Errorf("%s.%s: target without time constant", p.Owner, p.Name)
				}
			}
		}
	}
}

func TestAutomation_FinalFade(t *testing.T) {
	for _, name := range audio.ScheduleNames() {
		_, g := newGraph(1)
		auto, _ := newAutomation(name)
		master := g.Master.Gain().(*audiotest.Param)

		for _, p := range []float64{1, 1.2} {
			tg := auto.UpdateSoundscape(g, p, 1, 0)
			if !tg.Fading {
				t.Errorf("%s: expected fading at %f", name, p)
			}
			e, _ := master.Last()
			if e.Kind != audiotest.EventTarget {
				t.Fatalf("%s: expected exponential approach, got %s", name, e.Kind)
			}
			if e.Value > 0.001 || e.Value <= 0 {
				t.Errorf("%s: expected master target in (0, 0.001] at %f, got %f", name, p, e.Value)
			}
		}
	}
}

func TestAutomation_FadeIsMonotonic(t *testing.T) {
	_, g := newGraph(1)
	auto, _ := newAutomation("descent")
	master := g.Master.Gain().(*audiotest.Param)

	prev := 1.0
	for p := 0.961; p <= 1; p += 0.005 {
		auto.UpdateSoundscape(g, p, 0.8, 0)
		e, _ := master.Last()
		if e.Value > prev {
			t.Errorf("Expected falling master target, %f after %f at %f", e.Value, prev, p)
		}
		prev = e.Value
	}
}

func TestAutomation_LevelZeroLeavesMaster(t *testing.T) {
	_, g := newGraph(1)
	auto, _ := newAutomation("descent")
	master := g.Master.Gain().(*audiotest.Param)
	master.Reset()

	auto.UpdateSoundscape(g, 0.5, 0, 0)
	auto.UpdateSoundscape(g, 0.99, 0, 0)
	if len(master.Events) != 0 {
		t.Errorf("Expected master untouched while silent, got %d events", len(master.Events))
	}
}

func TestAutomation_HoldKeepsFadeIn(t *testing.T) {
	_, g := newGraph(1)
	auto, _ := newAutomation("descent")
	master := g.Master.Gain().(*audiotest.Param)

	auto.UpdateSoundscape(g, 0.5, 0.8, 1.5)
	e, _ := master.Last()
	if e.Kind != audiotest.EventLinear || e.Time != 1.5 {
		t.Errorf("Expected master ramp to end at hold time 1.5, got %s at %f", e.Kind, e.Time)
	}
}

func TestAutomation_ShimmerWindow(t *testing.T) {
	_, g := newGraph(1)
	auto, _ := newAutomation("descent")
	for _, p := range []float64{0.1, 0.3, 0.9} {
		if v := auto.Targets(g, p, 0).ShimmerGain; v != 0 {
			t.Errorf("Expected shimmer silent at %f, got %f", p, v)
		}
	}
	if v := auto.Targets(g, 0.6, 0).ShimmerGain; v <= 0 {
		t.Errorf("Expected shimmer audible at 0.6, got %f", v)
	}
}

func TestAutomation_DroneSinks(t *testing.T) {
	_, g := newGraph(1)
	auto, _ := newAutomation("descent")
	shallow := auto.Targets(g, 0.3, 0)
	deep := auto.Targets(g, 0.45, 0)
	for i := range shallow.DroneFreqs {
		if deep.DroneFreqs[i] >= shallow.DroneFreqs[i] {
			t.Errorf("Expected drone voice %d to sink: %f then %f", i, shallow.DroneFreqs[i], deep.DroneFreqs[i])
		}
	}
}

func TestAutomation_PansStayInRange(t *testing.T) {
	_, g := newGraph(5)
	auto, _ := newAutomation("descent")
	for now := 0.0; now < 120; now += 0.37 {
		tg := auto.Targets(g, now/120, now)
		pans := []float64{tg.WindPan}
		pans = append(pans, tg.PadPans[:]...)
		pans = append(pans, tg.DronePans[:]...)
		pans = append(pans, tg.ShimmerPans[:]...)
		for _, p := range pans {
			if p < -1 || p > 1 {
				t.Fatalf("Pan %f out of range at %f", p, now)
			}
		}
	}
}

func TestAutomation_PansMoveOverTime(t *testing.T) {
	_, g := newGraph(5)
	auto, _ := newAutomation("descent")
	a := auto.Targets(g, 0.5, 0)
	b := auto.Targets(g, 0.5, 4)
	if a.PadPans == b.PadPans {
		t.Error("Expected pad pans to drift with time")
	}
	if a.PadFreqs != b.PadFreqs {
		t.Error("Expected pitch to depend on progress only")
	}
}

func TestAutomation_PublishesDrums(t *testing.T) {
	_, g := newGraph(1)
	auto, cell := newAutomation("descent")
	tg := auto.UpdateSoundscape(g, 0.06, 0.8, 0)
	if cell.Load() != tg.Drums {
		t.Errorf("Expected drum cell %+v, got %+v", tg.Drums, cell.Load())
	}
	if tg.Drums.Tempo <= 0 {
		t.Errorf("Expected the plunge to drive the beat, got %+v", tg.Drums)
	}
}
