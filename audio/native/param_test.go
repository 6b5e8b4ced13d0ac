package native

import (
	"math"
	"testing"
)

func near(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestParam_LinearRamp(t *testing.T) {
	p := newParam(NewContext(48000), 0)
	p.SetValueAtTime(0, 0)
	p.LinearRampToValueAtTime(1, 1)

	if got := p.valueAt(0.5); !near(got, 0.5, 1e-9) {
		t.Errorf("Expected 0.5 halfway through the ramp, got %f", got)
	}
	if got := p.valueAt(2); got != 1 {
		t.Errorf("Expected ramp to hold its end value, got %f", got)
	}
}

func TestParam_ExponentialRamp(t *testing.T) {
	p := newParam(NewContext(48000), 1)
	p.SetValueAtTime(1, 0)
	p.ExponentialRampToValueAtTime(0.01, 1)

	if got := p.valueAt(0.5); !near(got, 0.1, 1e-9) {
		t.Errorf("Expected 0.1 halfway through the ramp, got %f", got)
	}
}

func TestParam_TargetApproach(t *testing.T) {
	p := newParam(NewContext(48000), 0)
	p.SetValueAtTime(1, 0)
	p.SetTargetAtTime(0, 1, 0.5)

	if got := p.valueAt(1); got != 1 {
		t.Errorf("Expected 1 when the approach starts, got %f", got)
	}
	if got := p.valueAt(1.5); !near(got, math.Exp(-1), 1e-9) {
		t.Errorf("Expected e^-1 after one time constant, got %f", got)
	}
}

func TestParam_CancelScheduledValues(t *testing.T) {
	p := newParam(NewContext(48000), 0)
	p.SetValueAtTime(0.2, 0)
	p.LinearRampToValueAtTime(1, 1)
	p.CancelScheduledValues(0.5)

	if got := p.valueAt(0.75); got != 0.2 {
		t.Errorf("Expected cancelled ramp to leave 0.2, got %f", got)
	}
}

func TestParam_EventsStayOrdered(t *testing.T) {
	p := newParam(NewContext(48000), 0)
	p.SetValueAtTime(3, 3)
	p.SetValueAtTime(1, 1)
	p.SetValueAtTime(2, 2)

	for i := 1; i < len(p.events); i++ {
		if p.events[i].time < p.events[i-1].time {
			t.Fatalf("Expected events sorted by time, got %+v", p.events)
		}
	}
	if got := p.valueAt(2.5); got != 2 {
		t.Errorf("Expected 2, got %f", got)
	}
}

func TestParam_CompactKeepsValues(t *testing.T) {
	p := newParam(NewContext(48000), 0)
	p.SetValueAtTime(0, 0)
	p.LinearRampToValueAtTime(1, 1)
	p.SetTargetAtTime(0.3, 1.2, 0.2)
	p.LinearRampToValueAtTime(0.8, 3)

	probes := []float64{1.5, 2, 2.5, 3, 4}
	before := make([]float64, len(probes))
	for i, x := range probes {
		before[i] = p.valueAt(x)
	}

	p.compact(1.5)
	if len(p.events) >= 4 {
		t.Errorf("Expected compaction to drop events, still have %d", len(p.events))
	}
	for i, x := range probes {
		if got := p.valueAt(x); !near(got, before[i], 1e-9) {
			t.Errorf("Expected %f at %.1f after compaction, got %f", before[i], x, got)
		}
	}
}
