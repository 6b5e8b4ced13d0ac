package audio_test

import (
	"testing"

	"github.com/simukka/journey-soundscape/audio"
	"github.com/simukka/journey-soundscape/audio/audiotest"
)

func TestBuildGraph_Topology(t *testing.T) {
	ctx, g := newGraph(1)

	if n := len(ctx.Oscillators); n != audio.PadVoices+1+audio.DroneVoices+audio.ShimmerVoices {
		t.Errorf("Expected 12 oscillators, got %d", n)
	}
	if n := len(ctx.Convolvers); n != 2 {
		t.Errorf("Expected 2 convolvers, got %d", n)
	}
	for i, c := range ctx.Convolvers {
		if c.Buffer == nil || c.Buffer.NumberOfChannels() != 2 {
			t.Errorf("Expected stereo impulse on convolver %d", i)
		}
	}
	if !g.Wind.(*audiotest.BufferSource).Loop {
		t.Error("Expected wind source to loop")
	}
	master := g.Master.(*audiotest.Gain)
	if len(master.Outputs) != 1 || master.Outputs[0] != ctx.Destination() {
		t.Error("Expected master to feed the destination")
	}
}

func TestBuildGraph_StartsSilent(t *testing.T) {
	_, g := newGraph(1)
	silent := []audio.GainNode{g.Master, g.PadGain, g.SubGain, g.WindGain, g.DroneGain, g.ShimmerGain}
	for i, gain := range silent {
		if v := gain.Gain().Value(); v != 0 {
			t.Errorf("Expected gain %d to start at 0, got %f", i, v)
		}
	}
	cfg := audio.DefaultConfig()
	if v := g.DrumGain.Gain().Value(); v != cfg.DrumTrim {
		t.Errorf("Expected drum trim %f, got %f", cfg.DrumTrim, v)
	}
	if v := g.Dry.Gain().Value(); v != cfg.DryLevel {
		t.Errorf("Expected dry level %f, got %f", cfg.DryLevel, v)
	}
}

func TestBuildGraph_ShimmerDetuneInRange(t *testing.T) {
	cfg := audio.DefaultConfig()
	for seed := uint32(1); seed < 20; seed++ {
		_, g := newGraph(seed)
		for i, d := range g.ShimmerDetune {
			if d < -cfg.ShimmerDetune || d > cfg.ShimmerDetune {
				t.Errorf("Seed %d voice %d: detune %f outside ±%f", seed, i, d, cfg.ShimmerDetune)
			}
		}
	}
}

func TestGraph_StartOnce(t *testing.T) {
	_, g := newGraph(1)
	for i := 0; i < 5; i++ {
		g.Start(float64(i))
	}
	oscs, wind := continuous(g)
	for i, o := range oscs {
		if o.Starts != 1 {
			t.Errorf("Expected oscillator %d started once, got %d", i, o.Starts)
		}
	}
	if wind.Starts != 1 {
		t.Errorf("Expected wind started once, got %d", wind.Starts)
	}
	if !g.Running() {
		t.Error("Expected graph to report running")
	}
}
