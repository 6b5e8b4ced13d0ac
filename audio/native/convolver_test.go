package native

import (
	"testing"

	"github.com/simukka/journey-soundscape/audio"
)

func renderImpulse(t *testing.T, ir []float32, frames int) ([][2]float64, float64) {
	t.Helper()
	c := NewContext(testRate)
	src := c.CreateBufferSource()
	src.SetBuffer(audio.NewBufferFrom(c, [][]float32{{1}}, testRate))
	conv := c.CreateConvolver()
	conv.SetBuffer(audio.NewBufferFrom(c, [][]float32{ir}, testRate))
	src.Connect(conv)
	conv.Connect(c.Destination())
	src.Start(0)

	scale := impulseScale([][]float32{ir}) * gainCalibrationRate / testRate
	return c.Render(frames), scale
}

func TestConvolver_UnitImpulse(t *testing.T) {
	out, scale := renderImpulse(t, []float32{1}, 4096)

	for i, f := range out {
		want := 0.0
		if i == partSize {
			want = scale
		}
		if !near(f[0], want, 1e-9) || !near(f[1], want, 1e-9) {
			t.Fatalf("Expected %g at frame %d, got (%g, %g)", want, i, f[0], f[1])
		}
	}
}

func TestConvolver_LateTapCrossesPartitions(t *testing.T) {
	ir := make([]float32, 3000)
	ir[1500] = 1
	ir[2999] = -0.5
	out, scale := renderImpulse(t, ir, 8192)

	if got := out[partSize+1500][0]; !near(got, scale, 1e-9) {
		t.Errorf("Expected %g at the first tap, got %g", scale, got)
	}
	if got := out[partSize+2999][0]; !near(got, -0.5*scale, 1e-9) {
		t.Errorf("Expected %g at the last tap, got %g", -0.5*scale, got)
	}
	if got := out[partSize+1499][0]; !near(got, 0, 1e-9) {
		t.Errorf("Expected silence before the tap, got %g", got)
	}
}

func TestImpulseScale_FloorsQuietImpulses(t *testing.T) {
	quiet := [][]float32{make([]float32, 100)}
	if got := impulseScale(quiet); !near(got, gainCalibration/minImpulsePower, 1e-9) {
		t.Errorf("Expected floor scale %f, got %f", gainCalibration/minImpulsePower, got)
	}
	loud := [][]float32{{1, -1, 1, -1}}
	if got := impulseScale(loud); !near(got, gainCalibration, 1e-12) {
		t.Errorf("Expected %f for unit RMS, got %f", gainCalibration, got)
	}
	if got := impulseScale(nil); got != 1 {
		t.Errorf("Expected 1 for an empty impulse, got %f", got)
	}
}
