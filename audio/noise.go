package audio

import "math"

// Random is the randomness source for generated buffers and per-session
// detune/phase choices. *common.SeededRNG satisfies it.
type Random interface {
	Random() float64
}

const (
	noiseSmoothing = 0.02 // One-pole coefficient turning white noise brown
	noiseBoost     = 3.5  // Make-up gain after smoothing
	earlyFraction  = 0.1  // Share of an impulse holding early reflections
	earlyTaps      = 12
	spaceSmoothing = 0.35 // One-pole coefficient for the warm tail
)

func frames(lengthSeconds, sampleRate float64) int {
	n := int(lengthSeconds * sampleRate)
	if n < 1 {
		n = 1
	}
	return n
}

// GenerateColoredNoise returns smoothed ("brown"-like) noise, one independent
// channel per output channel so stereo playback is decorrelated.
func GenerateColoredNoise(rng Random, lengthSeconds, sampleRate float64, channels int) [][]float32 {
	if channels < 1 {
		channels = 1
	}
	n := frames(lengthSeconds, sampleRate)
	out := make([][]float32, channels)
	for ch := range out {
		data := make([]float32, n)
		last := 0.0
		for i := range data {
			white := rng.Random()*2 - 1
			last = (last + noiseSmoothing*white) / (1 + noiseSmoothing)
			v := last * noiseBoost
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			data[i] = float32(v)
		}
		out[ch] = data
	}
	return out
}

// GenerateReverbImpulse returns a stereo impulse response: sparse early
// reflection taps in the first tenth, then noise decaying as (1-x)^decay.
func GenerateReverbImpulse(rng Random, sampleRate, lengthSeconds, decay float64) [][]float32 {
	n := frames(lengthSeconds, sampleRate)
	early := int(float64(n) * earlyFraction)
	out := make([][]float32, 2)
	for ch := range out {
		data := make([]float32, n)
		for i := range data {
			x := float64(i) / float64(n)
			env := math.Pow(1-x, decay)
			data[i] = float32((rng.Random()*2 - 1) * env)
		}
		// Early reflections: a handful of louder taps with falling level.
		for tap := 0; tap < earlyTaps && early > 0; tap++ {
			pos := int(rng.Random() * float64(early))
			level := 1 - float64(tap)/earlyTaps
			sign := 1.0
			if rng.Random() < 0.5 {
				sign = -1
			}
			data[pos] += float32(sign * level * 0.8)
		}
		out[ch] = data
	}
	return out
}

// GenerateSpaceImpulse is GenerateReverbImpulse followed by a one-pole
// low-pass over the whole buffer, for a darker and longer tail.
func GenerateSpaceImpulse(rng Random, sampleRate, lengthSeconds, decay float64) [][]float32 {
	out := GenerateReverbImpulse(rng, sampleRate, lengthSeconds, decay)
	for _, data := range out {
		var y float32
		for i, x := range data {
			y += spaceSmoothing * (x - y)
			data[i] = y
		}
	}
	return out
}
