package common

import "time"

// SeededRNG implements a Mulberry32 seeded pseudo-random number generator.
// It is the randomness source for noise buffers, impulse responses and the
// per-session detune and pan phases. Not safe for concurrent use.
type SeededRNG struct {
	state       uint32
	initialSeed uint32
}

// NewSeededRNG creates a new seeded random number generator.
func NewSeededRNG(seed uint32) *SeededRNG {
	return &SeededRNG{
		state:       seed,
		initialSeed: seed,
	}
}

// NewSessionRNG seeds a generator from the wall clock, so every audio
// session gets different noise content.
func NewSessionRNG() *SeededRNG {
	return NewSeededRNG(ClockSeed(time.Now()))
}

// Reset rewinds the generator to its initial seed.
func (r *SeededRNG) Reset() {
	r.state = r.initialSeed
}

// Random returns the next value in [0, 1).
func (r *SeededRNG) Random() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Signed returns the next value in [-1, 1).
func (r *SeededRNG) Signed() float64 {
	return r.Random()*2 - 1
}

// Range returns the next value in [min, max).
func (r *SeededRNG) Range(min, max float64) float64 {
	return r.Random()*(max-min) + min
}

// ClockSeed folds a timestamp into a 32-bit seed.
func ClockSeed(t time.Time) uint32 {
	n := uint64(t.UnixNano())
	seed := uint32(n) ^ uint32(n>>32)
	seed = (seed ^ (seed >> 16)) * 0x85ebca6b
	seed = (seed ^ (seed >> 13)) * 0xc2b2ae35
	return seed ^ (seed >> 16)
}
