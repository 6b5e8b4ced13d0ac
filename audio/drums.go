package audio

import "sync/atomic"

// DrumState is what the automation pass tells the beat clock.
type DrumState struct {
	Volume    float64 // 0..1, 0 silences the sequencer
	Tempo     float64 // 0..1, maps onto the beat interval
	Intensity float64 // 0..1, gates the soft kick and scales hits
}

// DrumCell is a single-writer/single-reader shared cell. The automation pass
// stores into it and the sequencer tick loads from it.
type DrumCell struct {
	state atomic.Pointer[DrumState]
}

// Store publishes a new state.
func (c *DrumCell) Store(s DrumState) {
	c.state.Store(&s)
}

// Load returns the latest state, or the zero state before the first Store.
func (c *DrumCell) Load() DrumState {
	if s := c.state.Load(); s != nil {
		return *s
	}
	return DrumState{}
}
