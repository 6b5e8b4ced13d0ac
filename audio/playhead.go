package audio

// Player is the part of Engine the playhead drives.
type Player interface {
	Enabled() bool
	Update(progress float64)
	SetPlaying(playing bool)
}

// Adapter routes playhead changes into the engine. It holds no audio logic.
type Adapter struct {
	Engine Player

	started bool
	playing bool
}

// NewAdapter creates an adapter for p.
func NewAdapter(p Player) *Adapter {
	return &Adapter{Engine: p}
}

// Sync is called on every playhead change. Progress is already normalized
// against duration, so only play/pause edges and progress are routed.
func (a *Adapter) Sync(progress, duration float64, isPlaying bool) {
	if a.Engine.Enabled() {
		a.Engine.Update(progress)
	}
	if !a.started || isPlaying != a.playing {
		a.started = true
		a.playing = isPlaying
		a.Engine.SetPlaying(isPlaying)
	}
}
