package audio

// Config holds every tuning constant of the soundscape. Mix levels that move
// with the playhead live in the Schedule, not here.
type Config struct {
	// Master settings
	DefaultVolume float64 // Volume used when nothing is persisted
	FadeInTime    float64 // Master ramp on play (seconds)
	FadeOutTime   float64 // Master ramp on pause (seconds)
	MuteRampTime  float64 // Master ramp on mute/unmute and volume changes
	RampTime      float64 // Ramp length used by the automation pass
	FadeStart     float64 // Progress above which the final fade-out begins
	FadeTimeConst float64 // setTargetAtTime constant for the final fade-out
	SilenceFloor  float64 // Smallest master target (never exactly 0)

	// Reverb settings
	LushLength  float64 // Short/present impulse length (seconds)
	LushDecay   float64 // Decay exponent for the short impulse
	SpaceLength float64 // Long/vast impulse length (seconds)
	SpaceDecay  float64 // Decay exponent for the long impulse
	DryLevel    float64 // Initial dry return
	LushLevel   float64 // Initial short reverb send
	SpaceLevel  float64 // Initial long reverb send

	// Pad settings
	PadRatios   [PadVoices]float64 // Frequency ratios over the pad root
	PadDetune   [PadVoices]float64 // Static detune per voice (cents)
	PadWeights  [PadVoices]float64 // Per-voice base gain
	PadSpread   [PadVoices]float64 // Base pan per voice before width scaling
	PadPanRate  float64            // Pan LFO rate (Hz)
	PadPanDepth float64            // Pan LFO depth

	// Drone settings
	DroneRatios     [DroneVoices]float64 // Root, fifth, octave
	DroneWaveform   Waveform
	DroneSpread     [DroneVoices]float64
	DronePanRate    float64
	DronePanDepth   float64
	DroneDriftCents float64 // Total downward detune reached at progress 1
	DroneQ          float64

	// Shimmer settings
	ShimmerFreqs      [ShimmerVoices]float64
	ShimmerDetune     float64 // Max random detune at build (cents, +/-)
	ShimmerSpread     [ShimmerVoices]float64
	ShimmerPanRate    float64
	ShimmerPanDepth   float64
	ShimmerQ          float64
	ShimmerWindowFrom float64 // Shimmer is silent before this progress
	ShimmerWindowTo   float64 // Shimmer is silent after this progress

	// Wind settings
	WindLength   float64 // Looping noise buffer length (seconds)
	WindPanRate  float64
	WindPanDepth float64

	// Percussion settings
	DrumTrim          float64 // Base level of the drum bus
	DrumCutoff        float64 // Drum bus lowpass cutoff
	KickStartFreq     float64
	KickEndFreq       float64
	KickDecay         float64 // Kick envelope length (seconds)
	KickPeak          float64
	SoftKickScale     float64 // Level of the off-beat kick relative to the main kick
	SoftKickThreshold float64 // Intensity needed for the off-beat kick
	PercDecay         float64 // Noise burst envelope length (seconds)
	PercPeak          float64
	PercCutoff        float64 // Highpass cutoff for noise bursts
	NoiseBurstLength  float64 // Length of the percussion noise buffer (seconds)
	MinBeatInterval   float64 // Milliseconds between ticks at tempo 1
	MaxBeatInterval   float64 // Milliseconds between ticks at tempo 0
	Steps             int     // Sequencer steps before wrapping
}
