package audio

// Node counts per layer. These fix the graph topology.
const (
	PadVoices     = 4
	DroneVoices   = 3
	ShimmerVoices = 4
)

// VolumeKey is the durable storage key holding the last chosen volume.
const VolumeKey = "soundscapeVolume"

// SoundscapeConfig is the default tuning.
var SoundscapeConfig = Config{
	// Master settings
	DefaultVolume: 0.8,
	FadeInTime:    1.5,
	FadeOutTime:   0.6,
	MuteRampTime:  0.3,
	RampTime:      0.5,
	FadeStart:     0.96,
	FadeTimeConst: 0.4,
	SilenceFloor:  0.0001,

	// Reverb settings
	LushLength:  2.5,
	LushDecay:   2.2,
	SpaceLength: 6.0,
	SpaceDecay:  1.4,
	DryLevel:    0.7,
	LushLevel:   0.35,
	SpaceLevel:  0.2,

	// Pad settings: three voices around unison plus one octave
	PadRatios:   [PadVoices]float64{1, 1, 1, 2},
	PadDetune:   [PadVoices]float64{0, 7, -7, 3},
	PadWeights:  [PadVoices]float64{0.3, 0.25, 0.25, 0.15},
	PadSpread:   [PadVoices]float64{-0.5, 0.5, -0.2, 0.2},
	PadPanRate:  0.05,
	PadPanDepth: 0.25,

	// Drone settings
	DroneRatios:     [DroneVoices]float64{1, 1.5, 2},
	DroneWaveform:   WaveSawtooth,
	DroneSpread:     [DroneVoices]float64{0, -0.6, 0.6},
	DronePanRate:    0.03,
	DronePanDepth:   0.3,
	DroneDriftCents: 60,
	DroneQ:          0.8,

	// Shimmer settings
	ShimmerFreqs:      [ShimmerVoices]float64{1760, 2217.46, 2637.02, 3520},
	ShimmerDetune:     8,
	ShimmerSpread:     [ShimmerVoices]float64{-0.7, -0.25, 0.25, 0.7},
	ShimmerPanRate:    0.11,
	ShimmerPanDepth:   0.3,
	ShimmerQ:          1.2,
	ShimmerWindowFrom: 0.46,
	ShimmerWindowTo:   0.82,

	// Wind settings
	WindLength:   4,
	WindPanRate:  0.07,
	WindPanDepth: 0.6,

	// Percussion settings
	DrumTrim:          0.8,
	DrumCutoff:        2400,
	KickStartFreq:     150,
	KickEndFreq:       42,
	KickDecay:         0.35,
	KickPeak:          0.9,
	SoftKickScale:     0.5,
	SoftKickThreshold: 0.5,
	PercDecay:         0.15,
	PercPeak:          0.35,
	PercCutoff:        3000,
	NoiseBurstLength:  0.5,
	MinBeatInterval:   400,
	MaxBeatInterval:   1000,
	Steps:             16,
}

// DefaultConfig returns a copy of SoundscapeConfig.
func DefaultConfig() *Config {
	cfg := SoundscapeConfig
	return &cfg
}
