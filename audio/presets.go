package audio

import "sort"

// Anchor mixes shared by the presets. Each describes the sound at one
// landmark of the descent; windows interpolate between them.
var (
	mixEdge = Mix{
		PadRoot: 110, PadGain: 0.12, PadCutoff: 700, PadQ: 0.7, PadWidth: 0.6,
		SubFreq: 55, SubGain: 0.08,
		WindGain: 0.22, WindCutoff: 500, WindQ: 0.8,
		DroneRoot: 55, DroneGain: 0.02, DroneCutoff: 400, DroneWidth: 0.4,
		ShimmerGain: 0, ShimmerCutoff: 2500, ShimmerWidth: 0.5,
		DrumVolume: 0.35, DrumTempo: 0.1, DrumIntensity: 0,
		Dry: 0.8, Lush: 0.25, Space: 0.1,
	}
	mixPlunge = Mix{
		PadRoot: 110, PadGain: 0.18, PadCutoff: 1400, PadQ: 1.2, PadWidth: 0.9,
		SubFreq: 55, SubGain: 0.14,
		WindGain: 0.5, WindCutoff: 1400, WindQ: 0.6,
		DroneRoot: 55, DroneGain: 0.05, DroneCutoff: 700, DroneWidth: 0.6,
		ShimmerGain: 0, ShimmerCutoff: 2500, ShimmerWidth: 0.5,
		DrumVolume: 0.6, DrumTempo: 0.85, DrumIntensity: 0.8,
		Dry: 0.75, Lush: 0.35, Space: 0.15,
	}
	mixDeath = Mix{
		PadRoot: 103.83, PadGain: 0.1, PadCutoff: 320, PadQ: 0.9, PadWidth: 0.4,
		SubFreq: 51.91, SubGain: 0.16,
		WindGain: 0.18, WindCutoff: 300, WindQ: 1.4,
		DroneRoot: 51.91, DroneGain: 0.06, DroneCutoff: 350, DroneWidth: 0.5,
		ShimmerGain: 0, ShimmerCutoff: 2000, ShimmerWidth: 0.5,
		DrumVolume: 0.3, DrumTempo: 0.3, DrumIntensity: 0.2,
		Dry: 0.55, Lush: 0.5, Space: 0.25,
	}
	mixLongFall = Mix{
		PadRoot: 98, PadGain: 0.08, PadCutoff: 260, PadQ: 0.7, PadWidth: 0.8,
		SubFreq: 49, SubGain: 0.2,
		WindGain: 0.1, WindCutoff: 200, WindQ: 1.0,
		DroneRoot: 49, DroneGain: 0.1, DroneCutoff: 450, DroneWidth: 0.9,
		ShimmerGain: 0, ShimmerCutoff: 2000, ShimmerWidth: 0.6,
		DrumVolume: 0, DrumTempo: 0.05, DrumIntensity: 0,
		Dry: 0.45, Lush: 0.3, Space: 0.6,
	}
	mixOuterCore = Mix{
		PadRoot: 98, PadGain: 0.12, PadCutoff: 600, PadQ: 2.5, PadWidth: 0.9,
		SubFreq: 49, SubGain: 0.18,
		WindGain: 0.14, WindCutoff: 250, WindQ: 3.0,
		DroneRoot: 49, DroneGain: 0.14, DroneCutoff: 800, DroneWidth: 1,
		ShimmerGain: 0.03, ShimmerCutoff: 2200, ShimmerWidth: 0.8,
		DrumVolume: 0.15, DrumTempo: 0.2, DrumIntensity: 0.3,
		Dry: 0.5, Lush: 0.45, Space: 0.5,
	}
	mixInnerCore = Mix{
		PadRoot: 110, PadGain: 0.14, PadCutoff: 1800, PadQ: 1.5, PadWidth: 1,
		SubFreq: 55, SubGain: 0.12,
		WindGain: 0.05, WindCutoff: 400, WindQ: 1.0,
		DroneRoot: 55, DroneGain: 0.1, DroneCutoff: 1200, DroneWidth: 1,
		ShimmerGain: 0.07, ShimmerCutoff: 3200, ShimmerWidth: 1,
		DrumVolume: 0.1, DrumTempo: 0.15, DrumIntensity: 0.1,
		Dry: 0.5, Lush: 0.55, Space: 0.45,
	}
	mixCenter = Mix{
		PadRoot: 110, PadGain: 0.06, PadCutoff: 500, PadQ: 0.7, PadWidth: 0.5,
		SubFreq: 55, SubGain: 0.1,
		WindGain: 0, WindCutoff: 300, WindQ: 0.8,
		DroneRoot: 55, DroneGain: 0.12, DroneCutoff: 500, DroneWidth: 0.7,
		ShimmerGain: 0.02, ShimmerCutoff: 2600, ShimmerWidth: 0.6,
		DrumVolume: 0, DrumTempo: 0.05, DrumIntensity: 0,
		Dry: 0.6, Lush: 0.4, Space: 0.55,
	}
	mixArrival = Mix{
		PadRoot: 110, PadGain: 0.1, PadCutoff: 900, PadQ: 0.7, PadWidth: 0.8,
		SubFreq: 55, SubGain: 0.06,
		WindGain: 0.04, WindCutoff: 350, WindQ: 0.8,
		DroneRoot: 55, DroneGain: 0.08, DroneCutoff: 600, DroneWidth: 0.8,
		ShimmerGain: 0, ShimmerCutoff: 2600, ShimmerWidth: 0.6,
		DrumVolume: 0, DrumTempo: 0.05, DrumIntensity: 0,
		Dry: 0.6, Lush: 0.45, Space: 0.6,
	}
)

// SchedulePresets holds the named window tables.
var SchedulePresets = map[string]*Schedule{
	// Phase boundaries of the 210 second descent.
	"descent": {
		Name: "descent",
		Windows: []Window{
			{Name: "The Edge", Start: 0, End: 0.0476, From: mixEdge, To: mixEdge, Crossfade: 0.3},
			{Name: "The Plunge", Start: 0.0476, End: 0.081, From: mixEdge, To: mixPlunge, Curve: CurveSine, Crossfade: 0.2},
			{Name: "Heat Death", Start: 0.081, End: 0.1238, From: mixPlunge, To: mixDeath, Curve: CurveSine},
			{Name: "Boiling", Start: 0.1238, End: 0.1571, From: mixDeath, To: mixDeath},
			{Name: "Crushing", Start: 0.1571, End: 0.2, From: mixDeath, To: mixDeath},
			{Name: "Incineration", Start: 0.2, End: 0.2571, From: mixDeath, To: mixLongFall, Curve: CurveSine},
			{Name: "The Long Fall", Start: 0.2571, End: 0.4667, From: mixLongFall, To: mixLongFall, Crossfade: 0.15},
			{Name: "Outer Core", Start: 0.4667, End: 0.5952, From: mixLongFall, To: mixOuterCore, Curve: CurveSine, Crossfade: 0.25},
			{Name: "Inner Core", Start: 0.5952, End: 0.7048, From: mixOuterCore, To: mixInnerCore, Curve: CurveSine},
			{Name: "The Center", Start: 0.7048, End: 0.819, From: mixInnerCore, To: mixCenter, Curve: CurveSine},
			{Name: "The Yo-Yo", Start: 0.819, End: 1, From: mixCenter, To: mixArrival, Curve: CurveSine},
		},
	},
	// Coarser early tuning with a single long death window.
	"classic": {
		Name: "classic",
		Windows: []Window{
			{Name: "Edge", Start: 0, End: 0.05, From: mixEdge, To: mixEdge, Crossfade: 0.3},
			{Name: "Plunge", Start: 0.05, End: 0.08, From: mixEdge, To: mixPlunge},
			{Name: "Death", Start: 0.08, End: 0.16, From: mixPlunge, To: mixDeath, Curve: CurveSine},
			{Name: "Fall", Start: 0.16, End: 0.45, From: mixDeath, To: mixLongFall, Curve: CurveSine},
			{Name: "Core", Start: 0.45, End: 0.7, From: mixLongFall, To: mixInnerCore, Curve: CurveSine, Crossfade: 0.2},
			{Name: "Center", Start: 0.7, End: 0.82, From: mixInnerCore, To: mixCenter},
			{Name: "Arrival", Start: 0.82, End: 1, From: mixCenter, To: mixArrival, Curve: CurveSine},
		},
	},
}

// DefaultScheduleName is used when no preset is requested.
const DefaultScheduleName = "descent"

// GetSchedule returns the named preset, falling back to the default.
func GetSchedule(name string) *Schedule {
	if s, ok := SchedulePresets[name]; ok {
		return s
	}
	return SchedulePresets[DefaultScheduleName]
}

// ScheduleNames lists the presets in sorted order.
func ScheduleNames() []string {
	names := make([]string, 0, len(SchedulePresets))
	for name := range SchedulePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
