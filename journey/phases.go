package journey

import "time"

// Phase is one named stretch of the descent with the depth range it covers.
type Phase struct {
	Name       string
	Start, End time.Duration
	StartDepth float64 // km
	EndDepth   float64 // km
}

// Phases covers the journey in order.
var Phases = []Phase{
	{"The Edge", 0, 10 * time.Second, 0, 0},
	{"The Plunge", 10 * time.Second, 17 * time.Second, 0, 1.1},
	{"Heat Death", 17 * time.Second, 26 * time.Second, 1.1, 2.7},
	{"Boiling", 26 * time.Second, 33 * time.Second, 2.7, 25},
	{"Crushing", 33 * time.Second, 42 * time.Second, 25, 200},
	{"Incineration", 42 * time.Second, 54 * time.Second, 200, 400},
	{"The Long Fall", 54 * time.Second, 98 * time.Second, 400, 2900},
	{"Outer Core", 98 * time.Second, 125 * time.Second, 2900, 5150},
	{"Inner Core", 125 * time.Second, 148 * time.Second, 5150, 6300},
	{"The Center", 148 * time.Second, 172 * time.Second, 6300, 6371},
	{"The Yo-Yo", 172 * time.Second, 210 * time.Second, 6371, 6371},
}

// PhaseAt returns the phase containing t. Times past the end return the
// last phase.
func PhaseAt(t time.Duration) Phase {
	for _, ph := range Phases {
		if t < ph.End {
			return ph
		}
	}
	return Phases[len(Phases)-1]
}

// DepthAt interpolates the depth in km at t.
func DepthAt(t time.Duration) float64 {
	ph := PhaseAt(t)
	span := ph.End - ph.Start
	if span <= 0 {
		return ph.StartDepth
	}
	frac := clamp01(float64(t-ph.Start) / float64(span))
	return ph.StartDepth + (ph.EndDepth-ph.StartDepth)*frac
}
