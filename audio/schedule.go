package audio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// Mix is the set of playhead-driven targets for one point of the journey.
type Mix struct {
	PadRoot   float64 `json:"padRoot"` // Hz
	PadGain   float64 `json:"padGain"`
	PadCutoff float64 `json:"padCutoff"` // Hz
	PadQ      float64 `json:"padQ"`
	PadWidth  float64 `json:"padWidth"` // Scales the per-voice pan spread

	SubFreq float64 `json:"subFreq"`
	SubGain float64 `json:"subGain"`

	WindGain   float64 `json:"windGain"`
	WindCutoff float64 `json:"windCutoff"`
	WindQ      float64 `json:"windQ"`

	DroneRoot   float64 `json:"droneRoot"`
	DroneGain   float64 `json:"droneGain"`
	DroneCutoff float64 `json:"droneCutoff"`
	DroneWidth  float64 `json:"droneWidth"`

	ShimmerGain   float64 `json:"shimmerGain"`
	ShimmerCutoff float64 `json:"shimmerCutoff"`
	ShimmerWidth  float64 `json:"shimmerWidth"`

	DrumVolume    float64 `json:"drumVolume"`
	DrumTempo     float64 `json:"drumTempo"`
	DrumIntensity float64 `json:"drumIntensity"`

	Dry   float64 `json:"dry"`
	Lush  float64 `json:"lush"`
	Space float64 `json:"space"`
}

// Lerp interpolates every field between m and to.
func (m Mix) Lerp(to Mix, t float64) Mix {
	l := func(a, b float64) float64 { return a + (b-a)*t }
	return Mix{
		PadRoot:       l(m.PadRoot, to.PadRoot),
		PadGain:       l(m.PadGain, to.PadGain),
		PadCutoff:     l(m.PadCutoff, to.PadCutoff),
		PadQ:          l(m.PadQ, to.PadQ),
		PadWidth:      l(m.PadWidth, to.PadWidth),
		SubFreq:       l(m.SubFreq, to.SubFreq),
		SubGain:       l(m.SubGain, to.SubGain),
		WindGain:      l(m.WindGain, to.WindGain),
		WindCutoff:    l(m.WindCutoff, to.WindCutoff),
		WindQ:         l(m.WindQ, to.WindQ),
		DroneRoot:     l(m.DroneRoot, to.DroneRoot),
		DroneGain:     l(m.DroneGain, to.DroneGain),
		DroneCutoff:   l(m.DroneCutoff, to.DroneCutoff),
		DroneWidth:    l(m.DroneWidth, to.DroneWidth),
		ShimmerGain:   l(m.ShimmerGain, to.ShimmerGain),
		ShimmerCutoff: l(m.ShimmerCutoff, to.ShimmerCutoff),
		ShimmerWidth:  l(m.ShimmerWidth, to.ShimmerWidth),
		DrumVolume:    l(m.DrumVolume, to.DrumVolume),
		DrumTempo:     l(m.DrumTempo, to.DrumTempo),
		DrumIntensity: l(m.DrumIntensity, to.DrumIntensity),
		Dry:           l(m.Dry, to.Dry),
		Lush:          l(m.Lush, to.Lush),
		Space:         l(m.Space, to.Space),
	}
}

// Curve shapes the interpolation inside a window.
type Curve string

const (
	CurveLinear Curve = "linear"
	CurveSine   Curve = "sine" // Ease in and out
)

// Shape maps a window-local position in [0,1] through the curve.
func (c Curve) Shape(t float64) float64 {
	switch c {
	case CurveSine:
		return 0.5 - 0.5*math.Cos(math.Pi*t)
	default:
		return t
	}
}

// Window is one named span of the journey. Inside it the mix moves from
// From to To; during the final Crossfade fraction it blends toward the next
// window's From.
type Window struct {
	Name      string  `json:"name"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	From      Mix     `json:"from"`
	To        Mix     `json:"to"`
	Curve     Curve   `json:"curve,omitempty"`
	Crossfade float64 `json:"crossfade,omitempty"`
}

// Schedule is an ordered window table covering progress 0..1.
type Schedule struct {
	Name    string   `json:"name"`
	Windows []Window `json:"windows"`
}

var errEmptySchedule = errors.New("schedule has no windows")

// Validate checks that windows are non-empty, ordered and non-overlapping.
func (s *Schedule) Validate() error {
	if len(s.Windows) == 0 {
		return errEmptySchedule
	}
	prevEnd := 0.0
	for i, w := range s.Windows {
		if w.End <= w.Start {
			return fmt.Errorf("window %d (%s): end %.3f not after start %.3f", i, w.Name, w.End, w.Start)
		}
		if w.Start < prevEnd {
			return fmt.Errorf("window %d (%s): starts at %.3f before previous end %.3f", i, w.Name, w.Start, prevEnd)
		}
		if w.Crossfade < 0 || w.Crossfade > 1 {
			return fmt.Errorf("window %d (%s): crossfade %.3f outside [0,1]", i, w.Name, w.Crossfade)
		}
		prevEnd = w.End
	}
	return nil
}

// Find returns the index of the window governing progress p. Progress in a
// gap belongs to the window before it; progress past the end to the last.
func (s *Schedule) Find(p float64) int {
	idx := 0
	for i, w := range s.Windows {
		if p >= w.Start {
			idx = i
		}
		if p < w.End {
			break
		}
	}
	return idx
}

// At evaluates the mix at progress p.
func (s *Schedule) At(p float64) (Mix, string) {
	if len(s.Windows) == 0 {
		return Mix{}, ""
	}
	p = clamp01(p)
	i := s.Find(p)
	w := s.Windows[i]
	if p <= w.Start {
		return w.From, w.Name
	}
	if p >= w.End {
		return w.To, w.Name
	}

	t := (p - w.Start) / (w.End - w.Start)
	mix := w.From.Lerp(w.To, w.Curve.Shape(t))

	if w.Crossfade > 0 && i+1 < len(s.Windows) && t > 1-w.Crossfade {
		u := (t - (1 - w.Crossfade)) / w.Crossfade
		mix = mix.Lerp(s.Windows[i+1].From, CurveSine.Shape(u))
	}
	return mix, w.Name
}

// LoadSchedule decodes and validates a JSON schedule.
func LoadSchedule(r io.Reader) (*Schedule, error) {
	var s Schedule
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", s.Name, err)
	}
	return &s, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
