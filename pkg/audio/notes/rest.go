package notes

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"
)

// Tempo converts beats to wall-clock time.
type Tempo struct {
	BPM int // Beats per minute
}

// IdleTempo is the tempo of ambient playback: one beat every 250ms.
var IdleTempo = Tempo{BPM: 240}

// ErrInvalidTempo is returned by Tempo.Validate for a non-positive BPM.
var ErrInvalidTempo = errors.New("notes: invalid tempo")

// Validate reports whether t has a positive BPM.
func (t Tempo) Validate() error {
	if t.BPM <= 0 {
		return fmt.Errorf("%w: %d BPM", ErrInvalidTempo, t.BPM)
	}
	return nil
}

// BeatDuration converts a beat count to a duration. It is zero for a
// tempo that fails Validate.
func (t Tempo) BeatDuration(beats float64) time.Duration {
	if t.BPM <= 0 {
		return 0
	}
	return time.Duration(beats * float64(time.Minute) / float64(t.BPM))
}

// Outcome is one possible rest length and its relative weight.
type Outcome struct {
	Beats  float64
	Weight float64
}

// DefaultRests are the rests between idle notes: mostly two beats,
// occasionally one, four or eight.
var DefaultRests = []Outcome{
	{Beats: 1, Weight: 0.15},
	{Beats: 2, Weight: 0.7},
	{Beats: 4, Weight: 0.1},
	{Beats: 8, Weight: 0.05},
}

// ErrInvalidOutcomes is returned by NewRestPicker for unusable distributions.
var ErrInvalidOutcomes = errors.New("notes: invalid rest outcomes")

// RestPicker samples rest lengths from a weighted discrete distribution.
type RestPicker struct {
	beats []float64
	cum   []float64 // cumulative weights, strictly increasing over positive entries
	total float64
}

// NewRestPicker builds a picker. Weights need not sum to one.
func NewRestPicker(outcomes []Outcome) (*RestPicker, error) {
	if len(outcomes) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidOutcomes)
	}
	p := &RestPicker{}
	for _, o := range outcomes {
		if !(o.Weight >= 0) || o.Beats < 0 {
			return nil, fmt.Errorf("%w: %+v", ErrInvalidOutcomes, o)
		}
		if o.Weight == 0 {
			continue
		}
		p.total += o.Weight
		p.beats = append(p.beats, o.Beats)
		p.cum = append(p.cum, p.total)
	}
	if p.total == 0 {
		return nil, fmt.Errorf("%w: zero total weight", ErrInvalidOutcomes)
	}
	return p, nil
}

// Pick draws a rest length in beats.
func (p *RestPicker) Pick(rng *rand.Rand) float64 {
	x := rng.Float64() * p.total
	i := sort.SearchFloat64s(p.cum, x)
	// SearchFloat64s finds the first cum >= x; an exact hit belongs to the
	// next bucket since buckets are half-open [prev, cum).
	if i < len(p.cum) && p.cum[i] == x {
		i++
	}
	if i >= len(p.beats) {
		i = len(p.beats) - 1
	}
	return p.beats[i]
}
