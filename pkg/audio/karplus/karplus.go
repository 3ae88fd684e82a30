package karplus

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/haivivi/pluck/pkg/audio/pcm"
	"github.com/haivivi/pluck/pkg/buffer"
)

// Defaults used by DefaultParams.
const (
	DefaultSampleRate  = 44100
	DefaultSampleCount = 44100
	DefaultAttenuation = 0.996

	// MaxSampleRate is the highest rate whose 16-bit mono byte rate fits
	// the 32-bit WAV header field.
	MaxSampleRate = math.MaxUint32 / 2
)

// Validation errors. Returned errors wrap one of these.
var (
	ErrInvalidFrequency   = errors.New("karplus: invalid frequency")
	ErrInvalidAttenuation = errors.New("karplus: invalid attenuation")
	ErrInvalidSampleCount = errors.New("karplus: invalid sample count")
	ErrInvalidSampleRate  = errors.New("karplus: invalid sample rate")
)

// Params describes one note.
type Params struct {
	Frequency   float64 // Hz, > 0
	SampleRate  int     // Hz, > 0
	SampleCount int     // number of output samples, > 0
	Attenuation float64 // per-step loss in (0, 1]; 1 sustains forever
	Seed        *uint64 // nil plucks with fresh noise
}

// DefaultParams returns a one second note at 44.1kHz with attenuation 0.996.
func DefaultParams(freq float64) Params {
	return Params{
		Frequency:   freq,
		SampleRate:  DefaultSampleRate,
		SampleCount: DefaultSampleCount,
		Attenuation: DefaultAttenuation,
	}
}

// Validate checks p and returns the delay line length it implies.
func (p Params) Validate() (int, error) {
	n, err := DelayLength(p.Frequency, p.SampleRate)
	if err != nil {
		return 0, err
	}
	if err := checkAttenuation(p.Attenuation); err != nil {
		return 0, err
	}
	if p.SampleCount <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSampleCount, p.SampleCount)
	}
	return n, nil
}

// DelayLength returns N = round(sampleRate/freq), the number of samples in
// one period of the string. N must be at least 2.
func DelayLength(freq float64, sampleRate int) (int, error) {
	if sampleRate <= 0 || sampleRate > MaxSampleRate {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if !(freq > 0) || math.IsInf(freq, 0) {
		return 0, fmt.Errorf("%w: %v Hz", ErrInvalidFrequency, freq)
	}
	n := math.Round(float64(sampleRate) / freq)
	if n < 2 {
		return 0, fmt.Errorf("%w: %v Hz is too high for %d Hz sampling", ErrInvalidFrequency, freq, sampleRate)
	}
	return int(n), nil
}

func checkAttenuation(a float64) error {
	if !(a > 0 && a <= 1) {
		return fmt.Errorf("%w: %v not in (0, 1]", ErrInvalidAttenuation, a)
	}
	return nil
}

// NewRand returns the noise source for seed, or a randomly seeded one when
// seed is nil.
func NewRand(seed *uint64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Synthesize renders p.SampleCount samples of a plucked string and
// quantizes them to 16-bit PCM. Nothing is computed if p is invalid.
func Synthesize(p Params) ([]int16, error) {
	floats, err := SynthesizeFloat(p)
	if err != nil {
		return nil, err
	}
	return pcm.QuantizeAll(floats), nil
}

// SynthesizeFloat is Synthesize without the final quantization.
func SynthesizeFloat(p Params) ([]float64, error) {
	if _, err := p.Validate(); err != nil {
		return nil, err
	}
	s, err := NewString(p.Frequency, p.SampleRate, p.Attenuation)
	if err != nil {
		return nil, err
	}
	s.Pluck(NewRand(p.Seed))
	return s.Render(p.SampleCount), nil
}

// String is a single vibrating string: a delay line and its loss factor.
type String struct {
	line        *buffer.DelayLine[float64]
	attenuation float64
}

// NewString creates a silent string tuned to freq.
func NewString(freq float64, sampleRate int, attenuation float64) (*String, error) {
	n, err := DelayLength(freq, sampleRate)
	if err != nil {
		return nil, err
	}
	if err := checkAttenuation(attenuation); err != nil {
		return nil, err
	}
	s := &String{
		line:        buffer.DelayN[float64](n),
		attenuation: attenuation,
	}
	s.line.Fill(func(int) float64 { return 0 })
	return s, nil
}

// Pluck excites the string with uniform noise in [-0.5, 0.5).
func (s *String) Pluck(rng *rand.Rand) {
	s.line.Fill(func(int) float64 { return rng.Float64() - 0.5 })
}

// Step emits the current head sample and advances the string by one sample.
func (s *String) Step() float64 {
	head := s.line.At(0)
	next := s.attenuation * 0.5 * (head + s.line.At(1))
	// Push cannot fail: the line is at nominal length and has one spare slot.
	_ = s.line.Push(next)
	_, _ = s.line.Pop()
	return head
}

// Render runs n steps and returns the emitted samples.
func (s *String) Render(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Step()
	}
	return out
}

// Len returns the current delay line length.
func (s *String) Len() int {
	return s.line.Len()
}

// Period returns the nominal delay line length N.
func (s *String) Period() int {
	return s.line.Cap()
}

// Pitch returns the fundamental actually produced, sampleRate/N, which
// differs from the requested frequency by the rounding of N.
func Pitch(freq float64, sampleRate int) (float64, error) {
	n, err := DelayLength(freq, sampleRate)
	if err != nil {
		return 0, err
	}
	return float64(sampleRate) / float64(n), nil
}
