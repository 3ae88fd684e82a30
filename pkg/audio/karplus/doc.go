// Package karplus synthesizes plucked-string tones with the Karplus-Strong
// algorithm.
//
// A String is a delay line of N = round(sampleRate/frequency) samples,
// plucked by filling it with uniform noise in [-0.5, 0.5). Every step emits
// the head, appends attenuation * (head + next) / 2 at the tail and drops the
// head. Averaging acts as a low-pass filter, so high partials die out first
// and the tone settles towards its fundamental at sampleRate/N Hz.
//
// Synthesize runs a whole note and quantizes it to 16-bit PCM:
//
//	seed := uint64(42)
//	samples, err := karplus.Synthesize(karplus.Params{
//	    Frequency:   262,
//	    SampleRate:  44100,
//	    SampleCount: 44100,
//	    Attenuation: 0.996,
//	    Seed:        &seed,
//	})
//
// With a seed the output is reproducible; without one every call plucks
// different noise.
package karplus
