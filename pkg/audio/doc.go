// Package audio provides audio synthesis and encoding utilities.
//
// This package serves as an umbrella for audio-related sub-packages:
//
//   - pcm: PCM format descriptions, chunks and sample conversion
//   - karplus: Karplus-Strong plucked-string synthesis
//   - wav: RIFF/WAVE encoding and decoding of 16-bit mono PCM
//   - notes: note frequencies, scales and rest sampling
//   - player: note catalog and playback devices
//
// Example usage:
//
//	import (
//	    "github.com/haivivi/pluck/pkg/audio/karplus"
//	    "github.com/haivivi/pluck/pkg/audio/wav"
//	)
//
//	samples, err := karplus.Synthesize(karplus.DefaultParams(262))
//	asset, err := wav.Encode(samples, 44100)
//	_, err = asset.WriteTo(f)
package audio
