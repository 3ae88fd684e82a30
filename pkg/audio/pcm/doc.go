// Package pcm provides types and utilities for working with PCM (Pulse Code Modulation) audio data.
//
// The package defines 16-bit mono formats for the sample rates used by the
// synthesizer and the playback devices, chunk types carrying raw
// little-endian audio, and conversions between floating point amplitudes,
// int16 samples and bytes.
//
// Key types:
//   - Format: Represents audio format (sample rate, channels, bit depth)
//   - Chunk: Interface for audio data chunks
//   - DataChunk: Concrete implementation of Chunk for raw audio data
//   - SilenceChunk: Chunk that produces silence of a specified duration
//
// Example usage:
//
//	// Quantize synthesized amplitudes
//	samples := pcm.QuantizeAll(floats)
//
//	// Wrap them as a 44.1kHz chunk
//	chunk := pcm.L16Mono44K.DataChunk(pcm.Int16ToBytes(samples))
//
//	// A quarter second of silence
//	rest := pcm.L16Mono44K.SilenceChunk(250 * time.Millisecond)
package pcm
