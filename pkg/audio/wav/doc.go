// Package wav encodes and decodes single-channel 16-bit PCM RIFF/WAVE files.
//
// Encode produces the minimal canonical layout: a 12-byte RIFF header, a
// 16-byte "fmt " chunk with format tag 1 (uncompressed PCM) and a "data"
// chunk holding the samples little-endian in emission order. Encoding is
// pure: identical samples and parameters always produce identical bytes.
//
// Decode accepts any compliant file with the same sample layout, skipping
// chunks other than "fmt " and "data", so that files written by other tools
// can be loaded for playback.
package wav
