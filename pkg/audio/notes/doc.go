// Package notes provides note frequencies, named scales and the rest
// sampler used to sequence idle playback.
//
// A Scale is an ordered set of named notes. The default scale is the C minor
// pentatonic used for ambient playback; custom scales load from YAML or JSON:
//
//	name: blues
//	notes:
//	  - {name: C4, freq: 262}
//	  - {name: Eb4, freq: 311}
//
// Rests between notes are drawn from a small discrete distribution of beat
// counts with a RestPicker, and converted to time with a Tempo.
package notes
