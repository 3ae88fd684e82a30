// Package speaker plays PCM chunks on the system audio output.
//
// The oto backend is used by default. Building with the headless tag
// replaces it with a stub whose Open always fails with ErrUnavailable.
package speaker

import "errors"

var (
	// ErrUnavailable is returned by Open when no audio backend is compiled in.
	ErrUnavailable = errors.New("speaker: audio output unavailable")

	// ErrFormatMismatch is returned when a chunk's format differs from the
	// format the speaker was opened with.
	ErrFormatMismatch = errors.New("speaker: format mismatch")

	// ErrClosed is returned by Play after Close.
	ErrClosed = errors.New("speaker: closed")
)
