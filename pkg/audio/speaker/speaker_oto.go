//go:build !headless

package speaker

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/haivivi/pluck/pkg/audio/pcm"
)

// pollInterval is how often Play checks whether a chunk has finished.
const pollInterval = 10 * time.Millisecond

// Speaker is an oto output context for one PCM format. Only one Speaker can
// exist per process.
type Speaker struct {
	ctx    *oto.Context
	format pcm.Format

	mu     sync.Mutex
	closed bool
}

// Open creates the oto context for format (signed 16-bit little endian).
// It blocks until the device is ready.
func Open(format pcm.Format) (*Speaker, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   format.SampleRate(),
		ChannelCount: format.Channels(),
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("speaker: open %s: %w", format, err)
	}
	<-ready
	return &Speaker{ctx: ctx, format: format}, nil
}

// Format returns the format the speaker was opened with.
func (s *Speaker) Format() pcm.Format {
	return s.format
}

// Play writes chunk to the device and blocks until it has been played.
// Concurrent calls mix on the device.
func (s *Speaker) Play(chunk pcm.Chunk) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if chunk.Format() != s.format {
		return fmt.Errorf("%w: got %s, want %s", ErrFormatMismatch, chunk.Format(), s.format)
	}

	var buf bytes.Buffer
	buf.Grow(int(chunk.Len()))
	if _, err := chunk.WriteTo(&buf); err != nil {
		return err
	}

	p := s.ctx.NewPlayer(&buf)
	defer p.Close()
	p.Play()
	for p.IsPlaying() {
		time.Sleep(pollInterval)
	}
	return p.Err()
}

// Close suspends the device. Further Play calls fail with ErrClosed.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.ctx.Suspend()
}
