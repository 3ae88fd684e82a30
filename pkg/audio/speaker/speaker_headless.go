//go:build headless

package speaker

import "github.com/haivivi/pluck/pkg/audio/pcm"

// Speaker is unavailable in headless builds.
type Speaker struct {
	format pcm.Format
}

// Open always fails with ErrUnavailable.
func Open(format pcm.Format) (*Speaker, error) {
	return nil, ErrUnavailable
}

func (s *Speaker) Format() pcm.Format {
	return s.format
}

func (s *Speaker) Play(pcm.Chunk) error {
	return ErrUnavailable
}

func (s *Speaker) Close() error {
	return nil
}
