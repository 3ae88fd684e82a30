package notes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/haivivi/pluck/pkg/cli"
)

// ErrInvalidScale is wrapped by every Scale validation error.
var ErrInvalidScale = errors.New("notes: invalid scale")

// Scale is an ordered set of uniquely named notes.
type Scale struct {
	Name  string `json:"name" yaml:"name"`
	Notes []Note `json:"notes" yaml:"notes"`
}

// PentatonicMinor is the default scale: C4, Eb, F, G, Bb.
// G sits at 391 Hz rather than G4's 392.
var PentatonicMinor = Scale{
	Name: "pentatonic-minor",
	Notes: []Note{
		{Name: "C4", Freq: C4},
		{Name: "Eb", Freq: Eb4},
		{Name: "F", Freq: F4},
		{Name: "G", Freq: 391},
		{Name: "Bb", Freq: Bb4},
	},
}

// Validate checks that the scale is non-empty, that names are unique and
// usable as file names, and that every frequency is positive.
func (s Scale) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidScale)
	}
	if strings.ContainsAny(s.Name, `/\:`) {
		return fmt.Errorf("%w: unusable scale name %q", ErrInvalidScale, s.Name)
	}
	if len(s.Notes) == 0 {
		return fmt.Errorf("%w: %s has no notes", ErrInvalidScale, s.Name)
	}
	seen := make(map[string]bool, len(s.Notes))
	for i, n := range s.Notes {
		if err := ValidateName(n.Name); err != nil {
			return fmt.Errorf("%w: note %d: %v", ErrInvalidScale, i, err)
		}
		if seen[n.Name] {
			return fmt.Errorf("%w: duplicate note %q", ErrInvalidScale, n.Name)
		}
		seen[n.Name] = true
		if !(n.Freq > 0) {
			return fmt.Errorf("%w: note %q has frequency %v", ErrInvalidScale, n.Name, n.Freq)
		}
	}
	return nil
}

// ValidateName checks that name can be used as a note file name.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\:`) {
		return fmt.Errorf("unusable note name %q", name)
	}
	return nil
}

// Lookup returns the note with the given name.
func (s Scale) Lookup(name string) (Note, bool) {
	for _, n := range s.Notes {
		if n.Name == name {
			return n, true
		}
	}
	return Note{}, false
}

// Names returns the note names in scale order.
func (s Scale) Names() []string {
	names := make([]string, len(s.Notes))
	for i, n := range s.Notes {
		names[i] = n.Name
	}
	return names
}

// LoadScale reads a scale from a YAML or JSON file and validates it.
func LoadScale(path string) (Scale, error) {
	var s Scale
	if err := cli.LoadDocument(path, &s); err != nil {
		return Scale{}, err
	}
	if err := s.Validate(); err != nil {
		return Scale{}, err
	}
	return s, nil
}
