package notes

// Note frequencies (Hz), rounded to the nearest integer.
const (
	// Octave 2
	C2 = 65.0
	D2 = 73.0
	E2 = 82.0
	F2 = 87.0
	G2 = 98.0
	A2 = 110.0
	B2 = 123.0

	// Octave 3
	C3  = 131.0
	D3  = 147.0
	Eb3 = 156.0
	E3  = 165.0
	F3  = 175.0
	G3  = 196.0
	A3  = 220.0
	Bb3 = 233.0
	B3  = 247.0

	// Octave 4
	C4  = 262.0
	D4  = 294.0
	Eb4 = 311.0
	E4  = 330.0
	F4  = 349.0
	G4  = 392.0
	A4  = 440.0
	Bb4 = 466.0
	B4  = 494.0

	// Octave 5
	C5  = 523.0
	D5  = 587.0
	Eb5 = 622.0
	E5  = 659.0
	F5  = 698.0
	G5  = 784.0
	A5  = 880.0
	Bb5 = 932.0
	B5  = 988.0

	// Octave 6
	C6 = 1047.0
)

// Note is a named pitch.
type Note struct {
	Name string  `json:"name" yaml:"name"`
	Freq float64 `json:"freq" yaml:"freq"`
}

// Filename returns the asset file name for the note.
func (n Note) Filename() string {
	return n.Name + ".wav"
}
