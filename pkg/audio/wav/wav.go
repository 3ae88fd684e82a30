package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/haivivi/pluck/pkg/audio/pcm"
)

// Supported layout.
const (
	Channels      = 1
	BitsPerSample = 16

	// CompressionNone is the compression tag of uncompressed PCM.
	CompressionNone = "NONE"

	// HeaderSize is the size of the canonical header Encode writes.
	HeaderSize = 44

	formatPCM = 1

	// fmtSize is the size of the PCM fmt chunk body; longer bodies carry
	// extension fields that are skipped.
	fmtSize = 16

	// MaxDataSize is the largest data payload whose RIFF size field
	// (payload plus the rest of the header) fits in 32 bits.
	MaxDataSize = math.MaxUint32 - (HeaderSize - 8)
)

// Validation and parse errors. Returned errors wrap one of these.
var (
	ErrInvalidChannelCount = errors.New("wav: invalid channel count")
	ErrInvalidBitDepth     = errors.New("wav: invalid bit depth")
	ErrInvalidSampleRate   = errors.New("wav: invalid sample rate")
	ErrMalformed           = errors.New("wav: malformed file")
	ErrTooLarge            = errors.New("wav: data too large")
)

// Header holds the fields of the fmt chunk plus the frame count.
type Header struct {
	Channels      int    `json:"channels" yaml:"channels"`
	BitsPerSample int    `json:"bits_per_sample" yaml:"bits_per_sample"`
	SampleRate    int    `json:"sample_rate" yaml:"sample_rate"`
	Frames        int    `json:"frames" yaml:"frames"`
	Compression   string `json:"compression" yaml:"compression"`
}

// SampleWidth returns the size of one sample in bytes.
func (h Header) SampleWidth() int {
	return h.BitsPerSample / 8
}

// BlockAlign returns the size of one frame in bytes.
func (h Header) BlockAlign() int {
	return h.Channels * h.SampleWidth()
}

// ByteRate returns the number of data bytes per second.
func (h Header) ByteRate() int {
	return h.SampleRate * h.BlockAlign()
}

// DataSize returns the size of the data chunk payload.
func (h Header) DataSize() int {
	return h.Frames * h.BlockAlign()
}

func (h Header) validate() error {
	if h.Channels != Channels {
		return fmt.Errorf("%w: %d (only mono is supported)", ErrInvalidChannelCount, h.Channels)
	}
	if h.BitsPerSample != BitsPerSample {
		return fmt.Errorf("%w: %d (only 16-bit is supported)", ErrInvalidBitDepth, h.BitsPerSample)
	}
	// Rate and byte rate are 32-bit header fields.
	if h.SampleRate <= 0 || int64(h.SampleRate) > math.MaxUint32/int64(h.BlockAlign()) {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, h.SampleRate)
	}
	if int64(h.DataSize()) > MaxDataSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, h.DataSize(), int64(MaxDataSize))
	}
	return nil
}

// Asset is one encoded note: header plus little-endian sample bytes.
type Asset struct {
	Header Header
	data   []byte
}

// Option configures Encode.
type Option func(*Header)

// WithChannels sets the channel count. Only 1 is accepted.
func WithChannels(n int) Option {
	return func(h *Header) { h.Channels = n }
}

// WithBitsPerSample sets the bit depth. Only 16 is accepted.
func WithBitsPerSample(n int) Option {
	return func(h *Header) { h.BitsPerSample = n }
}

// Encode wraps samples into an Asset. The samples are copied; the caller
// keeps ownership of the slice.
func Encode(samples []int16, sampleRate int, opts ...Option) (*Asset, error) {
	h := Header{
		Channels:      Channels,
		BitsPerSample: BitsPerSample,
		SampleRate:    sampleRate,
		Frames:        len(samples),
		Compression:   CompressionNone,
	}
	for _, opt := range opts {
		opt(&h)
	}
	if err := h.validate(); err != nil {
		return nil, err
	}
	return &Asset{Header: h, data: pcm.Int16ToBytes(samples)}, nil
}

// Data returns the raw sample bytes. The returned slice must not be modified.
func (a *Asset) Data() []byte {
	return a.data
}

// Samples returns a copy of the samples.
func (a *Asset) Samples() []int16 {
	// data always holds whole samples; Encode and Decode guarantee it.
	s, _ := pcm.BytesToInt16(a.data)
	return s
}

// Len returns the size of the serialized file in bytes.
func (a *Asset) Len() int64 {
	return int64(HeaderSize + len(a.data))
}

// Chunk returns the sample data as a pcm.Chunk for playback.
func (a *Asset) Chunk() (pcm.Chunk, error) {
	f, ok := pcm.FormatForRate(a.Header.SampleRate)
	if !ok {
		return nil, fmt.Errorf("%w: no playback format for %d Hz", ErrInvalidSampleRate, a.Header.SampleRate)
	}
	return f.DataChunk(a.data), nil
}

// header returns the canonical 44-byte header.
func (a *Asset) header() []byte {
	h := a.Header
	dataSize := uint32(len(a.data))
	buf := make([]byte, HeaderSize)

	// RIFF header
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], HeaderSize-8+dataSize)
	copy(buf[8:12], "WAVE")

	// fmt chunk
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], fmtSize)
	binary.LittleEndian.PutUint16(buf[20:22], formatPCM)
	binary.LittleEndian.PutUint16(buf[22:24], uint16(h.Channels))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(h.SampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(h.ByteRate()))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(h.BlockAlign()))
	binary.LittleEndian.PutUint16(buf[34:36], uint16(h.BitsPerSample))

	// data chunk
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], dataSize)
	return buf
}

// Bytes returns the complete file.
func (a *Asset) Bytes() []byte {
	out := make([]byte, 0, a.Len())
	out = append(out, a.header()...)
	return append(out, a.data...)
}

// WriteTo writes the complete file to w.
func (a *Asset) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(a.header())
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(a.data)
	return int64(n + m), err
}

// Decode reads a RIFF/WAVE file.
func Decode(r io.Reader) (*Asset, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, fmt.Errorf("%w: read RIFF header: %v", ErrMalformed, err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, fmt.Errorf("%w: not a RIFF/WAVE file", ErrMalformed)
	}

	var (
		h      Header
		gotFmt bool
	)
	for {
		var ch [8]byte
		if _, err := io.ReadFull(r, ch[:]); err != nil {
			return nil, fmt.Errorf("%w: missing data chunk: %v", ErrMalformed, err)
		}
		id := string(ch[0:4])
		size := int64(binary.LittleEndian.Uint32(ch[4:8]))

		switch id {
		case "fmt ":
			if size < fmtSize {
				return nil, fmt.Errorf("%w: fmt chunk of %d bytes", ErrMalformed, size)
			}
			var body [fmtSize]byte
			if _, err := io.ReadFull(r, body[:]); err != nil {
				return nil, fmt.Errorf("%w: read fmt chunk: %v", ErrMalformed, err)
			}
			if _, err := io.CopyN(io.Discard, r, size-fmtSize); err != nil {
				return nil, fmt.Errorf("%w: read fmt chunk: %v", ErrMalformed, err)
			}
			if tag := binary.LittleEndian.Uint16(body[0:2]); tag != formatPCM {
				return nil, fmt.Errorf("%w: format tag %d is not PCM", ErrMalformed, tag)
			}
			h = Header{
				Channels:      int(binary.LittleEndian.Uint16(body[2:4])),
				SampleRate:    int(binary.LittleEndian.Uint32(body[4:8])),
				BitsPerSample: int(binary.LittleEndian.Uint16(body[14:16])),
				Compression:   CompressionNone,
			}
			if err := h.validate(); err != nil {
				return nil, err
			}
			gotFmt = true
			if err := skipPad(r, size); err != nil {
				return nil, err
			}

		case "data":
			if !gotFmt {
				return nil, fmt.Errorf("%w: data chunk before fmt chunk", ErrMalformed)
			}
			if size%int64(h.BlockAlign()) != 0 {
				return nil, fmt.Errorf("%w: data size %d is not a whole number of frames", ErrMalformed, size)
			}
			var data bytes.Buffer
			if _, err := io.CopyN(&data, r, size); err != nil {
				return nil, fmt.Errorf("%w: read data chunk: %v", ErrMalformed, err)
			}
			h.Frames = int(size) / h.BlockAlign()
			return &Asset{Header: h, data: data.Bytes()}, nil

		default:
			if _, err := io.CopyN(io.Discard, r, size); err != nil {
				return nil, fmt.Errorf("%w: skip %q chunk: %v", ErrMalformed, id, err)
			}
			if err := skipPad(r, size); err != nil {
				return nil, err
			}
		}
	}
}

// skipPad consumes the pad byte that follows odd-sized chunks.
func skipPad(r io.Reader, size int64) error {
	if size%2 == 0 {
		return nil
	}
	var pad [1]byte
	if _, err := io.ReadFull(r, pad[:]); err != nil {
		return fmt.Errorf("%w: missing pad byte: %v", ErrMalformed, err)
	}
	return nil
}
