package pcm

import (
	"encoding/binary"
	"errors"
	"math"
)

// MaxAmplitude is the int16 value a full-scale float sample maps to.
// The scale is symmetric, so -1.0 maps to -MaxAmplitude rather than
// math.MinInt16.
const MaxAmplitude = math.MaxInt16

// ErrOddLength is returned when a byte slice does not hold whole 16-bit samples.
var ErrOddLength = errors.New("pcm: odd number of bytes for 16-bit samples")

// Clamp restricts v to [lo, hi]. NaN maps to 0.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(lo, min(hi, v))
}

// Quantize converts a float amplitude to a signed 16-bit sample:
// round(clamp(v, -1, 1) * 32767). Out-of-range input saturates.
func Quantize(v float64) int16 {
	return int16(math.Round(Clamp(v, -1, 1) * MaxAmplitude))
}

// QuantizeAll quantizes every amplitude in vs.
func QuantizeAll(vs []float64) []int16 {
	out := make([]int16, len(vs))
	for i, v := range vs {
		out[i] = Quantize(v)
	}
	return out
}

// Int16ToBytes converts []int16 samples to raw PCM bytes (little-endian).
func Int16ToBytes(samples []int16) []byte {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}
	return data
}

// BytesToInt16 converts raw little-endian PCM bytes to []int16 samples.
func BytesToInt16(data []byte) ([]int16, error) {
	if len(data)%2 != 0 {
		return nil, ErrOddLength
	}
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return samples, nil
}
