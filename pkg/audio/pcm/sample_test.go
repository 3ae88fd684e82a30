package pcm

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1.0, 32767},
		{-1.0, -32767},
		{1.5, 32767},
		{-1.5, -32767},
		{0.5, 16384}, // 16383.5 rounds away from zero
		{-0.5, -16384},
		{1e-6, 0},
		{math.Inf(1), 32767},
		{math.Inf(-1), -32767},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := Quantize(tt.in); got != tt.want {
			t.Errorf("Quantize(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestQuantizeClampsNotWraps(t *testing.T) {
	if Quantize(1.5) != Quantize(1.0) {
		t.Error("1.5 and 1.0 should quantize identically")
	}
	if Quantize(-7) != Quantize(-1) {
		t.Error("-7 and -1 should quantize identically")
	}
}

func TestQuantizeAll(t *testing.T) {
	got := QuantizeAll([]float64{0, 1, -1, 2})
	want := []int16{0, 32767, -32767, 32767}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestInt16Bytes(t *testing.T) {
	samples := []int16{0, 1, -1, 32767, -32768, 258}
	data := Int16ToBytes(samples)
	if len(data) != 12 {
		t.Fatalf("len = %d", len(data))
	}
	// 258 = 0x0102, little-endian
	if data[10] != 0x02 || data[11] != 0x01 {
		t.Errorf("little-endian layout broken: % x", data[10:])
	}
	back, err := BytesToInt16(data)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(back, samples) {
		t.Errorf("got %v, want %v", back, samples)
	}
}

func TestBytesToInt16OddLength(t *testing.T) {
	if _, err := BytesToInt16([]byte{1, 2, 3}); !errors.Is(err, ErrOddLength) {
		t.Errorf("err = %v, want ErrOddLength", err)
	}
}
