package pcm

import (
	"bytes"
	"testing"
	"time"
)

func TestFormatForRate(t *testing.T) {
	tests := []struct {
		rate int
		want Format
		ok   bool
	}{
		{16000, L16Mono16K, true},
		{22050, L16Mono22K, true},
		{24000, L16Mono24K, true},
		{44100, L16Mono44K, true},
		{48000, L16Mono48K, true},
		{8000, 0, false},
	}
	for _, tt := range tests {
		got, ok := FormatForRate(tt.rate)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("FormatForRate(%d) = %v, %v; want %v, %v", tt.rate, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFormat44K(t *testing.T) {
	f := L16Mono44K
	if f.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d", f.SampleRate())
	}
	if f.Channels() != 1 || f.Depth() != 16 {
		t.Errorf("Channels() = %d, Depth() = %d", f.Channels(), f.Depth())
	}
	if got := f.BytesInDuration(time.Second); got != 88200 {
		t.Errorf("BytesInDuration(1s) = %d, want 88200", got)
	}
	if got := f.Duration(88200); got != time.Second {
		t.Errorf("Duration(88200) = %v, want 1s", got)
	}
	if got := f.String(); got != "audio/L16; rate=44100; channels=1" {
		t.Errorf("String() = %q", got)
	}
}

func TestInvalidFormatPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Format(99).SampleRate()
}

func TestSilenceChunk(t *testing.T) {
	c := L16Mono44K.SilenceChunk(time.Second)
	if c.Len() != 88200 {
		t.Fatalf("Len() = %d", c.Len())
	}
	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 88200 || buf.Len() != 88200 {
		t.Errorf("wrote %d, buffered %d", n, buf.Len())
	}
	for i, b := range buf.Bytes() {
		if b != 0 {
			t.Fatalf("byte %d = %d, want 0", i, b)
		}
	}
}

func TestDataChunk(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	c := L16Mono16K.DataChunk(data)
	if c.Len() != 4 || c.Format() != L16Mono16K {
		t.Errorf("Len() = %d, Format() = %v", c.Len(), c.Format())
	}
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), data) {
		t.Errorf("got %v", buf.Bytes())
	}
}
