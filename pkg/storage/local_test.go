package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	s, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func readAll(t *testing.T, s FileStore, path string) string {
	t.Helper()
	r, err := s.Read(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(got)
}

func writeString(t *testing.T, s FileStore, path, data string) {
	t.Helper()
	if err := WriteAll(context.Background(), s, path, bytes.NewBufferString(data)); err != nil {
		t.Fatal(err)
	}
}

// entries lists the root directory, temp files included.
func entries(t *testing.T, dir string) []string {
	t.Helper()
	des, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, de := range des {
		names = append(names, de.Name())
	}
	return names
}

func TestWriteAndRead(t *testing.T) {
	s := newTestLocal(t)
	writeString(t, s, "a/b/C4.wav", "hello, storage")
	if got := readAll(t, s, "a/b/C4.wav"); got != "hello, storage" {
		t.Fatalf("got %q", got)
	}
}

func TestWriteInvisibleUntilClose(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	w, err := s.Write(ctx, "C4.wav")
	if err != nil {
		t.Fatal(err)
	}
	io.WriteString(w, "partial")

	ok, err := s.Exists(ctx, "C4.wav")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("file visible before Close")
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if got := readAll(t, s, "C4.wav"); got != "partial" {
		t.Fatalf("got %q", got)
	}
	if names := entries(t, s.Root()); len(names) != 1 {
		t.Fatalf("leftover files: %v", names)
	}
}

type failingWriterTo struct{ err error }

func (f failingWriterTo) WriteTo(w io.Writer) (int64, error) {
	n, _ := io.WriteString(w, "garbage")
	return int64(n), f.err
}

func TestWriteAllFailureKeepsPrevious(t *testing.T) {
	s := newTestLocal(t)
	writeString(t, s, "G.wav", "previous")

	boom := errors.New("disk full")
	err := WriteAll(context.Background(), s, "G.wav", failingWriterTo{boom})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if got := readAll(t, s, "G.wav"); got != "previous" {
		t.Fatalf("got %q, want previous content", got)
	}
	if names := entries(t, s.Root()); len(names) != 1 {
		t.Fatalf("leftover files: %v", names)
	}
}

func TestWriteAllFailureCreatesNothing(t *testing.T) {
	s := newTestLocal(t)
	err := WriteAll(context.Background(), s, "F.wav", failingWriterTo{errors.New("boom")})
	if err == nil {
		t.Fatal("expected error")
	}
	ok, _ := s.Exists(context.Background(), "F.wav")
	if ok {
		t.Fatal("aborted write produced a file")
	}
}

func TestReadNotExist(t *testing.T) {
	s := newTestLocal(t)
	_, err := s.Read(context.Background(), "no-such-file")
	if !os.IsNotExist(err) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestExists(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	ok, err := s.Exists(ctx, "missing")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected false for missing file")
	}

	writeString(t, s, "present", "")

	ok, err = s.Exists(ctx, "present")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected true for existing file")
	}
}

func TestDeleteIdempotent(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	if err := s.Delete(ctx, "ghost"); err != nil {
		t.Fatal(err)
	}

	writeString(t, s, "tmp", "x")
	if err := s.Delete(ctx, "tmp"); err != nil {
		t.Fatal(err)
	}
	ok, err := s.Exists(ctx, "tmp")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("file should be gone after delete")
	}
	if err := s.Delete(ctx, "tmp"); err != nil {
		t.Fatal(err)
	}
}

func TestWriteReplaces(t *testing.T) {
	s := newTestLocal(t)
	writeString(t, s, "f", "long content here")
	writeString(t, s, "f", "short")
	if got := readAll(t, s, "f"); got != "short" {
		t.Fatalf("got %q, want %q", got, "short")
	}
}

func TestCloseTwice(t *testing.T) {
	s := newTestLocal(t)
	w, err := s.Write(context.Background(), "x")
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, err := w.Write([]byte("late")); err == nil {
		t.Fatal("Write after Close should fail")
	}
}

func TestNewLocalCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	s, err := NewLocal(dir)
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(s.Root())
	if err != nil {
		t.Fatal(err)
	}
	if !info.IsDir() {
		t.Fatal("expected directory")
	}
}
