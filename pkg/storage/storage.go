// Package storage defines the FileStore interface for reading and writing
// files. It abstracts the underlying storage backend so that callers can
// swap between local disk and cloud object stores without changing
// application code.
//
// Within pluck it persists generated note assets (<note>.wav). Writers
// publish atomically: a reader either sees the previous object or the
// complete new one, never a truncated file.
package storage

import (
	"context"
	"io"
)

// FileStore is a minimal interface for file-oriented storage.
//
// Paths are forward-slash separated and relative to the store root.
// Implementations must be safe for concurrent use.
type FileStore interface {
	// Read opens the named file for reading.
	// The caller must close the returned ReadCloser when done.
	// If the file does not exist, an error wrapping os.ErrNotExist is returned.
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Write opens the named file for writing.
	// The content becomes visible, replacing any previous file, only when
	// the returned WriteCloser is closed successfully.
	// Parent directories are created automatically.
	Write(ctx context.Context, path string) (io.WriteCloser, error)

	// Delete removes the named file.
	// If the file does not exist, Delete returns nil (idempotent).
	Delete(ctx context.Context, path string) error

	// Exists reports whether the named file exists.
	Exists(ctx context.Context, path string) (bool, error)
}

// Aborter is implemented by writers that can discard everything written so
// far instead of publishing it.
type Aborter interface {
	Abort(err error) error
}

// WriteAll writes src to path in a single publish. If writing fails the
// partial content is discarded and the previous file, if any, is kept.
func WriteAll(ctx context.Context, s FileStore, path string, src io.WriterTo) error {
	w, err := s.Write(ctx, path)
	if err != nil {
		return err
	}
	if _, err := src.WriteTo(w); err != nil {
		if a, ok := w.(Aborter); ok {
			a.Abort(err)
		} else {
			w.Close()
		}
		return err
	}
	return w.Close()
}
