// Package bank maintains a directory of pre-rendered plucked notes.
//
// Each note of a scale is synthesized once, encoded as a WAV asset and
// written to a [storage.FileStore] as <note>.wav. Existing files are treated
// as a cache and skipped unless a replay is requested. Every generated note
// is recorded in a manifest held in a [kv.Store].
package bank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/haivivi/pluck/pkg/audio/karplus"
	"github.com/haivivi/pluck/pkg/audio/notes"
	"github.com/haivivi/pluck/pkg/audio/wav"
	"github.com/haivivi/pluck/pkg/kv"
	"github.com/haivivi/pluck/pkg/storage"
)

// ErrAssetNotFound is returned when a note has no asset in the store.
var ErrAssetNotFound = errors.New("bank: asset not found")

// Bank generates and loads note assets.
type Bank struct {
	// Store holds the <note>.wav assets. Required.
	Store storage.FileStore

	// Index holds the manifest. Nil disables the manifest.
	Index kv.Store

	// Params is the synthesis template. Frequency is taken from each note;
	// zero fields fall back to karplus defaults.
	Params karplus.Params

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// GenerateOptions controls a Generate run.
type GenerateOptions struct {
	// Replay regenerates notes whose asset already exists.
	Replay bool

	// Workers bounds the number of notes rendered at once.
	// Zero means runtime.NumCPU().
	Workers int

	// Seed overrides Params.Seed for every note of the run.
	Seed *uint64
}

// Status is the outcome of a single note in a Generate run.
type Status string

const (
	StatusGenerated Status = "generated"
	StatusSkipped   Status = "skipped"
)

// Result reports what Generate did for one note.
type Result struct {
	Note    string        `json:"note" yaml:"note"`
	Path    string        `json:"path" yaml:"path"`
	Status  Status        `json:"status" yaml:"status"`
	Size    int64         `json:"size,omitempty" yaml:"size,omitempty"`
	Elapsed time.Duration `json:"elapsed,omitempty" yaml:"elapsed,omitempty"`
}

func (b *Bank) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

// params returns the synthesis parameters for a note.
func (b *Bank) params(n notes.Note, seed *uint64) karplus.Params {
	p := b.Params
	p.Frequency = n.Freq
	if p.SampleRate == 0 {
		p.SampleRate = karplus.DefaultSampleRate
	}
	if p.SampleCount == 0 {
		p.SampleCount = karplus.DefaultSampleCount
	}
	if p.Attenuation == 0 {
		p.Attenuation = karplus.DefaultAttenuation
	}
	if seed != nil {
		p.Seed = seed
	}
	return p
}

// Generate renders every note of scale that is missing from the store, or
// all of them when opts.Replay is set. Results are in scale order.
//
// The scale and every note's parameters are validated before any file is
// touched. The first synthesis or I/O error cancels the remaining notes and
// is returned; notes written before the failure are still recorded in the
// manifest.
func (b *Bank) Generate(ctx context.Context, scale notes.Scale, opts GenerateOptions) ([]Result, error) {
	if err := scale.Validate(); err != nil {
		return nil, err
	}
	for _, n := range scale.Notes {
		if _, err := b.params(n, opts.Seed).Validate(); err != nil {
			return nil, fmt.Errorf("bank: note %s: %w", n.Name, err)
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(scale.Notes))
	entries := make([]*Entry, len(scale.Notes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, n := range scale.Notes {
		g.Go(func() error {
			res, entry, err := b.generateNote(gctx, scale.Name, n, opts)
			if err != nil {
				return fmt.Errorf("bank: note %s: %w", n.Name, err)
			}
			results[i] = res
			entries[i] = entry
			return nil
		})
	}
	err := g.Wait()

	if recErr := b.record(ctx, entries); recErr != nil && err == nil {
		err = recErr
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (b *Bank) generateNote(ctx context.Context, scale string, n notes.Note, opts GenerateOptions) (Result, *Entry, error) {
	path := n.Filename()
	res := Result{Note: n.Name, Path: path}
	log := b.logger().With("note", n.Name, "path", path)

	if err := ctx.Err(); err != nil {
		return res, nil, err
	}
	if !opts.Replay {
		ok, err := b.Store.Exists(ctx, path)
		if err != nil {
			return res, nil, err
		}
		if ok {
			log.Debug("note exists, skipping")
			res.Status = StatusSkipped
			return res, nil, nil
		}
	}

	start := time.Now()
	p := b.params(n, opts.Seed)
	samples, err := karplus.Synthesize(p)
	if err != nil {
		return res, nil, err
	}
	asset, err := wav.Encode(samples, p.SampleRate)
	if err != nil {
		return res, nil, err
	}
	if err := storage.WriteAll(ctx, b.Store, path, asset); err != nil {
		return res, nil, fmt.Errorf("write %s: %w", path, err)
	}

	res.Status = StatusGenerated
	res.Size = asset.Len()
	res.Elapsed = time.Since(start)
	log.Info("note generated", "bytes", res.Size, "elapsed", res.Elapsed)

	return res, &Entry{
		Scale:       scale,
		Note:        n.Name,
		Path:        path,
		Frequency:   n.Freq,
		SampleRate:  p.SampleRate,
		SampleCount: p.SampleCount,
		Attenuation: p.Attenuation,
		Seed:        p.Seed,
		Size:        res.Size,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Load reads and decodes the asset for the named note.
func (b *Bank) Load(ctx context.Context, name string) (*wav.Asset, error) {
	if err := notes.ValidateName(name); err != nil {
		return nil, fmt.Errorf("bank: %w", err)
	}
	path := notes.Note{Name: name}.Filename()
	r, err := b.Store.Read(ctx, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
		}
		return nil, err
	}
	defer r.Close()

	asset, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("bank: decode %s: %w", path, err)
	}
	return asset, nil
}

// Remove deletes the asset and manifest entry of a note. Missing notes are
// not an error.
func (b *Bank) Remove(ctx context.Context, scale, name string) error {
	if err := notes.ValidateName(name); err != nil {
		return fmt.Errorf("bank: %w", err)
	}
	if err := b.Store.Delete(ctx, notes.Note{Name: name}.Filename()); err != nil {
		return err
	}
	if b.Index == nil {
		return nil
	}
	return b.Index.Delete(ctx, entryKey(scale, name))
}
