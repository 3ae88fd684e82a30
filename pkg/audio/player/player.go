// Package player holds decoded note assets and plays them on a Device.
package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/haivivi/pluck/pkg/audio/notes"
	"github.com/haivivi/pluck/pkg/audio/pcm"
	"github.com/haivivi/pluck/pkg/audio/wav"
	"github.com/haivivi/pluck/pkg/bank"
)

var (
	// ErrUnknownNote is returned by Play for names not in the catalog.
	ErrUnknownNote = errors.New("player: unknown note")

	// ErrEmptyCatalog is returned by PlayRandom and Idle when nothing is loaded.
	ErrEmptyCatalog = errors.New("player: empty catalog")

	// ErrMixedFormats is returned by Add for an asset whose PCM format
	// differs from the notes already in the catalog.
	ErrMixedFormats = errors.New("player: mixed formats")
)

// Device is an audio output. Play blocks until the chunk has been played.
type Device interface {
	Play(chunk pcm.Chunk) error
	Close() error
}

// Loader fetches the asset for a note name. [bank.Bank] implements it and
// returns an error wrapping [bank.ErrAssetNotFound] for missing notes.
type Loader interface {
	Load(ctx context.Context, name string) (*wav.Asset, error)
}

// Catalog maps note names to loaded assets.
type Catalog struct {
	device Device
	logger *slog.Logger

	mu        sync.RWMutex
	chunks    map[string]pcm.Chunk
	format    pcm.Format
	hasFormat bool

	wg sync.WaitGroup
}

// NewCatalog returns an empty catalog playing on device. A nil logger
// means slog.Default().
func NewCatalog(device Device, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		device: device,
		logger: logger,
		chunks: make(map[string]pcm.Chunk),
	}
}

// Add registers an asset under name, replacing any previous one. All
// notes of a catalog share the format of the first one added.
func (c *Catalog) Add(name string, asset *wav.Asset) error {
	chunk, err := asset.Chunk()
	if err != nil {
		return fmt.Errorf("player: add %s: %w", name, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasFormat {
		c.format, c.hasFormat = chunk.Format(), true
	} else if chunk.Format() != c.format {
		return fmt.Errorf("%w: %s is %s, catalog is %s", ErrMixedFormats, name, chunk.Format(), c.format)
	}
	c.chunks[name] = chunk
	return nil
}

// Format returns the PCM format of the loaded notes. ok is false until
// the first note is added.
func (c *Catalog) Format() (f pcm.Format, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.format, c.hasFormat
}

// LoadFile loads one note through loader and adds it.
func (c *Catalog) LoadFile(ctx context.Context, loader Loader, name string) error {
	asset, err := loader.Load(ctx, name)
	if err != nil {
		return err
	}
	return c.Add(name, asset)
}

// LoadAll loads every named note. Notes without an asset, or in a format
// other than the first note's, are logged and skipped; any other error
// stops the load. It returns the names loaded.
func (c *Catalog) LoadAll(ctx context.Context, loader Loader, names []string) ([]string, error) {
	var loaded []string
	for _, name := range names {
		err := c.LoadFile(ctx, loader, name)
		switch {
		case errors.Is(err, bank.ErrAssetNotFound):
			c.logger.Warn("note not found, skipping", "note", name)
			continue
		case errors.Is(err, ErrMixedFormats):
			c.logger.Warn("note format differs, skipping", "note", name, "err", err)
			continue
		}
		if err != nil {
			return loaded, err
		}
		loaded = append(loaded, name)
	}
	return loaded, nil
}

// Len returns the number of loaded notes.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.chunks)
}

// Names returns the loaded note names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	names := make([]string, 0, len(c.chunks))
	for name := range c.chunks {
		names = append(names, name)
	}
	c.mu.RUnlock()
	slices.Sort(names)
	return names
}

func (c *Catalog) chunk(name string) (pcm.Chunk, error) {
	c.mu.RLock()
	chunk, ok := c.chunks[name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNote, name)
	}
	return chunk, nil
}

// Play starts the named note on the device and returns immediately.
// Device errors are logged, not returned.
func (c *Catalog) Play(name string) error {
	chunk, err := c.chunk(name)
	if err != nil {
		return err
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.device.Play(chunk); err != nil {
			c.logger.Error("play failed", "note", name, "err", err)
			return
		}
		c.logger.Debug("played", "note", name, "duration", chunk.Format().Duration(chunk.Len()))
	}()
	return nil
}

// PlayThrough plays the named note to the end followed by gap of silence.
// Unlike Play it blocks and returns device errors.
func (c *Catalog) PlayThrough(name string, gap time.Duration) error {
	chunk, err := c.chunk(name)
	if err != nil {
		return err
	}
	if err := c.device.Play(chunk); err != nil {
		return fmt.Errorf("player: play %s: %w", name, err)
	}
	if gap <= 0 {
		return nil
	}
	if err := c.device.Play(chunk.Format().SilenceChunk(gap)); err != nil {
		return fmt.Errorf("player: rest after %s: %w", name, err)
	}
	return nil
}

// PlayRandom plays a uniformly chosen note and returns its name.
func (c *Catalog) PlayRandom(rng *rand.Rand) (string, error) {
	names := c.Names()
	if len(names) == 0 {
		return "", ErrEmptyCatalog
	}
	name := names[rng.IntN(len(names))]
	return name, c.Play(name)
}

// Wait blocks until every note started by Play has finished.
func (c *Catalog) Wait() {
	c.wg.Wait()
}

// Idle plays random notes separated by random rests until ctx is done.
// Each rest lasts tempo.BeatDuration(picker.Pick(rng)). It returns
// ctx.Err() on cancellation.
func Idle(ctx context.Context, c *Catalog, picker *notes.RestPicker, tempo notes.Tempo, rng *rand.Rand) error {
	if err := tempo.Validate(); err != nil {
		return err
	}
	if c.Len() == 0 {
		return ErrEmptyCatalog
	}
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		name, err := c.PlayRandom(rng)
		if err != nil {
			return err
		}
		rest := tempo.BeatDuration(picker.Pick(rng))
		c.logger.Debug("idle", "note", name, "rest", rest)
		timer.Reset(rest)
	}
}
