package bank

import (
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/haivivi/pluck/pkg/kv"
)

// Key layout:
//
//	notes:{scale}:{note} -> msgpack-encoded Entry

const manifestRoot = "notes"

func entryKey(scale, note string) kv.Key {
	return kv.Key{manifestRoot, scale, note}
}

func scalePrefix(scale string) kv.Key {
	if scale == "" {
		return kv.Key{manifestRoot}
	}
	return kv.Key{manifestRoot, scale}
}

// Entry is the manifest record of one generated note.
type Entry struct {
	Scale       string    `json:"scale" yaml:"scale" msgpack:"scale"`
	Note        string    `json:"note" yaml:"note" msgpack:"note"`
	Path        string    `json:"path" yaml:"path" msgpack:"path"`
	Frequency   float64   `json:"frequency" yaml:"frequency" msgpack:"freq"`
	SampleRate  int       `json:"sample_rate" yaml:"sample_rate" msgpack:"rate"`
	SampleCount int       `json:"sample_count" yaml:"sample_count" msgpack:"count"`
	Attenuation float64   `json:"attenuation" yaml:"attenuation" msgpack:"att"`
	Seed        *uint64   `json:"seed,omitempty" yaml:"seed,omitempty" msgpack:"seed,omitempty"`
	Size        int64     `json:"size" yaml:"size" msgpack:"size"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at" msgpack:"ts"`
}

// record stores the non-nil entries in one batch.
func (b *Bank) record(ctx context.Context, entries []*Entry) error {
	if b.Index == nil {
		return nil
	}
	var batch []kv.Entry
	for _, e := range entries {
		if e == nil {
			continue
		}
		data, err := msgpack.Marshal(e)
		if err != nil {
			return fmt.Errorf("bank: encode entry %s: %w", e.Note, err)
		}
		batch = append(batch, kv.Entry{Key: entryKey(e.Scale, e.Note), Value: data})
	}
	if len(batch) == 0 {
		return nil
	}
	if err := b.Index.BatchSet(ctx, batch); err != nil {
		return fmt.Errorf("bank: record manifest: %w", err)
	}
	return nil
}

// Entries lists the manifest records of scale in note-name order. An empty
// scale lists every scale. Malformed records are logged and skipped.
func (b *Bank) Entries(ctx context.Context, scale string) ([]Entry, error) {
	if b.Index == nil {
		return nil, nil
	}
	var out []Entry
	for item, err := range b.Index.List(ctx, scalePrefix(scale)) {
		if err != nil {
			return nil, fmt.Errorf("bank: list manifest: %w", err)
		}
		var e Entry
		if err := msgpack.Unmarshal(item.Value, &e); err != nil {
			b.logger().Warn("skip malformed manifest entry", "key", item.Key.String(), "err", err)
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Entry returns the manifest record of one note, or kv.ErrNotFound.
func (b *Bank) Entry(ctx context.Context, scale, note string) (*Entry, error) {
	if b.Index == nil {
		return nil, kv.ErrNotFound
	}
	data, err := b.Index.Get(ctx, entryKey(scale, note))
	if err != nil {
		return nil, err
	}
	var e Entry
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("bank: decode entry %s: %w", note, err)
	}
	return &e, nil
}
