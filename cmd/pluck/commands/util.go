package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/haivivi/pluck/pkg/audio/karplus"
	"github.com/haivivi/pluck/pkg/audio/notes"
	"github.com/haivivi/pluck/pkg/bank"
	"github.com/haivivi/pluck/pkg/cli"
	"github.com/haivivi/pluck/pkg/kv"
	"github.com/haivivi/pluck/pkg/storage"
)

// addSynthFlags registers the synthesis overrides shared by generate and synth.
func addSynthFlags(cmd *cobra.Command) {
	cmd.Flags().Int("rate", 0, "sample rate in Hz (default 44100)")
	cmd.Flags().Int("samples", 0, "samples per note (default 44100)")
	cmd.Flags().Float64("attenuation", 0, "per-step loss factor in (0, 1] (default 0.996)")
	cmd.Flags().Uint64("seed", 0, "noise seed for reproducible output")
}

// synthParams merges the context and any changed flags into a template.
// Flags win over the context; zero values fall back to karplus defaults.
func synthParams(cmd *cobra.Command, c *cli.Context) karplus.Params {
	p := karplus.Params{
		SampleRate:  c.SampleRate,
		SampleCount: c.SampleCount,
		Attenuation: c.Attenuation,
		Seed:        c.Seed,
	}
	flags := cmd.Flags()
	if flags.Changed("rate") {
		p.SampleRate, _ = flags.GetInt("rate")
	}
	if flags.Changed("samples") {
		p.SampleCount, _ = flags.GetInt("samples")
	}
	if flags.Changed("attenuation") {
		p.Attenuation, _ = flags.GetFloat64("attenuation")
	}
	if flags.Changed("seed") {
		seed, _ := flags.GetUint64("seed")
		p.Seed = &seed
	}
	if p.SampleRate == 0 {
		p.SampleRate = karplus.DefaultSampleRate
	}
	if p.SampleCount == 0 {
		p.SampleCount = karplus.DefaultSampleCount
	}
	if p.Attenuation == 0 {
		p.Attenuation = karplus.DefaultAttenuation
	}
	return p
}

// loadScale returns the scale from -f, the context's scale file, or the
// default pentatonic minor scale.
func loadScale(c *cli.Context) (notes.Scale, error) {
	path := inputFile
	if path == "" {
		path = c.ScaleFile
	}
	if path == "" {
		return notes.PentatonicMinor, nil
	}
	printVerbose("Loading scale from %s", path)
	return notes.LoadScale(path)
}

// openStore returns the note store: --dir, then the context's S3 bucket,
// then the context's store_dir, then <app>/media.
func openStore(ctx context.Context, cfg *cli.Config, c *cli.Context) (storage.FileStore, error) {
	switch {
	case storeDir != "":
		return storage.NewLocal(storeDir)
	case c.S3 != nil:
		printVerbose("Using s3://%s/%s", c.S3.Bucket, c.S3.Prefix)
		return storage.DialS3(ctx, storage.S3Options{
			Bucket:   c.S3.Bucket,
			Prefix:   c.S3.Prefix,
			Region:   c.S3.Region,
			Endpoint: c.S3.Endpoint,
		})
	case c.StoreDir != "":
		return storage.NewLocal(c.StoreDir)
	default:
		return storage.NewLocal(cfg.Paths().MediaDir())
	}
}

// openBank opens the note store and the badger manifest. The returned
// close function releases the manifest.
func openBank(cmd *cobra.Command) (*bank.Bank, *cli.Context, func(), error) {
	cfg, err := getConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	c, err := getContext()
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := openStore(cmd.Context(), cfg, c)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open note store: %w", err)
	}

	paths := cfg.Paths()
	if err := paths.EnsureDataDir(); err != nil {
		return nil, nil, nil, err
	}
	index, err := kv.NewBadger(kv.BadgerOptions{Dir: paths.DataPath("manifest")})
	if err != nil {
		return nil, nil, nil, err
	}
	b := &bank.Bank{
		Store:  store,
		Index:  index,
		Logger: slog.Default(),
	}
	return b, c, func() { index.Close() }, nil
}
