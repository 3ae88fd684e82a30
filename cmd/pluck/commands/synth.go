package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/haivivi/pluck/pkg/audio/karplus"
	"github.com/haivivi/pluck/pkg/audio/wav"
	"github.com/haivivi/pluck/pkg/cli"
	"github.com/haivivi/pluck/pkg/storage"
)

var synthCmd = &cobra.Command{
	Use:   "synth <frequency|note>",
	Short: "Render a single note to a WAV file",
	Long: `Render one plucked note and write it as a WAV file.

The argument is either a frequency in Hz or the name of a note in the
current scale. Without -o the WAV bytes are written to stdout.

Examples:
  pluck synth 440 -o a4.wav
  pluck synth C4 --seed 1 -o c4.wav
  pluck synth 110 --samples 88200 --attenuation 0.999 > low-a.wav`,
	Args: cobra.ExactArgs(1),
	RunE: runSynth,
}

func init() {
	addSynthFlags(synthCmd)
	rootCmd.AddCommand(synthCmd)
}

func runSynth(cmd *cobra.Command, args []string) error {
	c, err := getContext()
	if err != nil {
		return err
	}
	freq, err := resolveFrequency(c, args[0])
	if err != nil {
		return err
	}

	p := synthParams(cmd, c)
	p.Frequency = freq
	samples, err := karplus.Synthesize(p)
	if err != nil {
		return err
	}
	asset, err := wav.Encode(samples, p.SampleRate)
	if err != nil {
		return err
	}

	if outputFile == "" {
		return cli.Output(asset, cli.OutputOptions{Format: cli.FormatRaw})
	}
	if err := writeAsset(cmd.Context(), outputFile, asset); err != nil {
		return err
	}
	cli.PrintSuccess("%s: %v Hz, %d samples @ %d Hz (%s)",
		outputFile, freq, p.SampleCount, p.SampleRate, cli.FormatBytes(asset.Len()))
	return nil
}

// resolveFrequency parses arg as Hz, or looks it up in the current scale.
func resolveFrequency(c *cli.Context, arg string) (float64, error) {
	if f, err := strconv.ParseFloat(arg, 64); err == nil {
		return f, nil
	}
	scale, err := loadScale(c)
	if err != nil {
		return 0, err
	}
	n, ok := scale.Lookup(arg)
	if !ok {
		return 0, fmt.Errorf("%q is neither a frequency nor a note of %s (%v)", arg, scale.Name, scale.Names())
	}
	return n.Freq, nil
}

// writeAsset publishes asset at path in one atomic write.
func writeAsset(ctx context.Context, path string, asset *wav.Asset) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir, err := storage.NewLocal(filepath.Dir(abs))
	if err != nil {
		return err
	}
	if err := storage.WriteAll(ctx, dir, filepath.Base(abs), asset); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printVerbose("Wrote %s", abs)
	return nil
}
