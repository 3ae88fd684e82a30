package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/haivivi/pluck/pkg/audio/karplus"
	"github.com/haivivi/pluck/pkg/audio/notes"
	"github.com/haivivi/pluck/pkg/audio/pcm"
	"github.com/haivivi/pluck/pkg/audio/player"
	"github.com/haivivi/pluck/pkg/audio/speaker"
	"github.com/haivivi/pluck/pkg/cli"
)

// noteGap is the silence after each note when playing a list in order.
const noteGap = 500 * time.Millisecond

var playCmd = &cobra.Command{
	Use:   "play [note...]",
	Short: "Play notes from the note bank",
	Long: `Play notes from the note bank on the default audio output.

Without arguments every note of the current scale is played in order,
each followed by half a second of silence. Notes missing from the bank
are skipped with a warning. Playback uses the sample rate the notes were
generated at.

With --idle, random notes are played with random rests (1, 2, 4 or 8
beats at 240 BPM, mostly 2) until interrupted.

Examples:
  pluck play
  pluck play C4 G
  pluck play --idle`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Bool("idle", false, "play random notes until interrupted")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	b, c, closeBank, err := openBank(cmd)
	if err != nil {
		return err
	}
	defer closeBank()

	names := args
	if len(names) == 0 {
		scale, err := loadScale(c)
		if err != nil {
			return err
		}
		names = scale.Names()
	}

	dev := &lazySpeaker{}
	defer dev.Close()
	catalog := player.NewCatalog(dev, slog.Default())

	ctx := cmd.Context()
	loaded, err := catalog.LoadAll(ctx, b, names)
	if err != nil {
		return err
	}
	if len(loaded) == 0 {
		return fmt.Errorf("no notes in the bank; run 'pluck generate' first")
	}
	if skipped := len(names) - len(loaded); skipped > 0 {
		cli.PrintWarning("%d of %d notes missing from the bank or in another format", skipped, len(names))
	}
	printVerbose("Loaded %v", loaded)

	// The speaker follows the bank, which may have been generated at a
	// rate other than the context's.
	dev.format, _ = catalog.Format()
	if c.SampleRate != 0 && c.SampleRate != dev.format.SampleRate() {
		cli.PrintWarning("notes are %d Hz, context sample_rate is %d Hz", dev.format.SampleRate(), c.SampleRate)
	}
	if err := dev.open(); err != nil {
		return err
	}

	idle, _ := cmd.Flags().GetBool("idle")
	if idle {
		picker, err := notes.NewRestPicker(notes.DefaultRests)
		if err != nil {
			return err
		}
		cli.PrintInfo("Idling on %d notes, press Ctrl-C to stop", catalog.Len())
		err = player.Idle(ctx, catalog, picker, notes.IdleTempo, karplus.NewRand(c.Seed))
		catalog.Wait()
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	for _, name := range loaded {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if err := catalog.PlayThrough(name, noteGap); err != nil {
			return err
		}
		cli.PrintSuccess("%s", name)
	}
	return nil
}

// lazySpeaker opens the audio output on first use, so that commands can
// fail on an empty bank without touching the sound device.
type lazySpeaker struct {
	format pcm.Format

	once sync.Once
	spk  *speaker.Speaker
	err  error
}

func (l *lazySpeaker) open() error {
	l.once.Do(func() {
		l.spk, l.err = speaker.Open(l.format)
	})
	return l.err
}

func (l *lazySpeaker) Play(chunk pcm.Chunk) error {
	if err := l.open(); err != nil {
		return err
	}
	return l.spk.Play(chunk)
}

func (l *lazySpeaker) Close() error {
	if l.spk == nil {
		return nil
	}
	return l.spk.Close()
}
