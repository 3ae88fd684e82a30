package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haivivi/pluck/pkg/bank"
	"github.com/haivivi/pluck/pkg/cli"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the notes of a scale into the note bank",
	Long: `Render every note of a scale as <note>.wav in the note bank.

Notes whose file already exists are skipped unless --replay is given.
The scale defaults to C minor pentatonic (C4, Eb, F, G, Bb); use -f or the
context's scale_file to render another one.

Examples:
  pluck generate
  pluck generate --replay --seed 7
  pluck generate -f blues.yaml --workers 2 --samples 88200`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Bool("replay", false, "regenerate notes that already exist")
	generateCmd.Flags().Int("workers", 0, "notes rendered in parallel (default: number of CPUs)")
	addSynthFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	b, c, closeBank, err := openBank(cmd)
	if err != nil {
		return err
	}
	defer closeBank()

	scale, err := loadScale(c)
	if err != nil {
		return err
	}
	b.Params = synthParams(cmd, c)

	replay, _ := cmd.Flags().GetBool("replay")
	workers := c.Workers
	if cmd.Flags().Changed("workers") {
		workers, _ = cmd.Flags().GetInt("workers")
	}

	printVerbose("Generating %d notes of %s (replay=%v)", len(scale.Notes), scale.Name, replay)
	results, err := b.Generate(cmd.Context(), scale, bank.GenerateOptions{
		Replay:  replay,
		Workers: workers,
	})
	if err != nil {
		return err
	}

	if outputJSON || outputFile != "" {
		return outputResult(results, outputFile, outputJSON)
	}
	var generated int
	for _, r := range results {
		switch r.Status {
		case bank.StatusGenerated:
			generated++
			cli.PrintSuccess("%-4s %s (%s, %s)", r.Note, r.Path, cli.FormatBytes(r.Size), cli.FormatDuration(r.Elapsed))
		case bank.StatusSkipped:
			cli.PrintInfo("%-4s %s exists, skipped", r.Note, r.Path)
		}
	}
	fmt.Printf("%d generated, %d skipped\n", generated, len(results)-generated)
	return nil
}
