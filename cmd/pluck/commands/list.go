package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haivivi/pluck/pkg/cli"
)

var listCmd = &cobra.Command{
	Use:   "list [scale]",
	Short: "Show the note bank manifest",
	Long: `List the notes recorded in the manifest by 'pluck generate'.

Without arguments every scale is listed.

Examples:
  pluck list
  pluck list pentatonic-minor --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, _, closeBank, err := openBank(cmd)
		if err != nil {
			return err
		}
		defer closeBank()

		var scale string
		if len(args) == 1 {
			scale = args[0]
		}
		entries, err := b.Entries(cmd.Context(), scale)
		if err != nil {
			return err
		}

		if outputJSON || outputFile != "" {
			return outputResult(entries, outputFile, outputJSON)
		}
		if len(entries) == 0 {
			fmt.Println("No notes generated")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%-18s %-4s %8.2f Hz  %-10s %s\n",
				e.Scale, e.Note, e.Frequency, cli.FormatBytes(e.Size), e.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean [note...]",
	Short: "Remove notes from the note bank",
	Long: `Delete generated notes and their manifest entries.

Without arguments every note of the current scale is removed.

Examples:
  pluck clean
  pluck clean G Bb`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, c, closeBank, err := openBank(cmd)
		if err != nil {
			return err
		}
		defer closeBank()

		scale, err := loadScale(c)
		if err != nil {
			return err
		}
		names := args
		if len(names) == 0 {
			names = scale.Names()
		}
		for _, name := range names {
			if err := b.Remove(cmd.Context(), scale.Name, name); err != nil {
				return fmt.Errorf("remove %s: %w", name, err)
			}
			cli.PrintSuccess("Removed %s", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(cleanCmd)
}
