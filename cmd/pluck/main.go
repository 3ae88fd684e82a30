// Package main provides the pluck CLI.
//
// Usage:
//
//	pluck [flags] <command> [args]
//
// Commands:
//
//	generate - render the notes of a scale into the note bank
//	synth    - render a single note to a WAV file
//	play     - play notes from the bank, or idle on random notes
//	list     - show the note bank manifest
//	clean    - remove notes from the bank
//	config   - configuration management
//	version  - show version information
//
// Configuration:
//
//	The CLI stores configuration in ~/.pluck/pluck/
//	Use 'pluck config' commands to manage contexts.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/haivivi/pluck/cmd/pluck/commands"
	"github.com/haivivi/pluck/pkg/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx); err != nil {
		cli.PrintError("%v", err)
		stop()
		os.Exit(1)
	}
}
