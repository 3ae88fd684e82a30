package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
)

// OutputFormat selects how Output encodes a result.
type OutputFormat string

const (
	// FormatYAML is the default for terminals.
	FormatYAML OutputFormat = "yaml"
	// FormatJSON is meant for piping.
	FormatJSON OutputFormat = "json"
	// FormatRaw writes []byte, string and io.WriterTo values unchanged
	// (a WAV asset, for example) and falls back to YAML for anything else.
	FormatRaw OutputFormat = "raw"
)

// OutputOptions configures Output.
type OutputOptions struct {
	Format OutputFormat

	// File is the destination path; empty means stdout.
	File string

	// Indent is the JSON indentation (default two spaces).
	Indent string

	// Writer overrides File and stdout.
	Writer io.Writer
}

// Output encodes result to the configured destination.
func Output(result any, opts OutputOptions) error {
	var encode func(io.Writer, any) error
	switch opts.Format {
	case FormatYAML, "":
		encode = writeYAML
	case FormatJSON:
		indent := opts.Indent
		if indent == "" {
			indent = "  "
		}
		encode = func(w io.Writer, v any) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", indent)
			return enc.Encode(v)
		}
	case FormatRaw:
		encode = writeRaw
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}

	switch {
	case opts.Writer != nil:
		return encode(opts.Writer, result)
	case opts.File != "":
		f, err := os.Create(opts.File)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := encode(f, result); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return encode(os.Stdout, result)
	}
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func writeRaw(w io.Writer, v any) error {
	switch v := v.(type) {
	case []byte:
		_, err := w.Write(v)
		return err
	case string:
		_, err := io.WriteString(w, v)
		return err
	case io.WriterTo:
		_, err := v.WriteTo(w)
		return err
	default:
		return writeYAML(w, v)
	}
}

// styled prints one rendered line. The writer is resolved at call time so
// that redirected os.Stdout/os.Stderr are honoured.
func styled(w io.Writer, style lipgloss.Style, prefix, format string, args ...any) {
	fmt.Fprintln(w, style.Render(prefix+fmt.Sprintf(format, args...)))
}

// PrintSuccess prints a success message with a checkmark.
func PrintSuccess(format string, args ...any) {
	styled(os.Stdout, styles.Success, "✓ ", format, args...)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	styled(os.Stderr, styles.Error, "Error: ", format, args...)
}

// PrintInfo prints an informational message.
func PrintInfo(format string, args ...any) {
	styled(os.Stdout, styles.Info, "ℹ ", format, args...)
}

// PrintWarning prints a warning.
func PrintWarning(format string, args ...any) {
	styled(os.Stdout, styles.Warning, "⚠ ", format, args...)
}

// PrintVerbose prints to stderr when verbose is set.
func PrintVerbose(verbose bool, format string, args ...any) {
	if verbose {
		styled(os.Stderr, styles.Dim, "[verbose] ", format, args...)
	}
}
