package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haivivi/pluck/pkg/cli"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `Manage pluck configuration.

Configuration is stored in ~/.pluck/pluck/config.yaml.
Multiple contexts can be defined for different synthesis settings and
note stores (local directory or S3 bucket).`,
}

var configAddContextCmd = &cobra.Command{
	Use:   "add-context <name>",
	Short: "Add a new context",
	Long: `Add a new context. Unset fields use the built-in defaults.

Examples:
  pluck config add-context studio --samples 88200 --attenuation 0.998
  pluck config add-context repro --seed 42 --dir ./notes
  pluck config add-context cloud --s3-bucket my-notes --s3-prefix pluck`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		flags := cmd.Flags()

		ctx := &cli.Context{Name: name}
		ctx.SampleRate, _ = flags.GetInt("rate")
		ctx.SampleCount, _ = flags.GetInt("samples")
		ctx.Attenuation, _ = flags.GetFloat64("attenuation")
		ctx.StoreDir, _ = flags.GetString("store-dir")
		ctx.ScaleFile, _ = flags.GetString("scale")
		ctx.Workers, _ = flags.GetInt("workers")
		if flags.Changed("seed") {
			seed, _ := flags.GetUint64("seed")
			ctx.Seed = &seed
		}
		if bucket, _ := flags.GetString("s3-bucket"); bucket != "" {
			ctx.S3 = &cli.S3Config{Bucket: bucket}
			ctx.S3.Prefix, _ = flags.GetString("s3-prefix")
			ctx.S3.Region, _ = flags.GetString("s3-region")
			ctx.S3.Endpoint, _ = flags.GetString("s3-endpoint")
		}

		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if err := cfg.AddContext(name, ctx); err != nil {
			return err
		}

		cli.PrintSuccess("Context '%s' added successfully", name)
		return nil
	},
}

var configDeleteContextCmd = &cobra.Command{
	Use:   "delete-context <name>",
	Short: "Delete a context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if err := cfg.DeleteContext(name); err != nil {
			return err
		}
		cli.PrintSuccess("Context '%s' deleted", name)
		return nil
	},
}

var configUseContextCmd = &cobra.Command{
	Use:   "use-context <name>",
	Short: "Set the default context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if err := cfg.UseContext(name); err != nil {
			return err
		}
		cli.PrintSuccess("Switched to context '%s'", name)
		return nil
	},
}

var configGetContextCmd = &cobra.Command{
	Use:   "get-context",
	Short: "Show the current context",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if cfg.CurrentContext == "" {
			fmt.Println("No current context set")
		} else {
			fmt.Println(cfg.CurrentContext)
		}
		return nil
	},
}

var configListContextsCmd = &cobra.Command{
	Use:   "list-contexts",
	Short: "List all contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		names := cfg.ListContexts()
		if len(names) == 0 {
			fmt.Println("No contexts configured")
			return nil
		}
		for _, name := range names {
			marker := "  "
			if name == cfg.CurrentContext {
				marker = "* "
			}
			fmt.Printf("%s%s\n", marker, name)
		}
		return nil
	},
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View full configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		return outputResult(cfg, "", outputJSON)
	},
}

func init() {
	// add-context flags
	f := configAddContextCmd.Flags()
	f.Int("rate", 0, "sample rate in Hz")
	f.Int("samples", 0, "samples per note")
	f.Float64("attenuation", 0, "per-step loss factor in (0, 1]")
	f.Uint64("seed", 0, "noise seed for reproducible notes")
	f.String("store-dir", "", "local note bank directory")
	f.String("scale", "", "scale file (YAML or JSON)")
	f.Int("workers", 0, "notes rendered in parallel")
	f.String("s3-bucket", "", "store notes in this S3 bucket")
	f.String("s3-prefix", "", "S3 key prefix")
	f.String("s3-region", "", "S3 region")
	f.String("s3-endpoint", "", "S3-compatible endpoint, e.g. http://localhost:9000")

	configCmd.AddCommand(configAddContextCmd)
	configCmd.AddCommand(configDeleteContextCmd)
	configCmd.AddCommand(configUseContextCmd)
	configCmd.AddCommand(configGetContextCmd)
	configCmd.AddCommand(configListContextsCmd)
	configCmd.AddCommand(configViewCmd)
	rootCmd.AddCommand(configCmd)
}
