// Package cli implements the mifregion command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beetlebugorg/mif/internal/config"
	"github.com/beetlebugorg/mif/internal/logger"
)

// NewRootCommand builds the command tree. Settings are read from flags, then
// MIFREGION_* environment variables (a local .env file is loaded first), then
// the --config file.
func NewRootCommand() *cobra.Command {
	v := config.NewViper(".env")

	rootCmd := &cobra.Command{
		Use:   "mifregion",
		Short: "convert MIF polygons into per-group MIF Region files",
		Long: `mifregion reads a MapInfo Interchange (MIF/MID) dataset, encodes each polygon
feature as a MIF Region block, groups features by the prefix of a key column,
and writes one MIF file per group plus an HTML summary table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if err := config.ReadFile(v, v.GetString("config")); err != nil {
				return err
			}
			logger.Setup(cmd.ErrOrStderr(), v.GetString("log-level"), v.GetString("log-format"))
			return nil
		},
	}

	d := config.Default()
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (YAML, JSON or TOML)")
	rootCmd.PersistentFlags().String("log-level", d.LogLevel, "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", d.LogFormat, "log format: text or json")

	rootCmd.AddCommand(
		newSplitCommand(v),
		newEncodeCommand(v),
		newInspectCommand(),
		newVersionCommand(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure. This is called
// by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

