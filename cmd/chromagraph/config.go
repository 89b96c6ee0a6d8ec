package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"chromagraph/internal/config"
)

func configCmd() *cobra.Command {
	var asTOML, raw bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration and where it came from",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if path == "" {
				path = subtle.Sprint("(defaults, no file found)")
			}
			fmt.Fprintf(out, "%s %s\n\n", brand.Sprint("source:"), path)

			if !raw {
				fmt.Fprintln(out, cfg.Summary())
				return nil
			}

			data, err := cfg.Encode(asTOML)
			if err != nil {
				return err
			}
			fmt.Fprint(out, string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the full config document instead of a summary")
	cmd.Flags().BoolVar(&asTOML, "toml", false, "With --raw, print TOML instead of YAML")
	cmd.AddCommand(configInitCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration to a file",
		Long:  "Write the default configuration to path, or to " + config.DefaultConfigPath() + " when omitted. A .toml path is written as TOML.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigPath()
			if len(args) == 1 {
				path = args[0]
			}
			return initConfig(cmd.OutOrStdout(), path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func initConfig(out io.Writer, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(out, "%s wrote %s\n", good.Sprint("✓"), path)
	return nil
}
