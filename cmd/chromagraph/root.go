package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chromagraph/internal/config"
)

var version = "0.3.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "chromagraph",
	Short:         "chromagraph: interactive graph editor with remote vertex coloring",
	Long:          brand.Sprint("chromagraph") + " builds undirected graphs and renders the coloring computed by a remote service",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("chromagraph {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: search "+config.ConfigFileName+", "+config.TOMLConfigFileName+", XDG and /etc)")

	rootCmd.AddCommand(
		serveCmd(),
		colorCmd(),
		configCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), bad.Sprint("chromagraph: ")+err.Error())
		return err
	}
	return nil
}

// loadConfig reads the --config file if given, else searches the default locations
func loadConfig() (*config.Config, string, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load()
}
