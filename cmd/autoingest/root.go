package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/foligraf/autoingest/internal/config"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "autoingest",
	Short: "Batch OBJ importer for scene documents",
	Long: `autoingest - batch OBJ importer

Imports every OBJ file from a folder into a scene document: one
collection per file, pivots centered, optional scale matching against a
reference mesh, and diffuse-to-emissive material rewiring. Finished jobs
are recorded in a local catalog.

Run 'autoingest init' to write a starter config.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("autoingest {{.Version}}\n")
}

// loadConfig resolves the --config flag or falls back to discovery.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.Discover()
		if err != nil {
			return nil, err
		}
	}
	return config.Load(path)
}
