package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aellingwood/iconforge/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "iconforge",
	Short: "Generate Android launcher icons from a single logo",
	Long: "iconforge resizes one source logo into the launcher, round and adaptive-icon\n" +
		"foreground PNGs for every Android density bucket.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "path to config file")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves the configuration for cmd. The default config file is
// optional; a file named with --config must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Root().PersistentFlags()
	configPath, _ := flags.GetString("config")
	cfg, err := config.LoadOptional(configPath, flags.Changed("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
