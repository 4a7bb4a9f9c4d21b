package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aellingwood/iconforge/internal/config"
	"github.com/aellingwood/iconforge/internal/generate"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate all launcher icons",
	Long: "Generate writes ic_launcher.png, ic_launcher_round.png and\n" +
		"ic_launcher_foreground.png for every mipmap density directory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")

		g := generate.NewGenerator(cfg, generate.Options{
			Out:     cmd.OutOrStdout(),
			Verbose: verbose,
		})
		if _, err := g.Generate(cmd.Context()); err != nil {
			return fmt.Errorf("generating icons: %w", err)
		}
		return nil
	},
}

// resolveConfig loads the config and overlays the source/output/compression
// flags of cmd, if it defines them.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	overrides := map[string]any{}
	for flag, key := range map[string]string{
		"source":      "source",
		"output":      "outputDir",
		"compression": "compression",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}
	cfg.WithOverrides(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("source", "s", "", "source logo image (overrides config)")
	cmd.Flags().StringP("output", "o", "", "Android res/ directory (overrides config)")
	cmd.Flags().String("compression", "", "PNG compression: default, best, speed or none")
}

func init() {
	addSourceFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}
