package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aellingwood/iconforge/internal/icon"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the icons that would be generated",
	Long:  "List every icon file with its density, kind and pixel size without writing anything.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		plan := icon.NewPlan(cfg.OutputDir)
		out := cmd.OutOrStdout()
		for _, t := range plan {
			size := fmt.Sprintf("%dx%d", t.Size, t.Size)
			if t.Kind == icon.KindForeground {
				safe, offset := icon.SafeZone(t.Size)
				size += fmt.Sprintf(" (safe zone %dx%d at +%d)", safe, safe, offset)
			}
			fmt.Fprintf(out, "%-15s %-11s %-32s %s\n", t.Density, t.Kind, size, t.Path)
		}
		fmt.Fprintf(out, "\n%d icons in %d directories\n", len(plan), len(plan.Dirs()))
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("output", "o", "", "Android res/ directory (overrides config)")
	rootCmd.AddCommand(listCmd)
}
