package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aellingwood/iconforge/internal/generate"
	"github.com/aellingwood/iconforge/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate icons whenever the logo or config changes",
	Long: "Watch generates every icon once, then regenerates the full set each time\n" +
		"the source logo or the config file is modified.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
		configPath, _ := cmd.Root().PersistentFlags().GetString("config")
		out := cmd.OutOrStdout()

		// 1. Initial generation.
		if _, err := generate.NewGenerator(cfg, generate.Options{Out: out, Verbose: verbose}).Generate(cmd.Context()); err != nil {
			return fmt.Errorf("initial generation failed: %w", err)
		}

		// 2. Regenerate on change. Config edits are picked up by reloading
		// it; one regeneration runs at a time. When the config points at a
		// different logo, the watcher follows it.
		var (
			mu      sync.Mutex
			w       *watch.Watcher
			watched = cfg.Source
		)
		regenerate := func() {
			mu.Lock()
			defer mu.Unlock()

			log.Println("Change detected, regenerating...")
			next, err := resolveConfig(cmd)
			if err != nil {
				log.Printf("Regeneration skipped: %v", err)
				return
			}
			if next.Source != watched {
				log.Printf("Source changed to %s, now watching it", next.Source)
				watched = next.Source
				w.SetFiles([]string{watched, configPath})
			}
			result, err := generate.NewGenerator(next, generate.Options{Verbose: verbose}).Generate(cmd.Context())
			if err != nil {
				log.Printf("Regeneration failed: %v", err)
				return
			}
			log.Printf("Regenerated %d icons in %s", len(result.Files), result.Duration)
		}

		w = watch.NewWatcher([]string{cfg.Source, configPath}, cfg.Watch.Debounce, regenerate)

		// 3. Handle graceful shutdown.
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		go func() {
			select {
			case <-sigCh:
				fmt.Fprintln(out, "\nShutting down...")
			case <-ctx.Done():
			}
			w.Stop()
		}()

		fmt.Fprintf(out, "\nWatching %s for changes (Ctrl+C to stop)\n", cfg.Source)

		// 4. Block until stopped.
		if err := w.Start(); err != nil {
			return fmt.Errorf("watcher error: %w", err)
		}
		return nil
	},
}

func init() {
	addSourceFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}
