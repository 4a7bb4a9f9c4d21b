// Package generate runs the full launcher icon pipeline: it loads the source
// logo, renders every target of the icon plan, and writes the PNG files.
package generate

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aellingwood/iconforge/internal/config"
	"github.com/aellingwood/iconforge/internal/icon"
)

// Options controls a single generation run.
type Options struct {
	Out     io.Writer // progress output; nil discards it
	Verbose bool      // report per-file render time
}

// Result describes a completed generation run.
type Result struct {
	Source       string        `json:"source"`
	SourceWidth  int           `json:"sourceWidth"`
	SourceHeight int           `json:"sourceHeight"`
	Files        []File        `json:"files"`
	Duration     time.Duration `json:"duration"`
}

// File is one icon written to disk.
type File struct {
	Path    string    `json:"path"`
	Density string    `json:"density"`
	Kind    icon.Kind `json:"kind"`
	Size    int       `json:"size"`
}

// Generator renders the icon plan for one configuration.
type Generator struct {
	cfg         *config.Config
	opts        Options
	compression icon.Compression
	err         error // invalid settings, reported by Generate
}

// NewGenerator creates a Generator for cfg. Settings that do not parse are
// reported by Generate before anything is read or written.
func NewGenerator(cfg *config.Config, opts Options) *Generator {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	g := &Generator{cfg: cfg, opts: opts}
	g.compression, g.err = icon.ParseCompression(cfg.PNG.Compression)
	return g
}

// Plan returns the targets this generator will write.
func (g *Generator) Plan() icon.Plan {
	return icon.NewPlan(g.cfg.OutputDir)
}

// Generate loads the source logo and writes every icon in the plan. The
// first failure aborts the run; files written before it are left in place.
// ctx is checked between icons.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	if g.err != nil {
		return nil, fmt.Errorf("invalid config: %w", g.err)
	}
	start := time.Now()
	out := g.opts.Out

	fmt.Fprintln(out, "Loading source logo...")
	src, err := LoadSource(g.cfg.Source)
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	fmt.Fprintf(out, "Source logo: %dx%d\n", b.Dx(), b.Dy())

	result := &Result{
		Source:       g.cfg.Source,
		SourceWidth:  b.Dx(),
		SourceHeight: b.Dy(),
	}

	var lastKind icon.Kind
	for _, t := range g.Plan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if section := sectionFor(t.Kind); section != sectionFor(lastKind) {
			fmt.Fprintf(out, "\n%s\n", section)
		}
		lastKind = t.Kind

		t0 := time.Now()
		img, err := icon.Render(src, t)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", t.Path, err)
		}
		if err := WriteIcon(t.Path, img, g.compression); err != nil {
			return nil, err
		}

		if g.opts.Verbose {
			fmt.Fprintf(out, "  Created %s (%dx%d) in %s\n", t.Path, t.Size, t.Size, time.Since(t0).Round(time.Microsecond))
		} else {
			fmt.Fprintf(out, "  Created %s (%dx%d)\n", t.Path, t.Size, t.Size)
		}

		result.Files = append(result.Files, File{
			Path:    t.Path,
			Density: t.Density,
			Kind:    t.Kind,
			Size:    t.Size,
		})
	}

	result.Duration = time.Since(start)
	fmt.Fprintf(out, "\nDone! Generated %d icons in %s\n", len(result.Files), result.Duration.Round(time.Millisecond))
	return result, nil
}

func sectionFor(k icon.Kind) string {
	switch k {
	case icon.KindLauncher, icon.KindRound:
		return "Generating launcher icons..."
	case icon.KindForeground:
		return "Generating adaptive icon foregrounds..."
	}
	return ""
}
