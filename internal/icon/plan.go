package icon

import (
	"fmt"
	"image"
	"path/filepath"
)

// Target is a single icon file to render.
type Target struct {
	Density string `json:"density"`
	Kind    Kind   `json:"kind"`
	Size    int    `json:"size"`
	Path    string `json:"path"`
}

// Plan is the ordered list of icons generated from one source logo.
type Plan []Target

// NewPlan returns the targets for every density rooted at baseDir: launcher
// and round icons for each density first, then the adaptive foregrounds.
func NewPlan(baseDir string) Plan {
	ds := Densities()
	plan := make(Plan, 0, len(ds)*3)
	for _, d := range ds {
		for _, k := range []Kind{KindLauncher, KindRound} {
			plan = append(plan, newTarget(baseDir, d, k))
		}
	}
	for _, d := range ds {
		plan = append(plan, newTarget(baseDir, d, KindForeground))
	}
	return plan
}

func newTarget(baseDir string, d Density, k Kind) Target {
	return Target{
		Density: d.Name,
		Kind:    k,
		Size:    k.Size(d),
		Path:    filepath.Join(baseDir, d.Name, k.Filename()),
	}
}

// Dirs returns the distinct output directories of the plan in order.
func (p Plan) Dirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, t := range p {
		dir := filepath.Dir(t.Path)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// Render produces the image for t from src. Round icons are rendered exactly
// like launcher icons; any circular masking is left to the launcher.
func Render(src image.Image, t Target) (*image.NRGBA, error) {
	switch t.Kind {
	case KindLauncher, KindRound:
		return Resize(src, t.Size)
	case KindForeground:
		return Compose(src, t.Size)
	default:
		return nil, fmt.Errorf("unknown icon kind %q", t.Kind)
	}
}
