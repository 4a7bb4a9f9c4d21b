package generate

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/aellingwood/iconforge/internal/icon"
)

// ErrWrite is returned when an icon cannot be written to its destination.
var ErrWrite = errors.New("cannot write icon")

// WriteIcon encodes img as a PNG at path, creating the parent directory if
// needed. An existing file is overwritten.
func WriteIcon(path string, img image.Image, c icon.Compression) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w: %v", dir, ErrWrite, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w: %v", path, ErrWrite, err)
	}
	defer f.Close()

	if err := icon.EncodePNG(f, img, c); err != nil {
		return fmt.Errorf("writing %s: %w: %v", path, ErrWrite, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w: %v", path, ErrWrite, err)
	}
	return nil
}
