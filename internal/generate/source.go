package generate

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/webp"
)

var (
	// ErrSourceNotFound is returned when the source logo path does not exist.
	ErrSourceNotFound = errors.New("source image not found")
	// ErrDecode is returned when the source file is not a decodable image.
	ErrDecode = errors.New("cannot decode source image")
)

// LoadSource reads the logo at path and normalizes it to NRGBA so that
// every pixel carries its own alpha. PNG, JPEG, GIF, BMP and TIFF go through
// imaging; WebP is decoded with gen2brain/webp.
func LoadSource(path string) (*image.NRGBA, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrSourceNotFound)
		}
		return nil, fmt.Errorf("opening source %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, ErrSourceNotFound)
	}

	img, err := decode(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrDecode, err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%s has no pixels: %w", path, ErrDecode)
	}
	return imaging.Clone(img), nil
}

func decode(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return webp.Decode(f)
	}
	return imaging.Open(path, imaging.AutoOrientation(true))
}
