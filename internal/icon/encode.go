package icon

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
)

// Compression selects the zlib level used for PNG output.
type Compression string

const (
	CompressionDefault Compression = "default"
	CompressionBest    Compression = "best"
	CompressionSpeed   Compression = "speed"
	CompressionNone    Compression = "none"
)

// ParseCompression maps a config or flag value to a Compression. The empty
// string selects CompressionDefault.
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CompressionDefault, nil
	case CompressionDefault, CompressionBest, CompressionSpeed, CompressionNone:
		return c, nil
	}
	return "", fmt.Errorf("unknown png compression %q (want default, best, speed or none)", s)
}

func (c Compression) level() png.CompressionLevel {
	switch c {
	case CompressionBest:
		return png.BestCompression
	case CompressionSpeed:
		return png.BestSpeed
	case CompressionNone:
		return png.NoCompression
	default:
		return png.DefaultCompression
	}
}

// EncodePNG writes img to w as a PNG.
func EncodePNG(w io.Writer, img image.Image, c Compression) error {
	if err := imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(c.level())); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
