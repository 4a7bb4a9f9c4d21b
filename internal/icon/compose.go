// Package icon renders Android launcher icons: full-bleed square resizes and
// adaptive-icon foregrounds whose content sits inside the platform safe zone.
package icon

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Adaptive icon foreground layers are 108dp square; only the centred 66dp is
// guaranteed to survive the launcher mask.
const (
	SafeZoneUnits   = 66
	ForegroundUnits = 108
)

var (
	// ErrInvalidDimension is returned when a requested output size is not a
	// positive integer.
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrEmptySource is returned when the source image has no pixels.
	ErrEmptySource = errors.New("empty source image")
	// ErrResize is returned when resampling does not produce the requested
	// dimensions.
	ErrResize = errors.New("resize failed")
)

// SafeZone returns the side length of the safe-zone square for a foreground
// canvas of side canvasSize, and its offset from the top and left edges.
// Both values are floored; when canvasSize-size is odd the content lands one
// pixel closer to the top-left corner.
func SafeZone(canvasSize int) (size, offset int) {
	if canvasSize <= 0 {
		return 0, 0
	}
	size = canvasSize * SafeZoneUnits / ForegroundUnits
	offset = (canvasSize - size) / 2
	return size, offset
}

// Compose returns a new transparent canvasSize x canvasSize canvas with src
// resized (Lanczos) into the centred safe zone. If src carries an alpha
// channel it is used as the paste mask; otherwise the content is pasted
// fully opaque. src is not modified.
func Compose(src image.Image, canvasSize int) (*image.NRGBA, error) {
	if canvasSize <= 0 {
		return nil, fmt.Errorf("canvas size %d: %w", canvasSize, ErrInvalidDimension)
	}
	if err := checkSource(src); err != nil {
		return nil, err
	}

	canvas := imaging.New(canvasSize, canvasSize, color.NRGBA{})

	safeSize, offset := SafeZone(canvasSize)
	if safeSize == 0 {
		// Degenerate canvas: nothing fits inside the safe zone.
		return canvas, nil
	}

	resized, err := resample(src, safeSize)
	if err != nil {
		return nil, err
	}

	at := image.Pt(offset, offset)
	if hasAlpha(src) {
		pasteMasked(canvas, resized, at)
	} else {
		r := image.Rectangle{Min: at, Max: at.Add(resized.Bounds().Size())}
		draw.Draw(canvas, r, resized, resized.Bounds().Min, draw.Src)
	}
	return canvas, nil
}

// Resize returns src scaled to exactly size x size with the Lanczos filter.
// The aspect ratio is not preserved.
func Resize(src image.Image, size int) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("icon size %d: %w", size, ErrInvalidDimension)
	}
	if err := checkSource(src); err != nil {
		return nil, err
	}
	return resample(src, size)
}

func checkSource(src image.Image) error {
	if src == nil {
		return ErrEmptySource
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("source is %dx%d: %w", b.Dx(), b.Dy(), ErrEmptySource)
	}
	return nil
}

// resample wraps imaging.Resize, which signals failure only through the
// bounds of its result.
func resample(src image.Image, size int) (*image.NRGBA, error) {
	dst := imaging.Resize(src, size, size, imaging.Lanczos)
	if got := dst.Bounds().Size(); got.X != size || got.Y != size {
		return nil, fmt.Errorf("resampling to %dx%d produced %dx%d: %w", size, size, got.X, got.Y, ErrResize)
	}
	return dst, nil
}

// hasAlpha reports whether the pixel format of img can carry transparency.
func hasAlpha(img image.Image) bool {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model, color.YCbCrModel, color.CMYKModel:
		return false
	}
	return true
}

// pasteMasked blends src onto dst at the given point, using the alpha of
// each src pixel as the mask for all four channels:
//
//	out = (dst*(255-a) + src*a) / 255
//
// Alpha is blended like any other channel, so a half-transparent pixel
// pasted onto a transparent canvas ends up at roughly a quarter opacity.
func pasteMasked(dst, src *image.NRGBA, at image.Point) {
	sb := src.Bounds()
	r := image.Rectangle{Min: at, Max: at.Add(sb.Size())}.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		si := src.PixOffset(sb.Min.X+r.Min.X-at.X, sb.Min.Y+y-at.Y)
		di := dst.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			s := src.Pix[si : si+4 : si+4]
			d := dst.Pix[di : di+4 : di+4]
			m := uint32(s[3])
			for c := 0; c < 4; c++ {
				d[c] = blend(d[c], s[c], m)
			}
			si += 4
			di += 4
		}
	}
}

// blend mixes a and b by mask m in [0, 255] with rounded division by 255.
func blend(a, b uint8, m uint32) uint8 {
	t := uint32(a)*(255-m) + uint32(b)*m + 128
	return uint8((t + t>>8) >> 8)
}
