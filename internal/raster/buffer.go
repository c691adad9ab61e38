package raster

import (
	"fmt"
	"image"
	"image/draw"
)

// InvalidInputError reports a pixel buffer that cannot be traced: zero
// dimensions or pixel data of the wrong length.
type InvalidInputError struct {
	// Reason describes what was wrong with the input.
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// Buffer is a read-only view over a decoded RGBA raster.
//
// Pixel data is stored as width × height × 4 bytes (R, G, B, A), row-major,
// top-to-bottom, with straight (non-premultiplied) alpha. The tracing
// pipeline only ever reads the alpha channel; the color channels are kept so
// the buffer remains a faithful copy of the decoded image.
//
// A Buffer is immutable after construction and safe to share between
// goroutines.
type Buffer struct {
	width  int
	height int
	pix    []uint8
}

// NewBuffer wraps raw RGBA pixel data in a Buffer.
//
// Returns *InvalidInputError if width or height is less than 1 or if pix is
// not exactly width*height*4 bytes. The pixel slice is retained, not copied;
// the caller must not mutate it afterwards.
func NewBuffer(width, height int, pix []uint8) (*Buffer, error) {
	if width < 1 || height < 1 {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("dimensions %dx%d, want at least 1x1", width, height)}
	}
	if len(pix) != width*height*4 {
		return nil, &InvalidInputError{Reason: fmt.Sprintf("pixel data length %d, want %d", len(pix), width*height*4)}
	}
	return &Buffer{width: width, height: height, pix: pix}, nil
}

// FromImage converts any decoded image into a Buffer.
//
// Images that are not already *image.NRGBA are redrawn into straight-alpha
// NRGBA first, so alpha queries are consistent regardless of the source
// color model. Fully opaque formats (JPEG and friends) produce a buffer
// where every pixel has alpha 255.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Fast path: an origin-anchored NRGBA with a packed stride already has
	// the exact byte layout Buffer expects.
	if nrgba, ok := img.(*image.NRGBA); ok && bounds.Min == (image.Point{}) && nrgba.Stride == 4*width {
		return &Buffer{width: width, height: height, pix: nrgba.Pix}
	}

	converted := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(converted, converted.Bounds(), img, bounds.Min, draw.Src)
	return &Buffer{width: width, height: height, pix: converted.Pix}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// In reports whether (x, y) lies inside the buffer bounds.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// AlphaAt returns the alpha value at (x, y).
// Out-of-bounds coordinates report 0 (transparent).
func (b *Buffer) AlphaAt(x, y int) uint8 {
	if !b.In(x, y) {
		return 0
	}
	return b.pix[(y*b.width+x)*4+3]
}

// Opaque reports whether the pixel at (x, y) has non-zero alpha.
// Out-of-bounds coordinates are never opaque.
func (b *Buffer) Opaque(x, y int) bool {
	return b.AlphaAt(x, y) != 0
}
