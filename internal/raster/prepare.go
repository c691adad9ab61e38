package raster

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// DefaultMaxDimension is the largest edge length, in pixels, an image is
// allowed to keep at processing resolution. Larger images are downscaled
// before tracing.
const DefaultMaxDimension = 150

// PrepareOptions controls how a source image is brought to processing
// resolution.
type PrepareOptions struct {
	// MaxDimension caps the processing raster's width and height. Images
	// whose larger edge exceeds it are downscaled (aspect preserved) with
	// Lanczos resampling. Values < 1 fall back to DefaultMaxDimension.
	MaxDimension int

	// SmoothRadius, when > 0, applies a Gaussian blur of that radius to the
	// processing raster before tracing. Softening a dithered or
	// anti-aliased alpha edge collapses speckle that would otherwise seed
	// hundreds of tiny contours. 0 disables smoothing.
	SmoothRadius float64
}

// DefaultPrepareOptions returns the standard preparation settings:
// 150px maximum dimension, smoothing off.
func DefaultPrepareOptions() PrepareOptions {
	return PrepareOptions{
		MaxDimension: DefaultMaxDimension,
		SmoothRadius: 0,
	}
}

// Prepared is a source image brought to processing resolution, together with
// the bookkeeping the outline builder needs to undo the downscale.
type Prepared struct {
	// Buffer is the processing-resolution pixel buffer.
	Buffer *Buffer

	// Scale converts processing-resolution pixels back to source-image
	// pixels (multiply). 1.0 when no downscale happened, > 1.0 otherwise.
	Scale float64

	// SourceWidth and SourceHeight are the original image dimensions.
	SourceWidth  int
	SourceHeight int
}

// Prepare converts a decoded image into a processing-resolution Buffer.
//
// Images larger than opts.MaxDimension on either edge are downscaled with
// imaging.Fit (Lanczos); the resulting downscale ratio is reported in
// Prepared.Scale. If opts.SmoothRadius > 0 the raster is Gaussian-blurred
// after scaling, which blunts hard alpha noise at the cost of slightly
// rounded silhouette corners.
//
// Returns *InvalidInputError for a nil or empty image.
func Prepare(img image.Image, opts PrepareOptions) (*Prepared, error) {
	if img == nil {
		return nil, &InvalidInputError{Reason: "nil image"}
	}
	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()
	if srcW < 1 || srcH < 1 {
		return nil, &InvalidInputError{Reason: "empty image"}
	}

	maxDim := opts.MaxDimension
	if maxDim < 1 {
		maxDim = DefaultMaxDimension
	}

	work := img
	scale := 1.0
	if srcW > maxDim || srcH > maxDim {
		fitted := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
		// Fit preserves aspect ratio, so one ratio describes both axes.
		scale = float64(srcW) / float64(fitted.Bounds().Dx())
		work = fitted
	}

	if opts.SmoothRadius > 0 {
		work = blur.Gaussian(work, opts.SmoothRadius)
	}

	return &Prepared{
		Buffer:       FromImage(work),
		Scale:        scale,
		SourceWidth:  srcW,
		SourceHeight: srcH,
	}, nil
}
