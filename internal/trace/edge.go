package trace

import (
	"time"

	"github.com/austlee/png2svg/internal/raster"
)

// Moore neighborhood in clockwise order starting east:
// E, SE, S, SW, W, NW, N, NE.
var (
	mooreDX = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	mooreDY = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
)

// edgeField is the boundary-pixel set produced by one scan: the pixels in
// discovery order (row-major, then column) plus a flat membership grid for
// O(1) lookups during tracing. Discovery order matters — it decides which
// pixel seeds each contour.
type edgeField struct {
	width  int
	height int
	member []bool
	pixels []Point
}

func (f *edgeField) contains(x, y int) bool {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return false
	}
	return f.member[y*f.width+x]
}

// detectEdges scans the buffer in row-major order and collects every
// boundary pixel: an opaque pixel with at least one transparent or
// out-of-bounds 8-neighbor. Opaque pixels on the image border therefore
// always qualify.
//
// The scan aborts with *ComplexityError once opts.ScanEdgeLimit pixels have
// been found, and with *TimeoutError if the processing deadline passes
// mid-scan (checked once per row).
func detectEdges(buf *raster.Buffer, opts Options, start, deadline time.Time) (*edgeField, error) {
	width := buf.Width()
	height := buf.Height()
	field := &edgeField{
		width:  width,
		height: height,
		member: make([]bool, width*height),
	}

	for y := 0; y < height; y++ {
		if time.Now().After(deadline) {
			return nil, &TimeoutError{Phase: "scan", Elapsed: time.Since(start)}
		}
		for x := 0; x < width; x++ {
			if !buf.Opaque(x, y) {
				continue
			}
			if !hasTransparentNeighbor(buf, x, y) {
				continue
			}
			field.member[y*width+x] = true
			field.pixels = append(field.pixels, Point{X: x, Y: y})
			if len(field.pixels) > opts.ScanEdgeLimit {
				return nil, &ComplexityError{Stage: "scan", Count: len(field.pixels), Limit: opts.ScanEdgeLimit}
			}
		}
	}

	return field, nil
}

// hasTransparentNeighbor reports whether any of the 8 Moore neighbors of
// (x, y) is transparent or outside the buffer. AlphaAt already treats
// out-of-bounds as alpha 0, so one test covers both cases.
func hasTransparentNeighbor(buf *raster.Buffer, x, y int) bool {
	for i := 0; i < 8; i++ {
		if buf.AlphaAt(x+mooreDX[i], y+mooreDY[i]) == 0 {
			return true
		}
	}
	return false
}

// DetectEdges exposes the boundary-pixel scan on its own, for hosts that
// want to visualize the edge set without running the full pipeline.
func DetectEdges(buf *raster.Buffer, opts Options) ([]Point, error) {
	if buf == nil || buf.Width() < 1 || buf.Height() < 1 {
		return nil, &raster.InvalidInputError{Reason: "nil or empty buffer"}
	}
	start := time.Now()
	field, err := detectEdges(buf, opts, start, start.Add(opts.ProcessingTimeout))
	if err != nil {
		return nil, err
	}
	return field.pixels, nil
}
