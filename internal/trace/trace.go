package trace

import (
	"time"

	"github.com/austlee/png2svg/internal/raster"
)

// Point represents a pixel coordinate in processing-resolution space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Contour is an ordered walk of boundary pixels.
//
// When Closed is true the walk returned to its seed pixel and the first and
// last points coincide. Open contours were ended by a documented guard
// (no valid neighbor, in-contour cycle, oscillation cap); every consecutive
// pair of points is still an 8-neighbor step.
type Contour struct {
	Points []Point
	Closed bool
}

// Default resource ceilings. All of them are policy, not correctness: they
// exist so pathological masks fail predictably instead of running unbounded.
const (
	DefaultTargetVertexCount = 10
	DefaultMaxEdgePixels     = 1000
	DefaultScanEdgeLimit     = 50000
	DefaultMaxContours       = 50
	DefaultMaxContourSteps   = 10000
	DefaultProcessingTimeout = 5 * time.Second
	DefaultTraceTimeout      = 3 * time.Second
)

// Options carries every externally configurable parameter of the pipeline.
// The zero value is not useful; start from DefaultOptions.
type Options struct {
	// TargetVertexCount is the requested size of the simplified path.
	// Values below 3 are treated as 3. Corner preservation may push the
	// actual output above the target (see Simplify).
	TargetVertexCount int

	// MaxEdgePixels is the outer safety ceiling on usable boundary pixels,
	// checked once after the scan completes.
	MaxEdgePixels int

	// ScanEdgeLimit is the in-scan ceiling; the scan aborts mid-pass the
	// moment it has discovered this many boundary pixels.
	ScanEdgeLimit int

	// MaxContours caps how many separate contours one image may produce.
	// An image with more separate outlines than this is too complex for
	// a single-silhouette pipeline.
	MaxContours int

	// MaxContourSteps caps the walk length of a single contour, guarding
	// against degenerate oscillation. Tripping it aborts the whole
	// operation, not just the contour.
	MaxContourSteps int

	// ProcessingTimeout is the wall-clock budget for the whole pipeline.
	ProcessingTimeout time.Duration

	// TraceTimeout is the wall-clock budget for the contour-tracing phase
	// alone (further bounded by whatever remains of ProcessingTimeout).
	TraceTimeout time.Duration
}

// DefaultOptions returns the standard resource ceilings.
func DefaultOptions() Options {
	return Options{
		TargetVertexCount: DefaultTargetVertexCount,
		MaxEdgePixels:     DefaultMaxEdgePixels,
		ScanEdgeLimit:     DefaultScanEdgeLimit,
		MaxContours:       DefaultMaxContours,
		MaxContourSteps:   DefaultMaxContourSteps,
		ProcessingTimeout: DefaultProcessingTimeout,
		TraceTimeout:      DefaultTraceTimeout,
	}
}

// Result is the outcome of a successful pipeline run: the simplified main
// contour in processing-resolution pixel coordinates, plus counts a host can
// surface as progress/log detail.
type Result struct {
	// Path is the simplified main contour, ordered in traversal direction.
	// Always at least 3 points.
	Path []Point `json:"path"`

	// EdgePixels is the number of boundary pixels the scan discovered.
	EdgePixels int `json:"edge_pixels"`

	// ContourCount is the number of usable (3+ point) contours traced.
	ContourCount int `json:"contour_count"`

	// MainContourLen is the point count of the main (largest) contour
	// before simplification, closing duplicate excluded.
	MainContourLen int `json:"main_contour_len"`
}

// Extract runs the full raster-to-polygon pipeline on one buffer:
// boundary-pixel detection, Moore-neighbor contour tracing, and
// corner-preserving simplification of the largest contour.
//
// The pipeline is deterministic: identical buffer and options produce an
// identical Result. It is also all-or-nothing; any guard trip discards all
// partial work and returns one of the typed failures in this package
// (or *raster.InvalidInputError for a bad buffer).
func Extract(buf *raster.Buffer, opts Options) (*Result, error) {
	start := time.Now()

	if buf == nil {
		return nil, &raster.InvalidInputError{Reason: "nil buffer"}
	}
	if buf.Width() < 1 || buf.Height() < 1 {
		return nil, &raster.InvalidInputError{Reason: "empty buffer"}
	}

	procDeadline := start.Add(opts.ProcessingTimeout)

	edges, err := detectEdges(buf, opts, start, procDeadline)
	if err != nil {
		return nil, err
	}

	// Outer safety check: the scan-time ceiling bounds the pass itself,
	// this one bounds what tracing is willing to take on.
	if len(edges.pixels) > opts.MaxEdgePixels {
		return nil, &ComplexityError{Stage: "edge-pixels", Count: len(edges.pixels), Limit: opts.MaxEdgePixels}
	}

	traceDeadline := time.Now().Add(opts.TraceTimeout)
	if procDeadline.Before(traceDeadline) {
		traceDeadline = procDeadline
	}

	contours, err := traceContours(edges, opts, start, traceDeadline)
	if err != nil {
		return nil, err
	}
	if len(contours) == 0 {
		return nil, ErrNoContours
	}

	main := contours[0]
	for _, c := range contours[1:] {
		if len(c.Points) > len(main.Points) {
			main = c
		}
	}

	// A naturally closed contour repeats its seed as the final point; drop
	// the duplicate so the ring simplifies over distinct vertices only.
	pts := main.Points
	if main.Closed && len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}

	path := Simplify(pts, opts.TargetVertexCount)
	if len(path) < 3 {
		return nil, &DegenerateContourError{Points: len(path)}
	}

	return &Result{
		Path:           path,
		EdgePixels:     len(edges.pixels),
		ContourCount:   len(contours),
		MainContourLen: len(pts),
	}, nil
}
