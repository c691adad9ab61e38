package trace

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoContours reports that detection succeeded but produced no usable
// (3-point or larger) contour. Fully transparent images, fully opaque
// single pixels, and masks whose every blob is degenerate all end here.
var ErrNoContours = errors.New("no usable contours found")

// ComplexityError reports that the image exceeded a configured complexity
// ceiling: too many boundary pixels, too many contours, or a contour walk
// that ran past its step budget. The whole tracing operation is aborted;
// no partial result survives.
type ComplexityError struct {
	// Stage names the ceiling that tripped: "scan", "edge-pixels",
	// "contours", or "steps".
	Stage string

	// Count is the value reached when the ceiling tripped.
	Count int

	// Limit is the configured ceiling.
	Limit int
}

func (e *ComplexityError) Error() string {
	return fmt.Sprintf("image too complex: %s count %d exceeds limit %d", e.Stage, e.Count, e.Limit)
}

// TimeoutError reports that a wall-clock budget was exhausted during the
// scan or trace phase.
type TimeoutError struct {
	// Phase is "scan" or "trace".
	Phase string

	// Elapsed is the time spent in the pipeline when the budget tripped.
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("processing timed out during %s after %s", e.Phase, e.Elapsed)
}

// DegenerateContourError reports that the chosen main contour ended up with
// fewer than 3 points after simplification. The tracer's own 3-point floor
// should make this unreachable; it is checked anyway so a geometry with
// fewer than 3 vertices can never escape the pipeline.
type DegenerateContourError struct {
	// Points is the number of points the degenerate path had.
	Points int
}

func (e *DegenerateContourError) Error() string {
	return fmt.Sprintf("main contour degenerate: %d points after simplification, need at least 3", e.Points)
}
