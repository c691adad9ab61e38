package trace

import (
	"errors"
	"testing"
	"time"
)

// runTrace runs contour tracing with a fresh deadline derived from opts.
func runTrace(t *testing.T, field *edgeField, opts Options) ([]Contour, error) {
	t.Helper()
	start := time.Now()
	return traceContours(field, opts, start, start.Add(opts.TraceTimeout))
}

func TestTraceContours_Square(t *testing.T) {
	buf := squareBuffer(t)
	opts := DefaultOptions()

	start := time.Now()
	field, err := detectEdges(buf, opts, start, start.Add(opts.ProcessingTimeout))
	if err != nil {
		t.Fatalf("detectEdges failed: %v", err)
	}

	contours, err := runTrace(t, field, opts)
	if err != nil {
		t.Fatalf("traceContours failed: %v", err)
	}
	if len(contours) != 1 {
		t.Fatalf("contour count: got %d, want 1", len(contours))
	}

	c := contours[0]
	if !c.Closed {
		t.Error("square contour should close naturally")
	}
	// 36 perimeter pixels plus the repeated seed closing the ring
	if len(c.Points) != 37 {
		t.Errorf("contour length: got %d, want 37 (36 perimeter + closing seed)", len(c.Points))
	}
	if c.Points[0] != c.Points[len(c.Points)-1] {
		t.Error("closed contour must start and end at the same coordinate")
	}
	if c.Points[0] != (Point{X: 5, Y: 5}) {
		t.Errorf("seed: got %v, want {5 5}", c.Points[0])
	}

	assertNeighborSteps(t, c)

	// Each perimeter pixel appears exactly once (besides the closing seed)
	seen := make(map[Point]int)
	for _, p := range c.Points[:len(c.Points)-1] {
		seen[p]++
	}
	if len(seen) != 36 {
		t.Errorf("distinct pixels: got %d, want 36", len(seen))
	}
	for p, n := range seen {
		if n != 1 {
			t.Errorf("pixel %v recorded %d times", p, n)
		}
	}
}

func TestTraceContours_Clockwise(t *testing.T) {
	// From the top-left seed the walk must head east along the top edge
	buf := squareBuffer(t)
	opts := DefaultOptions()

	start := time.Now()
	field, err := detectEdges(buf, opts, start, start.Add(opts.ProcessingTimeout))
	if err != nil {
		t.Fatalf("detectEdges failed: %v", err)
	}
	contours, err := runTrace(t, field, opts)
	if err != nil {
		t.Fatalf("traceContours failed: %v", err)
	}

	pts := contours[0].Points
	if pts[1] != (Point{X: 6, Y: 5}) {
		t.Errorf("second point: got %v, want {6 5} (clockwise from seed)", pts[1])
	}
	if pts[9] != (Point{X: 14, Y: 5}) {
		t.Errorf("10th point: got %v, want the top-right corner {14 5}", pts[9])
	}
}

func TestTraceContours_TwoBlobs(t *testing.T) {
	// Two separate opaque squares produce two contours, seeded in
	// row-major discovery order, sharing no pixels.
	buf := maskBuffer(t, 30, 12, func(x, y int) bool {
		inLeft := x >= 1 && x <= 6 && y >= 1 && y <= 6
		inRight := x >= 20 && x <= 25 && y >= 4 && y <= 9
		return inLeft || inRight
	})
	opts := DefaultOptions()

	start := time.Now()
	field, err := detectEdges(buf, opts, start, start.Add(opts.ProcessingTimeout))
	if err != nil {
		t.Fatalf("detectEdges failed: %v", err)
	}
	contours, err := runTrace(t, field, opts)
	if err != nil {
		t.Fatalf("traceContours failed: %v", err)
	}

	if len(contours) != 2 {
		t.Fatalf("contour count: got %d, want 2", len(contours))
	}
	if contours[0].Points[0] != (Point{X: 1, Y: 1}) {
		t.Errorf("first contour seed: got %v, want {1 1}", contours[0].Points[0])
	}
	if contours[1].Points[0] != (Point{X: 20, Y: 4}) {
		t.Errorf("second contour seed: got %v, want {20 4}", contours[1].Points[0])
	}

	// No pixel in two contours
	seen := make(map[Point]bool)
	for _, c := range contours {
		pts := c.Points
		if c.Closed {
			pts = pts[:len(pts)-1]
		}
		for _, p := range pts {
			if seen[p] {
				t.Fatalf("pixel %v appears in two contours", p)
			}
			seen[p] = true
		}
	}
}

func TestTraceContours_DegenerateDropped(t *testing.T) {
	// A single opaque pixel yields a 1-point walk, below the 3-point
	// floor, so no contour is returned.
	buf := maskBuffer(t, 5, 5, func(x, y int) bool { return x == 2 && y == 2 })
	opts := DefaultOptions()

	start := time.Now()
	field, err := detectEdges(buf, opts, start, start.Add(opts.ProcessingTimeout))
	if err != nil {
		t.Fatalf("detectEdges failed: %v", err)
	}
	contours, err := runTrace(t, field, opts)
	if err != nil {
		t.Fatalf("traceContours failed: %v", err)
	}
	if len(contours) != 0 {
		t.Errorf("contour count: got %d, want 0 (degenerate walks dropped)", len(contours))
	}
}

func TestTraceContours_OpenSpur(t *testing.T) {
	// A 1-pixel-wide horizontal line cannot close; the walk ends via a
	// guard and the truncated contour is kept with adjacent steps only.
	buf := maskBuffer(t, 9, 3, func(x, y int) bool { return y == 1 && x >= 1 && x <= 7 })
	opts := DefaultOptions()

	start := time.Now()
	field, err := detectEdges(buf, opts, start, start.Add(opts.ProcessingTimeout))
	if err != nil {
		t.Fatalf("detectEdges failed: %v", err)
	}
	contours, err := runTrace(t, field, opts)
	if err != nil {
		t.Fatalf("traceContours failed: %v", err)
	}

	if len(contours) != 1 {
		t.Fatalf("contour count: got %d, want 1", len(contours))
	}
	c := contours[0]
	if c.Closed {
		t.Error("a 1-pixel-wide line must not report a closed contour")
	}
	if len(c.Points) != 7 {
		t.Errorf("contour length: got %d, want 7", len(c.Points))
	}
	assertNeighborSteps(t, c)
}

func TestTraceContours_MaxContours(t *testing.T) {
	// A sparse grid of isolated pixels — none within Moore reach of
	// another — so each seeds its own degenerate walk and the discovery
	// counter must trip the contour ceiling. (Checkerboard cells would
	// not do: diagonal neighbors are 8-connected and trace as one blob.)
	buf := maskBuffer(t, 10, 10, func(x, y int) bool { return x%3 == 0 && y%3 == 0 })
	opts := DefaultOptions()
	opts.MaxContours = 5

	start := time.Now()
	field, err := detectEdges(buf, opts, start, start.Add(opts.ProcessingTimeout))
	if err != nil {
		t.Fatalf("detectEdges failed: %v", err)
	}

	_, err = runTrace(t, field, opts)
	var complexity *ComplexityError
	if !errors.As(err, &complexity) {
		t.Fatalf("error: got %v, want *ComplexityError", err)
	}
	if complexity.Stage != "contours" {
		t.Errorf("stage: got %q, want \"contours\"", complexity.Stage)
	}
	if complexity.Limit != 5 {
		t.Errorf("limit: got %d, want 5", complexity.Limit)
	}
}

func TestTraceContours_Timeout(t *testing.T) {
	// The walk checks its deadline every 64 steps, so the fixture must be
	// long enough to reach that check: the border ring of a 40x40 opaque
	// buffer is 156 pixels.
	buf := maskBuffer(t, 40, 40, func(x, y int) bool { return true })
	opts := DefaultOptions()

	start := time.Now()
	field, err := detectEdges(buf, opts, start, start.Add(opts.ProcessingTimeout))
	if err != nil {
		t.Fatalf("detectEdges failed: %v", err)
	}

	expired := time.Now().Add(-time.Second)
	_, err = traceContours(field, opts, expired, expired)
	var timeout *TimeoutError
	if !errors.As(err, &timeout) {
		t.Fatalf("error: got %v, want *TimeoutError", err)
	}
	if timeout.Phase != "trace" {
		t.Errorf("phase: got %q, want \"trace\"", timeout.Phase)
	}
	if timeout.Elapsed <= 0 {
		t.Errorf("elapsed: got %v, want > 0", timeout.Elapsed)
	}
}

func TestTraceContours_StepCap(t *testing.T) {
	buf := squareBuffer(t)
	opts := DefaultOptions()
	opts.MaxContourSteps = 10 // the 36-pixel ring needs more

	start := time.Now()
	field, err := detectEdges(buf, opts, start, start.Add(opts.ProcessingTimeout))
	if err != nil {
		t.Fatalf("detectEdges failed: %v", err)
	}

	_, err = runTrace(t, field, opts)
	var complexity *ComplexityError
	if !errors.As(err, &complexity) {
		t.Fatalf("error: got %v, want *ComplexityError", err)
	}
	if complexity.Stage != "steps" {
		t.Errorf("stage: got %q, want \"steps\"", complexity.Stage)
	}
}

// assertNeighborSteps verifies that every consecutive pair of contour points
// is an 8-neighbor step — no teleports.
func assertNeighborSteps(t *testing.T, c Contour) {
	t.Helper()
	for i := 1; i < len(c.Points); i++ {
		if !adjacent(c.Points[i-1], c.Points[i]) {
			t.Errorf("teleport between %v and %v at index %d", c.Points[i-1], c.Points[i], i)
		}
	}
}
