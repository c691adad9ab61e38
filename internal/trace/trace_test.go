package trace

import (
	"errors"
	"reflect"
	"testing"

	"github.com/austlee/png2svg/internal/raster"
)

func TestExtract_SquareScenario(t *testing.T) {
	// 10x10 opaque square fully inside a 20x20 transparent canvas: one
	// contour of 36 perimeter pixels, simplified to exactly 10 points
	// including all 4 corners.
	buf := squareBuffer(t)

	result, err := Extract(buf, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if result.EdgePixels != 36 {
		t.Errorf("edge pixels: got %d, want 36", result.EdgePixels)
	}
	if result.ContourCount != 1 {
		t.Errorf("contour count: got %d, want 1", result.ContourCount)
	}
	if result.MainContourLen != 36 {
		t.Errorf("main contour length: got %d, want 36", result.MainContourLen)
	}
	if len(result.Path) != 10 {
		t.Errorf("simplified path: got %d points, want 10", len(result.Path))
	}

	for _, corner := range []Point{{5, 5}, {14, 5}, {14, 14}, {5, 14}} {
		found := false
		for _, p := range result.Path {
			if p == corner {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("corner %v missing from path %v", corner, result.Path)
		}
	}
}

func TestExtract_Deterministic(t *testing.T) {
	buf := maskBuffer(t, 40, 40, func(x, y int) bool {
		// An irregular blob: square with a bite taken out
		if x >= 8 && x <= 30 && y >= 8 && y <= 30 {
			return !(x > 20 && y > 20)
		}
		return false
	})

	first, err := Extract(buf, DefaultOptions())
	if err != nil {
		t.Fatalf("first Extract failed: %v", err)
	}
	second, err := Extract(buf, DefaultOptions())
	if err != nil {
		t.Fatalf("second Extract failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs on identical input differ:\n%+v\n%+v", first, second)
	}
}

func TestExtract_Transparent(t *testing.T) {
	buf := maskBuffer(t, 5, 5, func(x, y int) bool { return false })

	_, err := Extract(buf, DefaultOptions())
	if !errors.Is(err, ErrNoContours) {
		t.Errorf("error: got %v, want ErrNoContours", err)
	}
}

func TestExtract_SinglePixel(t *testing.T) {
	// One boundary pixel traces to a sub-3-point contour, which is
	// dropped, so the result is no contours rather than a crash.
	buf := maskBuffer(t, 5, 5, func(x, y int) bool { return x == 2 && y == 2 })

	_, err := Extract(buf, DefaultOptions())
	if !errors.Is(err, ErrNoContours) {
		t.Errorf("error: got %v, want ErrNoContours", err)
	}
}

func TestExtract_FullyOpaque(t *testing.T) {
	// A boring fully opaque image is not an error: the border ring traces
	// to one rectangle-ish outline.
	buf := maskBuffer(t, 12, 12, func(x, y int) bool { return true })

	result, err := Extract(buf, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if result.ContourCount != 1 {
		t.Errorf("contour count: got %d, want 1", result.ContourCount)
	}
	if len(result.Path) < 3 {
		t.Errorf("path: got %d points, want at least 3", len(result.Path))
	}
}

func TestExtract_CheckerboardComplexity(t *testing.T) {
	// Checkerboard alpha must trip a complexity guard, not hang: 1800
	// boundary pixels exceed the default usable-edge ceiling.
	buf := checkerboardBuffer(t, 60)

	_, err := Extract(buf, DefaultOptions())
	var complexity *ComplexityError
	if !errors.As(err, &complexity) {
		t.Fatalf("error: got %v, want *ComplexityError", err)
	}
}

func TestExtract_EdgePixelCeiling(t *testing.T) {
	buf := squareBuffer(t)
	opts := DefaultOptions()
	opts.MaxEdgePixels = 10 // the square has 36 boundary pixels

	_, err := Extract(buf, opts)
	var complexity *ComplexityError
	if !errors.As(err, &complexity) {
		t.Fatalf("error: got %v, want *ComplexityError", err)
	}
	if complexity.Stage != "edge-pixels" {
		t.Errorf("stage: got %q, want \"edge-pixels\"", complexity.Stage)
	}
	if complexity.Count != 36 {
		t.Errorf("count: got %d, want 36", complexity.Count)
	}
}

func TestExtract_LargestContourWins(t *testing.T) {
	// A big square and a small one: the simplified path must come from
	// the big one.
	buf := maskBuffer(t, 40, 24, func(x, y int) bool {
		inBig := x >= 2 && x <= 19 && y >= 2 && y <= 19
		inSmall := x >= 30 && x <= 34 && y >= 4 && y <= 8
		return inBig || inSmall
	})

	result, err := Extract(buf, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if result.ContourCount != 2 {
		t.Errorf("contour count: got %d, want 2", result.ContourCount)
	}
	for _, p := range result.Path {
		if p.X >= 30 {
			t.Errorf("path point %v belongs to the smaller contour", p)
		}
	}
}

func TestExtract_InvalidBuffer(t *testing.T) {
	var invalid *raster.InvalidInputError
	_, err := Extract(nil, DefaultOptions())
	if !errors.As(err, &invalid) {
		t.Errorf("error: got %v, want *raster.InvalidInputError", err)
	}
}
