package trace

import (
	"time"
)

// maxConsecutiveSkips bounds how many walk steps may revisit already-recorded
// pixels without recording anything new. Tiny spurs (3-4 pixels) can bounce
// between their endpoints forever under the standard revisit rule; this ends
// such a walk as an open contour instead of burning the global step budget.
const maxConsecutiveSkips = 8

// traceContours walks every connected boundary component with Moore-neighbor
// tracing, seeding contours in boundary-pixel discovery order.
//
// Contours with fewer than 3 recorded points are dropped. Guard trips —
// contour-count ceiling, per-contour step ceiling, trace deadline — abort
// the entire operation and return the corresponding typed error.
func traceContours(edges *edgeField, opts Options, start, deadline time.Time) ([]Contour, error) {
	visited := make([]bool, edges.width*edges.height)
	// Contour membership of each pixel in the current walk, stamped by
	// generation so the grid never needs clearing between contours.
	local := make([]int, edges.width*edges.height)

	var contours []Contour
	discovered := 0

	for _, seed := range edges.pixels {
		if visited[seed.Y*edges.width+seed.X] {
			continue
		}
		discovered++
		if discovered > opts.MaxContours {
			return nil, &ComplexityError{Stage: "contours", Count: discovered, Limit: opts.MaxContours}
		}

		c, err := walkContour(edges, visited, local, discovered, seed, opts, start, deadline)
		if err != nil {
			return nil, err
		}
		if len(c.Points) >= 3 {
			contours = append(contours, c)
		}
	}

	return contours, nil
}

// walkContour traces one contour from seed using Moore-neighbor tracing.
//
// The walk keeps a current pixel and a current search direction (initially
// east). Each step scans the 8 neighbors clockwise starting from that
// direction and moves to the first boundary pixel found; the new search
// direction is two steps counter-clockwise from the arrival direction, the
// look-back rule that keeps the walk hugging the boundary clockwise instead
// of retreating.
//
// Termination:
//   - returning to the seed with at least 4 points closes the contour
//     (the seed is appended again, so first == last);
//   - no eligible neighbor ends it as an open contour;
//   - revisiting an in-contour pixel after more than 4 points is an
//     unintended cycle and truncates the contour (kept, not a failure);
//   - the step ceiling and the trace deadline abort the whole operation.
//
// Pixels already claimed by earlier contours are never eligible, which is
// what guarantees each pixel belongs to at most one contour.
func walkContour(edges *edgeField, visited []bool, local []int, gen int, seed Point, opts Options, start, deadline time.Time) (Contour, error) {
	width := edges.width

	cur := seed
	dir := 0 // east
	points := []Point{seed}
	visited[seed.Y*width+seed.X] = true
	local[seed.Y*width+seed.X] = gen

	steps := 0
	skips := 0

	for {
		steps++
		if steps > opts.MaxContourSteps {
			return Contour{}, &ComplexityError{Stage: "steps", Count: steps, Limit: opts.MaxContourSteps}
		}
		if steps&63 == 0 && time.Now().After(deadline) {
			return Contour{}, &TimeoutError{Phase: "trace", Elapsed: time.Since(start)}
		}

		found := -1
		for k := 0; k < 8; k++ {
			i := (dir + k) % 8
			nx := cur.X + mooreDX[i]
			ny := cur.Y + mooreDY[i]
			if !edges.contains(nx, ny) {
				continue
			}
			if visited[ny*width+nx] && local[ny*width+nx] != gen {
				continue // claimed by an earlier contour
			}
			found = i
			break
		}
		if found < 0 {
			// Open contour: the boundary ran out.
			return Contour{Points: points}, nil
		}

		cur = Point{X: cur.X + mooreDX[found], Y: cur.Y + mooreDY[found]}
		dir = (found + 6) % 8

		idx := cur.Y*width + cur.X
		if local[idx] == gen {
			if cur == seed && len(points) >= 4 {
				points = append(points, seed)
				return Contour{Points: points, Closed: true}, nil
			}
			if len(points) > 4 {
				// Re-entered the walk away from the seed: an
				// unintended cycle. Keep what was traced.
				return Contour{Points: points}, nil
			}
			skips++
			if skips > maxConsecutiveSkips {
				return Contour{Points: points}, nil
			}
			continue
		}

		if skips > 0 && !adjacent(points[len(points)-1], cur) {
			// Recording cur after skipping revisited pixels would put a
			// non-neighbor step into the contour. End the walk instead.
			return Contour{Points: points}, nil
		}
		skips = 0
		local[idx] = gen
		visited[idx] = true
		points = append(points, cur)
	}
}

// adjacent reports whether two pixels are 8-neighbors (or equal).
func adjacent(a, b Point) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}
