package trace

import (
	"math"
	"sort"
)

// cornerAngle is the turning-angle threshold above which a vertex counts as
// a sharp corner and survives simplification unconditionally.
const cornerAngle = math.Pi / 4

// Simplify reduces a polyline to roughly target points while keeping its
// shape recognizable.
//
// Paths no longer than target are returned unchanged. Otherwise the target
// is clamped to [3, len(points)] and the output is assembled from:
//
//  1. the first point, always;
//  2. every corner point — an interior vertex whose turning angle exceeds
//     45° — even when that pushes the result past the target (shape beats
//     budget);
//  3. evenly spaced samples at index interval (len-1)/(target-1), filling
//     whatever budget remains.
//
// Chosen indices are sorted back into original traversal order, so the
// simplified path never reorders or self-intersects relative to its source.
func Simplify(points []Point, target int) []Point {
	if len(points) <= target {
		return points
	}
	if target < 3 {
		target = 3
	}
	if target > len(points) {
		target = len(points)
	}

	chosen := map[int]bool{0: true}

	for _, i := range cornerIndices(points) {
		chosen[i] = true
	}

	// Fill the remaining budget with evenly spaced samples. When corners
	// alone already meet or exceed the target, nothing is added here.
	step := float64(len(points)-1) / float64(target-1)
	for j := 1; j < target && len(chosen) < target; j++ {
		idx := int(math.Round(float64(j) * step))
		if idx > len(points)-1 {
			idx = len(points) - 1
		}
		chosen[idx] = true
	}

	indices := make([]int, 0, len(chosen))
	for i := range chosen {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	out := make([]Point, len(indices))
	for k, i := range indices {
		out[k] = points[i]
	}
	return out
}

// cornerIndices returns the interior indices whose turning angle between the
// incoming and outgoing segment exceeds cornerAngle.
func cornerIndices(points []Point) []int {
	var corners []int
	for i := 1; i < len(points)-1; i++ {
		if turningAngle(points[i-1], points[i], points[i+1]) > cornerAngle {
			corners = append(corners, i)
		}
	}
	return corners
}

// turningAngle returns the absolute turning angle at b for the path a→b→c,
// in [0, π]. The signed difference of the two segment headings is normalized
// into (−π, π] first so wraparound never manufactures a large angle.
func turningAngle(a, b, c Point) float64 {
	in := math.Atan2(float64(b.Y-a.Y), float64(b.X-a.X))
	out := math.Atan2(float64(c.Y-b.Y), float64(c.X-b.X))
	diff := out - in
	for diff > math.Pi {
		diff -= 2 * math.Pi
	}
	for diff <= -math.Pi {
		diff += 2 * math.Pi
	}
	return math.Abs(diff)
}
