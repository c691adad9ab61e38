package outline

import (
	"fmt"
	"math"

	"github.com/austlee/png2svg/internal/trace"
)

// DefaultEdgeOffset is the standard outward displacement, in source-image
// pixels, applied to every vertex. It compensates for stroke rendering
// biting into the traced silhouette. Treated as tunable, not an invariant.
const DefaultEdgeOffset = 0.5

// Point is a 2D coordinate in a continuous coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal extent of the box.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of the box.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Transform describes how traced processing-resolution coordinates map to
// source-image pixels and on to the destination shape's coordinate space.
type Transform struct {
	// PixelScale converts processing-resolution pixels to source-image
	// pixels (the downscale ratio reported by raster.Prepare). Must be > 0.
	PixelScale float64

	// DestScaleX and DestScaleY convert source-image pixels to destination
	// units, the ratio of the destination shape's displayed size to the
	// source image's pixel size. Must be > 0.
	DestScaleX float64
	DestScaleY float64

	// EdgeOffset is the outward normal displacement per vertex, in
	// source-image pixels. 0 disables the offset.
	EdgeOffset float64
}

// DefaultTransform returns an identity mapping with the standard half-pixel
// outward offset.
func DefaultTransform() Transform {
	return Transform{
		PixelScale: 1,
		DestScaleX: 1,
		DestScaleY: 1,
		EdgeOffset: DefaultEdgeOffset,
	}
}

// Geometry is the final outline: everything an external renderer needs to
// build a closed stroked/filled shape. It is pure data; nothing here draws.
type Geometry struct {
	// Points is the outline vertex list in destination coordinates, in
	// traversal order. Its length always equals the simplified path's.
	Points []Point `json:"points"`

	// BBox is the outline's bounding box in source-image pixel space,
	// computed before the outward offset is applied.
	BBox Rect `json:"bbox"`

	// Offset is the bounding box origin translated into destination
	// coordinates — where the shape should be placed.
	Offset Point `json:"offset"`

	// Width and Height are the traced shape's extent in source-image
	// pixels.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Build turns a simplified pixel-space path into renderable outline
// geometry:
//
//  1. rescale every point from processing resolution to source-image pixels;
//  2. compute the axis-aligned bounding box of the rescaled path;
//  3. displace each vertex outward along its local normal — the average of
//     the two adjacent edge directions rotated 90° — by tf.EdgeOffset;
//  4. scale the offset path into destination coordinates and translate the
//     bounding box origin the same way.
//
// The path is treated as a closed ring: each vertex's neighbors wrap around.
// Vertices whose averaged normal is degenerate (collinear or coincident
// neighbors) are left unoffset rather than divided by zero. Build never adds
// or drops vertices.
func Build(path []trace.Point, tf Transform) (*Geometry, error) {
	if len(path) < 3 {
		return nil, fmt.Errorf("outline: path has %d points, need at least 3", len(path))
	}
	if tf.PixelScale <= 0 || tf.DestScaleX <= 0 || tf.DestScaleY <= 0 {
		return nil, fmt.Errorf("outline: non-positive scale in transform %+v", tf)
	}

	n := len(path)
	pts := make([]Point, n)
	for i, p := range path {
		pts[i] = Point{
			X: float64(p.X) * tf.PixelScale,
			Y: float64(p.Y) * tf.PixelScale,
		}
	}

	// The bounding box spans pixel cells, not pixel centers: a pixel at
	// column x occupies [x, x+1), so a 10-pixel-wide silhouette reports
	// width 10, not 9.
	minX, minY := path[0].X, path[0].Y
	maxX, maxY := path[0].X, path[0].Y
	for _, p := range path[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	bbox := Rect{
		MinX: float64(minX) * tf.PixelScale,
		MinY: float64(minY) * tf.PixelScale,
		MaxX: float64(maxX+1) * tf.PixelScale,
		MaxY: float64(maxY+1) * tf.PixelScale,
	}

	if tf.EdgeOffset != 0 {
		pts = offsetOutward(pts, tf.EdgeOffset)
	}

	out := make([]Point, n)
	for i, p := range pts {
		out[i] = Point{X: p.X * tf.DestScaleX, Y: p.Y * tf.DestScaleY}
	}

	return &Geometry{
		Points: out,
		BBox:   bbox,
		Offset: Point{X: bbox.MinX * tf.DestScaleX, Y: bbox.MinY * tf.DestScaleY},
		Width:  bbox.Width(),
		Height: bbox.Height(),
	}, nil
}

// offsetOutward displaces each vertex of a closed clockwise ring along its
// outward normal by amount.
//
// The contour tracer walks clockwise in screen coordinates (y down), so for
// an edge direction (dx, dy) the outward perpendicular is (dy, -dx). Each
// vertex normal averages the normalized incoming and outgoing edge
// directions; a near-zero average (180° reversal) leaves that vertex in
// place.
func offsetOutward(pts []Point, amount float64) []Point {
	const eps = 1e-9
	n := len(pts)
	out := make([]Point, n)

	for i := 0; i < n; i++ {
		prev := pts[(i-1+n)%n]
		next := pts[(i+1)%n]

		inX, inY := normalize(pts[i].X-prev.X, pts[i].Y-prev.Y)
		outX, outY := normalize(next.X-pts[i].X, next.Y-pts[i].Y)

		avgX := inX + outX
		avgY := inY + outY

		perpX := avgY
		perpY := -avgX
		length := math.Hypot(perpX, perpY)

		out[i] = pts[i]
		if length > eps {
			out[i].X += perpX / length * amount
			out[i].Y += perpY / length * amount
		}
	}

	return out
}

// normalize returns the unit vector of (x, y), or (0, 0) for a zero vector.
func normalize(x, y float64) (float64, float64) {
	length := math.Hypot(x, y)
	if length == 0 {
		return 0, 0
	}
	return x / length, y / length
}
