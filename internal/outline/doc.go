// Package outline turns a simplified pixel-space contour into renderable
// shape geometry: source-pixel rescaling, bounding box computation, an
// outward per-vertex normal offset, and the transform into the destination
// shape's coordinate space.
//
// The package produces pure data (Geometry); rendering, styling, and
// placement belong to the host. Vertex counts are preserved exactly —
// building geometry only transforms coordinates.
package outline
