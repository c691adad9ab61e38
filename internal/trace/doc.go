// Package trace implements the raster-to-polygon core of the pipeline:
// boundary-pixel detection, Moore-neighbor contour tracing, and
// corner-preserving polyline simplification.
//
// # Pipeline
//
// Extract runs the three stages in order over one pixel buffer:
//
//  1. Edge detection: a single row-major pass classifies each opaque pixel
//     as boundary (some 8-neighbor is transparent or out of bounds) or
//     interior.
//  2. Contour tracing: boundary pixels seed Moore-neighbor walks in
//     discovery order; each walk produces one ordered, ideally closed,
//     contour. A pixel belongs to at most one contour.
//  3. Simplification: the largest contour is reduced toward the requested
//     vertex count while every sharp corner (turning angle > 45°) is kept.
//
// The result is deterministic for a given buffer and Options: enumeration
// order is fixed, there is no randomness, and no state survives between
// invocations.
//
// # Failure Model
//
// The pipeline is all-or-nothing. Resource ceilings (boundary-pixel counts,
// contour count, per-contour steps) and wall-clock budgets exist so that
// adversarial masks — dithered alpha, checkerboards, anti-aliased edges
// treated as hard alpha — fail predictably with a typed error instead of
// running unbounded. Callers must not render anything from an aborted run;
// no partial output is ever returned.
//
// Boring inputs are not failures: a fully transparent image simply yields
// ErrNoContours.
package trace
