// Package raster provides the pixel-level input side of the tracing pipeline:
// loading and caching decoded images, preparing them at processing resolution,
// and exposing a read-only RGBA buffer with alpha queries.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward. Out-of-bounds queries
// never panic; they report alpha 0 (transparent), which is exactly the
// convention the boundary-pixel test in the trace package relies on.
//
// # Processing Resolution
//
// Tracing cost grows with raster area, so Prepare downscales large images to
// a configurable maximum dimension (default 150px) before any pixel work
// happens. The returned Prepared value records the downscale ratio so the
// outline builder can map traced coordinates back to source-image pixels.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Buffer is immutable after
// construction and safe to share; Prepare and FromImage are stateless.
package raster
