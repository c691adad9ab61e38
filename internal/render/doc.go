// Package render is the host-side output surface: it styles outline
// geometry and emits it as SVG.
//
// The tracing core never draws; everything cosmetic — stroke color and
// width, fill, opacity — lives here. Styles are validated and normalized
// with go-colorful so malformed colors fail loudly instead of producing a
// silently black shape.
package render
