package render

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/austlee/png2svg/internal/outline"
)

// WriteSVG emits outline geometry as a standalone SVG document.
//
// The canvas is width × height destination units — normally the source
// image's size scaled into destination space — so the outline lands exactly
// where the silhouette sat in the source image. The geometry is rendered as
// one closed path with the given style.
func WriteSVG(w io.Writer, geo *outline.Geometry, width, height int, style Style) error {
	if geo == nil || len(geo.Points) < 3 {
		return fmt.Errorf("render: geometry with fewer than 3 points")
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("render: canvas %dx%d, want at least 1x1", width, height)
	}

	st, err := style.Normalize()
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Path(pathData(geo.Points), st.attr())
	canvas.End()
	return nil
}

// pathData builds the SVG path data for a closed polygon: M, a run of Ls,
// then Z.
func pathData(points []outline.Point) string {
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			fmt.Fprintf(&b, "M%.2f,%.2f", p.X, p.Y)
		} else {
			fmt.Fprintf(&b, " L%.2f,%.2f", p.X, p.Y)
		}
	}
	b.WriteString(" Z")
	return b.String()
}
