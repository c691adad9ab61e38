package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/austlee/png2svg/internal/outline"
)

func TestWriteSVG(t *testing.T) {
	geo := testGeometry()

	var buf bytes.Buffer
	if err := WriteSVG(&buf, geo, 20, 20, DefaultStyle()); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<svg",
		`width="20"`,
		`height="20"`,
		"<path",
		"M5.00,5.00",
		"L14.00,5.00",
		"Z",
		"stroke:#1a1a1a",
		"fill:none",
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSVG_StyleApplied(t *testing.T) {
	style := Style{StrokeWidth: 3, FillColor: "#FFCC00", FillOpacity: 0.5}

	var buf bytes.Buffer
	if err := WriteSVG(&buf, testGeometry(), 20, 20, style); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "fill:#ffcc00") {
		t.Errorf("output missing normalized fill:\n%s", out)
	}
	if !strings.Contains(out, "fill-opacity:0.5") {
		t.Errorf("output missing fill opacity:\n%s", out)
	}
	if !strings.Contains(out, "stroke-width:3") {
		t.Errorf("output missing stroke width:\n%s", out)
	}
}

func TestWriteSVG_Errors(t *testing.T) {
	geo := testGeometry()

	tests := []struct {
		name          string
		geo           *outline.Geometry
		width, height int
		style         Style
	}{
		{"nil geometry", nil, 20, 20, DefaultStyle()},
		{"too few points", &outline.Geometry{Points: geo.Points[:2]}, 20, 20, DefaultStyle()},
		{"zero canvas", geo, 0, 20, DefaultStyle()},
		{"negative canvas", geo, 20, -1, DefaultStyle()},
		{"bad style", geo, 20, 20, Style{StrokeColor: "nope", StrokeWidth: 1, FillColor: "none", FillOpacity: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteSVG(&buf, tt.geo, tt.width, tt.height, tt.style); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

// testGeometry is a plain square outline in destination coordinates.
func testGeometry() *outline.Geometry {
	return &outline.Geometry{
		Points: []outline.Point{
			{X: 5, Y: 5}, {X: 14, Y: 5}, {X: 14, Y: 14}, {X: 5, Y: 14},
		},
		BBox:   outline.Rect{MinX: 5, MinY: 5, MaxX: 15, MaxY: 15},
		Offset: outline.Point{X: 5, Y: 5},
		Width:  10,
		Height: 10,
	}
}
