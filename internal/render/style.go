package render

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Style describes the cosmetic treatment of a rendered outline.
//
// Colors are hex strings ("#RRGGBB" or "#RGB"); FillColor may also be the
// SVG keyword "none" for a stroke-only outline.
type Style struct {
	// StrokeColor is the outline stroke color. When empty it is derived
	// from FillColor by darkening (or defaults to near-black when the fill
	// is "none").
	StrokeColor string `json:"stroke_color"`

	// StrokeWidth is the stroke width in destination units.
	StrokeWidth float64 `json:"stroke_width"`

	// FillColor fills the closed outline, or "none".
	FillColor string `json:"fill_color"`

	// FillOpacity applies to the fill only, in [0, 1].
	FillOpacity float64 `json:"fill_opacity"`
}

// DefaultStyle returns a stroke-only outline style: 2-unit near-black
// stroke, no fill.
func DefaultStyle() Style {
	return Style{
		StrokeColor: "#1a1a1a",
		StrokeWidth: 2,
		FillColor:   "none",
		FillOpacity: 1,
	}
}

// Normalize validates the style's colors and fills in derived defaults,
// returning the cleaned-up style.
//
// Hex colors are parsed and re-emitted in canonical lowercase "#rrggbb"
// form. An empty stroke color is derived by darkening the fill, so a filled
// shape gets a matching outline without the caller picking one.
func (s Style) Normalize() (Style, error) {
	out := s

	if out.StrokeWidth < 0 {
		return out, fmt.Errorf("stroke width %g is negative", out.StrokeWidth)
	}
	if out.FillOpacity < 0 || out.FillOpacity > 1 {
		return out, fmt.Errorf("fill opacity %g outside [0, 1]", out.FillOpacity)
	}

	if out.FillColor == "" {
		out.FillColor = "none"
	}
	if !strings.EqualFold(out.FillColor, "none") {
		c, err := colorful.Hex(out.FillColor)
		if err != nil {
			return out, fmt.Errorf("fill color %q: %w", out.FillColor, err)
		}
		out.FillColor = c.Hex()
	}

	if out.StrokeColor == "" {
		if strings.EqualFold(out.FillColor, "none") {
			out.StrokeColor = DefaultStyle().StrokeColor
		} else {
			out.StrokeColor = deriveStroke(out.FillColor)
		}
	}
	c, err := colorful.Hex(out.StrokeColor)
	if err != nil {
		return out, fmt.Errorf("stroke color %q: %w", out.StrokeColor, err)
	}
	out.StrokeColor = c.Hex()

	return out, nil
}

// deriveStroke picks a stroke color for a given fill by dropping its HSL
// lightness to 40% of the original. The fill is already validated.
func deriveStroke(fill string) string {
	c, err := colorful.Hex(fill)
	if err != nil {
		return DefaultStyle().StrokeColor
	}
	h, sat, l := c.Hsl()
	return colorful.Hsl(h, sat, l*0.4).Clamped().Hex()
}

// attr renders the style as an SVG style attribute value.
func (s Style) attr() string {
	return fmt.Sprintf("fill:%s;fill-opacity:%g;stroke:%s;stroke-width:%g;stroke-linejoin:round",
		s.FillColor, s.FillOpacity, s.StrokeColor, s.StrokeWidth)
}
