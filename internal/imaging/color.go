package imaging

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-draw-mcp/internal/draw"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult describes the pixel at one raster coordinate.
type ColorResult struct {
	Row     int      `json:"row"`
	Col     int      `json:"col"`
	Mode    Mode     `json:"mode"`
	Samples []int    `json:"samples"` // Raw samples, one per plane
	Hex     string   `json:"hex"`     // Hex format "#RRGGBB"
	RGB     RGBColor `json:"rgb"`
	HSL     HSLColor `json:"hsl"`
}

// ParseColor parses an annotation color.
//
// Accepted forms:
//   - "#RRGGBB" or "#RGB": hex RGB, returned as an opaque color.RGBA
//   - "0" to "255": a gray level, returned as color.Gray
//
// Hex digits are case-insensitive.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty color string")
	}

	if s[0] == '#' {
		c, err := colorful.Hex(strings.ToLower(s))
		if err != nil {
			return nil, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
	}

	level, err := strconv.Atoi(s)
	if err != nil || level < 0 || level > 255 {
		return nil, fmt.Errorf("invalid color %q: want #RRGGBB, #RGB or a level 0-255", s)
	}
	return color.Gray{Y: uint8(level)}, nil
}

// ParseValue parses an annotation color and converts it to a pixel value for
// r: a single luminance sample for gray rasters, one sample per plane for
// color rasters.
func ParseValue(r *draw.Raster[uint8], s string) (draw.Value[uint8], error) {
	c, err := ParseColor(s)
	if err != nil {
		return nil, err
	}
	return draw.ValueOf(r, c), nil
}

// SampleColor reads the pixel at (row, col) of r.
//
// Gray rasters report their level on all three RGB components. It returns
// an error wrapping draw.ErrOutOfBounds when the coordinate is outside r.
func SampleColor(r *draw.Raster[uint8], row, col int) (*ColorResult, error) {
	v, err := r.At(draw.Pt(row, col))
	if err != nil {
		return nil, err
	}

	mode := ModeColor
	if r.Layout() == draw.Gray {
		mode = ModeGray
	}
	rgb := RGBColor{R: v[0], G: v[0], B: v[0]}
	if len(v) >= 3 {
		rgb = RGBColor{R: v[0], G: v[1], B: v[2]}
	}

	c := colorful.Color{
		R: float64(rgb.R) / 255,
		G: float64(rgb.G) / 255,
		B: float64(rgb.B) / 255,
	}
	h, s, l := c.Hsl()

	samples := make([]int, len(v))
	for i, x := range v {
		samples[i] = int(x)
	}

	return &ColorResult{
		Row:     row,
		Col:     col,
		Mode:    mode,
		Samples: samples,
		Hex:     strings.ToUpper(c.Hex()),
		RGB:     rgb,
		HSL: HSLColor{
			H: int(h),
			S: int(s * 100),
			L: int(l * 100),
		},
	}, nil
}
