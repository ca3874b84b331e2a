package draw

import (
	"image"
	"image/color"
	stddraw "image/draw"
)

// rasterImage exposes an 8-bit Raster through the standard image interfaces
// with x as the column and y as the row.
type rasterImage struct {
	r *Raster[uint8]
}

// AsImage returns a draw.Image view of r. Writes through the view land in
// r's backing slice.
//
// Gray rasters use color.GrayModel. Color rasters with three or four planes
// are read and written as R, G, B (and A) planes; other plane counts store
// the gray level of the written color in every plane.
func AsImage(r *Raster[uint8]) stddraw.Image {
	return rasterImage{r: r}
}

func (m rasterImage) ColorModel() color.Model {
	if m.r.layout == Gray {
		return color.GrayModel
	}
	return color.RGBAModel
}

func (m rasterImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.r.width, m.r.height)
}

func (m rasterImage) At(x, y int) color.Color {
	v, err := m.r.At(Coord{Row: y, Col: x})
	if err != nil {
		if m.r.layout == Gray {
			return color.Gray{}
		}
		return color.RGBA{}
	}
	switch {
	case m.r.layout == Gray:
		return color.Gray{Y: v[0]}
	case len(v) == 3:
		return color.RGBA{R: v[0], G: v[1], B: v[2], A: 0xff}
	case len(v) == 4:
		return color.RGBA{R: v[0], G: v[1], B: v[2], A: v[3]}
	default:
		return color.Gray{Y: v[0]}
	}
}

func (m rasterImage) Set(x, y int, c color.Color) {
	m.r.plot(Coord{Row: y, Col: x}, valueOf(c, m.r.layout, m.r.channels))
}

// valueOf converts c to a pixel value for a raster with the given layout.
func valueOf(c color.Color, layout Layout, channels int) Value[uint8] {
	if layout == Gray {
		return Value[uint8]{color.GrayModel.Convert(c).(color.Gray).Y}
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	switch channels {
	case 3:
		return Value[uint8]{rgba.R, rgba.G, rgba.B}
	case 4:
		return Value[uint8]{rgba.R, rgba.G, rgba.B, rgba.A}
	}
	y := color.GrayModel.Convert(c).(color.Gray).Y
	v := make(Value[uint8], channels)
	for i := range v {
		v[i] = y
	}
	return v
}

// ValueOf converts a standard color into a value suited to r.
func ValueOf(r *Raster[uint8], c color.Color) Value[uint8] {
	return valueOf(c, r.layout, r.channels)
}
