package imaging

import (
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/image-draw-mcp/internal/draw"
)

// GridOptions controls GridOverlay.
type GridOptions struct {
	// Spacing is the distance in pixels between grid lines.
	Spacing int

	// ShowCoordinates labels every intersection with "row,col".
	ShowCoordinates bool

	// Color of the grid lines.
	Color color.Color
}

// GridOverlay draws a coordinate grid into r: a vertical line every Spacing
// columns and a horizontal line every Spacing rows, starting at Spacing.
// Lines are drawn with draw.Line; labels are rendered through the raster's
// image view.
func GridOverlay(r *draw.Raster[uint8], opts GridOptions) error {
	if opts.Spacing <= 0 {
		return fmt.Errorf("grid spacing must be positive, got %d", opts.Spacing)
	}
	if opts.Color == nil {
		opts.Color = color.RGBA{R: 255, A: 255}
	}

	height, width := r.Height(), r.Width()
	v := draw.ValueOf(r, opts.Color)

	for col := opts.Spacing; col < width; col += opts.Spacing {
		if err := draw.Line(r, draw.Pt(0, col), draw.Pt(height-1, col), v); err != nil {
			return err
		}
	}
	for row := opts.Spacing; row < height; row += opts.Spacing {
		if err := draw.Line(r, draw.Pt(row, 0), draw.Pt(row, width-1), v); err != nil {
			return err
		}
	}

	if opts.ShowCoordinates {
		img := draw.AsImage(r)
		for row := opts.Spacing; row < height; row += opts.Spacing {
			for col := opts.Spacing; col < width; col += opts.Spacing {
				drawLabel(img, row+2, col+2, fmt.Sprintf("%d,%d", row, col))
			}
		}
	}
	return nil
}

// drawLabel writes white text on a dark backing box with its top-left corner
// at (row, col). Parts outside the image are clipped.
func drawLabel(img stddraw.Image, row, col int, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}

	ascent := face.Metrics().Ascent.Ceil()
	box := image.Rect(col-1, row-1, col+d.MeasureString(text).Ceil()+1, row+face.Height+1)
	stddraw.Draw(img, box.Intersect(img.Bounds()), image.NewUniform(color.Black), image.Point{}, stddraw.Src)

	d.Dot = fixed.P(col, row+ascent)
	d.DrawString(text)
}
