package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/effect"

	"github.com/ironsheep/image-draw-mcp/internal/draw"
)

// Mode selects the raster layout an image is converted to.
type Mode string

const (
	// ModeGray converts to a single luminance plane.
	ModeGray Mode = "gray"
	// ModeColor converts to three planes: red, green, blue.
	ModeColor Mode = "color"
)

// ParseMode maps "", "color", "rgb" to ModeColor and "gray", "grey" to
// ModeGray.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "color", "rgb":
		return ModeColor, nil
	case "gray", "grey":
		return ModeGray, nil
	default:
		return "", fmt.Errorf("unknown raster mode: %q", s)
	}
}

// ToRaster copies img into a new 8-bit raster in the given mode. The image
// origin becomes row 0, col 0.
func ToRaster(img image.Image, mode Mode) (*draw.Raster[uint8], error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch mode {
	case ModeGray:
		gray := effect.Grayscale(img)
		r := draw.NewGray[uint8](h, w)
		pix := r.Pix()
		gb := gray.Bounds()
		// effect.Grayscale keeps RGBA layout with R=G=B.
		for y := 0; y < h; y++ {
			i := gray.PixOffset(gb.Min.X, gb.Min.Y+y)
			for x := 0; x < w; x++ {
				pix[y*w+x] = gray.Pix[i]
				i += 4
			}
		}
		return r, nil

	case ModeColor:
		rgba := clone.AsRGBA(img)
		r := draw.NewColor[uint8](3, h, w)
		pix := r.Pix()
		plane := w * h
		rb := rgba.Bounds()
		for y := 0; y < h; y++ {
			i := rgba.PixOffset(rb.Min.X, rb.Min.Y+y)
			for x := 0; x < w; x++ {
				off := y*w + x
				pix[off] = rgba.Pix[i]
				pix[plane+off] = rgba.Pix[i+1]
				pix[2*plane+off] = rgba.Pix[i+2]
				i += 4
			}
		}
		return r, nil

	default:
		return nil, fmt.Errorf("unknown raster mode: %q", mode)
	}
}

// FromRaster copies an 8-bit raster into a standard image: *image.Gray for
// gray rasters, *image.NRGBA for three- or four-plane color rasters (the
// fourth plane is straight alpha).
func FromRaster(r *draw.Raster[uint8]) (image.Image, error) {
	w, h := r.Width(), r.Height()
	pix := r.Pix()

	if r.Layout() == draw.Gray {
		img := image.NewGray(image.Rect(0, 0, w, h))
		copy(img.Pix, pix)
		return img, nil
	}

	channels := r.Channels()
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("cannot encode %d-channel raster: %w", channels, draw.ErrDimensionality)
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	plane := w * h
	for off := 0; off < plane; off++ {
		i := off * 4
		img.Pix[i] = pix[off]
		img.Pix[i+1] = pix[plane+off]
		img.Pix[i+2] = pix[2*plane+off]
		img.Pix[i+3] = 0xff
		if channels == 4 {
			img.Pix[i+3] = pix[3*plane+off]
		}
	}
	return img, nil
}
