package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-draw-mcp/internal/draw"
)

// RenderOptions controls how an annotated raster is returned.
type RenderOptions struct {
	// Scale resizes the encoded result (nearest neighbor, so annotation
	// pixels stay sharp). Zero or 1 keeps the raster size.
	Scale float64

	// OutputPath, when set, also writes the result to this file. The format
	// follows the extension; an extension-less path gets ".png".
	OutputPath string

	// OmitImage leaves ImageBase64 empty, for callers that only want the file.
	OmitImage bool
}

// RenderResult contains an annotated image.
type RenderResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Mode        Mode   `json:"mode"`
	MimeType    string `json:"mime_type"`
	ImageBase64 string `json:"image_base64,omitempty"`
	OutputPath  string `json:"output_path,omitempty"`
}

// Render encodes r as PNG, optionally scaling it and writing it to disk.
func Render(r *draw.Raster[uint8], opts RenderOptions) (*RenderResult, error) {
	img, err := FromRaster(r)
	if err != nil {
		return nil, err
	}

	if opts.Scale > 0 && opts.Scale != 1.0 {
		newWidth := int(float64(r.Width()) * opts.Scale)
		newHeight := int(float64(r.Height()) * opts.Scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("scale %g leaves an empty image", opts.Scale)
		}
		img = imaging.Resize(img, newWidth, newHeight, imaging.NearestNeighbor)
	}

	mode := ModeColor
	if r.Layout() == draw.Gray {
		mode = ModeGray
	}
	result := &RenderResult{
		Width:    img.Bounds().Dx(),
		Height:   img.Bounds().Dy(),
		Mode:     mode,
		MimeType: "image/png",
	}

	if opts.OutputPath != "" {
		path, err := saveImage(img, opts.OutputPath)
		if err != nil {
			return nil, err
		}
		result.OutputPath = path
	}

	if !opts.OmitImage {
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}
		result.ImageBase64 = base64.StdEncoding.EncodeToString(buf.Bytes())
	}

	return result, nil
}

// saveImage writes img to path, creating parent directories, and returns the
// path actually written.
func saveImage(img image.Image, path string) (string, error) {
	if filepath.Ext(path) == "" {
		path += ".png"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return path, nil
}
