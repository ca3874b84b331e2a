package detection

import (
	"fmt"
	"image"
	"sort"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"

	"github.com/ironsheep/image-draw-mcp/internal/draw"
)

// Region is a connected group of foreground pixels.
//
// Origin, Height and Width are in the form draw.Box takes, so
// draw.Box(r, reg.Origin, reg.Height, reg.Width, v) outlines the region
// exactly: the box edges run through the outermost foreground pixels.
type Region struct {
	// Origin is the top-left pixel of the bounding box.
	Origin draw.Coord `json:"origin"`

	// Height is the row extent minus one (0 for a single-row region).
	Height int `json:"height"`

	// Width is the column extent minus one.
	Width int `json:"width"`

	// Center is the middle of the bounding box, rounded down.
	Center draw.Coord `json:"center"`

	// Area is the number of foreground pixels in the region.
	Area int `json:"area"`
}

// RegionsResult contains all regions found in an image.
type RegionsResult struct {
	// Regions is sorted by area (largest first), then by origin.
	Regions []Region `json:"regions"`

	// Count is the number of regions.
	Count int `json:"count"`

	// Threshold is the luminance level actually used.
	Threshold uint8 `json:"threshold"`
}

// RegionOptions controls DetectRegions.
type RegionOptions struct {
	// Threshold splits pixels by luminance. Zero selects the mean luminance
	// of the image.
	Threshold uint8

	// DarkForeground treats pixels below the threshold as foreground, which
	// suits dark ink on a light page. Otherwise pixels at or above it are.
	DarkForeground bool

	// MinArea drops regions with fewer foreground pixels.
	MinArea int

	// MaxRegions keeps only the largest regions; zero keeps all.
	MaxRegions int
}

// DetectRegions segments img by luminance and groups foreground pixels into
// 8-connected regions.
//
// The image is thresholded with bild's segment.Threshold; regions are then
// collected with an iterative flood fill. Coordinates are (row, col) relative
// to the image's top-left corner.
func DetectRegions(img image.Image, opts RegionOptions) (*RegionsResult, error) {
	if opts.MinArea < 0 || opts.MaxRegions < 0 {
		return nil, fmt.Errorf("invalid region options: min_area=%d max_regions=%d", opts.MinArea, opts.MaxRegions)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	level := opts.Threshold
	if level == 0 {
		level = meanLuminance(img)
	}

	mask := segment.Threshold(img, level)
	mb := mask.Bounds()

	foreground := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			white := mask.GrayAt(mb.Min.X+x, mb.Min.Y+y).Y == 0xFF
			foreground[y*width+x] = white != opts.DarkForeground
		}
	}

	regions := make([]Region, 0)
	for _, component := range findComponents(foreground, width, height) {
		if len(component) < opts.MinArea {
			continue
		}
		regions = append(regions, boundingRegion(component))
	}

	sort.Slice(regions, func(i, j int) bool {
		if regions[i].Area != regions[j].Area {
			return regions[i].Area > regions[j].Area
		}
		if regions[i].Origin.Row != regions[j].Origin.Row {
			return regions[i].Origin.Row < regions[j].Origin.Row
		}
		return regions[i].Origin.Col < regions[j].Origin.Col
	})

	if opts.MaxRegions > 0 && len(regions) > opts.MaxRegions {
		regions = regions[:opts.MaxRegions]
	}

	return &RegionsResult{
		Regions:   regions,
		Count:     len(regions),
		Threshold: level,
	}, nil
}

// meanLuminance averages the grayscale image produced by bild, which weights
// channels 0.3/0.6/0.1 like segment.Threshold. Never returns 0, so the
// result is always usable as a threshold.
func meanLuminance(img image.Image) uint8 {
	gray := effect.Grayscale(img)
	n := len(gray.Pix) / 4
	if n == 0 {
		return 128
	}

	var sum int
	for i := 0; i < len(gray.Pix); i += 4 {
		sum += int(gray.Pix[i])
	}
	mean := (sum + n/2) / n
	if mean == 0 {
		mean = 1
	}
	return uint8(mean)
}

// findComponents groups set cells of a row-major mask into 8-connected
// components.
func findComponents(mask []bool, width, height int) [][]draw.Coord {
	visited := make([]bool, len(mask))
	components := make([][]draw.Coord, 0)

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			i := row*width + col
			if mask[i] && !visited[i] {
				components = append(components, floodFill(mask, visited, draw.Pt(row, col), width, height))
			}
		}
	}
	return components
}

// floodFill collects the component containing start.
//
// Uses an explicit stack rather than recursion so large components cannot
// exhaust the goroutine stack.
func floodFill(mask, visited []bool, start draw.Coord, width, height int) []draw.Coord {
	component := make([]draw.Coord, 0)
	stack := []draw.Coord{start}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.Row < 0 || p.Row >= height || p.Col < 0 || p.Col >= width {
			continue
		}
		i := p.Row*width + p.Col
		if visited[i] || !mask[i] {
			continue
		}

		visited[i] = true
		component = append(component, p)

		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				stack = append(stack, p.Add(draw.Pt(dr, dc)))
			}
		}
	}
	return component
}

func boundingRegion(component []draw.Coord) Region {
	minR, minC := component[0].Row, component[0].Col
	maxR, maxC := minR, minC
	for _, p := range component[1:] {
		minR = min(minR, p.Row)
		maxR = max(maxR, p.Row)
		minC = min(minC, p.Col)
		maxC = max(maxC, p.Col)
	}

	return Region{
		Origin: draw.Pt(minR, minC),
		Height: maxR - minR,
		Width:  maxC - minC,
		Center: draw.Pt((minR+maxR)/2, (minC+maxC)/2),
		Area:   len(component),
	}
}
