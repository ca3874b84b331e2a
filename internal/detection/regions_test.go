package detection

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/image-draw-mcp/internal/draw"
)

// createTestImage creates a solid color test image
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// fillRect paints the inclusive rectangle with top-left (x1,y1) and
// bottom-right (x2,y2).
func fillRect(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			img.Set(x, y, c)
		}
	}
}

func TestDetectRegions_DarkBlocks(t *testing.T) {
	img := createTestImage(100, 80, color.White)
	fillRect(img, 10, 20, 39, 29, color.Black) // 30x10 = 300 px
	fillRect(img, 60, 50, 69, 59, color.Black) // 10x10 = 100 px

	result, err := DetectRegions(img, RegionOptions{Threshold: 128, DarkForeground: true})
	if err != nil {
		t.Fatalf("DetectRegions failed: %v", err)
	}
	if result.Count != 2 || len(result.Regions) != 2 {
		t.Fatalf("Count: got %d, want 2", result.Count)
	}

	big := result.Regions[0]
	if big.Origin != draw.Pt(20, 10) || big.Height != 9 || big.Width != 29 {
		t.Errorf("largest region: got origin %s %dx%d, want (20,10) 9x29", big.Origin, big.Height, big.Width)
	}
	if big.Area != 300 {
		t.Errorf("largest area: got %d, want 300", big.Area)
	}
	if big.Center != draw.Pt(24, 24) {
		t.Errorf("largest center: got %s, want (24,24)", big.Center)
	}

	small := result.Regions[1]
	if small.Origin != draw.Pt(50, 60) || small.Area != 100 {
		t.Errorf("small region: got origin %s area %d", small.Origin, small.Area)
	}
}

func TestDetectRegions_LightForeground(t *testing.T) {
	img := createTestImage(50, 50, color.Black)
	fillRect(img, 5, 5, 14, 14, color.White)

	result, err := DetectRegions(img, RegionOptions{Threshold: 128})
	if err != nil {
		t.Fatalf("DetectRegions failed: %v", err)
	}
	if result.Count != 1 {
		t.Fatalf("Count: got %d, want 1", result.Count)
	}
	if result.Regions[0].Origin != draw.Pt(5, 5) || result.Regions[0].Area != 100 {
		t.Errorf("region: got %+v", result.Regions[0])
	}
}

func TestDetectRegions_DiagonalConnectivity(t *testing.T) {
	img := createTestImage(10, 10, color.White)
	for i := 0; i < 5; i++ {
		img.Set(i, i, color.Black)
	}

	result, err := DetectRegions(img, RegionOptions{Threshold: 128, DarkForeground: true})
	if err != nil {
		t.Fatalf("DetectRegions failed: %v", err)
	}
	if result.Count != 1 {
		t.Fatalf("diagonal pixels should form one region, got %d", result.Count)
	}
	if r := result.Regions[0]; r.Height != 4 || r.Width != 4 || r.Area != 5 {
		t.Errorf("diagonal region: got %+v", r)
	}
}

func TestDetectRegions_MinAreaAndMax(t *testing.T) {
	img := createTestImage(60, 20, color.White)
	fillRect(img, 0, 0, 1, 1, color.Black)     // 4 px
	fillRect(img, 10, 0, 14, 4, color.Black)   // 25 px
	fillRect(img, 30, 0, 39, 9, color.Black)   // 100 px
	fillRect(img, 50, 10, 55, 15, color.Black) // 36 px

	tests := []struct {
		name      string
		opts      RegionOptions
		wantAreas []int
	}{
		{"all", RegionOptions{Threshold: 128, DarkForeground: true}, []int{100, 36, 25, 4}},
		{"min area", RegionOptions{Threshold: 128, DarkForeground: true, MinArea: 10}, []int{100, 36, 25}},
		{"max regions", RegionOptions{Threshold: 128, DarkForeground: true, MaxRegions: 2}, []int{100, 36}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DetectRegions(img, tt.opts)
			if err != nil {
				t.Fatalf("DetectRegions failed: %v", err)
			}
			if result.Count != len(tt.wantAreas) {
				t.Fatalf("Count: got %d, want %d", result.Count, len(tt.wantAreas))
			}
			for i, want := range tt.wantAreas {
				if result.Regions[i].Area != want {
					t.Errorf("region %d area: got %d, want %d", i, result.Regions[i].Area, want)
				}
			}
		})
	}
}

func TestDetectRegions_AutoThreshold(t *testing.T) {
	img := createTestImage(20, 20, color.White)
	fillRect(img, 0, 0, 9, 19, color.Black)

	result, err := DetectRegions(img, RegionOptions{DarkForeground: true})
	if err != nil {
		t.Fatalf("DetectRegions failed: %v", err)
	}
	if result.Threshold < 120 || result.Threshold > 135 {
		t.Errorf("auto threshold: got %d, want about 128", result.Threshold)
	}
	if result.Count != 1 || result.Regions[0].Area != 200 {
		t.Errorf("got %d regions, want the single dark half", result.Count)
	}
}

func TestDetectRegions_Uniform(t *testing.T) {
	img := createTestImage(30, 30, color.White)

	result, err := DetectRegions(img, RegionOptions{Threshold: 128, DarkForeground: true})
	if err != nil {
		t.Fatalf("DetectRegions failed: %v", err)
	}
	if result.Count != 0 {
		t.Errorf("uniform image: got %d regions, want 0", result.Count)
	}
	if result.Regions == nil {
		t.Error("Regions should be an empty slice, not nil")
	}
}

func TestDetectRegions_OutlinesWithBox(t *testing.T) {
	img := createTestImage(40, 40, color.White)
	fillRect(img, 12, 8, 20, 30, color.Black)

	result, err := DetectRegions(img, RegionOptions{Threshold: 128, DarkForeground: true})
	if err != nil {
		t.Fatalf("DetectRegions failed: %v", err)
	}
	reg := result.Regions[0]

	r := draw.NewGray[uint8](40, 40)
	if err := draw.Box(r, reg.Origin, reg.Height, reg.Width, draw.Level[uint8](1)); err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	for _, c := range []draw.Coord{draw.Pt(8, 12), draw.Pt(8, 20), draw.Pt(30, 12), draw.Pt(30, 20)} {
		if v, _ := r.At(c); v[0] != 1 {
			t.Errorf("box corner %s not painted", c)
		}
	}
}

func TestDetectRegions_InvalidOptions(t *testing.T) {
	img := createTestImage(5, 5, color.White)
	if _, err := DetectRegions(img, RegionOptions{MinArea: -1}); err == nil {
		t.Error("negative MinArea should fail")
	}
	if _, err := DetectRegions(img, RegionOptions{MaxRegions: -1}); err == nil {
		t.Error("negative MaxRegions should fail")
	}
}
