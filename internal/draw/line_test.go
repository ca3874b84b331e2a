package draw

import (
	"errors"
	"math"
	"slices"
	"testing"
)

// painted returns the coordinates of all non-zero pixels of a gray raster.
func painted(r *Raster[uint8]) map[Coord]bool {
	set := make(map[Coord]bool)
	for row := 0; row < r.Height(); row++ {
		for col := 0; col < r.Width(); col++ {
			if r.Pix()[row*r.Width()+col] != 0 {
				set[Pt(row, col)] = true
			}
		}
	}
	return set
}

func TestLine_Axes(t *testing.T) {
	img := NewGray[uint8](100, 100)

	tests := []struct {
		name  string
		a, b  Coord
		value uint8
		at    func(k int) Coord
	}{
		{"vertical", Pt(50, 50), Pt(70, 50), 255, func(k int) Coord { return Pt(k, 50) }},
		{"horizontal", Pt(50, 50), Pt(50, 70), 230, func(k int) Coord { return Pt(50, k) }},
		{"vertical backwards", Pt(70, 50), Pt(50, 50), 128, func(k int) Coord { return Pt(k, 50) }},
		{"horizontal backwards", Pt(50, 70), Pt(50, 50), 65, func(k int) Coord { return Pt(50, k) }},
	}

	// Runs in order on one image: each case repaints the pixels of an
	// earlier one with a new level.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Line(img, tt.a, tt.b, Level(tt.value)); err != nil {
				t.Fatalf("Line failed: %v", err)
			}
			for k := 50; k < 70; k++ {
				got, _ := img.At(tt.at(k))
				if got[0] != tt.value {
					t.Errorf("pixel %s: got %d, want %d", tt.at(k), got[0], tt.value)
				}
			}
		})
	}
}

func TestLine_Symmetry(t *testing.T) {
	pairs := [][2]Coord{
		{Pt(0, 0), Pt(99, 99)},
		{Pt(10, 3), Pt(17, 60)},
		{Pt(5, 80), Pt(60, 2)},
		{Pt(90, 10), Pt(12, 14)},
		{Pt(20, 20), Pt(21, 40)},
		{Pt(33, 7), Pt(34, 8)},
		{Pt(0, 50), Pt(99, 51)},
		{Pt(40, 40), Pt(40, 40)},
	}

	for _, p := range pairs {
		t.Run(p[0].String()+"-"+p[1].String(), func(t *testing.T) {
			forward := NewGray[uint8](100, 100)
			backward := NewGray[uint8](100, 100)

			if err := Line(forward, p[0], p[1], Level[uint8](1)); err != nil {
				t.Fatalf("Line failed: %v", err)
			}
			if err := Line(backward, p[1], p[0], Level[uint8](1)); err != nil {
				t.Fatalf("Line failed: %v", err)
			}
			if !slices.Equal(forward.Pix(), backward.Pix()) {
				t.Errorf("pixel sets differ: %d forward, %d backward", len(painted(forward)), len(painted(backward)))
			}
		})
	}
}

func TestLine_Endpoints(t *testing.T) {
	tests := []struct {
		a, b Coord
		n    int // pixels on the line
	}{
		{Pt(0, 0), Pt(0, 9), 10},
		{Pt(0, 0), Pt(9, 9), 10},
		{Pt(9, 0), Pt(0, 9), 10},
		{Pt(2, 1), Pt(5, 9), 9},
		{Pt(1, 2), Pt(9, 5), 9},
		{Pt(4, 4), Pt(4, 4), 1},
	}

	for _, tt := range tests {
		img := NewGray[uint8](10, 10)
		if err := Line(img, tt.a, tt.b, Level[uint8](7)); err != nil {
			t.Fatalf("Line failed: %v", err)
		}
		set := painted(img)
		if !set[tt.a] || !set[tt.b] {
			t.Errorf("line %s-%s: endpoints not drawn", tt.a, tt.b)
		}
		if len(set) != tt.n {
			t.Errorf("line %s-%s: got %d pixels, want %d", tt.a, tt.b, len(set), tt.n)
		}
	}
}

func TestLine_Connected(t *testing.T) {
	// Every pixel of a Bresenham line touches the next one, and exactly one
	// pixel is drawn per step of the major axis.
	img := NewGray[uint8](50, 50)
	if err := Line(img, Pt(3, 45), Pt(40, 12), Level[uint8](1)); err != nil {
		t.Fatalf("Line failed: %v", err)
	}

	rows := make(map[int]int)
	for c := range painted(img) {
		rows[c.Row]++
	}
	for row := 3; row <= 40; row++ {
		if rows[row] != 1 {
			t.Errorf("row %d: got %d pixels, want 1", row, rows[row])
		}
	}
}

func TestLine_TieBreak(t *testing.T) {
	// A 2:1 slope puts the midpoint exactly on a pixel boundary; the minor
	// axis only steps once the doubled error is strictly positive.
	img := NewGray[uint8](5, 5)
	if err := Line(img, Pt(0, 0), Pt(1, 2), Level[uint8](1)); err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	want := map[Coord]bool{Pt(0, 0): true, Pt(0, 1): true, Pt(1, 2): true}
	got := painted(img)
	if len(got) != len(want) {
		t.Fatalf("got %d pixels, want %d", len(got), len(want))
	}
	for c := range want {
		if !got[c] {
			t.Errorf("pixel %s not drawn", c)
		}
	}

	// Steep variant: the row axis drives.
	img = NewGray[uint8](5, 5)
	if err := Line(img, Pt(0, 0), Pt(2, 1), Level[uint8](1)); err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	want = map[Coord]bool{Pt(0, 0): true, Pt(1, 0): true, Pt(2, 1): true}
	got = painted(img)
	for c := range want {
		if !got[c] {
			t.Errorf("steep pixel %s not drawn", c)
		}
	}
}

func TestLine_Clipping(t *testing.T) {
	img := NewGray[uint8](10, 10)

	// Crosses the whole canvas from outside to outside.
	if err := Line(img, Pt(5, -20), Pt(5, 30), Level[uint8](9)); err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	for col := 0; col < 10; col++ {
		got, _ := img.At(Pt(5, col))
		if got[0] != 9 {
			t.Errorf("pixel (5,%d): got %d, want 9", col, got[0])
		}
	}
	if n := len(painted(img)); n != 10 {
		t.Errorf("got %d pixels, want 10", n)
	}

	// Entirely outside: nothing happens.
	before := slices.Clone(img.Pix())
	if err := Line(img, Pt(-5, -5), Pt(-1, 30), Level[uint8](200)); err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	if err := Line(img, Pt(-3, -3), Pt(-3, -3), Level[uint8](200)); err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	if !slices.Equal(before, img.Pix()) {
		t.Error("off-canvas line modified the raster")
	}
}

func TestLine_FarEndpoints(t *testing.T) {
	diagonal := func(n int) map[Coord]bool {
		set := make(map[Coord]bool)
		for k := 0; k < n; k++ {
			set[Pt(k, k)] = true
		}
		return set
	}
	row5 := func(from, to int) map[Coord]bool {
		set := make(map[Coord]bool)
		for col := from; col <= to; col++ {
			set[Pt(5, col)] = true
		}
		return set
	}

	tests := []struct {
		name string
		a, b Coord
		want map[Coord]bool
	}{
		{"row across int32 range", Pt(5, -1<<31), Pt(5, 1<<31), row5(0, 9)},
		{"row from MinInt", Pt(5, math.MinInt), Pt(5, 5), row5(0, 5)},
		{"row to MaxInt", Pt(5, 7), Pt(5, math.MaxInt), row5(7, 9)},
		{"row across int range", Pt(5, math.MaxInt), Pt(5, math.MinInt), row5(0, 9)},
		{"diagonal 1<<40", Pt(-1<<40, -1<<40), Pt(1<<40, 1<<40), diagonal(10)},
		{"diagonal int range", Pt(math.MinInt, math.MinInt), Pt(math.MaxInt, math.MaxInt), diagonal(10)},
		{"column 1<<40", Pt(1<<40, 3), Pt(-1<<40, 3), map[Coord]bool{
			Pt(0, 3): true, Pt(1, 3): true, Pt(2, 3): true, Pt(3, 3): true, Pt(4, 3): true,
			Pt(5, 3): true, Pt(6, 3): true, Pt(7, 3): true, Pt(8, 3): true, Pt(9, 3): true,
		}},
		{"far and off canvas", Pt(-1<<40, 1<<40), Pt(-1<<40+5, math.MaxInt), map[Coord]bool{}},
		{"passes beside canvas", Pt(math.MinInt, 20), Pt(math.MaxInt, 20), map[Coord]bool{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := NewGray[uint8](10, 10)
			if err := Line(img, tt.a, tt.b, Level[uint8](9)); err != nil {
				t.Fatalf("Line failed: %v", err)
			}
			got := painted(img)
			if len(got) != len(tt.want) {
				t.Errorf("got %d pixels, want %d", len(got), len(tt.want))
			}
			for c := range tt.want {
				if !got[c] {
					t.Errorf("pixel %s not drawn", c)
				}
			}
		})
	}
}

func TestLine_FarSlope(t *testing.T) {
	// Bresenham steps depend only on the slope, so extending a line far past
	// the canvas in either direction must not move its visible pixels.
	short := NewGray[uint8](4, 11)
	if err := Line(short, Pt(0, 0), Pt(3, 10), Level[uint8](1)); err != nil {
		t.Fatalf("Line failed: %v", err)
	}

	tests := []struct {
		name string
		a, b Coord
	}{
		{"extended 1<<20", Pt(0, 0), Pt(3<<20, 10<<20)},
		{"extended 1<<40", Pt(0, 0), Pt(3<<40, 10<<40)},
		{"from 1<<20 behind", Pt(-3<<20, -10<<20), Pt(3, 10)},
		{"from 1<<40 behind", Pt(-3<<40, -10<<40), Pt(3, 10)},
		{"both sides 1<<40", Pt(3<<40, 10<<40), Pt(-3<<40, -10<<40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			long := NewGray[uint8](4, 11)
			if err := Line(long, tt.a, tt.b, Level[uint8](1)); err != nil {
				t.Fatalf("Line failed: %v", err)
			}
			if !slices.Equal(short.Pix(), long.Pix()) {
				t.Errorf("visible pixels differ: got %v, want %v", painted(long), painted(short))
			}
		})
	}
}

func TestLine_Color(t *testing.T) {
	img := NewColor[uint8](3, 20, 20)
	red := RGB[uint8](255, 0, 0)

	if err := Line(img, Pt(0, 0), Pt(19, 19), red); err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	for k := 0; k < 20; k++ {
		got, _ := img.At(Pt(k, k))
		if !slices.Equal(got, red) {
			t.Errorf("pixel (%d,%d): got %v, want %v", k, k, got, red)
		}
	}

	before := slices.Clone(img.Pix())
	if err := Line(img, Pt(0, 19), Pt(19, 0), Level[uint8](1)); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("got %v, want ErrInvalidValue", err)
	}
	if !slices.Equal(before, img.Pix()) {
		t.Error("raster modified by invalid value")
	}
}

func TestLine_Idempotent(t *testing.T) {
	once := NewGray[uint8](30, 30)
	twice := NewGray[uint8](30, 30)

	for i := 0; i < 2; i++ {
		if err := Line(twice, Pt(2, 5), Pt(27, 18), Level[uint8](77)); err != nil {
			t.Fatalf("Line failed: %v", err)
		}
	}
	if err := Line(once, Pt(2, 5), Pt(27, 18), Level[uint8](77)); err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	if !slices.Equal(once.Pix(), twice.Pix()) {
		t.Error("drawing twice differs from drawing once")
	}
}
