package draw

import "fmt"

// Sample is the set of element types a Raster can hold.
type Sample interface {
	~uint8 | ~uint16 | ~float64
}

// Layout tells whether a Raster holds one intensity per pixel or one
// intensity per channel per pixel.
type Layout int

const (
	// Gray rasters are height x width.
	Gray Layout = iota
	// Color rasters are channels x height x width, channel planes first.
	Color
)

// String returns "gray" or "color".
func (l Layout) String() string {
	switch l {
	case Gray:
		return "gray"
	case Color:
		return "color"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// Coord identifies a pixel by row and column. Either component may be
// negative or past the raster edge; primitives decide how to treat that.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Pt is shorthand for Coord{Row: row, Col: col}.
func Pt(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// Add returns c translated by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// less orders coordinates row first, then column.
func (c Coord) less(d Coord) bool {
	if c.Row != d.Row {
		return c.Row < d.Row
	}
	return c.Col < d.Col
}

// Value is a pixel value: one sample for gray rasters, one sample per
// channel (in plane order) for color rasters.
type Value[T Sample] []T

// Level returns a single-sample value for gray rasters.
func Level[T Sample](v T) Value[T] {
	return Value[T]{v}
}

// RGB returns a three-sample value for red, green, blue planes.
func RGB[T Sample](r, g, b T) Value[T] {
	return Value[T]{r, g, b}
}

// Raster is a planar pixel buffer built by NewGray, NewColor or the Wrap
// constructors.
//
// A Raster does not own its samples: Wrap* constructors borrow the caller's
// slice and every write lands in it directly.
type Raster[T Sample] struct {
	layout   Layout
	channels int
	height   int
	width    int
	pix      []T
}

// NewGray allocates a zeroed height x width gray raster.
func NewGray[T Sample](height, width int) *Raster[T] {
	if height < 0 || width < 0 {
		height, width = 0, 0
	}
	return &Raster[T]{
		layout:   Gray,
		channels: 1,
		height:   height,
		width:    width,
		pix:      make([]T, height*width),
	}
}

// NewColor allocates a zeroed channels x height x width color raster.
func NewColor[T Sample](channels, height, width int) *Raster[T] {
	if channels < 1 {
		channels = 1
	}
	if height < 0 || width < 0 {
		height, width = 0, 0
	}
	return &Raster[T]{
		layout:   Color,
		channels: channels,
		height:   height,
		width:    width,
		pix:      make([]T, channels*height*width),
	}
}

// WrapGray borrows pix as a height x width gray raster stored row-major.
func WrapGray[T Sample](pix []T, height, width int) (*Raster[T], error) {
	if height < 0 || width < 0 || len(pix) != height*width {
		return nil, fmt.Errorf("%w: %d samples for gray %dx%d", ErrDimensionality, len(pix), height, width)
	}
	return &Raster[T]{layout: Gray, channels: 1, height: height, width: width, pix: pix}, nil
}

// WrapColor borrows pix as a channels x height x width planar raster.
func WrapColor[T Sample](pix []T, channels, height, width int) (*Raster[T], error) {
	if channels < 1 || height < 0 || width < 0 || len(pix) != channels*height*width {
		return nil, fmt.Errorf("%w: %d samples for color %dx%dx%d", ErrDimensionality, len(pix), channels, height, width)
	}
	return &Raster[T]{layout: Color, channels: channels, height: height, width: width, pix: pix}, nil
}

// FromShape borrows pix using an array-style shape: (height, width) gives a
// gray raster and (channels, height, width) a color raster. Any other number
// of dimensions fails with ErrDimensionality.
func FromShape[T Sample](pix []T, shape ...int) (*Raster[T], error) {
	switch len(shape) {
	case 2:
		return WrapGray(pix, shape[0], shape[1])
	case 3:
		return WrapColor(pix, shape[0], shape[1], shape[2])
	default:
		return nil, fmt.Errorf("%w: %d dimensions", ErrDimensionality, len(shape))
	}
}

// Layout reports whether the raster is gray or color.
func (r *Raster[T]) Layout() Layout { return r.layout }

// Channels returns 1 for gray rasters and the plane count for color ones.
func (r *Raster[T]) Channels() int { return r.channels }

// Height returns the number of rows.
func (r *Raster[T]) Height() int { return r.height }

// Width returns the number of columns.
func (r *Raster[T]) Width() int { return r.width }

// Shape returns the array-style shape: (height, width) or
// (channels, height, width).
func (r *Raster[T]) Shape() []int {
	if r.layout == Gray {
		return []int{r.height, r.width}
	}
	return []int{r.channels, r.height, r.width}
}

// Pix returns the backing samples. Color planes are contiguous.
func (r *Raster[T]) Pix() []T { return r.pix }

// In reports whether c lies in [0, height) x [0, width). It is the only
// bounds check in the package.
func (r *Raster[T]) In(c Coord) bool {
	return c.Row >= 0 && c.Row < r.height && c.Col >= 0 && c.Col < r.width
}

// CheckValue returns ErrInvalidValue unless v has exactly one sample per
// channel.
func (r *Raster[T]) CheckValue(v Value[T]) error {
	if len(v) != r.channels {
		return fmt.Errorf("%w: %d samples for %s raster with %d channel(s)", ErrInvalidValue, len(v), r.layout, r.channels)
	}
	return nil
}

// At returns a copy of the samples at c, one per channel.
func (r *Raster[T]) At(c Coord) (Value[T], error) {
	if !r.In(c) {
		return nil, fmt.Errorf("%w: %s outside %dx%d", ErrOutOfBounds, c, r.height, r.width)
	}
	v := make(Value[T], r.channels)
	off := r.offset(c)
	plane := r.height * r.width
	for ch := range v {
		v[ch] = r.pix[ch*plane+off]
	}
	return v, nil
}

// Fill sets every pixel to v.
func (r *Raster[T]) Fill(v Value[T]) error {
	if err := r.CheckValue(v); err != nil {
		return err
	}
	plane := r.height * r.width
	for ch, s := range v {
		p := r.pix[ch*plane : (ch+1)*plane]
		for i := range p {
			p[i] = s
		}
	}
	return nil
}

// Clone returns a deep copy backed by a new slice.
func (r *Raster[T]) Clone() *Raster[T] {
	c := *r
	c.pix = append([]T(nil), r.pix...)
	return &c
}

// offset is the index of c within one plane.
func (r *Raster[T]) offset(c Coord) int {
	return c.Row*r.width + c.Col
}

// put writes v at c. Callers must have checked both c and v.
func (r *Raster[T]) put(c Coord, v Value[T]) {
	off := r.offset(c)
	if r.layout == Gray {
		r.pix[off] = v[0]
		return
	}
	plane := r.height * r.width
	for ch, s := range v {
		r.pix[ch*plane+off] = s
	}
}

// plot writes v at c when c is inside the raster. The value must already
// have been validated.
func (r *Raster[T]) plot(c Coord, v Value[T]) bool {
	if !r.In(c) {
		return false
	}
	r.put(c, v)
	return true
}
