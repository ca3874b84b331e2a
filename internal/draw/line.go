package draw

import (
	"math"
	"math/big"
)

// Line draws the straight segment from a to b, both ends included, using
// integer midpoint (Bresenham) stepping.
//
// Pixels outside the raster are skipped, so a segment that leaves the canvas
// still draws its visible part. Any int endpoints are accepted; the work done
// is bounded by the raster size, not by the length of the segment. The only
// error is ErrInvalidValue, reported before anything is written.
//
// Line(r, a, b, v) and Line(r, b, a, v) touch exactly the same pixels.
func Line[T Sample](r *Raster[T], a, b Coord, v Value[T]) error {
	if err := r.CheckValue(v); err != nil {
		return err
	}
	segment(r, a, b, v)
	return nil
}

// axis is one coordinate of a segment: it starts at start and moves delta
// pixels in direction step (-1, 0 or 1) over a raster dimension of size.
type axis struct {
	start int
	step  int
	delta uint64
	size  int
}

func newAxis(from, to, size int) axis {
	// The uint64 difference is exact for any pair of ints.
	switch {
	case to == from:
		return axis{start: from, size: size}
	case to > from:
		return axis{start: from, step: 1, delta: uint64(to) - uint64(from), size: size}
	}
	return axis{start: from, step: -1, delta: uint64(from) - uint64(to), size: size}
}

// at returns start + step*n. The result must lie between the two ends.
func (x axis) at(n uint64) int {
	if x.step < 0 {
		return int(uint64(x.start) - n)
	}
	return int(uint64(x.start) + n)
}

// visible returns the range of steps n in [0, delta] whose position lies
// inside [0, size).
func (x axis) visible() (first, last uint64, ok bool) {
	if x.size <= 0 {
		return 0, 0, false
	}
	hi := x.size - 1
	switch {
	case x.step >= 0:
		if x.start > hi {
			return 0, 0, false
		}
		if x.start < 0 {
			first = uint64(0) - uint64(x.start)
		}
		last = uint64(hi) - uint64(x.start)
	default:
		if x.start < 0 {
			return 0, 0, false
		}
		if x.start > hi {
			first = uint64(x.start) - uint64(hi)
		}
		last = uint64(x.start)
	}
	last = min(last, x.delta)
	return first, last, first <= last
}

// segment rasterizes a validated line. Endpoints are visited in row-major
// order so the error term breaks ties the same way whichever end the caller
// named first.
//
// With major delta M and minor delta m, step i of the major axis draws the
// minor offset k = ceil((2m*i - M) / 2M) and leaves the decision term
// d = 2m(i+1) - M - 2Mk. Only steps that land on the raster are walked; the
// first of them is seeded from the closed form.
func segment[T Sample](r *Raster[T], a, b Coord, v Value[T]) {
	if b.less(a) {
		a, b = b, a
	}

	major := newAxis(a.Col, b.Col, r.width)
	minor := newAxis(a.Row, b.Row, r.height)
	pt := func(j, n int) Coord { return Coord{Row: n, Col: j} }
	if minor.delta > major.delta {
		major, minor = minor, major
		pt = func(j, n int) Coord { return Coord{Row: j, Col: n} }
	}

	first, last, ok := major.visible()
	if !ok {
		return
	}
	if major.delta == 0 {
		r.plot(a, v)
		return
	}

	k, term := seed(major.delta, minor.delta, first)
	for n := uint64(0); n <= last-first; n++ {
		r.plot(pt(major.at(first+n), minor.at(k)), v)
		if term.next() {
			k++
		}
	}
}

// decision is the Bresenham error term. next reports whether the minor axis
// advances after the current step.
type decision interface {
	next() bool
}

// smallSpan bounds the deltas whose decision term fits in an int64.
const smallSpan = 1 << 30

func seed(major, minor, i uint64) (uint64, decision) {
	if major <= smallSpan {
		M, m, n := int64(major), int64(minor), int64(i)
		k := (2*m*n + M - 1) / (2 * M)
		d := 2*m*(n+1) - M - 2*M*k
		return uint64(k), &smallTerm{d: d, up: 2 * m, down: 2*m - 2*M}
	}

	M := new(big.Int).SetUint64(major)
	m := new(big.Int).SetUint64(minor)
	n := new(big.Int).SetUint64(i)
	twoM := new(big.Int).Lsh(M, 1)
	twoMinor := new(big.Int).Lsh(m, 1)

	k := new(big.Int).Mul(twoMinor, n)
	k.Add(k, M).Sub(k, big.NewInt(1)).Quo(k, twoM)

	d := new(big.Int).Add(n, big.NewInt(1))
	d.Mul(d, twoMinor).Sub(d, M)
	d.Sub(d, new(big.Int).Mul(twoM, k))

	return k.Uint64(), &bigTerm{d: d, up: twoMinor, down: new(big.Int).Sub(twoMinor, twoM)}
}

type smallTerm struct {
	d, up, down int64
}

func (t *smallTerm) next() bool {
	if t.d > 0 {
		t.d += t.down
		return true
	}
	t.d += t.up
	return false
}

type bigTerm struct {
	d, up, down *big.Int
}

func (t *bigTerm) next() bool {
	if t.d.Sign() > 0 {
		t.d.Add(t.d, t.down)
		return true
	}
	t.d.Add(t.d, t.up)
	return false
}

// offset returns c moved by (dRow, dCol), saturating at the int range.
func offset(c Coord, dRow, dCol int) Coord {
	return Coord{Row: addSat(c.Row, dRow), Col: addSat(c.Col, dCol)}
}

func addSat(a, b int) int {
	s := a + b
	switch {
	case b > 0 && s < a:
		return math.MaxInt
	case b < 0 && s > a:
		return math.MinInt
	}
	return s
}
