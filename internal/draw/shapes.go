package draw

// Box draws the outline of the axis-aligned rectangle with top-left corner
// origin spanning height rows and width columns. The corners are origin,
// origin+(0,width), origin+(height,width) and origin+(height,0); the four
// sides are drawn top, right, bottom, left.
//
// Each side is a Line, so parts of the box outside the raster are skipped.
// Corners beyond the int range are clamped to it.
func Box[T Sample](r *Raster[T], origin Coord, height, width int, v Value[T]) error {
	if err := r.CheckValue(v); err != nil {
		return err
	}
	outline(r, origin, offset(origin, height, width), v)
	return nil
}

// BoxAround draws the outline of the rectangle centered on center that
// extends halfHeight rows and halfWidth columns on each side.
func BoxAround[T Sample](r *Raster[T], center Coord, halfHeight, halfWidth int, v Value[T]) error {
	if err := r.CheckValue(v); err != nil {
		return err
	}
	outline(r, offset(center, -halfHeight, -halfWidth), offset(center, halfHeight, halfWidth), v)
	return nil
}

// outline draws the rectangle with opposite corners a and b: top, right,
// bottom, left.
func outline[T Sample](r *Raster[T], a, b Coord, v Value[T]) {
	corners := [4]Coord{a, {Row: a.Row, Col: b.Col}, b, {Row: b.Row, Col: a.Col}}
	for i, c := range corners {
		segment(r, c, corners[(i+1)%len(corners)], v)
	}
}

// Cross draws a '+' centered on center: a vertical stroke of halfHeight rows
// above and below it and a horizontal stroke of halfWidth columns left and
// right of it.
func Cross[T Sample](r *Raster[T], center Coord, halfHeight, halfWidth int, v Value[T]) error {
	if err := r.CheckValue(v); err != nil {
		return err
	}
	segment(r, offset(center, -halfHeight, 0), offset(center, halfHeight, 0), v)
	segment(r, offset(center, 0, -halfWidth), offset(center, 0, halfWidth), v)
	return nil
}

// CrossX draws an 'x' centered on center whose arms are the diagonals of the
// square reaching radius pixels in every direction.
func CrossX[T Sample](r *Raster[T], center Coord, radius int, v Value[T]) error {
	if err := r.CheckValue(v); err != nil {
		return err
	}
	segment(r, offset(center, -radius, -radius), offset(center, radius, radius), v)
	segment(r, offset(center, -radius, radius), offset(center, radius, -radius), v)
	return nil
}
