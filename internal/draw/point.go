package draw

import "fmt"

// Point sets the pixel at c to v.
//
// It fails with ErrInvalidValue when v does not have one sample per channel
// and with ErrOutOfBounds when c lies outside the raster. Both checks run
// before any write, so on error the raster is unchanged.
func Point[T Sample](r *Raster[T], c Coord, v Value[T]) error {
	if err := r.CheckValue(v); err != nil {
		return err
	}
	if !r.In(c) {
		return fmt.Errorf("%w: %s outside %dx%d", ErrOutOfBounds, c, r.height, r.width)
	}
	r.put(c, v)
	return nil
}

// TryPoint sets the pixel at c to v if c is inside the raster and reports
// whether it did. Out-of-bounds coordinates are not an error.
func TryPoint[T Sample](r *Raster[T], c Coord, v Value[T]) (bool, error) {
	if err := r.CheckValue(v); err != nil {
		return false, err
	}
	return r.plot(c, v), nil
}
