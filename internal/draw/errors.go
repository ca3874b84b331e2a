package draw

import "errors"

// Sentinel errors for the draw package.
var (
	// ErrOutOfBounds is returned by Point when the coordinate lies outside
	// the raster.
	ErrOutOfBounds = errors.New("draw: coordinate out of bounds")

	// ErrInvalidValue is returned when a pixel value does not have one
	// sample per raster channel.
	ErrInvalidValue = errors.New("draw: invalid pixel value")

	// ErrDimensionality is returned when a buffer shape is neither
	// (height, width) nor (channels, height, width), or when the backing
	// slice does not match the shape.
	ErrDimensionality = errors.New("draw: unsupported raster shape")
)
