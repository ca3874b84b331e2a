// Package draw implements the rasterization core used to annotate images.
//
// The package draws points, lines, boxes and crosses directly into planar
// pixel buffers. It never decodes or encodes images. Rasters built with
// WrapGray, WrapColor or FromShape borrow the caller's slice, and every
// primitive mutates the raster in place.
//
// # Layout
//
// A Raster is either gray (height x width samples) or color
// (channels x height x width samples, channel planes stored one after the
// other). Coordinates are (Row, Col) pairs with (0,0) at the top-left corner.
// Samples may be uint8, uint16 or float64.
//
// # Strict and Tolerant Operations
//
// Point is strict: it returns ErrOutOfBounds for coordinates outside the
// raster and leaves the raster untouched. Every other primitive (TryPoint,
// Line, Box, BoxAround, Cross, CrossX) is tolerant: pixels that fall outside
// the raster are skipped so partially visible shapes still draw their
// visible part.
//
// All primitives return ErrInvalidValue, before writing anything, when the
// value does not carry exactly one sample per channel.
//
// # Thread Safety
//
// Primitives keep no state between calls. Drawing into the same Raster from
// several goroutines must be synchronized by the caller; distinct rasters
// can be drawn concurrently.
package draw
