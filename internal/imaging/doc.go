// Package imaging connects decoded images to the rasters the draw package
// annotates.
//
// It loads and caches source images, converts them into gray or planar color
// rasters, parses annotation colors, overlays coordinate grids and encodes
// annotated rasters back into PNG results.
//
// # Coordinate System
//
// Pixel positions are (row, col) pairs, 0-based from the top-left corner:
//   - row: vertical position (0 = topmost row)
//   - col: horizontal position (0 = leftmost column)
//
// This is the (y, x) order of the standard image package, swapped.
//
// # Raster Modes
//
// Images become rasters in one of two modes:
//   - "gray": one 8-bit luminance plane, shape (height, width)
//   - "color": three 8-bit planes R, G, B, shape (3, height, width)
//
// Alpha is dropped on conversion; encoded results are opaque.
//
// # Color Values
//
// Annotation colors are strings: "#RRGGBB" or "#RGB" hex, or a decimal gray
// level "0" to "255". They are converted to the raster's mode, so a hex color
// drawn on a gray raster uses its luminance.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Rasters are not: callers
// must not draw into one raster from several goroutines at once.
package imaging
