// Package detection finds foreground regions in images so they can be
// outlined with the draw primitives.
//
// # Algorithm
//
//  1. Threshold: luminance is split at a level (the image mean by default)
//     using bild's segment.Threshold.
//  2. Components: foreground pixels are grouped into 8-connected regions with
//     an iterative flood fill.
//  3. Filtering: regions below MinArea are dropped and the rest are sorted by
//     area, largest first.
//
// # Coordinate System
//
// Results use the draw package's (row, col) convention with the origin at the
// image's top-left corner. A Region's Origin, Height and Width can be passed
// straight to draw.Box.
//
// # Limitations
//
// A single global threshold works best on clean, high-contrast images such as
// diagrams and screenshots. Uneven lighting or photographs may merge or split
// regions.
package detection
