// Package server implements the MCP (Model Context Protocol) server for the
// drawing tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image Information:
//   - image_load: Load image and get metadata
//   - image_sample_color: Read the pixel value at (row, col)
//
// Drawing Primitives:
//   - draw_point: Set one pixel, failing outside the image
//   - draw_try_point: Set one pixel if inside, reporting whether it was drawn
//   - draw_line: Bresenham line between two points
//   - draw_box: Rectangle outline from a corner or around a center
//   - draw_cross: '+' or 'x' marker
//   - draw_shapes: Several of the above in one call
//
// Overlays:
//   - image_grid_overlay: Coordinate grid with row,col labels
//   - annotate_regions: Outline thresholded foreground regions
//   - annotate_text: Outline words found by OCR
//
// Every coordinate is (row, col) with (0, 0) at the top-left pixel. Drawing
// tools never modify the source file; they return the annotated image as a
// base64 PNG and optionally write it to output_path.
//
// # Image Caching
//
// Source images are cached by path and reused across tool calls. Writing to
// output_path evicts that path so a later call reads the new file.
//
// # Error Handling
//
// Tool errors are returned as JSON-RPC error responses with:
//   - code: -32602 for bad arguments or unknown tools, -32000 for tool failures
//     (missing files, strict drawing out of bounds, OCR errors)
//   - message: Human-readable error description
//   - data: The Go error string
package server
