package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// coordSchema describes a {"row", "col"} object.
func coordSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"row": map[string]interface{}{"type": "integer", "description": "Row (0 = top)"},
			"col": map[string]interface{}{"type": "integer", "description": "Column (0 = left)"},
		},
		"required": []string{"row", "col"},
	}
}

// imageProperties returns the arguments shared by every tool that returns an
// annotated image, merged with the tool's own properties.
func imageProperties(own map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the source image file",
		},
		"output_path": map[string]interface{}{
			"type":        "string",
			"description": "Optional file to write the result to (PNG unless the extension says otherwise)",
		},
		"mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"color", "gray"},
			"description": "Raster layout to draw in: 'color' (3 planes) or 'gray' (1 plane). Default color",
			"default":     "color",
		},
		"scale": map[string]interface{}{
			"type":        "number",
			"description": "Optional scale factor for the returned image (nearest neighbor). Default 1.0",
			"default":     1.0,
		},
		"omit_image": map[string]interface{}{
			"type":        "boolean",
			"description": "Skip the base64 image in the result (useful with output_path)",
			"default":     false,
		},
	}
	return mergeProps(props, own)
}

var colorProperty = map[string]interface{}{
	"type":        "string",
	"description": "Pixel value: hex '#RRGGBB' / '#RGB' or a gray level '0'-'255'. Default red (255 in gray mode)",
}

// shapeFields are the per-shape properties accepted by the draw tools and by
// entries of draw_shapes.
func shapeFields() map[string]interface{} {
	return map[string]interface{}{
		"color":       colorProperty,
		"row":         map[string]interface{}{"type": "integer", "description": "Row of a point (0 = top)"},
		"col":         map[string]interface{}{"type": "integer", "description": "Column of a point (0 = left)"},
		"from":        coordSchema("Line start"),
		"to":          coordSchema("Line end"),
		"origin":      coordSchema("Top-left corner of a box"),
		"center":      coordSchema("Center of a centered box or a cross"),
		"height":      map[string]interface{}{"type": "integer", "description": "Box height: the bottom edge is at origin.row + height"},
		"width":       map[string]interface{}{"type": "integer", "description": "Box width: the right edge is at origin.col + width"},
		"centered":    map[string]interface{}{"type": "boolean", "description": "Place the box around center using half_height/half_width", "default": false},
		"half_height": map[string]interface{}{"type": "integer", "description": "Half extent along rows (centered box or '+' cross)"},
		"half_width":  map[string]interface{}{"type": "integer", "description": "Half extent along columns (centered box or '+' cross)"},
		"style":       map[string]interface{}{"type": "string", "enum": []string{"plus", "x"}, "description": "Cross style: '+' (default) or diagonal 'x'", "default": "plus"},
		"radius":      map[string]interface{}{"type": "integer", "description": "Half size of an 'x' cross"},
	}
}

func pick(fields map[string]interface{}, names ...string) map[string]interface{} {
	out := make(map[string]interface{}, len(names))
	for _, n := range names {
		out[n] = fields[n]
	}
	return out
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	fields := shapeFields()

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and the raster shapes it converts to ([rows, cols] gray, [3, rows, cols] color).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact pixel value at a (row, col) coordinate, with hex, RGB and HSL forms.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"row":  fields["row"],
					"col":  fields["col"],
					"mode": imageProperties(nil)["mode"],
				},
				"required": []string{"path", "row", "col"},
			},
		},

		// Drawing Primitives
		{
			Name:        "draw_point",
			Description: "Set a single pixel. Fails if (row, col) is outside the image.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": imageProperties(pick(fields, "row", "col", "color")),
				"required":   []string{"path", "row", "col"},
			},
		},
		{
			Name:        "draw_try_point",
			Description: "Set a single pixel if (row, col) is inside the image. Reports whether it was drawn instead of failing.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": imageProperties(pick(fields, "row", "col", "color")),
				"required":   []string{"path", "row", "col"},
			},
		},
		{
			Name:        "draw_line",
			Description: "Draw a one-pixel Bresenham line between two points, both inclusive. Parts outside the image are clipped.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": imageProperties(pick(fields, "from", "to", "color")),
				"required":   []string{"path", "from", "to"},
			},
		},
		{
			Name:        "draw_box",
			Description: "Draw a rectangle outline from origin with height/width, or around center with half_height/half_width when centered is true. Parts outside the image are clipped.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": imageProperties(pick(fields, "origin", "height", "width", "centered", "center", "half_height", "half_width", "color")),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "draw_cross",
			Description: "Draw a '+' marker (half_height/half_width) or an 'x' marker (radius) at center. Parts outside the image are clipped.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": imageProperties(pick(fields, "center", "half_height", "half_width", "style", "radius", "color")),
				"required":   []string{"path", "center"},
			},
		},
		{
			Name:        "draw_shapes",
			Description: "Draw a list of points, lines, boxes and crosses onto one image, in order. Each shape takes the same fields as its single-shape tool.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": imageProperties(map[string]interface{}{
					"color": colorProperty,
					"shapes": map[string]interface{}{
						"type":        "array",
						"description": "Shapes to draw; a shape without color uses the top-level color",
						"items": map[string]interface{}{
							"type": "object",
							"properties": mergeProps(fields, map[string]interface{}{
								"type": map[string]interface{}{
									"type": "string",
									"enum": []string{"point", "line", "box", "cross"},
								},
							}),
							"required": []string{"type"},
						},
					},
				}),
				"required": []string{"path", "shapes"},
			},
		},

		// Overlays
		{
			Name:        "image_grid_overlay",
			Description: "Return the image with a coordinate grid overlay for precise (row, col) positioning reference.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": imageProperties(map[string]interface{}{
					"grid_spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels between grid lines (default 50)",
						"default":     50,
					},
					"show_coordinates": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether to label grid intersections with row,col",
						"default":     true,
					},
					"grid_color": map[string]interface{}{
						"type":        "string",
						"description": "Grid line color (default #FF0000)",
						"default":     "#FF0000",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "annotate_regions",
			Description: "Find connected foreground regions by luminance threshold and outline each with a box, optionally marking its center with a cross.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": imageProperties(map[string]interface{}{
					"color": colorProperty,
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Luminance level 1-255 splitting foreground from background (default: image mean)",
					},
					"dark_foreground": map[string]interface{}{
						"type":        "boolean",
						"description": "Treat pixels darker than the threshold as foreground (default true)",
						"default":     true,
					},
					"min_area": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum region size in pixels (default 20)",
						"default":     20,
					},
					"max_regions": map[string]interface{}{
						"type":        "integer",
						"description": "Keep only the largest N regions (default all)",
					},
					"mark_centers": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw a '+' at each region center (default true)",
						"default":     true,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "annotate_text",
			Description: "Run OCR and outline every recognized word with a box.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": imageProperties(map[string]interface{}{
					"color": colorProperty,
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code (default 'eng')",
						"default":     "eng",
					},
					"min_confidence": map[string]interface{}{
						"type":        "number",
						"description": "Minimum word confidence 0.0-1.0 (default 0.5)",
						"default":     0.5,
					},
				}),
				"required": []string{"path"},
			},
		},
	}
}

func mergeProps(a, b map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
