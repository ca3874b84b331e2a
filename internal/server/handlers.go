package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/ironsheep/image-draw-mcp/internal/detection"
	"github.com/ironsheep/image-draw-mcp/internal/draw"
	"github.com/ironsheep/image-draw-mcp/internal/imaging"
	"github.com/ironsheep/image-draw-mcp/internal/ocr"
)

// errInvalidParams marks tool errors caused by the caller's arguments. They
// are reported with JSON-RPC code -32602 instead of -32000.
var errInvalidParams = errors.New("invalid params")

func invalidParams(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errInvalidParams, fmt.Sprintf(format, args...))
}

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "draw_line", "image_load").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Argument errors return code -32602; other tool failures return -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if s.debug {
		log.Printf("tool %s finished in %s (err=%v)", params.Name, time.Since(start), err)
	}
	if err != nil {
		if errors.Is(err, errInvalidParams) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Drawing handlers share one flow: load the source through the cache, copy it
// into a fresh raster, draw, then render the raster back to PNG. The cached
// image itself is never modified.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Drawing Primitives
	case "draw_point":
		return s.handleDrawPoint(args)
	case "draw_try_point":
		return s.handleDrawTryPoint(args)
	case "draw_line":
		return s.handleDrawShape("line", args)
	case "draw_box":
		return s.handleDrawShape("box", args)
	case "draw_cross":
		return s.handleDrawShape("cross", args)
	case "draw_shapes":
		return s.handleDrawShapes(args)

	// Overlays
	case "image_grid_overlay":
		return s.handleImageGridOverlay(args)
	case "annotate_regions":
		return s.handleAnnotateRegions(args)
	case "annotate_text":
		return s.handleAnnotateText(args)

	default:
		return nil, invalidParams("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return invalidParams("%v", err)
	}
	return nil
}

// === Shared argument handling ===

// imageArgs are accepted by every tool that returns an annotated image.
type imageArgs struct {
	Path       string  `json:"path"`
	OutputPath string  `json:"output_path"`
	Mode       string  `json:"mode"`
	Scale      float64 `json:"scale"`
	OmitImage  bool    `json:"omit_image"`
}

// load returns the cached source image and a fresh raster copy of it.
func (s *Server) load(a imageArgs) (image.Image, *draw.Raster[uint8], error) {
	if a.Path == "" {
		return nil, nil, invalidParams("path is required")
	}
	mode, err := imaging.ParseMode(a.Mode)
	if err != nil {
		return nil, nil, invalidParams("%v", err)
	}
	if a.Scale < 0 {
		return nil, nil, invalidParams("scale must not be negative, got %g", a.Scale)
	}
	if a.OmitImage && a.OutputPath == "" {
		return nil, nil, invalidParams("omit_image requires output_path")
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, err
	}
	r, err := imaging.ToRaster(img, mode)
	if err != nil {
		return nil, nil, err
	}
	return img, r, nil
}

// render encodes r and drops any stale cache entry for a written file.
func (s *Server) render(r *draw.Raster[uint8], a imageArgs) (*imaging.RenderResult, error) {
	result, err := imaging.Render(r, imaging.RenderOptions{
		Scale:      a.Scale,
		OutputPath: a.OutputPath,
		OmitImage:  a.OmitImage,
	})
	if err != nil {
		return nil, err
	}
	if result.OutputPath != "" {
		s.cache.Evict(result.OutputPath)
	}
	return result, nil
}

// pixelValue parses a color argument for r. Empty means red, or white on a
// gray raster.
func pixelValue(r *draw.Raster[uint8], s string) (draw.Value[uint8], error) {
	if s == "" {
		s = "#FF0000"
		if r.Layout() == draw.Gray {
			s = "255"
		}
	}
	v, err := imaging.ParseValue(r, s)
	if err != nil {
		return nil, invalidParams("%v", err)
	}
	return v, nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidParams("path is required")
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	Mode string `json:"mode"`
	Row  *int   `json:"row"`
	Col  *int   `json:"col"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Row == nil || a.Col == nil {
		return nil, invalidParams("row and col are required")
	}
	_, r, err := s.load(imageArgs{Path: a.Path, Mode: a.Mode})
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(r, *a.Row, *a.Col)
}

// === Drawing Handlers ===

// shapeArgs describes one shape. Which fields apply depends on Type.
type shapeArgs struct {
	Type       string      `json:"type"`
	Color      string      `json:"color"`
	Row        *int        `json:"row"`
	Col        *int        `json:"col"`
	From       *draw.Coord `json:"from"`
	To         *draw.Coord `json:"to"`
	Origin     *draw.Coord `json:"origin"`
	Center     *draw.Coord `json:"center"`
	Height     int         `json:"height"`
	Width      int         `json:"width"`
	Centered   bool        `json:"centered"`
	HalfHeight int         `json:"half_height"`
	HalfWidth  int         `json:"half_width"`
	Style      string      `json:"style"`
	Radius     int         `json:"radius"`
}

type drawArgs struct {
	imageArgs
	shapeArgs
}

// drawResult is an annotated image plus what was drawn.
type drawResult struct {
	*imaging.RenderResult
	Drawn  *bool `json:"drawn,omitempty"`
	Shapes int   `json:"shapes,omitempty"`
}

func (sh shapeArgs) point() (draw.Coord, error) {
	if sh.Row == nil || sh.Col == nil {
		return draw.Coord{}, invalidParams("row and col are required")
	}
	return draw.Pt(*sh.Row, *sh.Col), nil
}

// drawShape draws sh into r with v.
func drawShape(r *draw.Raster[uint8], sh shapeArgs, v draw.Value[uint8]) error {
	switch sh.Type {
	case "point":
		c, err := sh.point()
		if err != nil {
			return err
		}
		return draw.Point(r, c, v)

	case "line":
		if sh.From == nil || sh.To == nil {
			return invalidParams("line needs from and to")
		}
		return draw.Line(r, *sh.From, *sh.To, v)

	case "box":
		if sh.Centered {
			if sh.Center == nil {
				return invalidParams("centered box needs center")
			}
			return draw.BoxAround(r, *sh.Center, sh.HalfHeight, sh.HalfWidth, v)
		}
		if sh.Origin == nil {
			return invalidParams("box needs origin (or centered with center)")
		}
		return draw.Box(r, *sh.Origin, sh.Height, sh.Width, v)

	case "cross":
		if sh.Center == nil {
			return invalidParams("cross needs center")
		}
		switch sh.Style {
		case "", "plus", "+":
			return draw.Cross(r, *sh.Center, sh.HalfHeight, sh.HalfWidth, v)
		case "x":
			return draw.CrossX(r, *sh.Center, sh.Radius, v)
		default:
			return invalidParams("unknown cross style: %q", sh.Style)
		}

	default:
		return invalidParams("unknown shape type: %q", sh.Type)
	}
}

func (s *Server) handleDrawShape(kind string, args json.RawMessage) (interface{}, error) {
	var a drawArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	a.Type = kind

	_, r, err := s.load(a.imageArgs)
	if err != nil {
		return nil, err
	}
	v, err := pixelValue(r, a.Color)
	if err != nil {
		return nil, err
	}
	if err := drawShape(r, a.shapeArgs, v); err != nil {
		return nil, err
	}

	result, err := s.render(r, a.imageArgs)
	if err != nil {
		return nil, err
	}
	return &drawResult{RenderResult: result, Shapes: 1}, nil
}

func (s *Server) handleDrawPoint(args json.RawMessage) (interface{}, error) {
	return s.handleDrawShape("point", args)
}

func (s *Server) handleDrawTryPoint(args json.RawMessage) (interface{}, error) {
	var a drawArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	c, err := a.point()
	if err != nil {
		return nil, err
	}

	_, r, err := s.load(a.imageArgs)
	if err != nil {
		return nil, err
	}
	v, err := pixelValue(r, a.Color)
	if err != nil {
		return nil, err
	}
	drawn, err := draw.TryPoint(r, c, v)
	if err != nil {
		return nil, err
	}

	result, err := s.render(r, a.imageArgs)
	if err != nil {
		return nil, err
	}
	return &drawResult{RenderResult: result, Drawn: &drawn}, nil
}

type drawShapesArgs struct {
	imageArgs
	Color  string      `json:"color"`
	Shapes []shapeArgs `json:"shapes"`
}

func (s *Server) handleDrawShapes(args json.RawMessage) (interface{}, error) {
	var a drawShapesArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Shapes) == 0 {
		return nil, invalidParams("shapes must not be empty")
	}

	_, r, err := s.load(a.imageArgs)
	if err != nil {
		return nil, err
	}

	for i, sh := range a.Shapes {
		if sh.Color == "" {
			sh.Color = a.Color
		}
		v, err := pixelValue(r, sh.Color)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		if err := drawShape(r, sh, v); err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
	}

	result, err := s.render(r, a.imageArgs)
	if err != nil {
		return nil, err
	}
	return &drawResult{RenderResult: result, Shapes: len(a.Shapes)}, nil
}

// === Overlay Handlers ===

type imageGridOverlayArgs struct {
	imageArgs
	GridSpacing     int    `json:"grid_spacing"`
	ShowCoordinates *bool  `json:"show_coordinates"`
	GridColor       string `json:"grid_color"`
}

func (s *Server) handleImageGridOverlay(args json.RawMessage) (interface{}, error) {
	var a imageGridOverlayArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.GridSpacing == 0 {
		a.GridSpacing = 50
	}
	if a.GridSpacing < 0 {
		return nil, invalidParams("grid_spacing must be positive, got %d", a.GridSpacing)
	}
	if a.GridColor == "" {
		a.GridColor = "#FF0000"
	}
	showCoordinates := a.ShowCoordinates == nil || *a.ShowCoordinates

	gridColor, err := imaging.ParseColor(a.GridColor)
	if err != nil {
		return nil, invalidParams("%v", err)
	}

	_, r, err := s.load(a.imageArgs)
	if err != nil {
		return nil, err
	}
	if err := imaging.GridOverlay(r, imaging.GridOptions{
		Spacing:         a.GridSpacing,
		ShowCoordinates: showCoordinates,
		Color:           gridColor,
	}); err != nil {
		return nil, err
	}
	return s.render(r, a.imageArgs)
}

// markerHalfSize is the half extent of the '+' drawn at region centers.
const markerHalfSize = 3

type annotateRegionsArgs struct {
	imageArgs
	Color          string `json:"color"`
	Threshold      int    `json:"threshold"`
	DarkForeground *bool  `json:"dark_foreground"`
	MinArea        *int   `json:"min_area"`
	MaxRegions     int    `json:"max_regions"`
	MarkCenters    *bool  `json:"mark_centers"`
}

type annotateRegionsResult struct {
	*imaging.RenderResult
	Regions   []detection.Region `json:"regions"`
	Count     int                `json:"count"`
	Threshold uint8              `json:"threshold"`
}

func (s *Server) handleAnnotateRegions(args json.RawMessage) (interface{}, error) {
	var a annotateRegionsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Threshold < 0 || a.Threshold > 255 {
		return nil, invalidParams("threshold must be between 0 and 255, got %d", a.Threshold)
	}
	opts := detection.RegionOptions{
		Threshold:      uint8(a.Threshold),
		DarkForeground: a.DarkForeground == nil || *a.DarkForeground,
		MinArea:        20,
		MaxRegions:     a.MaxRegions,
	}
	if a.MinArea != nil {
		opts.MinArea = *a.MinArea
	}
	markCenters := a.MarkCenters == nil || *a.MarkCenters

	img, r, err := s.load(a.imageArgs)
	if err != nil {
		return nil, err
	}
	v, err := pixelValue(r, a.Color)
	if err != nil {
		return nil, err
	}

	found, err := detection.DetectRegions(img, opts)
	if err != nil {
		return nil, invalidParams("%v", err)
	}
	for _, reg := range found.Regions {
		if err := draw.Box(r, reg.Origin, reg.Height, reg.Width, v); err != nil {
			return nil, err
		}
		if markCenters {
			if err := draw.Cross(r, reg.Center, markerHalfSize, markerHalfSize, v); err != nil {
				return nil, err
			}
		}
	}

	result, err := s.render(r, a.imageArgs)
	if err != nil {
		return nil, err
	}
	return &annotateRegionsResult{
		RenderResult: result,
		Regions:      found.Regions,
		Count:        found.Count,
		Threshold:    found.Threshold,
	}, nil
}

type annotateTextArgs struct {
	imageArgs
	Color         string   `json:"color"`
	Language      string   `json:"language"`
	MinConfidence *float64 `json:"min_confidence"`
}

type annotateTextResult struct {
	*imaging.RenderResult
	Words    []ocr.Word `json:"words"`
	Count    int        `json:"count"`
	Language string     `json:"language"`
}

func (s *Server) handleAnnotateText(args json.RawMessage) (interface{}, error) {
	var a annotateTextArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	opts := ocr.WordOptions{Language: a.Language, MinConfidence: 0.5}
	if a.MinConfidence != nil {
		opts.MinConfidence = *a.MinConfidence
	}
	if opts.MinConfidence < 0 || opts.MinConfidence > 1 {
		return nil, invalidParams("min_confidence must be between 0 and 1, got %g", opts.MinConfidence)
	}

	img, r, err := s.load(a.imageArgs)
	if err != nil {
		return nil, err
	}
	v, err := pixelValue(r, a.Color)
	if err != nil {
		return nil, err
	}

	found, err := ocr.DetectWords(img, opts)
	if err != nil {
		return nil, err
	}
	for _, w := range found.Words {
		if err := draw.Box(r, w.Origin, w.Height, w.Width, v); err != nil {
			return nil, err
		}
	}

	result, err := s.render(r, a.imageArgs)
	if err != nil {
		return nil, err
	}
	return &annotateTextResult{
		RenderResult: result,
		Words:        found.Words,
		Count:        found.Count,
		Language:     found.Language,
	}, nil
}
