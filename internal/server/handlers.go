package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/austlee/png2svg/internal/outline"
	"github.com/austlee/png2svg/internal/raster"
	"github.com/austlee/png2svg/internal/render"
	"github.com/austlee/png2svg/internal/trace"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "trace_outline", "image_info").
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
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", statusMessage(err))
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_info":
		return s.handleImageInfo(args)
	case "trace_outline":
		return s.handleTraceOutline(args)
	case "trace_svg":
		return s.handleTraceSVG(args)
	case "edge_map":
		return s.handleEdgeMap(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// statusMessage maps each pipeline failure kind to one human-readable
// status string. Anything untyped passes through unchanged.
func statusMessage(err error) string {
	var invalid *raster.InvalidInputError
	var complexity *trace.ComplexityError
	var timeout *trace.TimeoutError
	var degenerate *trace.DegenerateContourError

	switch {
	case errors.As(err, &invalid):
		return fmt.Sprintf("The image could not be used: %s.", invalid.Reason)
	case errors.As(err, &complexity):
		return fmt.Sprintf("The image outline is too complex to trace (%s limit reached at %d).",
			complexity.Stage, complexity.Count)
	case errors.As(err, &timeout):
		return fmt.Sprintf("Tracing took too long and was stopped during the %s phase (%s).",
			timeout.Phase, timeout.Elapsed.Round(0))
	case errors.Is(err, trace.ErrNoContours):
		return "No traceable outline was found; the image may be fully transparent or fully opaque with no silhouette."
	case errors.As(err, &degenerate):
		return "The traced outline collapsed to fewer than 3 points and cannot form a shape."
	default:
		return err.Error()
	}
}

// === Image Information ===

type imageInfoArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return raster.LoadInfo(s.cache, a.Path)
}

// === Tracing ===

type traceArgs struct {
	Path         string  `json:"path"`
	TargetPoints int     `json:"target_points"`
	MaxDimension int     `json:"max_dimension"`
	SmoothRadius float64 `json:"smooth_radius"`
	EdgeOffset   float64 `json:"edge_offset"`
	DestScaleX   float64 `json:"dest_scale_x"`
	DestScaleY   float64 `json:"dest_scale_y"`
}

// applyDefaults fills unset (zero) arguments with the pipeline defaults.
// An EdgeOffset of 0 means "use the default"; pass a negative value to pull
// the outline inward instead.
func (a *traceArgs) applyDefaults() {
	if a.TargetPoints == 0 {
		a.TargetPoints = trace.DefaultTargetVertexCount
	}
	if a.MaxDimension == 0 {
		a.MaxDimension = raster.DefaultMaxDimension
	}
	if a.DestScaleX == 0 {
		a.DestScaleX = 1
	}
	if a.DestScaleY == 0 {
		a.DestScaleY = 1
	}
}

// runPipeline executes decode → prepare → trace → build for one image.
func (s *Server) runPipeline(a traceArgs) (*raster.Prepared, *trace.Result, *outline.Geometry, error) {
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, nil, err
	}

	prep, err := raster.Prepare(img, raster.PrepareOptions{
		MaxDimension: a.MaxDimension,
		SmoothRadius: a.SmoothRadius,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	opts := trace.DefaultOptions()
	opts.TargetVertexCount = a.TargetPoints

	result, err := trace.Extract(prep.Buffer, opts)
	if err != nil {
		return nil, nil, nil, err
	}

	tf := outline.DefaultTransform()
	tf.PixelScale = prep.Scale
	tf.DestScaleX = a.DestScaleX
	tf.DestScaleY = a.DestScaleY
	if a.EdgeOffset != 0 {
		tf.EdgeOffset = a.EdgeOffset
	}

	geo, err := outline.Build(result.Path, tf)
	if err != nil {
		return nil, nil, nil, err
	}

	return prep, result, geo, nil
}

// TraceOutlineResult is the trace_outline tool response: the geometry plus
// pipeline statistics for diagnostics.
type TraceOutlineResult struct {
	Geometry     *outline.Geometry `json:"geometry"`
	EdgePixels   int               `json:"edge_pixels"`
	ContourCount int               `json:"contour_count"`
	SourceWidth  int               `json:"source_width"`
	SourceHeight int               `json:"source_height"`
	Scale        float64           `json:"scale"`
}

func (s *Server) handleTraceOutline(args json.RawMessage) (interface{}, error) {
	var a traceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	a.applyDefaults()

	prep, result, geo, err := s.runPipeline(a)
	if err != nil {
		return nil, err
	}

	return &TraceOutlineResult{
		Geometry:     geo,
		EdgePixels:   result.EdgePixels,
		ContourCount: result.ContourCount,
		SourceWidth:  prep.SourceWidth,
		SourceHeight: prep.SourceHeight,
		Scale:        prep.Scale,
	}, nil
}

type traceSVGArgs struct {
	traceArgs
	StrokeColor string  `json:"stroke_color"`
	StrokeWidth float64 `json:"stroke_width"`
	FillColor   string  `json:"fill_color"`
	FillOpacity float64 `json:"fill_opacity"`
}

// TraceSVGResult is the trace_svg tool response.
type TraceSVGResult struct {
	SVG    string `json:"svg"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleTraceSVG(args json.RawMessage) (interface{}, error) {
	var a traceSVGArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	a.applyDefaults()

	prep, _, geo, err := s.runPipeline(a.traceArgs)
	if err != nil {
		return nil, err
	}

	style := render.DefaultStyle()
	if a.StrokeColor != "" {
		style.StrokeColor = a.StrokeColor
	}
	if a.StrokeWidth > 0 {
		style.StrokeWidth = a.StrokeWidth
	}
	if a.FillColor != "" {
		style.FillColor = a.FillColor
		if a.StrokeColor == "" {
			style.StrokeColor = "" // let Normalize derive it from the fill
		}
	}
	if a.FillOpacity > 0 {
		style.FillOpacity = a.FillOpacity
	}

	width := int(float64(prep.SourceWidth) * a.DestScaleX)
	height := int(float64(prep.SourceHeight) * a.DestScaleY)
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	var buf bytes.Buffer
	if err := render.WriteSVG(&buf, geo, width, height, style); err != nil {
		return nil, err
	}

	return &TraceSVGResult{
		SVG:    buf.String(),
		Width:  width,
		Height: height,
	}, nil
}

// === Debugging ===

type edgeMapArgs struct {
	Path         string  `json:"path"`
	MaxDimension int     `json:"max_dimension"`
	SmoothRadius float64 `json:"smooth_radius"`
}

// EdgeMapResult contains the detected boundary pixels rendered as a
// grayscale image encoded as base64 PNG: boundary pixels are white (255),
// everything else black.
type EdgeMapResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Count       int    `json:"count"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handleEdgeMap(args json.RawMessage) (interface{}, error) {
	var a edgeMapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MaxDimension == 0 {
		a.MaxDimension = raster.DefaultMaxDimension
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	prep, err := raster.Prepare(img, raster.PrepareOptions{
		MaxDimension: a.MaxDimension,
		SmoothRadius: a.SmoothRadius,
	})
	if err != nil {
		return nil, err
	}

	pixels, err := trace.DetectEdges(prep.Buffer, trace.DefaultOptions())
	if err != nil {
		return nil, err
	}

	out := image.NewGray(image.Rect(0, 0, prep.Buffer.Width(), prep.Buffer.Height()))
	for _, p := range pixels {
		out.SetGray(p.X, p.Y, color.Gray{Y: 255})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode edge map: %w", err)
	}

	return &EdgeMapResult{
		Width:       prep.Buffer.Width(),
		Height:      prep.Buffer.Height(),
		Count:       len(pixels),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
