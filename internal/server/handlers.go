package server

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"math/rand"
	"time"

	"github.com/marcopesani/design-tools/internal/contrast"
	"github.com/marcopesani/design-tools/internal/imaging"
	"github.com/marcopesani/design-tools/internal/quantize"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "palette_generate").
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
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
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
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	case "palette_generate":
		return s.handlePaletteGenerate(args)
	case "palette_preview":
		return s.handlePalettePreview(args)
	case "color_contrast":
		return s.handleColorContrast(args)

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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

// === Palette Handlers ===

type paletteArgs struct {
	Path         string   `json:"path"`
	Count        *int     `json:"count"`
	BaseX        int      `json:"base_x"`
	BaseY        int      `json:"base_y"`
	BaseColor    string   `json:"base_color"`
	SamplingRate *float64 `json:"sampling_rate"`
	MaxDimension *int     `json:"max_dimension"`
	Seed         *int64   `json:"seed"`
}

// options turns tool arguments into engine options. Omitted arguments fall
// back to the defaults; explicit ones are passed through so Validate can
// reject them.
func (a paletteArgs) options(defaultMaxDimension int) (quantize.Options, error) {
	opts := quantize.DefaultOptions()
	opts.MaxDimension = defaultMaxDimension

	if a.Count != nil {
		opts.K = *a.Count
	}
	if a.SamplingRate != nil {
		opts.SamplingRate = *a.SamplingRate
	}
	if a.MaxDimension != nil {
		opts.MaxDimension = *a.MaxDimension
	}
	opts.BasePosition = image.Pt(a.BaseX, a.BaseY)

	if a.BaseColor != "" {
		c, err := contrast.ParseHex(a.BaseColor)
		if err != nil {
			return opts, fmt.Errorf("base_color: %w", err)
		}
		r, g, b := c.RGB255()
		opts.BaseColor = &quantize.Pixel{R: r, G: g, B: b}
	}

	seed := time.Now().UnixNano()
	if a.Seed != nil {
		seed = *a.Seed
	}
	opts.Rand = rand.New(rand.NewSource(seed))

	return opts, opts.Validate()
}

// paletteResult is the palette_generate response
type paletteResult struct {
	*quantize.Palette
	BaseColor string `json:"base_color"`
}

// runPalette loads the image named in a and runs the engine on it.
func (s *Server) runPalette(a paletteArgs) (image.Image, *quantize.Palette, error) {
	opts, err := a.options(s.cfg.MaxDimension)
	if err != nil {
		return nil, nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	p, err := quantize.Generate(img, opts)
	if err != nil {
		return nil, nil, err
	}
	if s.cfg.Debug {
		log.Printf("palette %s: k=%d colors=%d iterations=%d scale=%.3f in %v",
			a.Path, opts.K, len(p.Colors), p.Iterations, p.Scale, time.Since(start))
	}

	return img, p, nil
}

func (s *Server) handlePaletteGenerate(args json.RawMessage) (interface{}, error) {
	var a paletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, p, err := s.runPalette(a)
	if err != nil {
		return nil, err
	}

	res := &paletteResult{Palette: p}
	if len(p.Colors) > 0 {
		res.BaseColor = p.Colors[0]
	}
	return res, nil
}

type palettePreviewArgs struct {
	paletteArgs
	Selected   string `json:"selected"`
	OutputPath string `json:"output_path"`
}

// previewResult is the palette_preview response
type previewResult struct {
	*imaging.OverlayResult
	Palette []string `json:"palette"`
}

func (s *Server) handlePalettePreview(args json.RawMessage) (interface{}, error) {
	var a palettePreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, p, err := s.runPalette(a.paletteArgs)
	if err != nil {
		return nil, err
	}

	selected := a.Selected
	if selected == "" && len(p.Colors) > 0 {
		selected = p.Colors[0]
	}

	overlay, err := imaging.EncodeOverlay(img, p.Markers, selected, a.OutputPath)
	if err != nil {
		return nil, err
	}
	return &previewResult{OverlayResult: overlay, Palette: p.Colors}, nil
}

// === Contrast Handlers ===

type colorContrastArgs struct {
	Color   string `json:"color"`
	Against string `json:"against"`
}

type colorContrastResult struct {
	*contrast.Result
	Against      string   `json:"against,omitempty"`
	AgainstRatio *float64 `json:"against_ratio,omitempty"`
	PassesAA     *bool    `json:"passes_aa,omitempty"`
}

func (s *Server) handleColorContrast(args json.RawMessage) (interface{}, error) {
	var a colorContrastArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	res, err := contrast.ContrastColor(a.Color)
	if err != nil {
		return nil, err
	}
	out := &colorContrastResult{Result: res}

	if a.Against != "" {
		ratio, err := contrast.RatioHex(a.Color, a.Against)
		if err != nil {
			return nil, err
		}
		passes := ratio >= contrast.MinimumRatio
		out.Against = a.Against
		out.AgainstRatio = &ratio
		out.PassesAA = &passes
	}
	return out, nil
}
