package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// createTestImageFile creates a test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return writeTestPNG(t, img)
}

// createHalvesImageFile creates an image with a red left half and a white
// right half
func createHalvesImageFile(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.Set(x, y, color.RGBA{255, 0, 0, 255})
			} else {
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			}
		}
	}
	return writeTestPNG(t, img)
}

func writeTestPNG(t *testing.T, img image.Image) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "handler-test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// callTool sends a tools/call request and returns the response
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// toolResult decodes the JSON text payload of a successful tool call into v
func toolResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("unexpected content: %v", content)
	}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), v); err != nil {
		t.Fatalf("invalid result JSON: %v", err)
	}
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255})

	var info struct {
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Format string `json:"format"`
	}
	toolResult(t, callTool(t, s, "image_load", map[string]interface{}{"path": imgPath}), &info)

	if info.Width != 100 || info.Height != 80 || info.Format != "png" {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestHandleToolsCall_ImageDimensions(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 200, 150, color.RGBA{0, 255, 0, 255})

	var dims struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	toolResult(t, callTool(t, s, "image_dimensions", map[string]interface{}{"path": imgPath}), &dims)

	if dims.Width != 200 || dims.Height != 150 {
		t.Errorf("unexpected dimensions: %+v", dims)
	}
}

func TestHandleToolsCall_ImageSampleColor(t *testing.T) {
	s := New()
	imgPath := createHalvesImageFile(t, 20, 10)

	var res struct {
		Hex string `json:"hex"`
	}
	toolResult(t, callTool(t, s, "image_sample_color", map[string]interface{}{"path": imgPath, "x": 15, "y": 5}), &res)
	if res.Hex != "#ffffff" {
		t.Errorf("Hex: got %s, want #ffffff", res.Hex)
	}

	resp := callTool(t, s, "image_sample_color", map[string]interface{}{"path": imgPath, "x": 20, "y": 5})
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Errorf("out-of-bounds sample: got %+v, want tool error", resp.Error)
	}
}

type paletteResponse struct {
	Palette []string `json:"palette"`
	Markers []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Color string `json:"color"`
	} `json:"markers"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Iterations int       `json:"iterations"`
	MeanErrors []float64 `json:"mean_errors"`
	BaseColor  string    `json:"base_color"`
}

func TestHandleToolsCall_PaletteGenerate(t *testing.T) {
	s := New()
	imgPath := createHalvesImageFile(t, 40, 20)

	var res paletteResponse
	toolResult(t, callTool(t, s, "palette_generate", map[string]interface{}{
		"path":   imgPath,
		"base_x": 30,
		"base_y": 10,
		"seed":   7,
	}), &res)

	if len(res.Palette) != 2 {
		t.Fatalf("palette: got %v, want 2 colors", res.Palette)
	}
	if res.Palette[0] != "#ffffff" || res.Palette[1] != "#ff0000" {
		t.Errorf("palette: got %v, want [#ffffff #ff0000]", res.Palette)
	}
	if res.BaseColor != "#ffffff" {
		t.Errorf("base_color: got %s", res.BaseColor)
	}
	if len(res.Markers) != len(res.Palette) {
		t.Fatalf("markers: got %d, want %d", len(res.Markers), len(res.Palette))
	}
	if res.Markers[0].X != 30 || res.Markers[0].Y != 10 {
		t.Errorf("base marker: got (%d,%d), want (30,10)", res.Markers[0].X, res.Markers[0].Y)
	}
	if res.Width != 40 || res.Height != 20 {
		t.Errorf("size: got %dx%d", res.Width, res.Height)
	}
	if res.MeanErrors == nil {
		t.Error("mean_errors should be present")
	}
}

func TestHandleToolsCall_PaletteGenerate_ExplicitBaseColor(t *testing.T) {
	s := New()
	imgPath := createHalvesImageFile(t, 40, 20)

	var res paletteResponse
	toolResult(t, callTool(t, s, "palette_generate", map[string]interface{}{
		"path":       imgPath,
		"count":      1,
		"base_color": "#123456",
		"seed":       1,
		// Every pixel takes part so the lone centroid moves to the image mean
		"sampling_rate": 1.0,
	}), &res)

	if len(res.Palette) != 1 {
		t.Fatalf("palette: got %v, want 1 color", res.Palette)
	}
	if res.Palette[0] != "#ff8080" {
		t.Errorf("palette[0]: got %s, want #ff8080", res.Palette[0])
	}
}

func TestHandleToolsCall_PaletteGenerate_SameSeed(t *testing.T) {
	s := New()
	imgPath := createHalvesImageFile(t, 64, 64)
	args := map[string]interface{}{"path": imgPath, "count": 4, "seed": 99}

	var a, b paletteResponse
	toolResult(t, callTool(t, s, "palette_generate", args), &a)
	toolResult(t, callTool(t, s, "palette_generate", args), &b)

	if strings.Join(a.Palette, ",") != strings.Join(b.Palette, ",") || a.Iterations != b.Iterations {
		t.Errorf("same seed, different output: %+v vs %+v", a, b)
	}
}

func TestHandleToolsCall_PaletteGenerate_InvalidArgs(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 10, 10, color.White)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"negative count", map[string]interface{}{"path": imgPath, "count": -1}},
		{"zero count", map[string]interface{}{"path": imgPath, "count": 0}},
		{"zero max dimension", map[string]interface{}{"path": imgPath, "max_dimension": 0}},
		{"negative max dimension", map[string]interface{}{"path": imgPath, "max_dimension": -5}},
		{"zero sampling rate", map[string]interface{}{"path": imgPath, "sampling_rate": 0}},
		{"sampling rate above one", map[string]interface{}{"path": imgPath, "sampling_rate": 2}},
		{"bad base color", map[string]interface{}{"path": imgPath, "base_color": "blue"}},
		{"missing file", map[string]interface{}{"path": "/nonexistent/image.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, s, "palette_generate", tt.args)
			if resp.Error == nil {
				t.Fatal("expected error")
			}
			if resp.Error.Code != -32000 {
				t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
			}
		})
	}
}

func TestHandleToolsCall_PalettePreview(t *testing.T) {
	s := New()
	imgPath := createHalvesImageFile(t, 60, 30)

	var res struct {
		Width       int      `json:"width"`
		Height      int      `json:"height"`
		ImageBase64 string   `json:"image_base64"`
		MimeType    string   `json:"mime_type"`
		Markers     int      `json:"markers"`
		Palette     []string `json:"palette"`
	}
	toolResult(t, callTool(t, s, "palette_preview", map[string]interface{}{
		"path": imgPath,
		"seed": 3,
	}), &res)

	if res.Width != 60 || res.Height != 30 {
		t.Errorf("size: got %dx%d, want 60x30", res.Width, res.Height)
	}
	if res.ImageBase64 == "" || res.MimeType != "image/png" {
		t.Errorf("missing image data: %+v", res)
	}
	if res.Markers != len(res.Palette) || res.Markers == 0 {
		t.Errorf("markers: got %d for palette %v", res.Markers, res.Palette)
	}
}

func TestHandleToolsCall_PalettePreview_OutputPath(t *testing.T) {
	s := New()
	imgPath := createHalvesImageFile(t, 60, 30)
	out := filepath.Join(t.TempDir(), "preview.png")

	var res struct {
		OutputPath  string `json:"output_path"`
		ImageBase64 string `json:"image_base64"`
	}
	toolResult(t, callTool(t, s, "palette_preview", map[string]interface{}{
		"path":        imgPath,
		"output_path": out,
		"selected":    "#ff0000",
	}), &res)

	if res.OutputPath != out || res.ImageBase64 != "" {
		t.Errorf("unexpected result: %+v", res)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("preview not written: %v", err)
	}
}

func TestHandleToolsCall_ColorContrast(t *testing.T) {
	s := New()

	var res struct {
		Color         string   `json:"color"`
		Contrast      string   `json:"contrast_color"`
		Ratio         float64  `json:"ratio"`
		Complementary string   `json:"complementary"`
		AgainstRatio  *float64 `json:"against_ratio"`
		PassesAA      *bool    `json:"passes_aa"`
	}
	toolResult(t, callTool(t, s, "color_contrast", map[string]interface{}{
		"color":   "#ffffff",
		"against": "#000000",
	}), &res)

	if res.Contrast != "#000000" || res.Complementary != "#000000" {
		t.Errorf("unexpected contrast: %+v", res)
	}
	if res.AgainstRatio == nil || *res.AgainstRatio < 20.9 {
		t.Errorf("against_ratio: got %v, want 21", res.AgainstRatio)
	}
	if res.PassesAA == nil || !*res.PassesAA {
		t.Error("white on black should pass AA")
	}

	resp := callTool(t, s, "color_contrast", map[string]interface{}{"color": "white"})
	if resp.Error == nil {
		t.Error("expected error for non-hex color")
	}
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	resp := callTool(t, New(), "palette_export", map[string]interface{}{})
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Errorf("unknown tool: got %+v, want -32000", resp.Error)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New()
	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("got %+v, want -32602", resp.Error)
	}
}
