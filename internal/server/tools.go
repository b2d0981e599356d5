package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

// paletteProperties are shared by palette_generate and palette_preview
func paletteProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty,
		"count": map[string]interface{}{
			"type":        "integer",
			"description": "Number of palette colors (default 5)",
			"default":     5,
			"minimum":     1,
		},
		"base_x": map[string]interface{}{
			"type":        "integer",
			"description": "X coordinate of the base point, the first palette entry is anchored here (default 0)",
		},
		"base_y": map[string]interface{}{
			"type":        "integer",
			"description": "Y coordinate of the base point (default 0)",
		},
		"base_color": map[string]interface{}{
			"type":        "string",
			"description": "Optional base color as #rrggbb. Defaults to the color under the base point",
		},
		"sampling_rate": map[string]interface{}{
			"type":        "number",
			"description": "Fraction of pixels sampled per refinement iteration, in (0,1] (default 0.125)",
			"default":     0.125,
		},
		"max_dimension": map[string]interface{}{
			"type":        "integer",
			"description": "Longest side of the working image in pixels (default 800)",
		},
		"seed": map[string]interface{}{
			"type":        "integer",
			"description": "Optional random seed; the same seed and inputs give the same palette",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	previewProps := paletteProperties()
	previewProps["selected"] = map[string]interface{}{
		"type":        "string",
		"description": "Palette color (#rrggbb) to highlight. Defaults to the first entry",
	}
	previewProps["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional file path to write the PNG to instead of returning base64",
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{"path": pathProperty},
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{"path": pathProperty},
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Palette Operations
		{
			Name:        "palette_generate",
			Description: "Extract a palette of representative colors from an image. The first color derives from the base point; every color comes with a marker pointing at a pixel of that color.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": paletteProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "palette_preview",
			Description: "Generate a palette and return the image with its markers drawn on it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": previewProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "color_contrast",
			Description: "Find a readable text color for a background color (WCAG ratio >= 4.5), with its complementary and analogous colors. Optionally report the contrast ratio against a second color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Background color as #rrggbb",
					},
					"against": map[string]interface{}{
						"type":        "string",
						"description": "Optional second color as #rrggbb",
					},
				},
				"required": []string{"color"},
			},
		},
	}
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
