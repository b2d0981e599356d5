// Package server implements the MCP (Model Context Protocol) server for color
// palette tools.
//
// The server speaks JSON-RPC 2.0 over stdio:
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
//   - image_dimensions: Get width and height
//   - image_sample_color: Get color at pixel
//
// Palette:
//   - palette_generate: Extract a palette anchored at a base color
//   - palette_preview: Render the palette markers on the image
//
// Color Helpers:
//   - color_contrast: Contrast color, ratio and related hues
//
// Palette tools accept a seed. The same seed, image and arguments always give
// the same palette; without one every run samples differently.
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the process, so
// repeated palette runs on one image only decode it once.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.NewWithConfig(server.DefaultConfig())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
