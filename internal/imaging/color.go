package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-359 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a sampled color in several representations.
type ColorResult struct {
	Hex   string   `json:"hex"`   // "#rrggbb", same format as palette entries
	RGB   RGBColor `json:"rgb"`   // 8-bit components
	Alpha uint8    `json:"alpha"` // 8-bit opacity, not part of Hex
	HSL   HSLColor `json:"hsl"`   // HSL representation
}

// SampleColor returns the color at (x, y).
//
// Coordinates are 0-based offsets from the top-left corner of the image,
// the same convention used for palette markers. Out-of-range coordinates are
// an error. The hex string is lowercase and ignores alpha, so a sample can be
// passed straight to the palette engine as its base color.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < 0 || x >= bounds.Dx() || y < 0 || y >= bounds.Dy() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, bounds.Dx(), bounds.Dy())
	}

	native := img.At(bounds.Min.X+x, bounds.Min.Y+y)
	_, _, _, a := native.RGBA()

	// MakeColor un-premultiplies; fully transparent pixels come back black.
	c, _ := colorful.MakeColor(native)
	r8, g8, b8 := c.Clamped().RGB255()

	return &ColorResult{
		Hex:   fmt.Sprintf("#%02x%02x%02x", r8, g8, b8),
		RGB:   RGBColor{R: r8, G: g8, B: b8},
		Alpha: uint8(a >> 8),
		HSL:   toHSL(c),
	}, nil
}

func toHSL(c colorful.Color) HSLColor {
	h, s, l := c.Clamped().Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSLColor{
		H: int(h) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}
