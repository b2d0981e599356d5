package contrast

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// MinimumRatio is the WCAG AA contrast ratio for normal text.
const MinimumRatio = 4.5

const (
	analogousAngle = 30
	brightnessStep = 10
	// maxBrightnessSteps is enough to walk a channel across its full range.
	maxBrightnessSteps = 26
)

// ParseHex parses a "#rrggbb" color.
func ParseHex(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return c, nil
}

// Luminance returns the WCAG relative luminance of c, in [0,1].
func Luminance(c colorful.Color) float64 {
	r, g, b := c.Clamped().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// Ratio returns the WCAG contrast ratio between two colors, in [1,21].
func Ratio(a, b colorful.Color) float64 {
	la, lb := Luminance(a), Luminance(b)
	return (math.Max(la, lb) + 0.05) / (math.Min(la, lb) + 0.05)
}

// Complementary inverts every channel.
func Complementary(c colorful.Color) colorful.Color {
	r, g, b := c.RGB255()
	return rgb255(255-int(r), 255-int(g), 255-int(b))
}

// Analogous rotates the hue of c by degrees, keeping saturation and lightness.
// The result is rounded to 8 bits per channel.
func Analogous(c colorful.Color, degrees float64) colorful.Color {
	h, s, l := c.Hsl()
	h = math.Mod(h+degrees, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return rgb255(int(r), int(g), int(b))
}

// AdjustBrightness adds amount to every channel, clamping to [0,255].
func AdjustBrightness(c colorful.Color, amount int) colorful.Color {
	r, g, b := c.RGB255()
	return rgb255(int(r)+amount, int(g)+amount, int(b)+amount)
}

// AdjustSaturation scales the distance of every channel from the pixel's gray
// level by 1+amount/100. -100 yields the gray itself; positive amounts push
// the channels apart, clamping to [0,255].
func AdjustSaturation(c colorful.Color, amount float64) colorful.Color {
	r, g, b := c.R*255, c.G*255, c.B*255
	gray := 0.2989*r + 0.5870*g + 0.1140*b
	factor := 1 + amount/100

	channel := func(v float64) float64 {
		return math.Min(255, math.Max(0, gray+(v-gray)*factor)) / 255
	}
	return colorful.Color{R: channel(r), G: channel(g), B: channel(b)}
}

func rgb255(r, g, b int) colorful.Color {
	clamp := func(v int) float64 {
		return float64(min(255, max(0, v))) / 255
	}
	return colorful.Color{R: clamp(r), G: clamp(g), B: clamp(b)}
}

// Result describes the text color picked for a background color.
type Result struct {
	Color         string  `json:"color"`
	Contrast      string  `json:"contrast_color"`
	Ratio         float64 `json:"ratio"`
	Complementary string  `json:"complementary"`
	AnalogousCW   string  `json:"analogous_cw"`
	AnalogousCCW  string  `json:"analogous_ccw"`
}

// ContrastColor picks a color that reads well on top of hex.
//
// The complementary color is tried first. Below MinimumRatio the analogous
// colors at +/-30 degrees are considered, and if none of them is enough the
// best candidate is pushed away from the background's luminance in steps of
// 10 per channel. When the walk runs out, black or white is returned,
// whichever contrasts more.
func ContrastColor(hex string) (*Result, error) {
	base, err := ParseHex(hex)
	if err != nil {
		return nil, err
	}

	comp := Complementary(base)
	cw := Analogous(base, analogousAngle)
	ccw := Analogous(base, -analogousAngle)

	best := comp
	bestRatio := Ratio(base, comp)
	if bestRatio < MinimumRatio {
		if r := Ratio(base, cw); r > bestRatio {
			best, bestRatio = cw, r
		}
		if r := Ratio(base, ccw); r > bestRatio {
			best, bestRatio = ccw, r
		}
	}

	step := brightnessStep
	if Luminance(best) <= Luminance(base) {
		step = -brightnessStep
	}
	for i := 0; bestRatio < MinimumRatio && i < maxBrightnessSteps; i++ {
		best = AdjustBrightness(best, step)
		bestRatio = Ratio(base, best)
	}

	if bestRatio < MinimumRatio {
		black := colorful.Color{}
		white := colorful.Color{R: 1, G: 1, B: 1}
		best = black
		if Ratio(base, white) > Ratio(base, black) {
			best = white
		}
		bestRatio = Ratio(base, best)
	}

	return &Result{
		Color:         base.Hex(),
		Contrast:      best.Hex(),
		Ratio:         bestRatio,
		Complementary: comp.Hex(),
		AnalogousCW:   cw.Hex(),
		AnalogousCCW:  ccw.Hex(),
	}, nil
}

// RatioHex is Ratio for two "#rrggbb" strings.
func RatioHex(a, b string) (float64, error) {
	ca, err := ParseHex(a)
	if err != nil {
		return 0, err
	}
	cb, err := ParseHex(b)
	if err != nil {
		return 0, err
	}
	return Ratio(ca, cb), nil
}
