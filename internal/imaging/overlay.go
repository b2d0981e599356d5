package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/marcopesani/design-tools/internal/quantize"
)

// minMarkerRadius matches the on-screen marker size of the palette viewer.
const minMarkerRadius = 10

var (
	ringColor     = color.RGBA{255, 255, 255, 255}
	selectedColor = color.RGBA{0, 0, 0, 255}
	labelFg       = color.RGBA{255, 255, 255, 255}
	labelBg       = color.RGBA{0, 0, 0, 180}
)

// OverlayResult contains the image with palette markers drawn on it.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type"`
	OutputPath  string `json:"output_path,omitempty"`
	Markers     int    `json:"markers"`
}

// MarkerOverlay draws every marker on a copy of img.
//
// Each marker is a disc filled with its palette color and outlined in white.
// The marker whose color equals selected gets a black outline and an extra
// white ring. The hex value is printed next to each disc. Disc size grows
// with the image so markers stay visible on large photos.
func MarkerOverlay(img image.Image, markers []quantize.Marker, selected string) (*image.RGBA, error) {
	result := clone.AsRGBA(img)
	bounds := result.Bounds()

	radius := max(minMarkerRadius, max(bounds.Dx(), bounds.Dy())/80)

	for i, m := range markers {
		fill, err := colorful.Hex(m.Color)
		if err != nil {
			return nil, fmt.Errorf("marker %d: invalid color %q: %w", i, m.Color, err)
		}
		r, g, b := fill.RGB255()

		cx, cy := bounds.Min.X+m.X, bounds.Min.Y+m.Y
		fillDisc(result, cx, cy, radius, color.RGBA{r, g, b, 255})

		if m.Color == selected {
			strokeRing(result, cx, cy, radius, 3, selectedColor)
			strokeRing(result, cx, cy, radius+5, 2, ringColor)
		} else {
			strokeRing(result, cx, cy, radius, 2, ringColor)
		}

		drawLabel(result, cx+radius+4, cy, m.Color)
	}

	return result, nil
}

// EncodeOverlay draws the markers and returns the result as a base64 PNG.
// When outputPath is set the PNG is written there instead.
func EncodeOverlay(img image.Image, markers []quantize.Marker, selected, outputPath string) (*OverlayResult, error) {
	drawn, err := MarkerOverlay(img, markers, selected)
	if err != nil {
		return nil, err
	}

	res := &OverlayResult{
		Width:    drawn.Bounds().Dx(),
		Height:   drawn.Bounds().Dy(),
		MimeType: "image/png",
		Markers:  len(markers),
	}

	encode := imgio.PNGEncoder()

	if outputPath != "" {
		if err := writeFile(outputPath, drawn, encode); err != nil {
			return nil, err
		}
		res.OutputPath = outputPath
		return res, nil
	}

	var buf bytes.Buffer
	if err := encode(&buf, drawn); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}
	res.ImageBase64 = base64.StdEncoding.EncodeToString(buf.Bytes())
	return res, nil
}

func writeFile(path string, img image.Image, encode imgio.Encoder) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create overlay file: %w", err)
	}
	if err := encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode overlay: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write overlay file: %w", err)
	}
	return nil
}

func fillDisc(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				setIfInside(img, cx+dx, cy+dy, c)
			}
		}
	}
}

// strokeRing paints the band between r and r+width around (cx, cy).
func strokeRing(img *image.RGBA, cx, cy, r, width int, c color.RGBA) {
	outer := r + width
	for dy := -outer; dy <= outer; dy++ {
		for dx := -outer; dx <= outer; dx++ {
			d := dx*dx + dy*dy
			if d > r*r && d <= outer*outer {
				setIfInside(img, cx+dx, cy+dy, c)
			}
		}
	}
}

func setIfInside(img *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}

// drawLabel prints text with its left edge at x, vertically centered on y.
func drawLabel(img *image.RGBA, x, y int, text string) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	height := face.Height

	box := image.Rect(x-2, y-height/2-2, x+width+2, y+height/2+2)
	for py := box.Min.Y; py < box.Max.Y; py++ {
		for px := box.Min.X; px < box.Max.X; px++ {
			if image.Pt(px, py).In(img.Bounds()) {
				blend(img, px, py, labelBg)
			}
		}
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelFg),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent/2),
	}
	d.DrawString(text)
}

// blend composites c over the pixel at (x, y).
func blend(img *image.RGBA, x, y int, c color.RGBA) {
	dst := img.RGBAAt(x, y)
	a := uint32(c.A)
	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a)) / 255)
	}
	img.SetRGBA(x, y, color.RGBA{mix(c.R, dst.R), mix(c.G, dst.G), mix(c.B, dst.B), dst.A})
}
