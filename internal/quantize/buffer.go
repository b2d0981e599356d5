package quantize

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Buffer is a row-major RGB pixel buffer holding the working copy of an image.
type Buffer struct {
	Width  int
	Height int
	Pix    []Pixel
}

// Len returns the number of pixels in the buffer.
func (b *Buffer) Len() int {
	return len(b.Pix)
}

// At returns the pixel at (x, y). The coordinates must be inside the buffer.
func (b *Buffer) At(x, y int) Pixel {
	return b.Pix[y*b.Width+x]
}

// NewWorkingBuffer copies img into a pixel buffer whose longer side does not
// exceed maxDimension.
//
// Returns the buffer and the factor applied to the source dimensions (1 when
// the image already fits). Images larger than the cap are resampled with a
// bilinear filter; smaller images are copied unchanged. A zero-size image
// yields an empty buffer and a scale of 1.
func NewWorkingBuffer(img image.Image, maxDimension int) (*Buffer, float64) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return &Buffer{}, 1
	}

	scale := 1.0
	if longest := max(w, h); maxDimension > 0 && longest > maxDimension {
		scale = float64(maxDimension) / float64(longest)
	}

	var working *image.NRGBA
	if scale < 1 {
		sw := max(1, int(math.Round(float64(w)*scale)))
		sh := max(1, int(math.Round(float64(h)*scale)))
		working = imaging.Resize(img, sw, sh, imaging.Linear)
	} else {
		working = imaging.Clone(img)
	}

	return bufferFromNRGBA(working), scale
}

func bufferFromNRGBA(img *image.NRGBA) *Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	buf := &Buffer{Width: w, Height: h, Pix: make([]Pixel, 0, w*h)}
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			buf.Pix = append(buf.Pix, Pixel{R: row[x], G: row[x+1], B: row[x+2]})
		}
	}
	return buf
}
