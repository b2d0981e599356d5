package quantize

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Pixel is an 8-bit RGB sample. Alpha is discarded when the working buffer is
// built.
type Pixel struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Centroid returns the pixel as a centroid vector.
func (p Pixel) Centroid() Centroid {
	return Centroid{float64(p.R), float64(p.G), float64(p.B)}
}

// Centroid is the current mean color of a cluster, one float per channel.
type Centroid [3]float64

// Clamped rounds each channel and limits it to [0,255].
func (c Centroid) Clamped() Centroid {
	var out Centroid
	for i, v := range c {
		out[i] = math.Min(255, math.Max(0, math.Round(v)))
	}
	return out
}

// Hex renders the centroid as a lowercase "#rrggbb" string.
func (c Centroid) Hex() string {
	c = c.Clamped()
	return colorful.Color{R: c[0] / 255, G: c[1] / 255, B: c[2] / 255}.Hex()
}

// Distance is the Euclidean distance between two colors in RGB space.
func Distance(a, b Centroid) float64 {
	dr := a[0] - b[0]
	dg := a[1] - b[1]
	db := a[2] - b[2]
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// nearest returns the index of the centroid closest to c and its distance.
// Ties go to the lowest index.
func nearest(c Centroid, centroids []Centroid) (int, float64) {
	best := -1
	bestDist := math.Inf(1)
	for i, cand := range centroids {
		if d := Distance(c, cand); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, bestDist
}
