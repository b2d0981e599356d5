package quantize

import (
	"image"
	"math"
)

// Marker anchors a palette color to a pixel of the source image.
type Marker struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Color string `json:"color"`
}

// LocateMarkers finds one marker per centroid.
//
// The first centroid belongs to the base color and is placed at base, clamped
// into the width x height source image. Every other centroid is placed on the
// first pixel of buf, in row-major order, with the smallest distance to it.
// Working coordinates are divided by scale to get back to the source image.
func LocateMarkers(buf *Buffer, centroids []Centroid, base image.Point, scale float64, width, height int) []Marker {
	markers := make([]Marker, 0, len(centroids))
	for i, c := range centroids {
		if i == 0 {
			p := clampPoint(base, width, height)
			markers = append(markers, Marker{X: p.X, Y: p.Y, Color: c.Hex()})
			continue
		}

		bestDist := math.Inf(1)
		bx, by := 0, 0
		for y := 0; y < buf.Height; y++ {
			for x := 0; x < buf.Width; x++ {
				if d := Distance(buf.At(x, y).Centroid(), c); d < bestDist {
					bestDist = d
					bx, by = x, y
				}
			}
		}

		markers = append(markers, Marker{
			X:     toSource(bx, scale, width),
			Y:     toSource(by, scale, height),
			Color: c.Hex(),
		})
	}
	return markers
}

// toSource maps a working-buffer coordinate back to the source image.
func toSource(v int, scale float64, limit int) int {
	return clampInt(int(float64(v)/scale), limit)
}

// toWorking maps a source coordinate into the working buffer.
func toWorking(v int, scale float64, limit int) int {
	return clampInt(int(float64(v)*scale), limit)
}

func clampPoint(p image.Point, width, height int) image.Point {
	return image.Pt(clampInt(p.X, width), clampInt(p.Y, height))
}

// clampInt limits v to [0, limit).
func clampInt(v, limit int) int {
	if v >= limit {
		v = limit - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}
