package quantize

import (
	"math"
	"math/rand"
)

// DefaultMaxIterations bounds the refinement loop.
const DefaultMaxIterations = 20

// RefineStats records how a refinement run went.
type RefineStats struct {
	// Iterations is the number of iterations started, including the one that
	// triggered the stop.
	Iterations int

	// Errors holds the mean error of every adopted iteration, in order. The
	// values are strictly decreasing.
	Errors []float64
}

// Refine runs the sampled K-means loop over buf starting from initial.
//
// Each iteration keeps every pixel with probability rate, assigns the kept
// pixels to their nearest centroid and computes the mean distance between
// pixels and centroids (the iteration's mean error). The centroids are then
// moved to the rounded mean of their assigned pixels; a centroid with no
// pixels stays put.
//
// The update is adopted only when the mean error is strictly lower than the
// previous one. The loop stops on the first non-improving iteration (whose
// update is discarded), on an iteration whose sample is empty, or after
// maxIterations. The returned slice is a new slice of len(initial).
func Refine(buf *Buffer, initial []Centroid, rate float64, maxIterations int, rng *rand.Rand) ([]Centroid, RefineStats) {
	centroids := make([]Centroid, len(initial))
	copy(centroids, initial)

	var stats RefineStats
	if len(centroids) == 0 {
		return centroids, stats
	}

	sums := make([]Centroid, len(centroids))
	counts := make([]int, len(centroids))
	prevErr := math.Inf(1)

	for iter := 0; iter < maxIterations; iter++ {
		stats.Iterations++

		for i := range sums {
			sums[i] = Centroid{}
			counts[i] = 0
		}

		var total float64
		sampled := 0
		for _, p := range buf.Pix {
			if rng.Float64() >= rate {
				continue
			}
			c := p.Centroid()
			idx, d := nearest(c, centroids)
			sums[idx][0] += c[0]
			sums[idx][1] += c[1]
			sums[idx][2] += c[2]
			counts[idx]++
			total += d
			sampled++
		}

		if sampled == 0 {
			break
		}

		meanErr := total / float64(sampled)
		if meanErr >= prevErr {
			break
		}

		for i := range centroids {
			if counts[i] == 0 {
				continue
			}
			n := float64(counts[i])
			centroids[i] = Centroid{sums[i][0] / n, sums[i][1] / n, sums[i][2] / n}.Clamped()
		}
		prevErr = meanErr
		stats.Errors = append(stats.Errors, meanErr)
	}

	return centroids, stats
}
