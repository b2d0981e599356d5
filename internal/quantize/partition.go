package quantize

import "math"

const (
	// bandWidth is the width of one band along a channel; 256/16 gives 16
	// bands per channel and 4096 bins in total.
	bandWidth = 16
	binCount  = 4096

	// DefaultMinBinPopulation is the number of pixels a bin needs before it
	// can seed a palette color.
	DefaultMinBinPopulation = 10
)

// colorBin accumulates the pixels falling in one cube of the RGB grid.
type colorBin struct {
	sum   [3]int
	count int
}

func (b *colorBin) mean() Centroid {
	n := float64(b.count)
	return Centroid{
		math.Round(float64(b.sum[0]) / n),
		math.Round(float64(b.sum[1]) / n),
		math.Round(float64(b.sum[2]) / n),
	}
}

// binIndex maps a pixel to its cube: r_bin*256 + g_bin*16 + b_bin.
func binIndex(p Pixel) int {
	return int(p.R/bandWidth)*256 + int(p.G/bandWidth)*16 + int(p.B/bandWidth)
}

// binThreshold returns the population a bin needs to qualify. Images below
// 1000 pixels get a proportionally smaller threshold so that small inputs are
// not reduced to the base color alone.
func binThreshold(minPopulation, pixels int) int {
	scaled := (pixels + 99) / 100
	return max(1, min(minPopulation, scaled))
}

type binCandidate struct {
	mean   Centroid
	weight float64
}

// InitialCentroids picks up to k starting colors for the refinement loop.
//
// The base color is always the first entry. Each following entry is the mean
// of the remaining qualifying bin that maximizes
//
//	min distance to the chosen colors * sqrt(bin population)
//
// A bin whose mean coincides with an already chosen color adds nothing and is
// never picked. Selection stops after k colors or when no qualifying bins
// remain, so fewer than k colors are returned for images with few populated
// bins.
func InitialCentroids(buf *Buffer, k int, base Pixel, minPopulation int) []Centroid {
	bins := make([]colorBin, binCount)
	for _, p := range buf.Pix {
		b := &bins[binIndex(p)]
		b.sum[0] += int(p.R)
		b.sum[1] += int(p.G)
		b.sum[2] += int(p.B)
		b.count++
	}

	threshold := binThreshold(minPopulation, buf.Len())
	candidates := make([]binCandidate, 0, 64)
	for i := range bins {
		if bins[i].count >= threshold {
			candidates = append(candidates, binCandidate{
				mean:   bins[i].mean(),
				weight: math.Sqrt(float64(bins[i].count)),
			})
		}
	}

	chosen := make([]Centroid, 0, k)
	chosen = append(chosen, base.Centroid())

	for len(chosen) < k {
		bestScore := -1.0
		bestIdx := -1
		for i, cand := range candidates {
			_, d := nearest(cand.mean, chosen)
			if d == 0 {
				continue
			}
			if score := d * cand.weight; score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		chosen = append(chosen, candidates[bestIdx].mean)
		candidates = append(candidates[:bestIdx], candidates[bestIdx+1:]...)
	}

	return chosen
}
