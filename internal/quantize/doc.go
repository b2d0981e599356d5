// Package quantize extracts a small palette of representative colors from an
// image and anchors each palette color to a concrete pixel.
//
// The engine runs in three stages over a downscaled working copy of the image:
//
//  1. Partitioning: every pixel is binned into a 16x16x16 grid over RGB space.
//     Starting from a caller-supplied base color, bins are picked greedily by
//     distance to the colors already chosen, weighted by the square root of
//     the bin population.
//  2. Refinement: a K-means variant assigns a random Bernoulli sample of the
//     pixels to the nearest centroid each iteration and recomputes the
//     centroids. The loop stops at the first iteration whose mean error does
//     not strictly improve, on an empty sample, or after MaxIterations.
//  3. Marker location: every palette entry except the first is mapped to the
//     nearest pixel of the working image. The first entry keeps the base
//     position.
//
// # Color Space
//
// All distances are Euclidean in raw 8-bit RGB. No perceptual color space is
// involved.
//
// # Coordinates
//
// Marker coordinates and the base position are 0-based offsets from the
// top-left corner of the source image, at the source resolution.
//
// # Randomness
//
// The only random input is the sampling in the refinement loop. Pass a seeded
// *rand.Rand through Options.Rand for reproducible output. A *rand.Rand is not
// safe for concurrent use, so concurrent Generate calls need their own.
package quantize
