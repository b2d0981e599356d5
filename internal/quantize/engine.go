package quantize

import (
	"errors"
	"fmt"
	"image"
	"math/rand"
	"time"
)

const (
	// DefaultK is the default number of palette colors.
	DefaultK = 5

	// DefaultSamplingRate is the fraction of pixels sampled per refinement
	// iteration.
	DefaultSamplingRate = 0.125

	// DefaultMaxDimension caps the longer side of the working image.
	DefaultMaxDimension = 800
)

// ErrInvalidArgument is returned (wrapped) by Generate for malformed options.
var ErrInvalidArgument = errors.New("invalid argument")

// Options configures a palette run.
type Options struct {
	// K is the number of palette colors to produce. Must be >= 1.
	// Default: 5.
	K int

	// BaseColor seeds the first palette entry. When nil, the color of the
	// working image under BasePosition is used rather than a fixed black, so
	// the first entry is the color the caller pointed at.
	BaseColor *Pixel

	// BasePosition is the source-image point the first palette entry is
	// anchored to. Default: (0,0).
	BasePosition image.Point

	// SamplingRate is the probability that a pixel takes part in a given
	// refinement iteration. Must be in (0,1]. Default: 0.125.
	SamplingRate float64

	// MaxDimension caps the longer side of the working image. Default: 800.
	MaxDimension int

	// MinBinPopulation is the pixel count a color bin needs before it can
	// seed a palette entry. Default: 10.
	MinBinPopulation int

	// MaxIterations bounds the refinement loop. Default: 20.
	MaxIterations int

	// Rand drives the pixel sampling. When nil a time-seeded generator is
	// created for the call.
	Rand *rand.Rand
}

// DefaultOptions returns the options used when the caller has no preference.
func DefaultOptions() Options {
	return Options{
		K:                DefaultK,
		SamplingRate:     DefaultSamplingRate,
		MaxDimension:     DefaultMaxDimension,
		MinBinPopulation: DefaultMinBinPopulation,
		MaxIterations:    DefaultMaxIterations,
	}
}

// Validate reports the first malformed option, wrapped in ErrInvalidArgument.
func (o Options) Validate() error {
	switch {
	case o.K < 1:
		return fmt.Errorf("%w: palette size must be >= 1, got %d", ErrInvalidArgument, o.K)
	case !(o.SamplingRate > 0 && o.SamplingRate <= 1):
		return fmt.Errorf("%w: sampling rate must be in (0,1], got %g", ErrInvalidArgument, o.SamplingRate)
	case o.MaxDimension < 1:
		return fmt.Errorf("%w: max dimension must be >= 1, got %d", ErrInvalidArgument, o.MaxDimension)
	case o.MinBinPopulation < 1:
		return fmt.Errorf("%w: min bin population must be >= 1, got %d", ErrInvalidArgument, o.MinBinPopulation)
	case o.MaxIterations < 1:
		return fmt.Errorf("%w: max iterations must be >= 1, got %d", ErrInvalidArgument, o.MaxIterations)
	}
	return nil
}

// Palette is the result of a palette run.
//
// Colors and Markers have the same length; Markers[i] anchors Colors[i].
// Colors[0] derives from the base color and Markers[0] sits at the base
// position.
type Palette struct {
	// Colors holds the palette as "#rrggbb" strings.
	Colors []string `json:"palette"`

	// Markers holds one source-image anchor per color.
	Markers []Marker `json:"markers"`

	// Width and Height are the source image dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Scale is the factor applied to the source image to get the working
	// image (1 when no downscaling happened).
	Scale float64 `json:"scale"`

	// Iterations is the number of refinement iterations started.
	Iterations int `json:"iterations"`

	// MeanErrors is the mean error of every adopted refinement iteration.
	MeanErrors []float64 `json:"mean_errors"`
}

func emptyPalette(width, height int) *Palette {
	return &Palette{
		Colors:     []string{},
		Markers:    []Marker{},
		Width:      width,
		Height:     height,
		Scale:      1,
		MeanErrors: []float64{},
	}
}

// Generate extracts a palette of up to opts.K colors from img.
//
// Parameters:
//   - img: The decoded source image. Alpha is ignored.
//   - opts: Run configuration; start from DefaultOptions().
//
// Returns:
//   - *Palette: The palette and its markers. Empty when img is nil or has no
//     pixels; shorter than K when the image has few populated color bins.
//   - error: Non-nil, wrapping ErrInvalidArgument, when opts is malformed.
//
// # Pipeline
//
//  1. The image is copied into a working buffer whose longer side is at most
//     opts.MaxDimension.
//  2. InitialCentroids picks the starting colors, base color first.
//  3. Refine improves them over random pixel samples.
//  4. LocateMarkers anchors every color to a source-image pixel.
//
// Generate holds no state between calls. Concurrent calls are safe as long as
// they do not share opts.Rand.
func Generate(img image.Image, opts Options) (*Palette, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if img == nil {
		return emptyPalette(0, 0), nil
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return emptyPalette(0, 0), nil
	}

	buf, scale := NewWorkingBuffer(img, opts.MaxDimension)
	if buf.Len() == 0 {
		return emptyPalette(width, height), nil
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	base := clampPoint(opts.BasePosition, width, height)
	baseColor := buf.At(toWorking(base.X, scale, buf.Width), toWorking(base.Y, scale, buf.Height))
	if opts.BaseColor != nil {
		baseColor = *opts.BaseColor
	}

	initial := InitialCentroids(buf, opts.K, baseColor, opts.MinBinPopulation)
	refined, stats := Refine(buf, initial, opts.SamplingRate, opts.MaxIterations, rng)
	markers := LocateMarkers(buf, refined, base, scale, width, height)

	colors := make([]string, len(refined))
	for i, c := range refined {
		colors[i] = c.Hex()
	}

	errs := stats.Errors
	if errs == nil {
		errs = []float64{}
	}

	return &Palette{
		Colors:     colors,
		Markers:    markers,
		Width:      width,
		Height:     height,
		Scale:      scale,
		Iterations: stats.Iterations,
		MeanErrors: errs,
	}, nil
}
