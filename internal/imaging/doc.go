// Package imaging loads source images for the palette tools and renders the
// palette back onto them.
//
// It covers three concerns:
//   - decoding and caching image files (PNG, JPEG, GIF, BMP, TIFF, WebP)
//   - sampling a single pixel, used to report the color under a base position
//   - drawing palette markers onto a copy of the image for preview
//
// # Coordinate System
//
// All pixel coordinates are 0-based offsets from the top-left corner of the
// image: X grows rightward, Y grows downward. This matches the marker
// coordinates produced by the quantize package.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The other functions never modify
// their input image and can run concurrently.
package imaging
