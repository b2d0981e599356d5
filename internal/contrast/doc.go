// Package contrast provides the display helpers that accompany a palette:
// WCAG contrast ratios, complementary and analogous colors, brightness and saturation
// adjustment, and a search for
// a readable text color against a palette swatch.
//
// All colors are exchanged as "#rrggbb" strings, the format produced by the
// quantize package. Parsing and color-space conversions use go-colorful.
package contrast
