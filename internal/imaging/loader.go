package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ImageCache keeps decoded images keyed by file path so repeated palette runs
// on the same file skip disk I/O and decoding.
//
// ImageCache is safe for concurrent use. Entries live until Evict or Clear.
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/photo.jpg")
type ImageCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	img    image.Image
	format string
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		entries: make(map[string]cacheEntry),
	}
}

// Load returns the decoded image at path, reading it from disk on first use.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. The path string is
// the cache key as given; two spellings of the same file are cached twice.
func (c *ImageCache) Load(path string) (image.Image, error) {
	e, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return e.img, nil
}

func (c *ImageCache) load(path string) (cacheEntry, error) {
	c.mu.RLock()
	e, ok := c.entries[path]
	c.mu.RUnlock()
	if ok {
		return e, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cacheEntry{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := Decode(f)
	if err != nil {
		return cacheEntry{}, err
	}

	e = cacheEntry{img: img, format: format}
	c.mu.Lock()
	c.entries[path] = e
	c.mu.Unlock()

	return e, nil
}

// Evict drops path from the cache. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// Clear drops every cached image.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Decode reads an image in any registered format and reports the format name.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// ImageInfo describes a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the name of the decoder that read the file ("png", "jpeg",
	// "gif", "bmp", "tiff" or "webp").
	Format string `json:"format"`

	// HasAlpha reports whether the decoded color model carries alpha.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads path through cache and describes it.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	e, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := false
	switch e.img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
	}

	bounds := e.img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        e.format,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions loads path through cache and returns its size.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
