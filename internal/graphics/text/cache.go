package text

import (
	"image"
	"image/color"

	lru "github.com/hashicorp/golang-lru/v2"
)

type surfaceKey struct {
	font    string
	size    float64
	text    string
	color   color.NRGBA
	blended bool
}

// SurfaceCache keeps recently rasterized strings so that labels drawn every
// frame are not rasterized again.
type SurfaceCache struct {
	lru *lru.Cache[surfaceKey, *image.NRGBA]
}

func NewSurfaceCache(size int) (*SurfaceCache, error) {
	c, err := lru.New[surfaceKey, *image.NRGBA](size)
	if err != nil {
		return nil, err
	}
	return &SurfaceCache{lru: c}, nil
}

// Rasterize returns the cached surface for the arguments, rasterizing on a
// miss. Callers must not modify the returned image.
func (c *SurfaceCache) Rasterize(s *Style, str string, col color.NRGBA, blended bool) (*image.NRGBA, error) {
	key := surfaceKey{font: s.name, size: s.size, text: str, color: col, blended: blended}
	if img, ok := c.lru.Get(key); ok {
		return img, nil
	}
	img, err := s.Rasterize(str, col, blended)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, img)
	return img, nil
}

func (c *SurfaceCache) Len() int { return c.lru.Len() }

func (c *SurfaceCache) Purge() { c.lru.Purge() }
