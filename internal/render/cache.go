package render

// imageCache maps mod relative paths to loaded images. Entries only leave
// the cache through remove.
type imageCache struct {
	images map[string]*Image
}

func newImageCache() *imageCache {
	return &imageCache{images: make(map[string]*Image)}
}

func (c *imageCache) lookup(path string) *Image {
	return c.images[path]
}

func (c *imageCache) store(path string, img *Image) {
	img.path = path
	c.images[path] = img
}

func (c *imageCache) remove(img *Image) {
	if img == nil || img.path == "" {
		return
	}
	if c.images[img.path] == img {
		delete(c.images, img.path)
	}
}

func (c *imageCache) len() int { return len(c.images) }
