package render

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path"
	"path/filepath"
	"strings"

	"mini-rpg/internal/graphics"
	"mini-rpg/internal/profiling"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// decodeFile decodes an image file into straight alpha pixels
func decodeFile(path string) (*image.NRGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n, nil
	}
	b := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	return nrgba, nil
}

// normalMapPath returns foo_N.png for foo.png, foo.jpg and so on
func normalMapPath(p string) string {
	return strings.TrimSuffix(p, path.Ext(p)) + "_N.png"
}

// cacheKey normalizes a mod relative path so that equivalent spellings
// share one cache entry.
func cacheKey(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

func (d *OpenGLDevice) textureFilter() graphics.TextureFilter {
	if d.applied.TextureFilter {
		return graphics.FilterLinear
	}
	return graphics.FilterNearest
}

// newImage uploads pixels and registers the result as a live image.
func (d *OpenGLDevice) newImage(pixels *image.NRGBA) (*Image, error) {
	id, err := d.drv.CreateTexture(pixels, d.textureFilter())
	if err != nil {
		return nil, err
	}
	size := pixels.Rect.Size()
	img := &Image{
		dev:     d,
		refs:    1,
		w:       size.X,
		h:       size.Y,
		texture: someTexture(id),
		pixels:  pixels,
	}
	d.live[img] = struct{}{}
	return img, nil
}

// LoadImage returns the image at the mod relative path. Repeated loads of
// the same path share one image until it is freed as often as it was
// loaded. A matching foo_N.png is attached as the normal map when it has
// the same size as foo.png.
func (d *OpenGLDevice) LoadImage(name string) (*Image, error) {
	key := cacheKey(name)
	if img := d.cache.lookup(key); img != nil {
		img.refs++
		return img, nil
	}
	defer profiling.Track("render.LoadImage")()

	pixels, err := decodeFile(d.mods.Locate(key))
	if err != nil {
		d.lg.Errorf("Loading image %s failed: %v", key, err)
		return nil, err
	}
	img, err := d.newImage(pixels)
	if err != nil {
		d.lg.Errorf("Uploading image %s failed: %v", key, err)
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}

	if np := normalMapPath(key); np != key && d.mods.Exists(np) {
		d.loadNormalMap(img, np)
	}

	d.cache.store(key, img)
	return img, nil
}

func (d *OpenGLDevice) loadNormalMap(img *Image, name string) {
	pixels, err := decodeFile(d.mods.Locate(name))
	if err != nil {
		d.lg.Warnf("Loading normal map %s failed: %v", name, err)
		return
	}
	if sz := pixels.Rect.Size(); sz.X != img.w || sz.Y != img.h {
		d.lg.Info("normal map size mismatch, skipped", "path", name,
			"image", fmt.Sprintf("%dx%d", img.w, img.h), "normals", fmt.Sprintf("%dx%d", sz.X, sz.Y))
		return
	}
	id, err := d.drv.CreateTexture(pixels, d.textureFilter())
	if err != nil {
		d.lg.Warnf("Uploading normal map %s failed: %v", name, err)
		return
	}
	img.normals = someTexture(id)
	img.normalPixels = pixels
}

// CreateImage returns a transparent black w x h image, or nil if the size
// is invalid or the upload fails.
func (d *OpenGLDevice) CreateImage(w, h int) *Image {
	if w <= 0 || h <= 0 {
		d.lg.Warnf("CreateImage: invalid size %dx%d", w, h)
		return nil
	}
	img, err := d.newImage(image.NewNRGBA(image.Rect(0, 0, w, h)))
	if err != nil {
		d.lg.Errorf("CreateImage: %v", err)
		return nil
	}
	return img
}

// FreeImage drops one reference to img. The textures are deleted and the
// cache entry removed with the last one. A nil or already released image
// is ignored.
func (d *OpenGLDevice) FreeImage(img *Image) {
	if img == nil || img.refs <= 0 {
		return
	}
	img.refs--
	if img.refs > 0 {
		return
	}

	d.cache.remove(img)
	delete(d.live, img)
	if id, ok := img.texture.ID(); ok {
		d.drv.DeleteTexture(id)
	}
	if id, ok := img.normals.ID(); ok {
		d.drv.DeleteTexture(id)
	}
	img.texture, img.normals = Texture{}, Texture{}
	img.pixels, img.normalPixels = nil, nil
}
