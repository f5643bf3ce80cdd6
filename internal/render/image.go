package render

import (
	"fmt"
	"image"

	"mini-rpg/internal/graphics"
)

// Image is a texture and an optional normal map of the same size. Images
// returned by LoadImage are shared through the cache and reference
// counted; images from CreateImage and RenderTextToImage have a single
// owner. Either way they are released with FreeImage.
type Image struct {
	dev  *OpenGLDevice
	path string // cache key, empty when not cached
	refs int

	w, h    int
	texture Texture
	normals Texture

	// CPU copies, uploaded again when a context switch loses the textures
	pixels       *image.NRGBA
	normalPixels *image.NRGBA
}

func (i *Image) Width() int {
	if i == nil {
		return 0
	}
	return i.w
}

func (i *Image) Height() int {
	if i == nil {
		return 0
	}
	return i.h
}

// Texture returns the color texture handle
func (i *Image) Texture() Texture { return i.texture }

// NormalMap returns the normal map handle, unset when the image has none
func (i *Image) NormalMap() Texture { return i.normals }

// FillWithColor sets every pixel to c. It is a no-op on an image whose
// texture is not uploaded.
func (i *Image) FillWithColor(c Color) error {
	if i == nil || !i.texture.Valid() {
		return nil
	}
	px := i.pixels.Pix
	for p := 0; p < len(px); p += 4 {
		px[p], px[p+1], px[p+2], px[p+3] = c.R, c.G, c.B, c.A
	}
	if err := i.dev.drv.UpdateTexture(i.texture.handle(), i.pixels); err != nil {
		i.dev.lg.Errorf("FillWithColor: %v", err)
		return err
	}
	return nil
}

// DrawPixel sets the pixel at (x, y), origin top left.
func (i *Image) DrawPixel(x, y int, c Color) error {
	if i == nil || !i.texture.Valid() {
		return nil
	}
	if x < 0 || y < 0 || x >= i.w || y >= i.h {
		return fmt.Errorf("pixel %d,%d outside %dx%d image", x, y, i.w, i.h)
	}
	drv := i.dev.drv
	if err := drv.BeginTarget(i.texture.handle(), i.w, i.h); err != nil {
		i.dev.lg.Errorf("DrawPixel: %v", err)
		return err
	}
	defer drv.EndTarget()

	// Texture rows run top down in clip space, no flip.
	nx := 2*(float32(x)+0.5)/float32(i.w) - 1
	ny := 2*(float32(y)+0.5)/float32(i.h) - 1
	if err := drv.DrawPrimitive(graphics.PrimitivePixel, []float32{nx, ny}, c.vec4()); err != nil {
		i.dev.lg.Errorf("DrawPixel: %v", err)
		return err
	}

	// The CPU copy only follows a successful GPU write.
	i.pixels.SetNRGBA(x, y, c.nrgba())
	return nil
}

// Resize returns the image to draw at the given size. Scaling happens at
// draw time, so it is the image itself, or nil when the image is not
// uploaded or the size is invalid.
func (i *Image) Resize(w, h int) *Image {
	if i == nil || !i.texture.Valid() || w <= 0 || h <= 0 {
		return nil
	}
	return i
}

// CreateSprite returns a sprite showing the whole image.
func (i *Image) CreateSprite() *Sprite {
	return NewSprite(i)
}
