package render

import (
	"mini-rpg/internal/graphics"
	"mini-rpg/internal/graphics/text"
	"mini-rpg/internal/profiling"
)

// RenderText draws antialiased text with its top left corner at dest. The
// texture it uploads is deleted before returning.
func (d *OpenGLDevice) RenderText(style *text.Style, str string, c Color, dest Rect) error {
	if style == nil {
		return ErrNilImage
	}
	if d.viewport.ViewW == 0 {
		return ErrNotInitialized
	}
	defer profiling.Track("render.RenderText")()

	surface, err := d.text.Rasterize(style, str, c.nrgba(), true)
	if err != nil {
		if err == text.ErrEmptyText {
			return nil
		}
		d.lg.Errorf("RenderText: %v", err)
		return err
	}

	id, err := d.drv.CreateTexture(surface, graphics.FilterLinear)
	if err != nil {
		d.lg.Errorf("RenderText: %v", err)
		return err
	}
	defer d.drv.DeleteTexture(id)

	size := surface.Rect.Size()
	src := Rect{W: size.X, H: size.Y}
	offset, texel := quadOffsets(src, Rect{X: dest.X, Y: dest.Y, W: size.X, H: size.Y},
		size.X, size.Y, d.viewport.ViewW, d.viewport.ViewH)
	return d.drv.Compose(id, 0, offset, texel)
}

// RenderTextToImage rasterizes str into a new image owned by the caller.
// Blended text is antialiased; solid text has only opaque and transparent
// pixels. It returns nil for empty text or on failure.
func (d *OpenGLDevice) RenderTextToImage(style *text.Style, str string, c Color, blended bool) *Image {
	if style == nil {
		return nil
	}
	surface, err := style.Rasterize(str, c.nrgba(), blended)
	if err != nil {
		if err != text.ErrEmptyText {
			d.lg.Errorf("RenderTextToImage: %v", err)
		}
		return nil
	}
	img, err := d.newImage(surface)
	if err != nil {
		d.lg.Errorf("RenderTextToImage: %v", err)
		return nil
	}
	return img
}
