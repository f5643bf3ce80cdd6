package render

import (
	"mini-rpg/internal/graphics"
	"mini-rpg/internal/profiling"
)

// Render draws the sprite. Sprites entirely outside their local frame or
// the view are skipped without error, but an image without a texture is
// always ErrNoTexture.
func (d *OpenGLDevice) Render(s *Sprite) error {
	if s == nil || s.image == nil {
		return ErrNilImage
	}
	if !s.image.texture.Valid() {
		return ErrNoTexture
	}
	defer profiling.Track("render.Render")()

	frame := s.LocalFrame
	if frame.Empty() {
		frame = Rect{W: d.viewport.ViewW, H: d.viewport.ViewH}
	}
	pos := Point{X: s.Dest.X - s.Offset.X, Y: s.Dest.Y - s.Offset.Y}

	src, dest, ok := clipToFrame(s.Clip, pos, frame)
	if !ok {
		return nil
	}
	return d.compose(s.image, src, dest)
}

// RenderRenderable draws r.Src of r.Image with its top left corner at dest.
func (d *OpenGLDevice) RenderRenderable(r Renderable, dest Rect) error {
	if r.Image == nil {
		return ErrNilImage
	}
	if !r.Image.texture.Valid() {
		return ErrNoTexture
	}
	src, dst, ok := clipToFrame(r.Src, Point{X: dest.X, Y: dest.Y}, Rect{W: d.viewport.ViewW, H: d.viewport.ViewH})
	if !ok {
		return nil
	}
	return d.compose(r.Image, src, dst)
}

func (d *OpenGLDevice) compose(img *Image, src, dest Rect) error {
	tex, ok := img.texture.ID()
	if !ok {
		return ErrNoTexture
	}
	if d.viewport.ViewW == 0 {
		return ErrNotInitialized
	}
	offset, texel := quadOffsets(src, dest, img.w, img.h, d.viewport.ViewW, d.viewport.ViewH)
	if err := d.drv.Compose(tex, img.normals.handle(), offset, texel); err != nil {
		d.lg.Errorf("render: %v", err)
		return err
	}
	return nil
}

// RenderToImage draws srcRect of src onto dst with its top left corner at
// (dest.X, dest.Y), clipped to dst.
func (d *OpenGLDevice) RenderToImage(src *Image, srcRect Rect, dst *Image, dest Rect) error {
	if src == nil || dst == nil {
		return ErrNilImage
	}
	srcTex, ok := src.texture.ID()
	if !ok {
		return ErrNoTexture
	}
	dstTex, ok := dst.texture.ID()
	if !ok {
		return ErrNoTexture
	}
	defer profiling.Track("render.RenderToImage")()

	s, dr, ok := clipToFrame(srcRect, Point{X: dest.X, Y: dest.Y}, Rect{W: dst.w, H: dst.h})
	if !ok {
		return nil
	}

	if err := d.drv.BeginTarget(dstTex, dst.w, dst.h); err != nil {
		d.lg.Errorf("RenderToImage: %v", err)
		return err
	}
	defer d.drv.EndTarget()

	offset, texel := quadOffsets(s, dr, src.w, src.h, dst.w, dst.h)
	if err := d.drv.Compose(srcTex, 0, flipTarget(offset), texel); err != nil {
		d.lg.Errorf("RenderToImage: %v", err)
		return err
	}
	return nil
}

func (d *OpenGLDevice) drawPrimitive(p graphics.Primitive, c Color, pts ...Point) error {
	vw, vh := d.viewport.ViewW, d.viewport.ViewH
	if vw == 0 || vh == 0 {
		return ErrNotInitialized
	}
	coords := make([]float32, 0, 2*len(pts))
	for _, pt := range pts {
		x, y := pixelToNDC(pt.X, pt.Y, vw, vh)
		coords = append(coords, x, y)
	}
	if err := d.drv.DrawPrimitive(p, coords, c.vec4()); err != nil {
		d.lg.Errorf("draw primitive: %v", err)
		return err
	}
	return nil
}

func (d *OpenGLDevice) DrawPixel(x, y int, c Color) error {
	return d.drawPrimitive(graphics.PrimitivePixel, c, Point{X: x, Y: y})
}

func (d *OpenGLDevice) DrawLine(x0, y0, x1, y1 int, c Color) error {
	return d.drawPrimitive(graphics.PrimitiveLine, c, Point{X: x0, Y: y0}, Point{X: x1, Y: y1})
}

// DrawRectangle outlines the rectangle with opposite corners p0 and p1.
func (d *OpenGLDevice) DrawRectangle(p0, p1 Point, c Color) error {
	return d.drawPrimitive(graphics.PrimitiveRect, c,
		p0,
		Point{X: p1.X, Y: p0.Y},
		p1,
		Point{X: p0.X, Y: p1.Y})
}

func (d *OpenGLDevice) BlankScreen() {
	d.drv.Clear()
}

// CommitFrame presents the frame.
func (d *OpenGLDevice) CommitFrame() {
	d.drv.Flush()
	d.win.Swap()
}
