package render

// Sprite is a view onto part of an Image. It does not own the image.
type Sprite struct {
	image *Image

	// Clip is the source rectangle in image pixels.
	Clip Rect
	// Dest is where the sprite is drawn, in view pixels, before Offset is
	// subtracted.
	Dest   Point
	Offset Point
	// LocalFrame, when non empty, is a rectangle in view pixels the sprite
	// is positioned in and clipped to. Dest is then relative to it.
	LocalFrame Rect
}

func NewSprite(img *Image) *Sprite {
	return &Sprite{
		image: img,
		Clip:  Rect{W: img.Width(), H: img.Height()},
	}
}

func (s *Sprite) Image() *Image { return s.image }

// SetClip sets the source rectangle
func (s *Sprite) SetClip(x, y, w, h int) {
	s.Clip = Rect{X: x, Y: y, W: w, H: h}
}

// SetDest sets the destination point
func (s *Sprite) SetDest(x, y int) {
	s.Dest = Point{X: x, Y: y}
}

// GraphicsWidth is the width of the underlying image
func (s *Sprite) GraphicsWidth() int { return s.image.Width() }

// GraphicsHeight is the height of the underlying image
func (s *Sprite) GraphicsHeight() int { return s.image.Height() }

// Renderable is an image and source rectangle for a one off draw.
type Renderable struct {
	Image *Image
	Src   Rect
}
