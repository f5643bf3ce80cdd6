// Package text rasterizes strings into NRGBA surfaces that can be uploaded
// as textures.
package text

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// solidThreshold is the coverage above which a solid (non antialiased)
// glyph pixel is considered inside the glyph.
const solidThreshold = 128

var ErrEmptyText = errors.New("empty text")

// Style is a font face at a fixed pixel size.
type Style struct {
	name       string
	size       float64
	face       font.Face
	ascent     int
	lineHeight int
}

// Load parses the OpenType or TrueType font at path.
func Load(path string, size float64) (*Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return Parse(data, filepath.Base(path), size)
}

// Default returns the built in Go Regular face.
func Default(size float64) (*Style, error) {
	return Parse(goregular.TTF, "goregular", size)
}

func Parse(data []byte, name string, size float64) (*Style, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font %s: invalid size %v", name, size)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", name, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face %s: %w", name, err)
	}

	m := face.Metrics()
	return &Style{
		name:       name,
		size:       size,
		face:       face,
		ascent:     m.Ascent.Ceil(),
		lineHeight: (m.Ascent + m.Descent).Ceil(),
	}, nil
}

func (s *Style) Name() string { return s.name }
func (s *Style) Size() float64 { return s.size }
func (s *Style) LineHeight() int { return s.lineHeight }
func (s *Style) Close() error { return s.face.Close() }

// Measure returns the size in pixels of the surface Rasterize produces.
func (s *Style) Measure(str string) (int, int) {
	if str == "" {
		return 0, 0
	}
	return font.MeasureString(s.face, str).Ceil(), s.lineHeight
}

// Rasterize draws str in c. Blended text keeps the antialiased coverage as
// alpha; solid text thresholds it so every pixel is either c or
// transparent. The returned pixels are not premultiplied.
func (s *Style) Rasterize(str string, c color.NRGBA, blended bool) (*image.NRGBA, error) {
	w, h := s.Measure(str)
	if w == 0 || h == 0 {
		return nil, ErrEmptyText
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: s.face,
		Dot:  fixed.P(0, s.ascent),
	}
	d.DrawString(str)

	out := image.NewNRGBA(mask.Rect)
	for i, a := range mask.Pix {
		if !blended {
			if a < solidThreshold {
				continue
			}
			a = 255
		}
		if a == 0 {
			continue
		}
		p := out.Pix[i*4 : i*4+4]
		p[0], p[1], p[2] = c.R, c.G, c.B
		p[3] = uint8(uint16(a) * uint16(c.A) / 255)
	}
	return out, nil
}
