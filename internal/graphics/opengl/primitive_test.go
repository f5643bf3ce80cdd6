package opengl

import (
	"image"
	"testing"

	"mini-rpg/internal/graphics"
)

// These tests only touch code paths that do not issue GL calls.

func TestPrimitiveModeMinimumVertices(t *testing.T) {
	tests := []struct {
		kind graphics.Primitive
		want int
	}{
		{graphics.PrimitivePixel, 1},
		{graphics.PrimitiveLine, 2},
		{graphics.PrimitiveRect, 4},
	}
	for _, tt := range tests {
		_, n, err := primitiveMode(tt.kind)
		if err != nil {
			t.Fatalf("primitiveMode(%d): %v", tt.kind, err)
		}
		if n != tt.want {
			t.Errorf("primitiveMode(%d): expected %d vertices, got %d", tt.kind, tt.want, n)
		}
	}
	if _, _, err := primitiveMode(graphics.Primitive(42)); err == nil {
		t.Errorf("Expected error for unknown primitive")
	}
}

func TestRepackSubImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = byte(i)
	}
	sub := src.SubImage(image.Rect(1, 1, 3, 3)).(*image.NRGBA)

	dst := repack(sub)
	if dst.Stride != 8 || len(dst.Pix) != 16 {
		t.Fatalf("Expected packed 2x2 image, got stride %d len %d", dst.Stride, len(dst.Pix))
	}
	if dst.Pix[0] != src.Pix[src.PixOffset(1, 1)] {
		t.Errorf("Expected first pixel from (1,1), got %d", dst.Pix[0])
	}
	if dst.Pix[8] != src.Pix[src.PixOffset(1, 2)] {
		t.Errorf("Expected second row from (1,2), got %d", dst.Pix[8])
	}
}

func TestDrawWithoutResources(t *testing.T) {
	var p *primitives
	if err := p.draw(graphics.PrimitivePixel, []float32{0, 0}, [4]float32{}); err != errNoResources {
		t.Errorf("Expected errNoResources, got %v", err)
	}
	var c *composer
	if err := c.compose(1, 0, [4]float32{}, [4]float32{}); err != errNoResources {
		t.Errorf("Expected errNoResources, got %v", err)
	}
}
