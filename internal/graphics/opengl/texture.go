package opengl

import (
	"errors"
	"fmt"
	"image"

	"mini-rpg/internal/graphics"
	"mini-rpg/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var errEmptyImage = errors.New("empty image")

func createTexture(rgba *image.NRGBA, filter graphics.TextureFilter) (uint32, error) {
	if rgba == nil || rgba.Rect.Empty() {
		return 0, errEmptyImage
	}
	size := rgba.Rect.Size()
	if rgba.Stride != 4*size.X {
		rgba = repack(rgba)
	}

	param := int32(gl.NEAREST)
	if filter == graphics.FilterLinear {
		param = gl.LINEAR
	}

	drainErrors()

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, param)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, param)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(size.X),
		int32(size.Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := glError("glTexImage2D"); err != nil {
		gl.DeleteTextures(1, &texture)
		return 0, err
	}

	profiling.Count("gl.textureUploads", 1)
	profiling.Count("gl.textureBytes", int64(len(rgba.Pix)))
	return texture, nil
}

func updateTexture(texture uint32, rgba *image.NRGBA) error {
	if texture == 0 {
		return fmt.Errorf("update texture: no texture")
	}
	if rgba == nil || rgba.Rect.Empty() {
		return errEmptyImage
	}
	size := rgba.Rect.Size()
	if rgba.Stride != 4*size.X {
		rgba = repack(rgba)
	}

	drainErrors()
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(size.X), int32(size.Y), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	profiling.Count("gl.textureBytes", int64(len(rgba.Pix)))
	return glError("glTexSubImage2D")
}

// repack copies a sub-image into a tightly packed buffer so that it can be
// uploaded without UNPACK_ROW_LENGTH.
func repack(src *image.NRGBA) *image.NRGBA {
	size := src.Rect.Size()
	dst := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
	for y := 0; y < size.Y; y++ {
		i := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], src.Pix[i:i+4*size.X])
	}
	return dst
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		drainErrors()
		return fmt.Errorf("%s: gl error 0x%04x", op, code)
	}
	return nil
}

func drainErrors() {
	for i := 0; i < 16; i++ {
		if gl.GetError() == gl.NO_ERROR {
			return
		}
	}
}
