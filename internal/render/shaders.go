package render

import (
	"embed"
	"fmt"
	"path"

	"mini-rpg/internal/graphics"
)

//go:embed shaders/*.glsl
var builtinShaders embed.FS

// shaderSource reads shaders/<name> from the mod path, falling back to the
// copy built into the binary.
func (d *OpenGLDevice) shaderSource(name string) (graphics.ShaderSource, error) {
	rel := path.Join("shaders", name)
	if d.mods != nil && d.mods.Exists(rel) {
		full := d.mods.Locate(rel)
		data, err := d.mods.ReadFile(rel)
		if err != nil {
			return graphics.ShaderSource{}, fmt.Errorf("unable to open shader file %s: %w", full, err)
		}
		return graphics.ShaderSource{Name: full, Source: string(data)}, nil
	}

	data, err := builtinShaders.ReadFile(rel)
	if err != nil {
		return graphics.ShaderSource{}, fmt.Errorf("unable to open shader file %s: %w", rel, err)
	}
	return graphics.ShaderSource{Name: rel, Source: string(data)}, nil
}

func (d *OpenGLDevice) programSources(vertex, fragment string) (graphics.ProgramSources, error) {
	v, err := d.shaderSource(vertex)
	if err != nil {
		return graphics.ProgramSources{}, err
	}
	f, err := d.shaderSource(fragment)
	if err != nil {
		return graphics.ProgramSources{}, err
	}
	return graphics.ProgramSources{Vertex: v, Fragment: f}, nil
}

// buildResources compiles the sprite and primitive programs and the shared
// quad buffers if they are not alive yet.
func (d *OpenGLDevice) buildResources() error {
	if d.drv.ResourcesBuilt() {
		return nil
	}
	sprite, err := d.programSources("vertex.glsl", "fragment.glsl")
	if err != nil {
		return err
	}
	prim, err := d.programSources("vertex_p.glsl", "fragment_p.glsl")
	if err != nil {
		return err
	}
	return d.drv.BuildResources(sprite, prim)
}
