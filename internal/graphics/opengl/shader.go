package opengl

import (
	"fmt"
	"strings"

	"mini-rpg/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// program is a linked shader program with a uniform location cache
type program struct {
	id       uint32
	uniforms map[string]int32
}

func newProgram(src graphics.ProgramSources) (*program, error) {
	id, err := compileProgram(src.Vertex, src.Fragment)
	if err != nil {
		return nil, err
	}
	return &program{id: id, uniforms: make(map[string]int32)}, nil
}

func (p *program) use() {
	gl.UseProgram(p.id)
}

func (p *program) uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

func (p *program) attrib(name string) uint32 {
	return uint32(gl.GetAttribLocation(p.id, gl.Str(name+"\x00")))
}

func (p *program) setInt(name string, value int32) {
	gl.Uniform1i(p.uniform(name), value)
}

func (p *program) setBool(name string, value bool) {
	var intValue int32
	if value {
		intValue = 1
	}
	gl.Uniform1i(p.uniform(name), intValue)
}

func (p *program) setVec4(name string, v [4]float32) {
	gl.Uniform4f(p.uniform(name), v[0], v[1], v[2], v[3])
}

func (p *program) delete() {
	if p != nil && p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

func compileProgram(vertex, fragment graphics.ShaderSource) (uint32, error) {
	vertexShader, err := compileShader(vertex, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("link %s + %s: %s", vertex.Name, fragment.Name, strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func compileShader(src graphics.ShaderSource, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(src.Source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("compile %s: %s", src.Name, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
