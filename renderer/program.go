package renderer

import (
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	shader "github.com/richinsley/glpulse/shader"
)

// Program is a linked shader program with its _Time location resolved once.
type Program struct {
	ID      uint32
	timeLoc int32
}

// NewProgram compiles and links a vertex/fragment pair. Compile and link
// failures are logged and the program is still returned, unless strict is set,
// in which case the first failure is returned as a *shader.Error.
func NewProgram(vertexShaderSource, fragmentShaderSource string, strict bool) (*Program, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER, shader.StageVertex)
	if err = reportShaderError(err, strict); err != nil {
		gl.DeleteShader(vertexShader)
		return nil, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER, shader.StageFragment)
	if err = reportShaderError(err, strict); err != nil {
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)
		return nil, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// the shader objects are owned by the program once linked
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		linkErr := shader.NewError(shader.LinkError, shader.StageProgram, programInfoLog(program))
		if err := reportShaderError(linkErr, strict); err != nil {
			gl.DeleteProgram(program)
			return nil, err
		}
	}

	p := &Program{ID: program}
	p.timeLoc = gl.GetUniformLocation(program, gl.Str(shader.TimeUniform+"\x00"))
	if p.timeLoc < 0 {
		log.Printf("Warning: uniform %s not found in program %d", shader.TimeUniform, program)
	}
	return p, nil
}

// Use binds the program for subsequent draw calls.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// SetTime writes t to the cached _Time location. The program must be in use.
func (p *Program) SetTime(t float32) {
	gl.Uniform1f(p.timeLoc, t)
}

func reportShaderError(err error, strict bool) error {
	if err == nil {
		return nil
	}
	log.Printf("%v", err)
	if strict {
		return err
	}
	return nil
}

// compileShader always returns the shader object, even when compilation fails.
func compileShader(source string, shaderType uint32, stage string) (uint32, error) {
	s := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(s, 1, csources, nil)
	free()
	gl.CompileShader(s)

	var status int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		return s, shader.NewError(shader.CompileError, stage, shaderInfoLog(s))
	}
	return s, nil
}

func shaderInfoLog(s uint32) string {
	var length int32
	buf := make([]byte, shader.MaxLogLength)
	gl.GetShaderInfoLog(s, shader.MaxLogLength, &length, &buf[0])
	return string(buf[:length])
}

func programInfoLog(program uint32) string {
	var length int32
	buf := make([]byte, shader.MaxLogLength)
	gl.GetProgramInfoLog(program, shader.MaxLogLength, &length, &buf[0])
	return string(buf[:length])
}
