// Package shader compiles GLSL programs and sets their uniforms.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Stage is a programmable pipeline stage.
type Stage uint32

const (
	Vertex   Stage = gl.VERTEX_SHADER
	Fragment Stage = gl.FRAGMENT_SHADER
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	}
	return fmt.Sprintf("stage(0x%x)", uint32(s))
}

// CompileError carries the driver log of a failed compile or link.
// Stage is zero for link failures.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	if e.Stage == 0 {
		return "link: " + e.Log
	}
	return e.Stage.String() + " shader: " + e.Log
}

// CompileProgram compiles a vertex/fragment pair and links them. The shader
// objects are deleted once linked; the caller owns the returned program.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vs, err := compileStage(Vertex, vertexSrc)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)

	fs, err := compileStage(Fragment, fragmentSrc)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var ok int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		var n int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
		log := readLog(n, func(buf *uint8) { gl.GetProgramInfoLog(program, n, nil, buf) })
		gl.DeleteProgram(program)
		return 0, &CompileError{Log: log}
	}
	return program, nil
}

func compileStage(stage Stage, source string) (uint32, error) {
	id := gl.CreateShader(uint32(stage))
	src, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, src, nil)
	free()
	gl.CompileShader(id)

	var ok int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		var n int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &n)
		log := readLog(n, func(buf *uint8) { gl.GetShaderInfoLog(id, n, nil, buf) })
		gl.DeleteShader(id)
		return 0, &CompileError{Stage: stage, Log: log}
	}
	return id, nil
}

// UniformLocation returns -1 when the program has no active uniform called name.
func UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// Drivers may report a zero length.
func readLog(n int32, read func(*uint8)) string {
	if n <= 0 {
		return "(no log)"
	}
	buf := make([]byte, n)
	read(&buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}
