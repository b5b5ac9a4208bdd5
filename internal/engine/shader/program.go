package shader

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gldemos/internal/logger"
	"github.com/Faultbox/gldemos/pkg/math"
)

// Program is a linked shader program with a uniform location cache.
// A Program that failed to build is invalid: Use and the setters do
// nothing, so rendering continues without it.
type Program struct {
	ID   uint32
	Name string

	uniforms map[string]int32
}

// Load builds the program named name from src. Failures are logged and
// yield an invalid program.
func Load(src Source, name string) *Program {
	return LoadPair(src, name, name)
}

// LoadPair builds a program from differently named vertex and fragment
// stages. The program is named after the fragment stage.
func LoadPair(src Source, vertexName, fragmentName string) *Program {
	p := &Program{Name: fragmentName, uniforms: make(map[string]int32)}
	log := logger.Named("shader")

	vs, fs, err := src.ReadPair(vertexName, fragmentName)
	if err != nil {
		log.Error("shader source unavailable", zap.String("program", p.Name), zap.Error(err))
		return p
	}
	id, err := CompileProgram(vs, fs)
	if err != nil {
		log.Error("shader program failed to build", zap.String("program", p.Name), zap.Error(err))
		return p
	}
	p.ID = id
	log.Debug("shader program ready", zap.String("program", p.Name), zap.Uint32("id", id))
	return p
}

// Valid reports whether the program linked.
func (p *Program) Valid() bool {
	return p != nil && p.ID != 0
}

// Use makes the program current.
func (p *Program) Use() {
	if !p.Valid() {
		return
	}
	gl.UseProgram(p.ID)
}

// location returns the cached uniform location, -1 when absent.
func (p *Program) location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := UniformLocation(p.ID, name)
	p.uniforms[name] = loc
	return loc
}

// SetMat4 sets a mat4 uniform. The program must be current.
func (p *Program) SetMat4(name string, m math.Mat4) {
	if !p.Valid() {
		return
	}
	gl.UniformMatrix4fv(p.location(name), 1, false, m.Ptr())
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v math.Vec3) {
	if !p.Valid() {
		return
	}
	gl.Uniform3f(p.location(name), v.X, v.Y, v.Z)
}

// SetVec4 sets a vec4 uniform.
func (p *Program) SetVec4(name string, v math.Vec4) {
	if !p.Valid() {
		return
	}
	gl.Uniform4f(p.location(name), v[0], v[1], v[2], v[3])
}

// SetInt sets an int or sampler uniform.
func (p *Program) SetInt(name string, v int32) {
	if !p.Valid() {
		return
	}
	gl.Uniform1i(p.location(name), v)
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	if !p.Valid() {
		return
	}
	gl.Uniform1f(p.location(name), v)
}

// SetBool sets a bool uniform.
func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	p.SetInt(name, i)
}

// Release deletes the GL program.
func (p *Program) Release() {
	if !p.Valid() {
		return
	}
	gl.DeleteProgram(p.ID)
	p.ID = 0
	p.uniforms = make(map[string]int32)
}
