package scene

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gldemos/internal/engine/texture"
	"github.com/Faultbox/gldemos/internal/logger"
)

// SamplerSetter is the part of a shader program Draw needs.
type SamplerSetter interface {
	SetInt(name string, v int32)
}

var glModes = [...]uint32{
	Triangles:     gl.TRIANGLES,
	Lines:         gl.LINES,
	LineLoop:      gl.LINE_LOOP,
	LineStrip:     gl.LINE_STRIP,
	Points:        gl.POINTS,
	TriangleStrip: gl.TRIANGLE_STRIP,
	TriangleFan:   gl.TRIANGLE_FAN,
}

// Uploaded reports whether the mesh has GPU buffers.
func (m *Mesh) Uploaded() bool {
	return m.vao != 0
}

// Upload creates the VAO, VBO and EBO for the mesh. Meshes without vertices
// are left unuploaded.
func (m *Mesh) Upload() {
	if m.vao != 0 || len(m.Vertices) == 0 {
		return
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	vertexSize := int(unsafe.Sizeof(Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	stride := int32(vertexSize)
	attrib := func(loc uint32, size int32, offset uintptr) {
		gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, stride, offset)
		gl.EnableVertexAttribArray(loc)
	}
	attrib(0, 3, unsafe.Offsetof(Vertex{}.Position))
	attrib(1, 3, unsafe.Offsetof(Vertex{}.Normal))
	attrib(2, 2, unsafe.Offsetof(Vertex{}.TexCoords))
	attrib(3, 3, unsafe.Offsetof(Vertex{}.Tangent))
	attrib(4, 3, unsafe.Offsetof(Vertex{}.Bitangent))
	attrib(5, 4, unsafe.Offsetof(Vertex{}.Color))

	if len(m.Indices) > 0 {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)
		m.indexCount = int32(len(m.Indices))
	} else {
		m.indexCount = int32(len(m.Vertices))
	}

	gl.BindVertexArray(0)
}

// Draw binds the mesh textures to units 0..n-1, points their samplers at
// them and issues the draw. The active texture unit is 0 afterwards.
func (m *Mesh) Draw(program SamplerSetter, lib *texture.Library) {
	if m.vao == 0 {
		return
	}
	if !m.Primitive.Valid() {
		logger.Error("skipping mesh with invalid primitive",
			zap.String("mesh", m.Name), zap.Int("primitive", int(m.Primitive)))
		return
	}

	for i, name := range m.SamplerNames() {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		if program != nil {
			program.SetInt(name, int32(i))
		}
		var id uint32
		if lib != nil {
			id = lib.ID(m.Textures[i])
		}
		gl.BindTexture(gl.TEXTURE_2D, id)
	}

	gl.BindVertexArray(m.vao)
	mode := glModes[m.Primitive]
	if m.ebo != 0 {
		gl.DrawElements(mode, m.indexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(mode, 0, m.indexCount)
	}
	gl.BindVertexArray(0)

	gl.ActiveTexture(gl.TEXTURE0)
}

// Release frees the mesh's GPU buffers. Safe to call more than once.
func (m *Mesh) Release() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	m.indexCount = 0
}

// Upload uploads every mesh.
func (m *Model) Upload() {
	for _, mesh := range m.Meshes {
		mesh.Upload()
	}
}

// Draw draws every mesh with program.
func (m *Model) Draw(program SamplerSetter) {
	if m == nil {
		return
	}
	for _, mesh := range m.Meshes {
		mesh.Draw(program, m.Textures)
	}
}

// Release frees the GPU buffers of every mesh and the texture library.
// Later calls do nothing.
func (m *Model) Release() {
	if m == nil || m.released {
		return
	}
	m.released = true
	for _, mesh := range m.Meshes {
		mesh.Release()
	}
	m.Textures.Release()
}
