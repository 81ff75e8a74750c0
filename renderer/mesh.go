package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	geometry "github.com/richinsley/glpulse/geometry"
)

// Mesh is an immutable vertex buffer plus the vertex array describing it.
type Mesh struct {
	vao   uint32
	vbo   uint32
	count int32
}

// NewMesh uploads vertices once with a static usage hint and enables every
// attribute of layout.
func NewMesh(vertices []geometry.Vertex, layout geometry.VertexLayout) (*Mesh, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("mesh has no vertices")
	}
	data := geometry.Floats(vertices)
	m := &Mesh{count: int32(len(vertices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	for _, attr := range layout.Attributes {
		gl.VertexAttribPointer(attr.Location, attr.Components, gl.FLOAT, false, layout.Stride, gl.PtrOffset(int(attr.Offset)))
		gl.EnableVertexAttribArray(attr.Location)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m, nil
}

// Count is the number of vertices each Draw call covers.
func (m *Mesh) Count() int32 {
	return m.count
}

// Draw issues one triangle-list draw over every uploaded vertex.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
}
