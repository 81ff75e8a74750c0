package geometry

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one interleaved record: position followed by RGBA color.
type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec4
}

var (
	red   = mgl32.Vec4{1, 0, 0, 1}
	green = mgl32.Vec4{0, 1, 0, 1}
	blue  = mgl32.Vec4{0, 0, 1, 1}
)

// Triangles holds two independent triangles drawn with a single call.
var Triangles = [6]Vertex{
	// triangle 1
	{Position: mgl32.Vec3{-0.5, -0.5, 0}, Color: red},
	{Position: mgl32.Vec3{0, -0.5, 0}, Color: green},
	{Position: mgl32.Vec3{-0.25, 0, 0}, Color: blue},

	// triangle 2
	{Position: mgl32.Vec3{0, -0.25, 0}, Color: green},
	{Position: mgl32.Vec3{0.5, -0.25, 0}, Color: blue},
	{Position: mgl32.Vec3{0.25, 0.25, 0}, Color: red},
}

// Attribute describes one float vertex attribute inside a Vertex record.
type Attribute struct {
	Location   uint32
	Components int32
	Offset     uintptr
}

// VertexLayout is the attribute set and byte stride of a Vertex buffer.
type VertexLayout struct {
	Stride     int32
	Attributes []Attribute
}

// Attribute locations used by the shaders.
const (
	PositionLocation = 0
	ColorLocation    = 1
)

var Layout = VertexLayout{
	Stride: int32(unsafe.Sizeof(Vertex{})),
	Attributes: []Attribute{
		{Location: PositionLocation, Components: 3, Offset: unsafe.Offsetof(Vertex{}.Position)},
		{Location: ColorLocation, Components: 4, Offset: unsafe.Offsetof(Vertex{}.Color)},
	},
}

// FloatsPerVertex is the number of float32 values in one Vertex record.
const FloatsPerVertex = len(mgl32.Vec3{}) + len(mgl32.Vec4{})

// Floats flattens vertices into the interleaved float32 slice uploaded to the GPU.
func Floats(vertices []Vertex) []float32 {
	data := make([]float32, 0, len(vertices)*FloatsPerVertex)
	for _, v := range vertices {
		data = append(data, v.Position[:]...)
		data = append(data, v.Color[:]...)
	}
	return data
}

// Triangle returns the three vertices of triangle i.
func Triangle(vertices []Vertex, i int) [3]Vertex {
	return [3]Vertex{vertices[3*i], vertices[3*i+1], vertices[3*i+2]}
}

// Centroid returns the mean position and the mean color of a triangle.
func Centroid(tri [3]Vertex) (mgl32.Vec3, mgl32.Vec4) {
	pos := tri[0].Position.Add(tri[1].Position).Add(tri[2].Position).Mul(1.0 / 3.0)
	col := tri[0].Color.Add(tri[1].Color).Add(tri[2].Color).Mul(1.0 / 3.0)
	return pos, col
}
