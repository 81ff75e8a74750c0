// Package animation mirrors the shader math on the CPU and provides the
// frame clocks that drive the _Time uniform.
package animation

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ScaleRate is the multiplier applied to time before the vertex stage scale.
const ScaleRate = 0.25

// Scale returns the x and y scale factors the vertex stage applies at time t.
func Scale(t float32) (sx, sy float32) {
	return math32.Abs(math32.Sin(t * ScaleRate)), math32.Abs(math32.Cos(t * ScaleRate))
}

// Brightness returns the factor the fragment stage multiplies colors by at time t.
func Brightness(t float32) float32 {
	return math32.Abs(math32.Sin(t))
}

// TransformPosition reproduces gl_Position for an input position at time t.
func TransformPosition(p mgl32.Vec3, t float32) mgl32.Vec4 {
	sx, sy := Scale(t)
	return mgl32.Vec4{p[0] * sx, p[1] * sy, p[2], 1}
}

// ShadeColor reproduces the fragment output for an interpolated color at time t.
func ShadeColor(c mgl32.Vec4, t float32) mgl32.Vec4 {
	return c.Mul(Brightness(t))
}
