package animation

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestScaleAtZero(t *testing.T) {
	sx, sy := Scale(0)
	assert.Zero(t, sx)
	assert.Equal(t, float32(1), sy)

	p := TransformPosition(mgl32.Vec3{0.5, -0.25, 0}, 0)
	assert.Zero(t, p[0], "vertices collapse to x=0")
	assert.InDelta(t, -0.25, p[1], 1e-6)
	assert.Equal(t, float32(1), p[3])
}

func TestScaleFullCycle(t *testing.T) {
	// |cos(t*0.25)| = 1 again at t = 4*pi
	_, sy := Scale(float32(4 * math.Pi))
	assert.InDelta(t, 1, sy, 1e-5)

	// |sin(t*0.25)| = 1 at t = 2*pi
	sx, sy := Scale(float32(2 * math.Pi))
	assert.InDelta(t, 1, sx, 1e-5)
	assert.InDelta(t, 0, sy, 1e-5)
}

func TestScaleIsNonNegative(t *testing.T) {
	for ts := float32(-20); ts < 20; ts += 0.37 {
		sx, sy := Scale(ts)
		assert.GreaterOrEqual(t, sx, float32(0))
		assert.GreaterOrEqual(t, sy, float32(0))
		assert.LessOrEqual(t, sx, float32(1))
		assert.LessOrEqual(t, sy, float32(1))
	}
}

func TestPositionKeepsZ(t *testing.T) {
	p := TransformPosition(mgl32.Vec3{0.3, 0.4, 0.7}, 1.5)
	assert.Equal(t, float32(0.7), p[2])
	assert.Equal(t, float32(1), p[3])
}

func TestBrightnessBlackAtSinZero(t *testing.T) {
	in := mgl32.Vec4{0.9, 0.5, 0.1, 1}
	for _, ts := range []float32{0, math.Pi} {
		out := ShadeColor(in, ts)
		for i := 0; i < 3; i++ {
			assert.InDelta(t, 0, out[i], 1e-6)
		}
	}
}

func TestShadeColor(t *testing.T) {
	out := ShadeColor(mgl32.Vec4{1, 0.5, 0, 1}, math.Pi/2)
	assert.True(t, out.ApproxEqual(mgl32.Vec4{1, 0.5, 0, 1}))
}

func TestStepClock(t *testing.T) {
	c := NewStepClock(4)
	assert.Zero(t, c.Now())
	c.Tick()
	c.Tick()
	assert.Equal(t, 2, c.Frame())
	assert.Equal(t, float32(0.5), c.Now())
}

func TestSourceClock(t *testing.T) {
	c := SourceClock{Source: func() float64 { return 3.25 }}
	assert.Equal(t, float32(3.25), c.Now())
	assert.Equal(t, float32(1.5), FixedClock(1.5).Now())
}
