package renderer

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	animation "github.com/richinsley/glpulse/animation"
	geometry "github.com/richinsley/glpulse/geometry"
	options "github.com/richinsley/glpulse/options"
	shader "github.com/richinsley/glpulse/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeContext closes itself after closeAfter frames have been presented.
type fakeContext struct {
	closeAfter int
	frames     int
	now        float64
	resize     func(width, height int)
}

func (c *fakeContext) MakeCurrent()                                 {}
func (c *fakeContext) Shutdown()                                    {}
func (c *fakeContext) ShouldClose() bool                            { return c.frames >= c.closeAfter }
func (c *fakeContext) EndFrame()                                    { c.frames++; c.now += 0.5 }
func (c *fakeContext) GetFramebufferSize() (int, int)               { return 640, 480 }
func (c *fakeContext) Time() float64                                { return c.now }
func (c *fakeContext) IsGLES() bool                                 { return false }
func (c *fakeContext) SetResizeCallback(fn func(width, height int)) { c.resize = fn }

func TestResizeHandler(t *testing.T) {
	type viewport struct{ x, y, w, h int32 }
	var got []viewport
	resize := ResizeHandler(func(x, y, w, h int32) {
		got = append(got, viewport{x, y, w, h})
	})

	sizes := [][2]int{{640, 480}, {1, 1}, {1920, 1080}, {333, 7777}}
	for _, s := range sizes {
		resize(s[0], s[1])
	}
	require.Len(t, got, len(sizes))
	for i, s := range sizes {
		assert.Equal(t, viewport{0, 0, int32(s[0]), int32(s[1])}, got[i])
	}
}

func TestRunLoopStopsOnClose(t *testing.T) {
	ctx := &fakeContext{closeAfter: 3}
	var times []float32
	frames := runLoop(ctx, animation.SourceClock{Source: ctx.Time}, 0, func(t float32) {
		times = append(times, t)
	})
	assert.Equal(t, 3, frames)
	assert.Equal(t, 3, ctx.frames, "every drawn frame is presented")
	assert.Equal(t, []float32{0, 0.5, 1}, times)
}

func TestRunLoopImmediateClose(t *testing.T) {
	ctx := &fakeContext{closeAfter: 0}
	drawn := 0
	frames := runLoop(ctx, animation.FixedClock(0), 0, func(float32) { drawn++ })
	assert.Zero(t, frames)
	assert.Zero(t, drawn)
}

func TestRunLoopMaxFrames(t *testing.T) {
	ctx := &fakeContext{closeAfter: 100}
	frames := runLoop(ctx, animation.FixedClock(1), 5, func(float32) {})
	assert.Equal(t, 5, frames)
	assert.Equal(t, 5, ctx.frames)
}

func TestDefaultAssets(t *testing.T) {
	for _, gles := range []bool{false, true} {
		a := DefaultAssets(gles)
		assert.Len(t, a.Vertices, 6)
		assert.Equal(t, geometry.Layout, a.Layout)
		assert.Equal(t, shader.GetVertexShader(gles), a.VertexSource)
		assert.Equal(t, shader.GetFragmentShader(gles), a.FragmentSource)
	}
}

func TestReportShaderError(t *testing.T) {
	assert.NoError(t, reportShaderError(nil, true))

	err := shader.NewError(shader.CompileError, shader.StageVertex, "syntax error")
	assert.NoError(t, reportShaderError(err, false), "failures are logged, not returned")

	got := reportShaderError(err, true)
	var serr *shader.Error
	require.True(t, errors.As(got, &serr))
	assert.Equal(t, shader.StageVertex, serr.Stage)
}

func TestGetArgs(t *testing.T) {
	opts := options.Default()
	opts.Width, opts.Height, opts.FPS = 320, 200, 24

	in, out := getArgs(opts)
	assert.Equal(t, "rawvideo", in["f"])
	assert.Equal(t, "rgba", in["pix_fmt"])
	assert.Equal(t, "320x200", in["s"])
	assert.Equal(t, 24, in["framerate"])
	assert.Equal(t, "vflip", out["vf"])
	assert.Equal(t, "yuv420p", out["pix_fmt"])
}

func TestCentroidSamples(t *testing.T) {
	samples := CentroidSamples(geometry.Triangles[:], selfTestTime, 640, 480)
	require.Len(t, samples, 2)

	for _, s := range samples {
		assert.True(t, s.X >= 0 && s.X < 640)
		assert.True(t, s.Y >= 0 && s.Y < 480)
	}
	// triangle 1 sits left of the origin, triangle 2 right of it
	assert.Less(t, samples[0].X, 320)
	assert.Greater(t, samples[1].X, 320)

	b := animation.Brightness(selfTestTime)
	assert.True(t, samples[0].Want.ApproxEqual(mgl32.Vec4{b / 3, b / 3, b / 3, b}))
}

func TestCentroidSamplesBlackAtZero(t *testing.T) {
	for _, s := range CentroidSamples(geometry.Triangles[:], 0, 640, 480) {
		assert.Equal(t, 320, s.X, "x collapses to the center column")
		assert.True(t, s.Want.ApproxEqual(mgl32.Vec4{}))
	}
}

func TestNdcToPixelClamps(t *testing.T) {
	x, y := ndcToPixel(-2, 2, 100, 50)
	assert.Equal(t, 0, x)
	assert.Equal(t, 49, y)

	x, y = ndcToPixel(0, 0, 100, 50)
	assert.Equal(t, 50, x)
	assert.Equal(t, 25, y)
}

func TestRgbMatches(t *testing.T) {
	assert.True(t, rgbMatches([4]byte{51, 76, 153, 255}, ClearColor))
	assert.True(t, rgbMatches([4]byte{55, 70, 160, 0}, ClearColor), "alpha is ignored")
	assert.False(t, rgbMatches([4]byte{0, 0, 0, 255}, ClearColor))
	assert.True(t, rgbMatches([4]byte{0, 0, 0, 255}, mgl32.Vec4{}))
}
