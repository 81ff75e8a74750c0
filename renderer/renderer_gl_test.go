package renderer

import (
	"errors"
	"runtime"
	"testing"

	geometry "github.com/richinsley/glpulse/geometry"
	glfwcontext "github.com/richinsley/glpulse/glfwcontext"
	options "github.com/richinsley/glpulse/options"
	shader "github.com/richinsley/glpulse/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const brokenFragmentSource = `#version 410 core
out vec4 FragColor;
void main() {
    FragColor = vec4(1.0) +;
}
`

// newHiddenWindow opens a hidden window at the default 640x480 size, or skips
// the test when no display or GL driver is available.
func newHiddenWindow(t *testing.T) (*glfwcontext.Context, *options.Options) {
	t.Helper()
	runtime.LockOSThread()
	t.Cleanup(runtime.UnlockOSThread)

	if err := glfwcontext.InitGraphics(); err != nil {
		t.Skipf("no display: %v", err)
	}
	t.Cleanup(glfwcontext.TerminateGraphics)

	opts := options.Default()
	ctx, err := glfwcontext.New(opts, false)
	if err != nil {
		t.Skipf("no OpenGL 4.1 context: %v", err)
	}
	t.Cleanup(ctx.Shutdown)
	return ctx, opts
}

func TestRunExitsWhenCloseRequested(t *testing.T) {
	ctx, opts := newHiddenWindow(t)
	w, h := ctx.GetFramebufferSize()
	assert.Positive(t, w)
	assert.Positive(t, h)

	r, err := NewRenderer(ctx, DefaultAssets(ctx.IsGLES()), opts)
	require.NoError(t, err)
	assert.Equal(t, int32(len(geometry.Triangles)), r.mesh.Count())

	ctx.RequestClose()
	assert.NotPanics(t, func() {
		assert.Zero(t, r.Run())
	})
}

func TestRunDrawsUntilFrameLimit(t *testing.T) {
	ctx, opts := newHiddenWindow(t)
	opts.MaxFrames = 3

	r, err := NewRenderer(ctx, DefaultAssets(ctx.IsGLES()), opts)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Run())
}

func TestNewProgramContinuesOnBrokenSource(t *testing.T) {
	newHiddenWindow(t)

	p, err := NewProgram(shader.GetVertexShader(false), brokenFragmentSource, false)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.NotZero(t, p.ID)
	assert.NotPanics(t, func() {
		p.Use()
		p.SetTime(1)
	})
}

func TestNewProgramStrictReportsBrokenSource(t *testing.T) {
	newHiddenWindow(t)

	p, err := NewProgram(shader.GetVertexShader(false), brokenFragmentSource, true)
	assert.Nil(t, p)

	var serr *shader.Error
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, shader.CompileError, serr.Kind)
	assert.Equal(t, shader.StageFragment, serr.Stage)
	assert.NotEmpty(t, serr.Log)
	assert.LessOrEqual(t, len(serr.Log), shader.MaxLogLength)
}

func TestNewProgramResolvesTimeUniform(t *testing.T) {
	newHiddenWindow(t)

	p, err := NewProgram(shader.GetVertexShader(false), shader.GetFragmentShader(false), true)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, p.timeLoc, int32(0))
}
