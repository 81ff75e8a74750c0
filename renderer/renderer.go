package renderer

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	animation "github.com/richinsley/glpulse/animation"
	geometry "github.com/richinsley/glpulse/geometry"
	graphics "github.com/richinsley/glpulse/graphics"
	options "github.com/richinsley/glpulse/options"
	shader "github.com/richinsley/glpulse/shader"
)

// ClearColor is the background every frame starts from.
var ClearColor = mgl32.Vec4{0.2, 0.3, 0.6, 1.0}

// Assets are the fixed inputs of the renderer.
type Assets struct {
	VertexSource   string
	FragmentSource string
	Vertices       []geometry.Vertex
	Layout         geometry.VertexLayout
}

// DefaultAssets returns the embedded shaders for the given GL flavour and the two triangles.
func DefaultAssets(isGLES bool) Assets {
	return Assets{
		VertexSource:   shader.GetVertexShader(isGLES),
		FragmentSource: shader.GetFragmentShader(isGLES),
		Vertices:       geometry.Triangles[:],
		Layout:         geometry.Layout,
	}
}

type Renderer struct {
	context   graphics.Context
	program   *Program
	mesh      *Mesh
	vertices  []geometry.Vertex
	maxFrames int
}

// NewRenderer builds the program and uploads the geometry on the current context.
func NewRenderer(ctx graphics.Context, assets Assets, opts *options.Options) (*Renderer, error) {
	r := &Renderer{
		context:   ctx,
		vertices:  assets.Vertices,
		maxFrames: opts.MaxFrames,
	}

	r.context.MakeCurrent()
	resize := ResizeHandler(gl.Viewport)
	r.context.SetResizeCallback(resize)
	resize(r.context.GetFramebufferSize())

	var err error
	r.program, err = NewProgram(assets.VertexSource, assets.FragmentSource, opts.Strict)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.mesh, err = NewMesh(assets.Vertices, assets.Layout)
	if err != nil {
		return nil, fmt.Errorf("failed to create mesh: %w", err)
	}
	return r, nil
}

// ResizeHandler returns a framebuffer size callback that makes the viewport
// cover the whole framebuffer.
func ResizeHandler(viewport func(x, y, width, height int32)) func(width, height int) {
	return func(width, height int) {
		viewport(0, 0, int32(width), int32(height))
	}
}

// DrawFrame clears the target and draws the mesh with _Time set to t.
func (r *Renderer) DrawFrame(t float32) {
	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	r.program.Use()
	r.program.SetTime(t)
	r.mesh.Draw()
}

// Run draws until the window is asked to close and returns the number of frames drawn.
func (r *Renderer) Run() int {
	clock := animation.SourceClock{Source: r.context.Time}
	frames := runLoop(r.context, clock, r.maxFrames, r.DrawFrame)
	log.Printf("Render loop finished after %d frames", frames)
	return frames
}

func runLoop(ctx graphics.Context, clock animation.Clock, maxFrames int, draw func(t float32)) int {
	frames := 0
	for !ctx.ShouldClose() {
		if maxFrames > 0 && frames >= maxFrames {
			break
		}
		draw(clock.Now())
		ctx.EndFrame()
		frames++
	}
	return frames
}
