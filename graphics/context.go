package graphics

// Context defines the interface for an OpenGL context bound to a window.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// EndFrame presents the frame and processes pending window events.
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	// IsGLES reports whether the context runs OpenGL ES rather than desktop GL.
	IsGLES() bool
	// SetResizeCallback registers fn to run whenever the framebuffer is resized.
	SetResizeCallback(fn func(width, height int))
}
