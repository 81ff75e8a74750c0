package animation

// Clock reports the elapsed time in seconds for the frame being drawn.
type Clock interface {
	Now() float32
}

// SourceClock samples a wall-clock source, usually glfw.GetTime.
type SourceClock struct {
	Source func() float64
}

func (c SourceClock) Now() float32 {
	return float32(c.Source())
}

// StepClock advances by a fixed step each time Tick is called.
type StepClock struct {
	Step  float64
	frame int
}

// NewStepClock returns a clock that advances 1/fps seconds per frame.
func NewStepClock(fps int) *StepClock {
	return &StepClock{Step: 1.0 / float64(fps)}
}

func (c *StepClock) Now() float32 {
	return float32(float64(c.frame) * c.Step)
}

// Tick moves the clock to the next frame.
func (c *StepClock) Tick() {
	c.frame++
}

// Frame returns the index of the current frame.
func (c *StepClock) Frame() int {
	return c.frame
}

// FixedClock always reports the same time.
type FixedClock float32

func (c FixedClock) Now() float32 {
	return float32(c)
}
