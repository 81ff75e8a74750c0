package renderer

import (
	"fmt"
	"log"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	animation "github.com/richinsley/glpulse/animation"
	geometry "github.com/richinsley/glpulse/geometry"
)

// colorTolerance is the per channel difference, in 8-bit steps, accepted
// between a read back pixel and the CPU model.
const colorTolerance = 10

// selfTestTime is a time where both triangles are visible and lit.
const selfTestTime = 2.0

// Sample is a framebuffer location and the color expected there.
type Sample struct {
	X, Y int
	Want mgl32.Vec4
	Name string
}

// CentroidSamples predicts the color at the centroid of every triangle in
// vertices when drawn at time t into a width x height framebuffer.
func CentroidSamples(vertices []geometry.Vertex, t float32, width, height int) []Sample {
	samples := make([]Sample, 0, len(vertices)/3)
	for i := 0; i < len(vertices)/3; i++ {
		pos, col := geometry.Centroid(geometry.Triangle(vertices, i))
		clip := animation.TransformPosition(pos, t)
		x, y := ndcToPixel(clip[0], clip[1], width, height)
		samples = append(samples, Sample{
			X:    x,
			Y:    y,
			Want: animation.ShadeColor(col, t),
			Name: fmt.Sprintf("triangle %d", i),
		})
	}
	return samples
}

func ndcToPixel(x, y float32, width, height int) (int, int) {
	px := int((x + 1) / 2 * float32(width))
	py := int((y + 1) / 2 * float32(height))
	return min(max(px, 0), width-1), min(max(py, 0), height-1)
}

func toByte(v float32) byte {
	return byte(math32.Round(mgl32.Clamp(v, 0, 1) * 255))
}

// rgbMatches compares the color channels only; the alpha of the default
// framebuffer is not something the shaders control.
func rgbMatches(got [4]byte, want mgl32.Vec4) bool {
	for i := 0; i < 3; i++ {
		d := int(got[i]) - int(toByte(want[i]))
		if d < -colorTolerance || d > colorTolerance {
			return false
		}
	}
	return true
}

// SelfTest renders offscreen and compares the result with the CPU model of the
// shaders: at t=0 every pixel must be background, at a lit time the centroid of
// every triangle must carry its shaded color.
func (r *Renderer) SelfTest(width, height int) error {
	target, err := NewTarget(width, height)
	if err != nil {
		return fmt.Errorf("failed to create offscreen target: %w", err)
	}
	defer target.Destroy()
	target.Bind()
	defer target.Unbind()

	var failures []string

	r.DrawFrame(0)
	pixels := make([]byte, target.FrameSize())
	if err := target.ReadPixels(pixels); err != nil {
		return err
	}
	for i := 0; i < len(pixels); i += bytesPerPixel {
		px := [4]byte{pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]}
		if !rgbMatches(px, ClearColor) {
			n := i / bytesPerPixel
			failures = append(failures, fmt.Sprintf("t=0: pixel (%d,%d) = %v, want background", n%width, n/width, px[:3]))
			break
		}
	}

	r.DrawFrame(selfTestTime)
	for _, s := range CentroidSamples(r.vertices, selfTestTime, width, height) {
		got := target.Pixel(s.X, s.Y)
		if !rgbMatches(got, s.Want) {
			failures = append(failures, fmt.Sprintf("t=%v: %s at (%d,%d) = %v, want %v", selfTestTime, s.Name, s.X, s.Y, got[:3], s.Want))
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("self test failed:\n%s", strings.Join(failures, "\n"))
	}
	log.Printf("Self test passed (%dx%d)", width, height)
	return nil
}
