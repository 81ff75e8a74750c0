package renderer

import (
	"fmt"
	"io"
	"log"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	animation "github.com/richinsley/glpulse/animation"
	options "github.com/richinsley/glpulse/options"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const bytesPerPixel = 4

// Target is an RGBA8 framebuffer used for recording and self tests.
type Target struct {
	fbo       uint32
	textureID uint32
	width     int
	height    int
}

func NewTarget(width, height int) (*Target, error) {
	t := &Target{width: width, height: height}

	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.GenTextures(1, &t.textureID)
	gl.BindTexture(gl.TEXTURE_2D, t.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.textureID, 0)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		t.Destroy()
		return nil, fmt.Errorf("offscreen fbo is not complete (status 0x%x)", status)
	}
	return t, nil
}

// Bind directs drawing into the target and sizes the viewport to it.
func (t *Target) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, int32(t.width), int32(t.height))
}

func (t *Target) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// FrameSize is the number of bytes ReadPixels fills.
func (t *Target) FrameSize() int {
	return t.width * t.height * bytesPerPixel
}

// ReadPixels copies the whole target, bottom row first, into dst.
func (t *Target) ReadPixels(dst []byte) error {
	if len(dst) < t.FrameSize() {
		return fmt.Errorf("pixel buffer too small: %d < %d", len(dst), t.FrameSize())
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, t.fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(t.width), int32(t.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst))
	return nil
}

// Pixel reads a single pixel in framebuffer coordinates (origin bottom left).
func (t *Target) Pixel(x, y int) [4]byte {
	var px [4]byte
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, t.fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(int32(x), int32(y), 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&px[0]))
	return px
}

func (t *Target) Destroy() {
	gl.DeleteFramebuffers(1, &t.fbo)
	gl.DeleteTextures(1, &t.textureID)
}

func getArgs(opts *options.Options) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"framerate": opts.FPS,
	}
	// glReadPixels returns rows bottom first
	outputArgs = ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
		"c:v":     "libx264",
	}
	return
}

// Record renders duration*fps frames at a fixed time step and pipes them to ffmpeg.
func (r *Renderer) Record(opts *options.Options) error {
	target, err := NewTarget(opts.Width, opts.Height)
	if err != nil {
		return fmt.Errorf("failed to create offscreen target: %w", err)
	}
	defer target.Destroy()

	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := getArgs(opts)
	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(opts.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// unblock the writer if ffmpeg exits early
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	totalFrames := int(opts.Duration * float64(opts.FPS))
	log.Printf("Recording %d frames at %d fps to %s", totalFrames, opts.FPS, opts.OutputFile)

	clock := animation.NewStepClock(opts.FPS)
	pixels := make([]byte, target.FrameSize())
	var writeErr error

	target.Bind()
	for clock.Frame() < totalFrames {
		r.DrawFrame(clock.Now())
		if writeErr = target.ReadPixels(pixels); writeErr != nil {
			break
		}
		if _, err := pipeWriter.Write(pixels); err != nil {
			writeErr = fmt.Errorf("failed to write frame %d to ffmpeg: %w", clock.Frame(), err)
			break
		}
		clock.Tick()
	}
	target.Unbind()
	pipeWriter.Close()

	if runErr := <-errc; runErr != nil {
		return fmt.Errorf("ffmpeg failed: %w", runErr)
	}
	return writeErr
}
