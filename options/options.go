package options

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Run modes.
const (
	ModeWindow   = "window"
	ModeRecord   = "record"
	ModeSelfTest = "selftest"
	ModeLint     = "lint"
)

type Options struct {
	Mode   string `toml:"mode"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	Strict bool   `toml:"strict"` // Turn shader compile/link failures into errors
	// Headless renders through an EGL pbuffer instead of a hidden window (Linux only).
	Headless bool `toml:"headless"`
	// MaxFrames bounds the interactive loop. Zero runs until the window is closed.
	MaxFrames int `toml:"frames"`

	// Recording options
	Duration   float64 `toml:"duration"`
	FPS        int     `toml:"fps"`
	OutputFile string  `toml:"output"`
	FFMPEGPath string  `toml:"ffmpeg"`
}

// Default returns the settings of the plain demo: a 640x480 window that runs until closed.
func Default() *Options {
	return &Options{
		Mode:       ModeWindow,
		Width:      640,
		Height:     480,
		Title:      "OpenGLExample",
		Duration:   10.0,
		FPS:        60,
		OutputFile: "output.mp4",
	}
}

// Load reads a TOML file over the defaults. Unknown keys are rejected.
func Load(path string) (*Options, error) {
	opts, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (*Options, error) {
	opts, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Decode decodes TOML data over the defaults without validating it, so that
// command line flags can still be applied on top.
func Decode(data []byte) (*Options, error) {
	opts := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return opts, nil
}

func decodeFile(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Decode(data)
}

func (o *Options) Validate() error {
	switch o.Mode {
	case ModeWindow, ModeRecord, ModeSelfTest, ModeLint:
	default:
		return fmt.Errorf("unknown mode %q", o.Mode)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.Headless && o.Mode == ModeWindow {
		return fmt.Errorf("headless rendering needs record or selftest mode")
	}
	if o.MaxFrames < 0 {
		return fmt.Errorf("frames must not be negative, got %d", o.MaxFrames)
	}
	if o.Mode == ModeRecord {
		if o.FPS <= 0 {
			return fmt.Errorf("fps must be positive, got %d", o.FPS)
		}
		if o.Duration <= 0 {
			return fmt.Errorf("duration must be positive, got %v", o.Duration)
		}
		if o.OutputFile == "" {
			return fmt.Errorf("output file is required in record mode")
		}
	}
	return nil
}

// Flags holds the command line values before they are merged into Options.
type Flags struct {
	Config     *string
	Help       *bool
	Mode       *string
	Width      *int
	Height     *int
	Title      *string
	Strict     *bool
	Headless   *bool
	MaxFrames  *int
	Duration   *float64
	FPS        *int
	OutputFile *string
	FFMPEGPath *string

	fs *flag.FlagSet
}

// Bind registers the command line flags on fs using the defaults.
func Bind(fs *flag.FlagSet) *Flags {
	d := Default()
	return &Flags{
		Config:     fs.String("config", "", "Path to a TOML config file"),
		Help:       fs.Bool("help", false, "Show help message"),
		Mode:       fs.String("mode", d.Mode, "Run mode: window, record, selftest or lint"),
		Width:      fs.Int("width", d.Width, "Width of the window or recording"),
		Height:     fs.Int("height", d.Height, "Height of the window or recording"),
		Title:      fs.String("title", d.Title, "Window title"),
		Strict:     fs.Bool("strict", d.Strict, "Fail on shader compile or link errors"),
		Headless:   fs.Bool("headless", d.Headless, "Render through EGL without a window (record and selftest modes)"),
		MaxFrames:  fs.Int("frames", d.MaxFrames, "Stop after this many frames (0 runs until closed)"),
		Duration:   fs.Float64("duration", d.Duration, "Duration to record in seconds"),
		FPS:        fs.Int("fps", d.FPS, "Frames per second for recording"),
		OutputFile: fs.String("output", d.OutputFile, "Output file name for recording"),
		FFMPEGPath: fs.String("ffmpeg", d.FFMPEGPath, "Path to ffmpeg executable"),
		fs:         fs,
	}
}

// Resolve loads the config file, if any, and applies the flags that were
// explicitly set on the command line on top of it. The merged result is
// validated once, after the flags.
func (f *Flags) Resolve() (*Options, error) {
	opts := Default()
	if *f.Config != "" {
		var err error
		if opts, err = decodeFile(*f.Config); err != nil {
			return nil, err
		}
	}

	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "mode":
			opts.Mode = *f.Mode
		case "width":
			opts.Width = *f.Width
		case "height":
			opts.Height = *f.Height
		case "title":
			opts.Title = *f.Title
		case "strict":
			opts.Strict = *f.Strict
		case "headless":
			opts.Headless = *f.Headless
		case "frames":
			opts.MaxFrames = *f.MaxFrames
		case "duration":
			opts.Duration = *f.Duration
		case "fps":
			opts.FPS = *f.FPS
		case "output":
			opts.OutputFile = *f.OutputFile
		case "ffmpeg":
			opts.FFMPEGPath = *f.FFMPEGPath
		}
	})

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}
