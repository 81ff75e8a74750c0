package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	glfwcontext "github.com/richinsley/glpulse/glfwcontext"
	graphics "github.com/richinsley/glpulse/graphics"
	headless "github.com/richinsley/glpulse/headless"
	options "github.com/richinsley/glpulse/options"
	renderer "github.com/richinsley/glpulse/renderer"
	translator "github.com/richinsley/glpulse/translator"
)

func init() {
	runtime.LockOSThread()
}

func run(opts *options.Options) error {
	if opts.Mode == options.ModeLint {
		return translator.Lint(context.Background())
	}

	var ctx graphics.Context
	var err error
	if opts.Headless {
		ctx, err = headless.NewHeadless(opts.Width, opts.Height)
		if err != nil {
			log.Fatalf("Failed to create headless context: %v", err)
		}
		defer ctx.Shutdown()
	} else {
		if err := glfwcontext.InitGraphics(); err != nil {
			log.Fatalf("Failed to initialize graphics: %v", err)
		}
		defer glfwcontext.TerminateGraphics()

		// only the interactive window is shown
		visible := opts.Mode == options.ModeWindow
		ctx, err = glfwcontext.New(opts, visible)
		if err != nil {
			log.Fatalf("Failed to create window: %v", err)
		}
	}

	r, err := renderer.NewRenderer(ctx, renderer.DefaultAssets(ctx.IsGLES()), opts)
	if err != nil {
		return err
	}

	switch opts.Mode {
	case options.ModeRecord:
		log.Println("Starting offscreen recording...")
		if err := r.Record(opts); err != nil {
			return fmt.Errorf("recording failed: %w", err)
		}
		log.Printf("Successfully rendered to %s", opts.OutputFile)
	case options.ModeSelfTest:
		return r.SelfTest(opts.Width, opts.Height)
	default:
		log.Println("Starting interactive render loop...")
		r.Run()
	}
	return nil
}

func main() {
	flags := options.Bind(flag.CommandLine)
	flag.Parse()

	if *flags.Help {
		fmt.Println("glpulse: two pulsing triangles")
		flag.PrintDefaults()
		return
	}

	opts, err := flags.Resolve()
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	if err := run(opts); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}
