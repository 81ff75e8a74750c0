// Package translator validates the GLSL ES shader sources without a GPU by
// running them through the ANGLE based shader translator.
package translator

import (
	"context"
	"fmt"
	"log"
	"sync"

	shader "github.com/richinsley/glpulse/shader"
	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator     *gst.ShaderTranslator
	translatorErr  error
	translatorOnce sync.Once
)

// GetTranslator returns the process wide translator, creating it on first use.
func GetTranslator(ctx context.Context) (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(ctx)
	})
	return translator, translatorErr
}

// Result is the outcome of translating one stage.
type Result struct {
	Stage string
	// TimeName is the name the translator gave the _Time uniform, empty when
	// the uniform did not survive translation.
	TimeName string
	Err      *shader.Error
}

// LintStage translates a single GLSL ES 3.00 stage to desktop GLSL 4.10.
func LintStage(ctx context.Context, stage, source string) (Result, error) {
	t, err := GetTranslator(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create shader translator: %w", err)
	}

	res := Result{Stage: stage}
	out, err := t.TranslateShader(source, stage, gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		res.Err = shader.NewError(shader.CompileError, stage, err.Error())
		return res, nil
	}
	if v, ok := out.Variables[shader.TimeUniform]; ok {
		res.TimeName = v.MappedName
	}
	return res, nil
}

// Lint translates the embedded vertex and fragment sources and logs the
// outcome of each stage. It returns the first diagnostic as an error.
func Lint(ctx context.Context) error {
	stages := []struct {
		name   string
		source string
	}{
		{shader.StageVertex, shader.GetVertexShader(true)},
		{shader.StageFragment, shader.GetFragmentShader(true)},
	}

	var firstErr error
	for _, s := range stages {
		res, err := LintStage(ctx, s.name, s.source)
		if err != nil {
			return err
		}
		if res.Err != nil {
			log.Printf("%v", res.Err)
			if firstErr == nil {
				firstErr = res.Err
			}
			continue
		}
		if res.TimeName == "" {
			log.Printf("Warning: %s shader does not use %s", s.name, shader.TimeUniform)
		}
		log.Printf("%s shader OK (%s -> %s)", s.name, shader.TimeUniform, res.TimeName)
	}
	return firstErr
}
