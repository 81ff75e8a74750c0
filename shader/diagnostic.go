package shader

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxLogLength bounds every compile or link diagnostic.
const MaxLogLength = 512

const emptyLog = "no diagnostic available"

// Stage names used in diagnostics.
const (
	StageVertex   = "vertex"
	StageFragment = "fragment"
	StageProgram  = "program"
)

// Kind tells compile failures from link failures.
type Kind int

const (
	CompileError Kind = iota
	LinkError
)

func (k Kind) String() string {
	if k == LinkError {
		return "link"
	}
	return "compile"
}

// Error carries a bounded diagnostic from the driver or the translator.
type Error struct {
	Kind  Kind
	Stage string
	Log   string
}

func (e *Error) Error() string {
	if e.Kind == LinkError {
		return fmt.Sprintf("failed to link shader program: %s", e.Log)
	}
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// NewError builds an Error with the raw log bounded by Diagnostic.
func NewError(kind Kind, stage, raw string) *Error {
	return &Error{Kind: kind, Stage: stage, Log: Diagnostic(raw)}
}

// Diagnostic trims an info log to at most MaxLogLength bytes without splitting
// a UTF-8 sequence. The result is never empty.
func Diagnostic(raw string) string {
	log := strings.TrimRight(raw, "\x00 \t\r\n")
	if log == "" {
		return emptyLog
	}
	if len(log) <= MaxLogLength {
		return log
	}
	cut := MaxLogLength
	for cut > 0 && !utf8.RuneStart(log[cut]) {
		cut--
	}
	return log[:cut]
}
