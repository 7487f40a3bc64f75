package domain

import (
	"fmt"
	"strings"
)

// CompileError is a diagnostic produced by a preprocessor, bundler or transform.
type CompileError struct {
	Task    string
	File    string
	Line    int
	Column  int
	Message string
	// Frame is an optional pre-rendered excerpt of the offending source.
	Frame string
}

// Error implements error.
func (e *CompileError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
			if e.Column > 0 {
				fmt.Fprintf(&b, ":%d", e.Column)
			}
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// Annotated renders the error with its source frame when one is available.
func (e *CompileError) Annotated() string {
	if e.Frame == "" {
		return e.Error()
	}
	return e.Error() + "\n" + strings.TrimRight(e.Frame, "\n")
}

// CommandError is a non-zero exit of an external program.
type CommandError struct {
	Program  string
	ExitCode int
	// Output is the program's diagnostic output, stderr preferred over stdout.
	Output string
}

// Error implements error.
func (e *CommandError) Error() string {
	return e.Output
}
