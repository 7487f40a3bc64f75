package ports

import (
	"context"
	"io"
)

// Invocation describes one external process run.
type Invocation struct {
	// Program is the executable name or path.
	Program string
	Args    []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Stdin is fed to the process when non-nil.
	Stdin io.Reader
}

// Executor defines the interface for running external compilers.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs inv and returns its standard output.
	// A non-zero exit is returned as an error carrying the captured standard error.
	Execute(ctx context.Context, inv Invocation) ([]byte, error)
}
