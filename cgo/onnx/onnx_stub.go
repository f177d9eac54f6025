//go:build !cgo

package onnx

import (
	"context"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driven"
)

// Ensure Runtime implements the interface.
var _ driven.InferenceRuntime = (*Runtime)(nil)

// Runtime owns the process-wide ONNX Runtime environment.
// This is a stub for builds without CGO.
type Runtime struct {
	libraryPath string
}

// New creates a runtime.
// This is a stub for builds without CGO.
func New(libraryPath string) *Runtime {
	return &Runtime{libraryPath: libraryPath}
}

// SelectDevice always resolves to the CPU.
func (r *Runtime) SelectDevice(_ domain.Device) domain.Device {
	return domain.DeviceCPU
}

// Open always fails: inference needs CGO.
func (r *Runtime) Open(_ context.Context, _ string, _, _ []string, _ domain.Device) (driven.Session, error) {
	return nil, domain.ErrRuntimeUnavailable
}

// Close is a no-op.
func (r *Runtime) Close() error {
	return nil
}
