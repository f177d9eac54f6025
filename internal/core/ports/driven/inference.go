package driven

import (
	"context"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
)

// InferenceRuntime opens exported model graphs for inference.
//
// Implementations:
//   - ONNX Runtime via cgo (cgo/onnx)
//   - A stub returning domain.ErrRuntimeUnavailable in builds without cgo
type InferenceRuntime interface {
	// SelectDevice resolves a preferred device to one the runtime can use.
	// DeviceAuto resolves to CUDA when an accelerator is available, else CPU.
	SelectDevice(preferred domain.Device) domain.Device

	// Open loads the graph at path with the given input and output names.
	// The returned session is read-only and safe for sequential reuse.
	Open(ctx context.Context, path string, inputs, outputs []string, device domain.Device) (Session, error)

	// Close releases the runtime environment.
	Close() error
}

// Session is a loaded model graph.
type Session interface {
	// Run executes one forward pass and returns the first output, flattened.
	// Inputs must be supplied in the order the session was opened with.
	Run(ctx context.Context, inputs []domain.Tensor) ([]float32, error)

	// Close releases the session.
	Close() error
}
