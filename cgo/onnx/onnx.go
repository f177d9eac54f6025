//go:build cgo

package onnx

import (
	"context"
	"errors"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driven"
	"github.com/custodia-labs/hoaxlens/internal/logger"
)

// Ensure Runtime and Session implement the interfaces.
var (
	_ driven.InferenceRuntime = (*Runtime)(nil)
	_ driven.Session          = (*Session)(nil)
)

// Runtime owns the process-wide ONNX Runtime environment.
// The environment is initialised on first use.
type Runtime struct {
	mu          sync.Mutex
	libraryPath string
	initialized bool
	initErr     error
	cudaProbed  bool
	cudaOK      bool
}

// New creates a runtime. An empty libraryPath uses the platform default.
func New(libraryPath string) *Runtime {
	return &Runtime{libraryPath: libraryPath}
}

func (r *Runtime) init() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initLocked()
}

// initLocked initialises the environment (caller must hold lock).
// A failed initialisation is retried on the next call.
func (r *Runtime) initLocked() error {
	if r.initialized {
		return nil
	}
	if r.libraryPath != "" {
		ort.SetSharedLibraryPath(r.libraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		r.initErr = err
		return fmt.Errorf("%w: %v", domain.ErrRuntimeUnavailable, err)
	}
	r.initialized = true
	r.initErr = nil
	logger.Debug("ONNX Runtime initialised")
	return nil
}

// SelectDevice resolves the preferred device against what the runtime supports.
func (r *Runtime) SelectDevice(preferred domain.Device) domain.Device {
	if preferred == domain.DeviceCPU {
		return domain.DeviceCPU
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.initLocked(); err != nil {
		return domain.DeviceCPU
	}
	if !r.cudaProbed {
		r.cudaOK = probeCUDA() == nil
		r.cudaProbed = true
	}
	if r.cudaOK {
		return domain.DeviceCUDA
	}
	if preferred == domain.DeviceCUDA {
		logger.Warn("CUDA requested but unavailable, using CPU")
	}
	return domain.DeviceCPU
}

// probeCUDA checks whether the CUDA execution provider can be attached.
func probeCUDA() error {
	opts, err := ort.NewSessionOptions()
	if err != nil {
		return err
	}
	defer opts.Destroy()
	return appendCUDA(opts)
}

func appendCUDA(opts *ort.SessionOptions) error {
	cuda, err := ort.NewCUDAProviderOptions()
	if err != nil {
		return err
	}
	defer cuda.Destroy()
	return opts.AppendExecutionProviderCUDA(cuda)
}

// Open loads a model graph.
func (r *Runtime) Open(
	ctx context.Context, path string, inputs, outputs []string, device domain.Device,
) (driven.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.init(); err != nil {
		return nil, err
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, fmt.Errorf("%w: model %s needs input and output names", domain.ErrInvalidInput, path)
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("session options: %w", err)
	}
	defer opts.Destroy()

	if device == domain.DeviceCUDA {
		if err := appendCUDA(opts); err != nil {
			return nil, fmt.Errorf("enable cuda: %w", err)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(path, inputs, outputs, opts)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &Session{
		session: session,
		path:    path,
		inputs:  len(inputs),
		outputs: len(outputs),
	}, nil
}

// Close destroys the environment if it was initialised.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.initialized {
		return nil
	}
	r.initialized = false
	r.cudaProbed = false
	return ort.DestroyEnvironment()
}

// Session wraps a dynamic ONNX Runtime session.
type Session struct {
	mu      sync.Mutex
	session *ort.DynamicAdvancedSession
	path    string
	inputs  int
	outputs int
}

// Run executes one forward pass and returns the first output, flattened.
func (s *Session) Run(ctx context.Context, inputs []domain.Tensor) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(inputs) != s.inputs {
		return nil, fmt.Errorf("%s: expected %d inputs, got %d", s.path, s.inputs, len(inputs))
	}

	values := make([]ort.Value, 0, len(inputs))
	defer func() {
		for _, v := range values {
			_ = v.Destroy()
		}
	}()
	for _, t := range inputs {
		v, err := toValue(t)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	// Nil outputs are allocated by the runtime.
	outs := make([]ort.Value, s.outputs)
	defer func() {
		for _, v := range outs {
			if v != nil {
				_ = v.Destroy()
			}
		}
	}()

	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return nil, errors.New("session is closed")
	}
	err := s.session.Run(values, outs)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", s.path, err)
	}

	logits, ok := outs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("%s: first output is not a float32 tensor", s.path)
	}
	data := logits.GetData()
	out := make([]float32, len(data))
	copy(out, data)
	return out, nil
}

// Close destroys the session.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	err := s.session.Destroy()
	s.session = nil
	return err
}

func toValue(t domain.Tensor) (ort.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	shape := ort.NewShape(t.Shape...)
	if t.IsFloat() {
		return ort.NewTensor(shape, t.Float32)
	}
	return ort.NewTensor(shape, t.Int64)
}
