package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driven"
	"github.com/custodia-labs/hoaxlens/internal/logger"
)

// Loader produces a loaded model on a device.
type Loader[T any] func(ctx context.Context, device domain.Device) (T, error)

// ModelHandle lazily loads a model exactly once.
//
// The first EnsureLoaded (or Model) call selects the device, runs the loader
// and memoizes the result. A failed load is recorded but not cached: the next
// call retries. Concurrent callers block on the load and observe its outcome,
// so the loader never runs twice for one successful initialization.
type ModelHandle[T any] struct {
	modality     domain.Modality
	name         string
	selectDevice func() domain.Device
	load         Loader[T]
	now          func() time.Time

	// loadMu is held across a load; mu guards the fields below.
	loadMu sync.Mutex
	mu     sync.Mutex

	state          domain.LoadState
	device         domain.Device
	deviceSelected bool
	value          T
	attempts       int
	lastErr        error
	loadedAt       time.Time
}

// NewModelHandle creates an unloaded handle.
// selectDevice may be nil, in which case the model runs on the CPU.
func NewModelHandle[T any](
	m domain.Modality, name string, selectDevice func() domain.Device, load Loader[T],
) *ModelHandle[T] {
	return &ModelHandle[T]{
		modality:     m,
		name:         name,
		selectDevice: selectDevice,
		load:         load,
		now:          time.Now,
		state:        domain.LoadStateUnloaded,
	}
}

// EnsureLoaded loads the model if it is not already loaded.
// Failures are returned as a model_unavailable ClassificationError.
func (h *ModelHandle[T]) EnsureLoaded(ctx context.Context) error {
	_, err := h.Model(ctx)
	return err
}

// Model returns the loaded model, loading it first if needed.
func (h *ModelHandle[T]) Model(ctx context.Context) (T, error) {
	if v, ok := h.ready(); ok {
		return v, nil
	}

	h.loadMu.Lock()
	defer h.loadMu.Unlock()

	// Another caller may have finished the load while we waited.
	if v, ok := h.ready(); ok {
		return v, nil
	}

	var zero T
	if err := ctx.Err(); err != nil {
		return zero, domain.NewClassificationError(h.modality, domain.ErrorKindModelUnavailable, err)
	}

	h.mu.Lock()
	if !h.deviceSelected {
		h.device = domain.DeviceCPU
		if h.selectDevice != nil {
			h.device = h.selectDevice()
		}
		h.deviceSelected = true
	}
	device := h.device
	h.state = domain.LoadStateLoading
	h.attempts++
	attempt := h.attempts
	h.mu.Unlock()

	logger.Debug("Loading %s model %q on %s (attempt %d)", h.modality, h.name, device, attempt)
	start := h.now()

	value, err := h.safeLoad(ctx, device)

	h.mu.Lock()
	defer h.mu.Unlock()

	if err != nil {
		h.state = domain.LoadStateFailed
		h.lastErr = err
		logger.Warn("Failed to load %s model %q: %v", h.modality, h.name, err)
		return zero, domain.NewClassificationError(h.modality, domain.ErrorKindModelUnavailable, err)
	}

	h.value = value
	h.state = domain.LoadStateReady
	h.lastErr = nil
	h.loadedAt = h.now()
	logger.Info("Loaded %s model %q on %s in %s", h.modality, h.name, device, h.loadedAt.Sub(start).Round(time.Millisecond))
	return value, nil
}

func (h *ModelHandle[T]) ready() (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == domain.LoadStateReady {
		return h.value, true
	}
	var zero T
	return zero, false
}

func (h *ModelHandle[T]) safeLoad(ctx context.Context, device domain.Device) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("loader panic: %v", r)
		}
	}()
	return h.load(ctx, device)
}

// Status returns a snapshot of the handle.
func (h *ModelHandle[T]) Status() domain.ModelStatus {
	h.mu.Lock()
	defer h.mu.Unlock()

	status := domain.ModelStatus{
		Modality: h.modality,
		Name:     h.name,
		State:    h.state,
		Attempts: h.attempts,
		LoadedAt: h.loadedAt,
	}
	if h.deviceSelected {
		status.Device = h.device
	}
	if h.lastErr != nil {
		status.LastError = h.lastErr.Error()
	}
	return status
}

// Close releases the loaded model and returns the handle to Unloaded.
// The selected device is kept for later loads.
func (h *ModelHandle[T]) Close() error {
	h.loadMu.Lock()
	defer h.loadMu.Unlock()

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state != domain.LoadStateReady {
		h.state = domain.LoadStateUnloaded
		return nil
	}

	var err error
	if c, ok := any(h.value).(io.Closer); ok {
		err = c.Close()
	}
	var zero T
	h.value = zero
	h.state = domain.LoadStateUnloaded
	h.loadedAt = time.Time{}
	return err
}

// SessionLoader resolves the weights of spec and opens an inference session.
func SessionLoader(
	resolver driven.ModelResolver, runtime driven.InferenceRuntime, spec domain.ModelSpec,
) Loader[driven.Session] {
	return func(ctx context.Context, device domain.Device) (driven.Session, error) {
		path, err := resolver.Resolve(ctx, spec.Weights)
		if err != nil {
			return nil, fmt.Errorf("resolve %s weights: %w", spec.Name, err)
		}
		session, err := runtime.Open(ctx, path, spec.Inputs, spec.Outputs, device)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		return session, nil
	}
}
