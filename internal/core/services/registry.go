package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driving"
	"github.com/custodia-labs/hoaxlens/internal/logger"
)

// Ensure ClassifierRegistry implements the interface.
var _ driving.ClassifierRegistry = (*ClassifierRegistry)(nil)

// ClassifierRegistry holds one classifier per modality.
// It is created by the composition root and passed to the shells.
type ClassifierRegistry struct {
	mu          sync.RWMutex
	classifiers map[domain.Modality]driving.Classifier
}

// NewClassifierRegistry creates a registry holding the given classifiers.
func NewClassifierRegistry(classifiers ...driving.Classifier) (*ClassifierRegistry, error) {
	r := &ClassifierRegistry{
		classifiers: make(map[domain.Modality]driving.Classifier),
	}
	for _, c := range classifiers {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a classifier. Each modality may be registered once.
func (r *ClassifierRegistry) Register(c driving.Classifier) error {
	m := c.Modality()
	if !m.IsValid() {
		return fmt.Errorf("%w: modality %q", domain.ErrUnsupportedType, m)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.classifiers[m]; exists {
		return fmt.Errorf("%w: %s classifier already registered", domain.ErrInvalidInput, m)
	}
	r.classifiers[m] = c
	return nil
}

// Get returns the classifier for a modality.
func (r *ClassifierRegistry) Get(m domain.Modality) (driving.Classifier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classifiers[m]
	return c, ok
}

// Modalities returns the registered modalities in canonical order.
func (r *ClassifierRegistry) Modalities() []domain.Modality {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Modality
	for _, m := range domain.Modalities() {
		if _, ok := r.classifiers[m]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Statuses returns the status of every registered classifier.
func (r *ClassifierRegistry) Statuses() []domain.ModelStatus {
	modalities := r.Modalities()
	out := make([]domain.ModelStatus, 0, len(modalities))
	for _, m := range modalities {
		c, _ := r.Get(m)
		out = append(out, c.Status())
	}
	return out
}

// Preload loads every registered model. Failures are joined; models that
// failed stay retryable.
func (r *ClassifierRegistry) Preload(ctx context.Context) error {
	logger.Section("Model Preload")
	var errs []error
	for _, m := range r.Modalities() {
		c, _ := r.Get(m)
		if err := c.EnsureLoaded(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close releases every registered model.
func (r *ClassifierRegistry) Close() error {
	var errs []error
	for _, m := range r.Modalities() {
		c, _ := r.Get(m)
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", m, err))
		}
	}
	return errors.Join(errs...)
}
