package driving

import (
	"context"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
)

// Classifier classifies one modality of media as authentic or manipulated.
//
// Classify never panics. On failure it returns a sentinel result (label
// containing "Error", confidence 0) together with a *domain.ClassificationError.
type Classifier interface {
	// Modality returns the media kind handled.
	Modality() domain.Modality

	// Classify runs preprocessing and inference on one raw input.
	Classify(ctx context.Context, in domain.RawInput) (domain.ClassificationResult, error)

	// EnsureLoaded loads the model if it is not already loaded.
	EnsureLoaded(ctx context.Context) error

	// Status returns a snapshot of the model handle.
	Status() domain.ModelStatus

	// Close releases the model.
	Close() error
}

// ClassifierRegistry holds the classifiers owned by the composition root.
type ClassifierRegistry interface {
	// Get returns the classifier for a modality.
	Get(m domain.Modality) (Classifier, bool)

	// Modalities returns the registered modalities in canonical order.
	Modalities() []domain.Modality

	// Statuses returns the status of every registered classifier.
	Statuses() []domain.ModelStatus

	// Preload loads every registered model, returning the first failure.
	// Models that fail stay retryable.
	Preload(ctx context.Context) error

	// Close releases every registered model.
	Close() error
}
