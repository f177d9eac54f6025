package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not available in this build.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown modality or encoding.
	ErrUnsupportedType = errors.New("unsupported type")

	// Classifier boundary errors. Every failure that crosses a classifier
	// is a ClassificationError matching exactly one of these.

	// ErrModelUnavailable indicates the model, tokenizer or weights could not be loaded.
	// It is recoverable: the next classify call retries the load.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrDecodeFailure indicates the raw input could not be turned into a tensor.
	ErrDecodeFailure = errors.New("decode failure")

	// ErrInferenceFailure indicates the forward pass failed or produced unusable logits.
	ErrInferenceFailure = errors.New("inference failure")

	// Model storage errors.

	// ErrModelNotFound indicates a weight file is missing and cannot be fetched.
	ErrModelNotFound = errors.New("model file not found")

	// ErrRuntimeUnavailable indicates the inference runtime library could not be initialised.
	ErrRuntimeUnavailable = errors.New("inference runtime unavailable")

	// Fusion errors.

	// ErrNoEvidence indicates a fusion or analysis request carried no evidence items.
	ErrNoEvidence = errors.New("no evidence submitted")
)
