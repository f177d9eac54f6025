package domain

import (
	"errors"
	"fmt"
)

// ClassificationResult is the output of one classifier call.
// Confidence is a percentage in [0, 100] and is always defined:
// a failed call reports 0 with an error-carrying label.
type ClassificationResult struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// ErrorKind categorises failures at the classifier boundary.
type ErrorKind string

// Failure categories.
const (
	// ErrorKindModelUnavailable means the model could not be loaded; retried on the next call.
	ErrorKindModelUnavailable ErrorKind = "model_unavailable"

	// ErrorKindDecodeFailure means the raw input was malformed.
	ErrorKindDecodeFailure ErrorKind = "decode_failure"

	// ErrorKindInferenceFailure means the forward pass failed.
	ErrorKindInferenceFailure ErrorKind = "inference_failure"
)

// String returns the string representation.
func (k ErrorKind) String() string {
	return string(k)
}

// sentinel returns the package error matched by errors.Is for this kind.
func (k ErrorKind) sentinel() error {
	switch k {
	case ErrorKindModelUnavailable:
		return ErrModelUnavailable
	case ErrorKindDecodeFailure:
		return ErrDecodeFailure
	case ErrorKindInferenceFailure:
		return ErrInferenceFailure
	default:
		return nil
	}
}

// ClassificationError is the only error type a classifier returns.
type ClassificationError struct {
	Kind     ErrorKind
	Modality Modality
	Err      error
}

// NewClassificationError wraps err with a failure kind.
func NewClassificationError(m Modality, kind ErrorKind, err error) *ClassificationError {
	return &ClassificationError{Kind: kind, Modality: m, Err: err}
}

// Error implements error.
func (e *ClassificationError) Error() string {
	msg := e.Kind.sentinel()
	if msg == nil {
		msg = errors.New(string(e.Kind))
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Modality, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Modality, msg, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error of the failure kind.
func (e *ClassificationError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the failure kind carried by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var ce *ClassificationError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}

// ErrorLabel renders the sentinel label shown in place of a class name when
// classification failed. It always contains the word "Error".
func ErrorLabel(err error) string {
	var ce *ClassificationError
	if errors.As(err, &ce) {
		if ce.Err != nil {
			return fmt.Sprintf("Error: %s: %s", ce.Kind, ce.Err)
		}
		return fmt.Sprintf("Error: %s", ce.Kind)
	}
	return fmt.Sprintf("Error: %s", err)
}

// FailedResult returns the sentinel result paired with err.
func FailedResult(err error) ClassificationResult {
	return ClassificationResult{Label: ErrorLabel(err), Confidence: 0}
}
