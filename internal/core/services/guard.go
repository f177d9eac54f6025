package services

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
	"github.com/custodia-labs/hoaxlens/internal/logger"
)

// fail returns the sentinel result paired with a classification error.
func fail(m domain.Modality, kind domain.ErrorKind, err error) (domain.ClassificationResult, error) {
	ce := domain.NewClassificationError(m, kind, err)
	return domain.FailedResult(ce), ce
}

// failWith normalises err to a classification error. Errors that already
// carry a kind keep it.
func failWith(m domain.Modality, kind domain.ErrorKind, err error) (domain.ClassificationResult, error) {
	var ce *domain.ClassificationError
	if errors.As(err, &ce) {
		return domain.FailedResult(ce), ce
	}
	return fail(m, kind, err)
}

// guard runs a classification and turns a panic into an inference failure.
func guard(
	m domain.Modality, fn func() (domain.ClassificationResult, error),
) (res domain.ClassificationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered panic in %s classifier: %v\n%s", m, r, debug.Stack())
			res, err = fail(m, domain.ErrorKindInferenceFailure, fmt.Errorf("panic: %v", r))
		}
	}()
	return fn()
}

// readPayload returns the media bytes of an input, reading Path when Data is empty.
func readPayload(in domain.RawInput) ([]byte, error) {
	if len(in.Data) > 0 {
		return in.Data, nil
	}
	if in.Path == "" {
		return nil, errors.New("empty input")
	}
	data, err := os.ReadFile(in.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", in.Path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s is empty", in.Path)
	}
	return data, nil
}
