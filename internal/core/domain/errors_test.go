package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrModelUnavailable", ErrModelUnavailable},
		{"ErrDecodeFailure", ErrDecodeFailure},
		{"ErrInferenceFailure", ErrInferenceFailure},
		{"ErrModelNotFound", ErrModelNotFound},
		{"ErrRuntimeUnavailable", ErrRuntimeUnavailable},
		{"ErrNoEvidence", ErrNoEvidence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestClassificationError_IsMatchesKindSentinel(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want error
	}{
		{ErrorKindModelUnavailable, ErrModelUnavailable},
		{ErrorKindDecodeFailure, ErrDecodeFailure},
		{ErrorKindInferenceFailure, ErrInferenceFailure},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := NewClassificationError(ModalityImage, tt.kind, errors.New("boom"))

			assert.True(t, errors.Is(err, tt.want))
			for _, other := range []error{ErrModelUnavailable, ErrDecodeFailure, ErrInferenceFailure} {
				if other != tt.want {
					assert.False(t, errors.Is(err, other))
				}
			}
		})
	}
}

func TestClassificationError_UnwrapsCause(t *testing.T) {
	err := NewClassificationError(ModalityAudio, ErrorKindModelUnavailable, ErrModelNotFound)

	assert.True(t, errors.Is(err, ErrModelNotFound))
	assert.Equal(t, "audio: model unavailable: model file not found", err.Error())
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewClassificationError(ModalityText, ErrorKindDecodeFailure, nil))

	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ErrorKindDecodeFailure, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)

	_, ok = KindOf(nil)
	assert.False(t, ok)
}

func TestFailedResult(t *testing.T) {
	err := NewClassificationError(ModalityImage, ErrorKindModelUnavailable, errors.New("missing mobilenet.onnx"))

	res := FailedResult(err)

	assert.Contains(t, res.Label, "Error")
	assert.Contains(t, res.Label, "model_unavailable")
	assert.Contains(t, res.Label, "missing mobilenet.onnx")
	assert.Equal(t, 0.0, res.Confidence)
}
