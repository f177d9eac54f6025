package driven

import (
	"context"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
)

// ImagePreprocessor decodes an encoded image into the image model's input tensor.
// The tensor has shape [1,3,224,224], normalized, channel-first.
type ImagePreprocessor interface {
	Prepare(data []byte) (domain.Tensor, error)
}

// ImageInspector extracts informational attributes from an encoded image.
// Attributes never influence classification.
type ImageInspector interface {
	Inspect(data []byte) (map[string]string, error)
}

// AudioPreprocessor decodes an audio clip into the audio model's input tensor.
// The tensor is mono, 16 kHz, shape [1,n] with n at most 160000.
type AudioPreprocessor interface {
	Prepare(ctx context.Context, data []byte) (domain.Tensor, error)
}
