package services

import (
	"context"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driven"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driving"
)

// Ensure ImageClassifier implements the interface.
var _ driving.Classifier = (*ImageClassifier)(nil)

// ImageClassifier classifies still images as valid or hoax.
type ImageClassifier struct {
	spec       domain.ModelSpec
	preprocess driven.ImagePreprocessor
	handle     *ModelHandle[driven.Session]
}

// NewImageClassifier creates an image classifier. Nothing is loaded until first use.
func NewImageClassifier(
	spec domain.ModelSpec,
	resolver driven.ModelResolver,
	runtime driven.InferenceRuntime,
	preprocess driven.ImagePreprocessor,
	device domain.Device,
) *ImageClassifier {
	return &ImageClassifier{
		spec:       spec,
		preprocess: preprocess,
		handle: NewModelHandle(domain.ModalityImage, spec.Name, func() domain.Device {
			return runtime.SelectDevice(device)
		}, SessionLoader(resolver, runtime, spec)),
	}
}

// Modality returns domain.ModalityImage.
func (c *ImageClassifier) Modality() domain.Modality {
	return domain.ModalityImage
}

// Classify decodes the image in Data (or at Path) and classifies it.
func (c *ImageClassifier) Classify(ctx context.Context, in domain.RawInput) (domain.ClassificationResult, error) {
	return guard(domain.ModalityImage, func() (domain.ClassificationResult, error) {
		data, err := readPayload(in)
		if err != nil {
			return fail(domain.ModalityImage, domain.ErrorKindDecodeFailure, err)
		}
		tensor, err := c.preprocess.Prepare(data)
		if err != nil {
			return fail(domain.ModalityImage, domain.ErrorKindDecodeFailure, err)
		}
		if len(c.spec.Inputs) > 0 {
			tensor.Name = c.spec.Inputs[0]
		}

		session, err := c.handle.Model(ctx)
		if err != nil {
			return failWith(domain.ModalityImage, domain.ErrorKindModelUnavailable, err)
		}

		logits, err := session.Run(ctx, []domain.Tensor{tensor})
		if err != nil {
			return fail(domain.ModalityImage, domain.ErrorKindInferenceFailure, err)
		}
		return decide(domain.ModalityImage, domain.ImageLabels, logits)
	})
}

// EnsureLoaded loads the model if needed.
func (c *ImageClassifier) EnsureLoaded(ctx context.Context) error {
	return c.handle.EnsureLoaded(ctx)
}

// Status returns the model status.
func (c *ImageClassifier) Status() domain.ModelStatus {
	return c.handle.Status()
}

// Close releases the model.
func (c *ImageClassifier) Close() error {
	return c.handle.Close()
}
