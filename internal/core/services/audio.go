package services

import (
	"context"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driven"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driving"
)

// Ensure AudioClassifier implements the interface.
var _ driving.Classifier = (*AudioClassifier)(nil)

// AudioClassifier classifies speech clips as real or fake.
//
// Clips are read from memory, or from Path when Data is empty. The
// classifier never creates temporary files.
type AudioClassifier struct {
	spec       domain.ModelSpec
	preprocess driven.AudioPreprocessor
	handle     *ModelHandle[driven.Session]
}

// NewAudioClassifier creates an audio classifier. Nothing is loaded until first use.
func NewAudioClassifier(
	spec domain.ModelSpec,
	resolver driven.ModelResolver,
	runtime driven.InferenceRuntime,
	preprocess driven.AudioPreprocessor,
	device domain.Device,
) *AudioClassifier {
	return &AudioClassifier{
		spec:       spec,
		preprocess: preprocess,
		handle: NewModelHandle(domain.ModalityAudio, spec.Name, func() domain.Device {
			return runtime.SelectDevice(device)
		}, SessionLoader(resolver, runtime, spec)),
	}
}

// Modality returns domain.ModalityAudio.
func (c *AudioClassifier) Modality() domain.Modality {
	return domain.ModalityAudio
}

// Classify decodes the clip and classifies it.
func (c *AudioClassifier) Classify(ctx context.Context, in domain.RawInput) (domain.ClassificationResult, error) {
	return guard(domain.ModalityAudio, func() (domain.ClassificationResult, error) {
		data, err := readPayload(in)
		if err != nil {
			return fail(domain.ModalityAudio, domain.ErrorKindDecodeFailure, err)
		}
		tensor, err := c.preprocess.Prepare(ctx, data)
		if err != nil {
			return fail(domain.ModalityAudio, domain.ErrorKindDecodeFailure, err)
		}
		if len(c.spec.Inputs) > 0 {
			tensor.Name = c.spec.Inputs[0]
		}

		session, err := c.handle.Model(ctx)
		if err != nil {
			return failWith(domain.ModalityAudio, domain.ErrorKindModelUnavailable, err)
		}

		logits, err := session.Run(ctx, []domain.Tensor{tensor})
		if err != nil {
			return fail(domain.ModalityAudio, domain.ErrorKindInferenceFailure, err)
		}
		return decide(domain.ModalityAudio, domain.AudioLabels, logits)
	})
}

// EnsureLoaded loads the model if needed.
func (c *AudioClassifier) EnsureLoaded(ctx context.Context) error {
	return c.handle.EnsureLoaded(ctx)
}

// Status returns the model status.
func (c *AudioClassifier) Status() domain.ModelStatus {
	return c.handle.Status()
}

// Close releases the model.
func (c *AudioClassifier) Close() error {
	return c.handle.Close()
}
