package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driven"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driving"
	"github.com/custodia-labs/hoaxlens/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisService runs submissions through the registered classifiers and
// fuses the evidence.
type AnalysisService struct {
	registry  driving.ClassifierRegistry
	fusion    driving.FusionService
	inspector driven.ImageInspector
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(registry driving.ClassifierRegistry, fusion driving.FusionService) *AnalysisService {
	return &AnalysisService{
		registry: registry,
		fusion:   fusion,
	}
}

// SetImageInspector sets the optional inspector for image evidence attributes.
func (s *AnalysisService) SetImageInspector(inspector driven.ImageInspector) {
	s.inspector = inspector
}

// Analyze classifies every input in submission order and fuses the results.
func (s *AnalysisService) Analyze(ctx context.Context, sub domain.Submission) (*domain.FusionReport, error) {
	if sub.IsEmpty() {
		return nil, domain.ErrNoEvidence
	}

	logger.Section("Analysis")
	items := make([]domain.EvidenceItem, 0, len(sub.Inputs))
	for i, in := range sub.Inputs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("analysis interrupted after %d of %d inputs: %w", i, len(sub.Inputs), err)
		}
		item, err := s.Classify(ctx, in.Modality, in.Input)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		items = append(items, item)
	}

	return s.fusion.Aggregate(items)
}

// Classify classifies one input. A modality without a registered classifier
// yields a model_unavailable item.
func (s *AnalysisService) Classify(
	ctx context.Context, m domain.Modality, in domain.RawInput,
) (domain.EvidenceItem, error) {
	if !m.IsValid() {
		return domain.EvidenceItem{}, fmt.Errorf("%w: modality %q", domain.ErrUnsupportedType, m)
	}

	item := domain.EvidenceItem{Modality: m}

	c, ok := s.registry.Get(m)
	if !ok {
		err := domain.NewClassificationError(m, domain.ErrorKindModelUnavailable,
			errors.New("no classifier registered"))
		item.Result = domain.FailedResult(err)
		item.Err = err
		logger.Warn("No %s classifier registered", m)
		return item, nil
	}

	item.Result, item.Err = c.Classify(ctx, in)
	if item.Err != nil {
		logger.Warn("%s classification failed: %v", m, item.Err)
	} else {
		logger.Debug("%s classified as %q (%.2f%%)", m, item.Result.Label, item.Result.Confidence)
	}

	if m == domain.ModalityImage && s.inspector != nil {
		item.Attributes = s.inspect(in)
	}
	return item, nil
}

func (s *AnalysisService) inspect(in domain.RawInput) map[string]string {
	data, err := readPayload(in)
	if err != nil {
		return nil
	}
	attrs, err := s.inspector.Inspect(data)
	if err != nil {
		logger.Debug("Image inspection skipped: %v", err)
		return nil
	}
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}
