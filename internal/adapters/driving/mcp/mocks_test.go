package mcp

import (
	"context"
	"errors"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driving"
)

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	item       domain.EvidenceItem
	report     *domain.FusionReport
	err        error
	classified []domain.RawInput
	submitted  domain.Submission
}

func (m *mockAnalysisService) Analyze(_ context.Context, sub domain.Submission) (*domain.FusionReport, error) {
	m.submitted = sub
	return m.report, m.err
}

func (m *mockAnalysisService) Classify(
	_ context.Context,
	mod domain.Modality,
	in domain.RawInput,
) (domain.EvidenceItem, error) {
	m.classified = append(m.classified, in)
	if m.err != nil {
		return domain.EvidenceItem{}, m.err
	}
	item := m.item
	item.Modality = mod
	return item, nil
}

// mockRegistry is a mock implementation of driving.ClassifierRegistry.
type mockRegistry struct {
	statuses []domain.ModelStatus
}

func (m *mockRegistry) Get(_ domain.Modality) (driving.Classifier, bool) {
	return nil, false
}

func (m *mockRegistry) Modalities() []domain.Modality {
	return domain.Modalities()
}

func (m *mockRegistry) Statuses() []domain.ModelStatus {
	return m.statuses
}

func (m *mockRegistry) Preload(_ context.Context) error {
	return nil
}

func (m *mockRegistry) Close() error {
	return nil
}

// failedItem builds an evidence item carrying a classification error.
func failedItem(mod domain.Modality, kind domain.ErrorKind, msg string) domain.EvidenceItem {
	err := domain.NewClassificationError(mod, kind, errors.New(msg))
	return domain.EvidenceItem{Modality: mod, Result: domain.FailedResult(err), Err: err}
}
