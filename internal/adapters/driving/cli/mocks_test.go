package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driving"
)

// mockAnalysis implements driving.AnalysisService for testing.
type mockAnalysis struct {
	items  map[domain.Modality]domain.EvidenceItem
	last   domain.RawInput
	sub    domain.Submission
	calls  int
	submit error
}

func (m *mockAnalysis) Classify(_ context.Context, mod domain.Modality, in domain.RawInput) (domain.EvidenceItem, error) {
	m.calls++
	m.last = in
	item, ok := m.items[mod]
	if !ok {
		return domain.EvidenceItem{}, domain.ErrUnsupportedType
	}
	return item, nil
}

func (m *mockAnalysis) Analyze(ctx context.Context, sub domain.Submission) (*domain.FusionReport, error) {
	m.sub = sub
	if m.submit != nil {
		return nil, m.submit
	}
	report := &domain.FusionReport{ID: "report-1", Verdict: domain.VerdictValid}
	for _, in := range sub.Inputs {
		item, _ := m.Classify(ctx, in.Modality, in.Input)
		report.Items = append(report.Items, item)
		switch {
		case item.Failed():
			report.Failed++
		default:
			report.Analyzed++
			if domain.IsNegativeFinding(item) {
				report.Verdict = domain.VerdictHoax
			}
		}
	}
	report.Inconclusive = report.Analyzed == 0
	return report, nil
}

// mockRegistry implements driving.ClassifierRegistry for testing.
type mockRegistry struct {
	statuses []domain.ModelStatus
	preload  error
	loaded   bool
}

func (m *mockRegistry) Get(domain.Modality) (driving.Classifier, bool) { return nil, false }
func (m *mockRegistry) Modalities() []domain.Modality { return domain.Modalities() }
func (m *mockRegistry) Statuses() []domain.ModelStatus { return m.statuses }
func (m *mockRegistry) Close() error { return nil }

func (m *mockRegistry) Preload(context.Context) error {
	m.loaded = true
	return m.preload
}

// mockSettings implements driving.SettingsService for testing.
type mockSettings struct {
	settings domain.AppSettings
	values   map[string]string
	invalid  error
}

func newMockSettings() *mockSettings {
	return &mockSettings{
		settings: domain.DefaultAppSettings(),
		values:   map[string]string{"runtime.device": "auto", "hub.offline": "false"},
	}
}

func (m *mockSettings) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettings) Save(s *domain.AppSettings) error {
	m.settings = *s
	return nil
}

func (m *mockSettings) Value(key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", errors.New("unknown setting")
	}
	return v, nil
}

func (m *mockSettings) Set(key, value string) error {
	if _, ok := m.values[key]; !ok {
		return errors.New("unknown setting")
	}
	m.values[key] = value
	return nil
}

func (m *mockSettings) Keys() []string {
	return []string{"hub.offline", "runtime.device"}
}

func (m *mockSettings) Validate() error {
	return m.invalid
}

func (m *mockSettings) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func classificationFailure(m domain.Modality, kind domain.ErrorKind) domain.EvidenceItem {
	err := domain.NewClassificationError(m, kind, errors.New("boom"))
	return domain.EvidenceItem{Modality: m, Result: domain.FailedResult(err), Err: err}
}

type testServices struct {
	analysis *mockAnalysis
	registry *mockRegistry
	settings *mockSettings
}

// setupTestServices installs mock services and resets command flags.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		analysis: &mockAnalysis{items: map[domain.Modality]domain.EvidenceItem{
			domain.ModalityText: {
				Modality: domain.ModalityText,
				Result:   domain.ClassificationResult{Label: "hoax", Confidence: 91.5},
			},
			domain.ModalityImage: {
				Modality:   domain.ModalityImage,
				Result:     domain.ClassificationResult{Label: "Valid", Confidence: 88},
				Attributes: map[string]string{"format": "png"},
			},
			domain.ModalityAudio: classificationFailure(domain.ModalityAudio, domain.ErrorKindDecodeFailure),
		}},
		registry: &mockRegistry{statuses: []domain.ModelStatus{
			{Modality: domain.ModalityText, Name: "bert-hoax-headline", State: domain.LoadStateReady, Device: domain.DeviceCPU},
			{Modality: domain.ModalityImage, Name: "mobilenet_v3_small", State: domain.LoadStateFailed, LastError: "model file not found"},
		}},
		settings: newMockSettings(),
	}

	old := services
	services = &Services{
		Settings: ts.settings,
		Analysis: ts.analysis,
		Registry: ts.registry,
	}
	return ts, func() {
		services = old
		classifyJSON = false
		analyzeJSON = false
		analyzeTexts = nil
		modelsJSON = false
	}
}
