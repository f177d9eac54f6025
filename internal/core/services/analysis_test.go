package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
)

func newTestAnalysis(t *testing.T, classifiers ...*mockClassifier) *AnalysisService {
	t.Helper()
	r, err := NewClassifierRegistry()
	require.NoError(t, err)
	for _, c := range classifiers {
		require.NoError(t, r.Register(c))
	}
	return NewAnalysisService(r, newTestFusion())
}

func TestAnalysisService_AnalyzeInSubmissionOrder(t *testing.T) {
	s := newTestAnalysis(t,
		okClassifier(domain.ModalityText, "valid", 90),
		okClassifier(domain.ModalityImage, "Hoax", 77),
		okClassifier(domain.ModalityAudio, "Real", 65),
	)
	var sub domain.Submission
	sub.Add(domain.ModalityAudio, domain.BytesInput([]byte{1})).
		Add(domain.ModalityText, domain.TextInput("headline")).
		Add(domain.ModalityImage, domain.BytesInput([]byte{2}))

	report, err := s.Analyze(context.Background(), sub)

	require.NoError(t, err)
	require.Len(t, report.Items, 3)
	assert.Equal(t, domain.ModalityAudio, report.Items[0].Modality)
	assert.Equal(t, domain.ModalityText, report.Items[1].Modality)
	assert.Equal(t, domain.ModalityImage, report.Items[2].Modality)
	assert.Equal(t, domain.VerdictHoax, report.Verdict)
}

func TestAnalysisService_EmptySubmission(t *testing.T) {
	s := newTestAnalysis(t)

	_, err := s.Analyze(context.Background(), domain.Submission{})

	assert.True(t, errors.Is(err, domain.ErrNoEvidence))
}

func TestAnalysisService_FailedClassifierRecorded(t *testing.T) {
	s := newTestAnalysis(t,
		okClassifier(domain.ModalityText, "valid", 90),
		failingClassifier(domain.ModalityImage, domain.ErrorKindModelUnavailable),
	)
	var sub domain.Submission
	sub.Add(domain.ModalityText, domain.TextInput("headline")).
		Add(domain.ModalityImage, domain.BytesInput([]byte{2}))

	report, err := s.Analyze(context.Background(), sub)

	require.NoError(t, err)
	assert.Equal(t, domain.VerdictValid, report.Verdict)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, domain.ErrorKindModelUnavailable, report.Items[1].ErrorKind())
	assert.Contains(t, report.Items[1].Result.Label, "Error")
}

func TestAnalysisService_MissingClassifierIsModelUnavailable(t *testing.T) {
	s := newTestAnalysis(t, okClassifier(domain.ModalityText, "valid", 90))

	it, err := s.Classify(context.Background(), domain.ModalityAudio, domain.BytesInput([]byte{1}))

	require.NoError(t, err)
	assert.True(t, it.Failed())
	assert.True(t, errors.Is(it.Err, domain.ErrModelUnavailable))
	assert.Equal(t, 0.0, it.Result.Confidence)
}

func TestAnalysisService_UnsupportedModality(t *testing.T) {
	s := newTestAnalysis(t)

	_, err := s.Classify(context.Background(), domain.Modality("video"), domain.BytesInput([]byte{1}))

	assert.True(t, errors.Is(err, domain.ErrUnsupportedType))
}

func TestAnalysisService_ImageAttributes(t *testing.T) {
	s := newTestAnalysis(t, okClassifier(domain.ModalityImage, "Valid", 90))
	s.SetImageInspector(&mockImageInspector{attrs: map[string]string{"phash": "d:ff00"}})

	it, err := s.Classify(context.Background(), domain.ModalityImage, domain.BytesInput([]byte{1}))

	require.NoError(t, err)
	assert.Equal(t, "d:ff00", it.Attributes["phash"])
}

func TestAnalysisService_InspectorErrorIgnored(t *testing.T) {
	s := newTestAnalysis(t, okClassifier(domain.ModalityImage, "Hoax", 90))
	s.SetImageInspector(&mockImageInspector{err: errors.New("no exif")})

	it, err := s.Classify(context.Background(), domain.ModalityImage, domain.BytesInput([]byte{1}))

	require.NoError(t, err)
	assert.Nil(t, it.Attributes)
	assert.Equal(t, "Hoax", it.Result.Label)
}

func TestAnalysisService_CancelledContext(t *testing.T) {
	text := okClassifier(domain.ModalityText, "valid", 90)
	s := newTestAnalysis(t, text)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var sub domain.Submission
	sub.Add(domain.ModalityText, domain.TextInput("headline"))

	_, err := s.Analyze(ctx, sub)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, text.calls)
}
