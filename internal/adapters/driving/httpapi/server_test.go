package httpapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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
	if sub.IsEmpty() {
		return nil, domain.ErrNoEvidence
	}
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

func (m *mockRegistry) Get(_ domain.Modality) (driving.Classifier, bool) { return nil, false }
func (m *mockRegistry) Modalities() []domain.Modality { return domain.Modalities() }
func (m *mockRegistry) Statuses() []domain.ModelStatus { return m.statuses }
func (m *mockRegistry) Preload(_ context.Context) error { return nil }
func (m *mockRegistry) Close() error { return nil }

func newTestServer(t *testing.T, analysis *mockAnalysisService) *Server {
	t.Helper()
	s, err := NewServer(&Ports{Analysis: analysis, Registry: &mockRegistry{
		statuses: []domain.ModelStatus{{Modality: domain.ModalityText, Name: "bert", State: domain.LoadStateReady}},
	}})
	require.NoError(t, err)
	return s
}

func do(t *testing.T, s *Server, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func multipartBody(t *testing.T, fields map[string][]string, files map[string][][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, values := range fields {
		for _, v := range values {
			require.NoError(t, mw.WriteField(name, v))
		}
	}
	for name, contents := range files {
		for _, content := range contents {
			fw, err := mw.CreateFormFile(name, name+".bin")
			require.NoError(t, err)
			_, err = fw.Write(content)
			require.NoError(t, err)
		}
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestNewServer_RequiresAnalysis(t *testing.T) {
	_, err := NewServer(&Ports{})

	assert.ErrorIs(t, err, ErrMissingAnalysisService)
}

func TestHealthAndModels(t *testing.T) {
	s := newTestServer(t, &mockAnalysisService{})

	rec, body := do(t, s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])

	rec, body = do(t, s, httptest.NewRequest(http.MethodGet, "/v1/models", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	models := body["models"].([]any)
	require.Len(t, models, 1)
	assert.Equal(t, "ready", models[0].(map[string]any)["state"])

	rec, body = do(t, s, httptest.NewRequest(http.MethodGet, "/v1/indicators", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["indicators"], len(domain.HoaxIndicators()))
}

func TestClassify_Text(t *testing.T) {
	analysis := &mockAnalysisService{item: domain.EvidenceItem{Result: domain.ClassificationResult{Label: "valid", Confidence: 93}}}
	s := newTestServer(t, analysis)

	req := httptest.NewRequest(http.MethodPost, "/v1/classify/text", strings.NewReader(`{"text":"Council approves budget"}`))
	req.Header.Set("Content-Type", "application/json")
	rec, body := do(t, s, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text", body["modality"])
	assert.Equal(t, "valid", body["result"].(map[string]any)["label"])
	assert.Equal(t, "Council approves budget", analysis.classified[0].Text)
}

func TestClassify_ImageMultipart(t *testing.T) {
	analysis := &mockAnalysisService{item: domain.EvidenceItem{Result: domain.ClassificationResult{Label: "Hoax", Confidence: 81}}}
	s := newTestServer(t, analysis)

	buf, ct := multipartBody(t, nil, map[string][][]byte{"file": {[]byte("\x89PNG fake")}})
	req := httptest.NewRequest(http.MethodPost, "/v1/classify/image", buf)
	req.Header.Set("Content-Type", ct)
	rec, body := do(t, s, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image", body["modality"])
	assert.Equal(t, []byte("\x89PNG fake"), analysis.classified[0].Data)
}

func TestClassify_AudioRawBody(t *testing.T) {
	analysis := &mockAnalysisService{item: domain.EvidenceItem{Result: domain.ClassificationResult{Label: "Real", Confidence: 55}}}
	s := newTestServer(t, analysis)

	req := httptest.NewRequest(http.MethodPost, "/v1/classify/audio", bytes.NewReader([]byte("RIFF")))
	req.Header.Set("Content-Type", "audio/wav")
	rec, _ := do(t, s, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []byte("RIFF"), analysis.classified[0].Data)
}

func TestClassify_FailureStatus(t *testing.T) {
	tests := []struct {
		kind domain.ErrorKind
		want int
	}{
		{domain.ErrorKindDecodeFailure, http.StatusUnprocessableEntity},
		{domain.ErrorKindModelUnavailable, http.StatusServiceUnavailable},
		{domain.ErrorKindInferenceFailure, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			err := domain.NewClassificationError(domain.ModalityAudio, tt.kind, errors.New("boom"))
			analysis := &mockAnalysisService{item: domain.EvidenceItem{Result: domain.FailedResult(err), Err: err}}
			s := newTestServer(t, analysis)

			req := httptest.NewRequest(http.MethodPost, "/v1/classify/audio", bytes.NewReader([]byte("x")))
			rec, body := do(t, s, req)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, string(tt.kind), body["error_kind"])
			assert.Equal(t, float64(0), body["result"].(map[string]any)["confidence"])
		})
	}
}

func TestClassify_UnknownModality(t *testing.T) {
	s := newTestServer(t, &mockAnalysisService{})

	rec, body := do(t, s, httptest.NewRequest(http.MethodPost, "/v1/classify/video", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, body["error"], "video")
}

func TestClassify_BadTextBody(t *testing.T) {
	s := newTestServer(t, &mockAnalysisService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/classify/text", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec, _ := do(t, s, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze_JSONKeepsOrder(t *testing.T) {
	analysis := &mockAnalysisService{report: &domain.FusionReport{
		ID:       "r-1",
		Verdict:  domain.VerdictValid,
		Analyzed: 2,
		Items: []domain.EvidenceItem{
			{Modality: domain.ModalityAudio, Result: domain.ClassificationResult{Label: "Real", Confidence: 70}},
			{Modality: domain.ModalityText, Result: domain.ClassificationResult{Label: "valid", Confidence: 80}},
		},
	}}
	s := newTestServer(t, analysis)

	payload := `{"items":[{"modality":"audio","data":"` + base64.StdEncoding.EncodeToString([]byte("RIFF")) +
		`"},{"modality":"text","text":"Rain expected"}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec, body := do(t, s, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "valid", body["verdict"])
	assert.Equal(t, "Indication of valid evidence", body["description"])
	require.Len(t, analysis.submitted.Inputs, 2)
	assert.Equal(t, domain.ModalityAudio, analysis.submitted.Inputs[0].Modality)
	assert.Equal(t, []byte("RIFF"), analysis.submitted.Inputs[0].Input.Data)
	assert.Equal(t, domain.ModalityText, analysis.submitted.Inputs[1].Modality)
}

func TestAnalyze_Multipart(t *testing.T) {
	analysis := &mockAnalysisService{report: &domain.FusionReport{ID: "r-2", Verdict: domain.VerdictHoax}}
	s := newTestServer(t, analysis)

	buf, ct := multipartBody(t,
		map[string][]string{"text": {"Shark found in flooded street"}},
		map[string][][]byte{"audio": {[]byte("mp3")}, "image": {[]byte("png")}},
	)
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", buf)
	req.Header.Set("Content-Type", ct)
	rec, body := do(t, s, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hoax", body["verdict"])
	require.Len(t, analysis.submitted.Inputs, 3)
	assert.Equal(t, domain.ModalityText, analysis.submitted.Inputs[0].Modality)
	assert.Equal(t, domain.ModalityImage, analysis.submitted.Inputs[1].Modality)
	assert.Equal(t, domain.ModalityAudio, analysis.submitted.Inputs[2].Modality)
}

func TestAnalyze_Errors(t *testing.T) {
	s := newTestServer(t, &mockAnalysisService{})

	t.Run("empty submission", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(`{"items":[]}`))
		req.Header.Set("Content-Type", "application/json")
		rec, body := do(t, s, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, body["error"], "no evidence")
	})

	t.Run("invalid base64", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/analyze",
			strings.NewReader(`{"items":[{"modality":"image","data":"@@"}]}`))
		req.Header.Set("Content-Type", "application/json")
		rec, _ := do(t, s, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrNoEvidence))
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrUnsupportedType))
	assert.Equal(t, http.StatusInternalServerError, statusFor(context.Canceled))
}
