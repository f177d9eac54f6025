package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockSession implements driven.Session for testing.
type mockSession struct {
	mu     sync.Mutex
	logits []float32
	runErr error
	panics bool
	inputs [][]domain.Tensor
	closed bool
}

func (m *mockSession) Run(_ context.Context, inputs []domain.Tensor) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.panics {
		panic("session exploded")
	}
	m.inputs = append(m.inputs, inputs)
	if m.runErr != nil {
		return nil, m.runErr
	}
	return m.logits, nil
}

func (m *mockSession) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockSession) lastInputs() []domain.Tensor {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.inputs) == 0 {
		return nil
	}
	return m.inputs[len(m.inputs)-1]
}

// mockRuntime implements driven.InferenceRuntime for testing.
type mockRuntime struct {
	session  *mockSession
	openErr  error
	device   domain.Device
	opens    atomic.Int32
	selects  atomic.Int32
	lastPath string
	mu       sync.Mutex
}

func newMockRuntime(logits ...float32) *mockRuntime {
	return &mockRuntime{session: &mockSession{logits: logits}, device: domain.DeviceCPU}
}

func (m *mockRuntime) SelectDevice(_ domain.Device) domain.Device {
	m.selects.Add(1)
	return m.device
}

func (m *mockRuntime) Open(
	_ context.Context, path string, _, _ []string, _ domain.Device,
) (driven.Session, error) {
	m.opens.Add(1)
	m.mu.Lock()
	m.lastPath = path
	err := m.openErr
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return m.session, nil
}

func (m *mockRuntime) setOpenErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openErr = err
}

func (m *mockRuntime) Close() error {
	return nil
}

// mockResolver implements driven.ModelResolver for testing.
type mockResolver struct {
	missing map[string]bool
}

func (m *mockResolver) Resolve(_ context.Context, a domain.Artifact) (string, error) {
	if m.missing[a.File] {
		return "", errors.New("model file not found: " + a.File)
	}
	return "/assets/" + a.Modality.AssetDir() + "/" + a.File, nil
}

// mockTokenizer implements driven.Tokenizer for testing.
// Each whitespace-free rune becomes one token between CLS (101) and SEP (102).
type mockTokenizer struct {
	encodeErr error
}

func (m *mockTokenizer) Encode(text string) (domain.Encoding, error) {
	if m.encodeErr != nil {
		return domain.Encoding{}, m.encodeErr
	}
	enc := domain.Encoding{IDs: []int64{101}}
	for _, r := range text {
		if r == ' ' {
			continue
		}
		enc.IDs = append(enc.IDs, 1000+int64(r))
	}
	enc.IDs = append(enc.IDs, 102)
	enc.TypeIDs = make([]int64, len(enc.IDs))
	enc.AttentionMask = make([]int64, len(enc.IDs))
	for i := range enc.AttentionMask {
		enc.AttentionMask[i] = 1
	}
	return enc, nil
}

func (m *mockTokenizer) PadID() int64 {
	return 0
}

// mockTokenizerLoader implements driven.TokenizerLoader for testing.
type mockTokenizerLoader struct {
	tokenizer *mockTokenizer
	loadErr   error
	loads     atomic.Int32
}

func (m *mockTokenizerLoader) Load(_ string) (driven.Tokenizer, error) {
	m.loads.Add(1)
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.tokenizer, nil
}

// mockImagePreprocessor implements driven.ImagePreprocessor for testing.
type mockImagePreprocessor struct {
	err error
}

func (m *mockImagePreprocessor) Prepare(_ []byte) (domain.Tensor, error) {
	if m.err != nil {
		return domain.Tensor{}, m.err
	}
	return domain.NewFloatTensor("input", make([]float32, 3*224*224), 1, 3, 224, 224), nil
}

// mockImageInspector implements driven.ImageInspector for testing.
type mockImageInspector struct {
	attrs map[string]string
	err   error
}

func (m *mockImageInspector) Inspect(_ []byte) (map[string]string, error) {
	return m.attrs, m.err
}

// mockAudioPreprocessor implements driven.AudioPreprocessor for testing.
type mockAudioPreprocessor struct {
	err error
}

func (m *mockAudioPreprocessor) Prepare(_ context.Context, data []byte) (domain.Tensor, error) {
	if m.err != nil {
		return domain.Tensor{}, m.err
	}
	return domain.NewFloatTensor("input_values", make([]float32, len(data)), 1, int64(len(data))), nil
}

// mockClassifier implements driving.Classifier for testing.
type mockClassifier struct {
	modality domain.Modality
	result   domain.ClassificationResult
	err      error
	loadErr  error
	calls    int
	closed   bool
}

func (m *mockClassifier) Modality() domain.Modality {
	return m.modality
}

func (m *mockClassifier) Classify(_ context.Context, _ domain.RawInput) (domain.ClassificationResult, error) {
	m.calls++
	if m.err != nil {
		return domain.FailedResult(m.err), m.err
	}
	return m.result, nil
}

func (m *mockClassifier) EnsureLoaded(_ context.Context) error {
	return m.loadErr
}

func (m *mockClassifier) Status() domain.ModelStatus {
	state := domain.LoadStateReady
	if m.loadErr != nil {
		state = domain.LoadStateFailed
	}
	return domain.ModelStatus{Modality: m.modality, Name: "mock-" + m.modality.String(), State: state}
}

func (m *mockClassifier) Close() error {
	m.closed = true
	return nil
}

func okClassifier(m domain.Modality, label string, confidence float64) *mockClassifier {
	return &mockClassifier{modality: m, result: domain.ClassificationResult{Label: label, Confidence: confidence}}
}

func failingClassifier(m domain.Modality, kind domain.ErrorKind) *mockClassifier {
	return &mockClassifier{modality: m, err: domain.NewClassificationError(m, kind, errors.New("mock failure"))}
}
