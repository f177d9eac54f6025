package services

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		labels    domain.LabelSet
		logits    []float32
		wantLabel string
	}{
		{"text hoax", domain.TextLabels, []float32{2.5, -1}, "hoax"},
		{"text valid", domain.TextLabels, []float32{-3, 4}, "valid"},
		{"image valid", domain.ImageLabels, []float32{1.2, 0.3}, "Valid"},
		{"image hoax", domain.ImageLabels, []float32{0.1, 0.9}, "Hoax"},
		{"audio fake", domain.AudioLabels, []float32{-0.5, 3}, "Fake"},
		{"tie picks first index", domain.AudioLabels, []float32{1, 1}, "Real"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := decide(domain.ModalityText, tt.labels, tt.logits)

			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, res.Label)
			assert.True(t, tt.labels.Contains(res.Label))
			assert.GreaterOrEqual(t, res.Confidence, 50.0)
			assert.LessOrEqual(t, res.Confidence, 100.0)
		})
	}
}

func TestDecide_ExtremeLogitsStayInRange(t *testing.T) {
	res, err := decide(domain.ModalityImage, domain.ImageLabels, []float32{-1e30, 1e30})

	require.NoError(t, err)
	assert.Equal(t, "Hoax", res.Label)
	assert.InDelta(t, 100.0, res.Confidence, 1e-9)
}

func TestDecide_InvalidLogits(t *testing.T) {
	tests := []struct {
		name   string
		logits []float32
	}{
		{"too few", []float32{1}},
		{"too many", []float32{1, 2, 3}},
		{"nan", []float32{float32(math.NaN()), 1}},
		{"inf", []float32{float32(math.Inf(1)), 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := decide(domain.ModalityAudio, domain.AudioLabels, tt.logits)

			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInferenceFailure))
			assert.Contains(t, res.Label, "Error")
			assert.Equal(t, 0.0, res.Confidence)
		})
	}
}

func TestSoftmax_SumsToOne(t *testing.T) {
	probs := softmax([]float32{0.3, -2.1})

	assert.InDelta(t, 1.0, probs[0]+probs[1], 1e-12)
	assert.Greater(t, probs[0], probs[1])
}
