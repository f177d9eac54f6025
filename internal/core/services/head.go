package services

import (
	"fmt"
	"math"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
)

// softmax converts logits to probabilities.
func softmax(logits []float32) []float64 {
	maxLogit := math.Inf(-1)
	for _, l := range logits {
		maxLogit = math.Max(maxLogit, float64(l))
	}
	probs := make([]float64, len(logits))
	var sum float64
	for i, l := range logits {
		probs[i] = math.Exp(float64(l) - maxLogit)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// decide maps a two-class head's logits to a label and a percentage confidence.
func decide(m domain.Modality, labels domain.LabelSet, logits []float32) (domain.ClassificationResult, error) {
	if len(logits) != domain.NumClasses {
		return fail(m, domain.ErrorKindInferenceFailure,
			fmt.Errorf("expected %d logits, got %d", domain.NumClasses, len(logits)))
	}
	for _, l := range logits {
		if math.IsNaN(float64(l)) || math.IsInf(float64(l), 0) {
			return fail(m, domain.ErrorKindInferenceFailure, fmt.Errorf("non-finite logits %v", logits))
		}
	}

	probs := softmax(logits)
	best := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}

	label, _ := labels.Name(best)
	return domain.ClassificationResult{
		Label:      label,
		Confidence: clampPercent(probs[best] * 100),
	}, nil
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
