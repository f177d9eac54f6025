package driving

import (
	"context"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
)

// AnalysisService runs media through classifiers and fuses the results.
type AnalysisService interface {
	// Analyze classifies every input of a submission in order and fuses them.
	// Classification failures are recorded on the evidence items; the returned
	// error is reserved for invalid submissions.
	Analyze(ctx context.Context, sub domain.Submission) (*domain.FusionReport, error)

	// Classify classifies a single input. The item's Err carries any
	// classification failure; the returned error is reserved for an
	// unsupported modality.
	Classify(ctx context.Context, m domain.Modality, in domain.RawInput) (domain.EvidenceItem, error)
}
