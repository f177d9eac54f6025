package driving

import "github.com/custodia-labs/hoaxlens/internal/core/domain"

// FusionService combines per-modality evidence into one verdict.
type FusionService interface {
	// Aggregate fuses items (in submission order) into a report.
	// Returns domain.ErrNoEvidence for an empty input.
	Aggregate(items []domain.EvidenceItem) (*domain.FusionReport, error)
}
