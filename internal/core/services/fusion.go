package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driving"
	"github.com/custodia-labs/hoaxlens/internal/logger"
)

// Ensure FusionService implements the interface.
var _ driving.FusionService = (*FusionService)(nil)

// FusionService combines evidence with a logical OR: one negative finding
// makes the whole submission a hoax. There are no weights, thresholds or
// confidence averages, and failed items never count as findings.
type FusionService struct {
	now   func() time.Time
	newID func() string
}

// NewFusionService creates a new fusion service.
func NewFusionService() *FusionService {
	return &FusionService{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Aggregate fuses items into a report.
func (s *FusionService) Aggregate(items []domain.EvidenceItem) (*domain.FusionReport, error) {
	if len(items) == 0 {
		return nil, domain.ErrNoEvidence
	}

	report := &domain.FusionReport{
		ID:        s.newID(),
		CreatedAt: s.now(),
		Items:     append([]domain.EvidenceItem(nil), items...),
		Verdict:   domain.VerdictValid,
	}

	for _, item := range items {
		if item.Failed() {
			report.Failed++
			continue
		}
		report.Analyzed++
		if domain.IsNegativeFinding(item) {
			report.Verdict = domain.VerdictHoax
		}
	}
	report.Inconclusive = report.Analyzed == 0

	logger.Debug("Fused %d items: verdict=%s analyzed=%d failed=%d",
		len(items), report.Verdict, report.Analyzed, report.Failed)
	return report, nil
}
