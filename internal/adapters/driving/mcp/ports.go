package mcp

import (
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Analysis classifies inputs and fuses submissions.
	Analysis driving.AnalysisService

	// Registry reports model status. Optional.
	Registry driving.ClassifierRegistry
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}
