package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for hoaxlens resources.
	uriScheme = "hoaxlens://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "models",
		Name:        "models",
		Description: "Load status of every classifier model",
		MIMEType:    "application/json",
	}, s.handleModelsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "indicators",
		Name:        "indicators",
		Description: "Labels that count as a hoax finding",
		MIMEType:    "application/json",
	}, s.handleIndicatorsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "labels/{modality}",
		Name:        "modality-labels",
		Description: "Class labels of a modality's classifier, in logit order",
		MIMEType:    "application/json",
	}, s.handleLabelsResource)
}

// handleModelsResource returns the status of every registered model.
func (s *Server) handleModelsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	statuses := []domain.ModelStatus{}
	if s.ports.Registry != nil {
		statuses = s.ports.Registry.Statuses()
	}
	return jsonResource(req.Params.URI, statuses)
}

// handleIndicatorsResource returns the hoax indicator set.
func (s *Server) handleIndicatorsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, domain.HoaxIndicators())
}

// handleLabelsResource returns the label table of one modality.
func (s *Server) handleLabelsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract modality from URI: hoaxlens://labels/{modality}
	m := domain.Modality(extractModality(req.Params.URI))
	labels, ok := domain.LabelsFor(m)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	type labelInfo struct {
		Modality    string   `json:"modality"`
		Labels      []string `json:"labels"`
		Manipulated string   `json:"manipulated"`
	}
	return jsonResource(req.Params.URI, labelInfo{
		Modality:    m.String(),
		Labels:      labels.Names[:],
		Manipulated: labels.Manipulated(),
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractModality extracts the modality from a URI like hoaxlens://labels/{modality}.
func extractModality(uri string) string {
	const prefix = uriScheme + "labels/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
