// Package mcp provides an MCP (Model Context Protocol) server adapter for hoaxlens.
// It enables AI assistants to classify headlines, images and audio clips and to
// run multimodal hoax analysis locally.
package mcp

import "errors"

var (
	// ErrMissingAnalysisService is returned when the analysis service is not provided.
	ErrMissingAnalysisService = errors.New("mcp: analysis service is required")

	// ErrNoMedia is returned when a media tool gets neither a path nor data.
	ErrNoMedia = errors.New("mcp: either path or data is required")
)
