package mcp

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
)

// ClassifyTextInput is the input schema for the classify_text tool.
type ClassifyTextInput struct {
	Text string `json:"text" jsonschema:"the news headline to classify"`
}

// ClassifyMediaInput is the input schema for the classify_image and classify_audio tools.
type ClassifyMediaInput struct {
	Path string `json:"path,omitempty" jsonschema:"local file path of the media"`
	Data string `json:"data,omitempty" jsonschema:"base64-encoded media bytes, used when path is empty"`
}

// ClassifyOutput is the result of classifying one input.
type ClassifyOutput struct {
	Modality   string            `json:"modality"`
	Label      string            `json:"label"`
	Confidence float64           `json:"confidence"`
	Negative   bool              `json:"negative"`
	ErrorKind  string            `json:"error_kind,omitempty"`
	Error      string            `json:"error,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// AnalyzeItem is one entry of an analyze submission.
type AnalyzeItem struct {
	Modality string `json:"modality" jsonschema:"one of text, image, audio"`
	Text     string `json:"text,omitempty" jsonschema:"headline text for text items"`
	Path     string `json:"path,omitempty" jsonschema:"local file path for image and audio items"`
	Data     string `json:"data,omitempty" jsonschema:"base64-encoded bytes for image and audio items"`
}

// AnalyzeInput is the input schema for the analyze tool.
type AnalyzeInput struct {
	Items []AnalyzeItem `json:"items" jsonschema:"inputs to analyse together, in order"`
}

// AnalyzeOutput is the fused report of an analyze call.
type AnalyzeOutput struct {
	ID           string           `json:"id"`
	Verdict      string           `json:"verdict"`
	Description  string           `json:"description"`
	Inconclusive bool             `json:"inconclusive"`
	Analyzed     int              `json:"analyzed"`
	Failed       int              `json:"failed"`
	Items        []ClassifyOutput `json:"items"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "classify_text",
		Description: "Classify a news headline as hoax or valid",
	}, s.handleClassifyText)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "classify_image",
		Description: "Classify an image as valid or manipulated",
	}, s.handleClassifyImage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "classify_audio",
		Description: "Classify an audio clip as real or fake speech",
	}, s.handleClassifyAudio)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze",
		Description: "Analyse several inputs together and fuse them into one hoax verdict",
	}, s.handleAnalyze)
}

// handleClassifyText handles the classify_text tool invocation.
func (s *Server) handleClassifyText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClassifyTextInput,
) (*mcp.CallToolResult, ClassifyOutput, error) {
	item, err := s.ports.Analysis.Classify(ctx, domain.ModalityText, domain.TextInput(input.Text))
	if err != nil {
		return nil, ClassifyOutput{}, err
	}
	return nil, toClassifyOutput(item), nil
}

// handleClassifyImage handles the classify_image tool invocation.
func (s *Server) handleClassifyImage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClassifyMediaInput,
) (*mcp.CallToolResult, ClassifyOutput, error) {
	return s.classifyMedia(ctx, domain.ModalityImage, input)
}

// handleClassifyAudio handles the classify_audio tool invocation.
func (s *Server) handleClassifyAudio(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClassifyMediaInput,
) (*mcp.CallToolResult, ClassifyOutput, error) {
	return s.classifyMedia(ctx, domain.ModalityAudio, input)
}

func (s *Server) classifyMedia(
	ctx context.Context,
	m domain.Modality,
	input ClassifyMediaInput,
) (*mcp.CallToolResult, ClassifyOutput, error) {
	raw, err := mediaInput(input.Path, input.Data)
	if err != nil {
		return nil, ClassifyOutput{}, err
	}

	item, err := s.ports.Analysis.Classify(ctx, m, raw)
	if err != nil {
		return nil, ClassifyOutput{}, err
	}
	return nil, toClassifyOutput(item), nil
}

// handleAnalyze handles the analyze tool invocation.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	var sub domain.Submission
	for i, it := range input.Items {
		m := domain.Modality(it.Modality)
		if m == domain.ModalityText {
			sub.Add(m, domain.TextInput(it.Text))
			continue
		}
		raw, err := mediaInput(it.Path, it.Data)
		if err != nil {
			return nil, AnalyzeOutput{}, fmt.Errorf("item %d: %w", i, err)
		}
		sub.Add(m, raw)
	}

	report, err := s.ports.Analysis.Analyze(ctx, sub)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}

	output := AnalyzeOutput{
		ID:           report.ID,
		Verdict:      report.Verdict.String(),
		Description:  report.Verdict.Description(),
		Inconclusive: report.Inconclusive,
		Analyzed:     report.Analyzed,
		Failed:       report.Failed,
		Items:        make([]ClassifyOutput, len(report.Items)),
	}
	for i := range report.Items {
		output.Items[i] = toClassifyOutput(report.Items[i])
	}

	return nil, output, nil
}

// mediaInput builds a raw input from a path or base64 data.
func mediaInput(path, data string) (domain.RawInput, error) {
	if path != "" {
		return domain.FileInput(path), nil
	}
	if data == "" {
		return domain.RawInput{}, ErrNoMedia
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return domain.RawInput{}, fmt.Errorf("mcp: decoding data: %w", err)
	}
	return domain.BytesInput(decoded), nil
}

func toClassifyOutput(item domain.EvidenceItem) ClassifyOutput {
	out := ClassifyOutput{
		Modality:   item.Modality.String(),
		Label:      item.Result.Label,
		Confidence: item.Result.Confidence,
		Negative:   domain.IsNegativeFinding(item),
		Attributes: item.Attributes,
	}
	if item.Failed() {
		out.ErrorKind = item.ErrorKind().String()
		out.Error = item.Err.Error()
	}
	return out
}
