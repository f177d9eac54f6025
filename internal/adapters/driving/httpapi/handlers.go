package httpapi

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
)

// TextRequest is the JSON body of POST /v1/classify/text.
type TextRequest struct {
	Text string `json:"text"`
}

// AnalyzeItem is one entry of a JSON analyze request.
type AnalyzeItem struct {
	Modality string `json:"modality"`
	Text     string `json:"text,omitempty"`
	Data     string `json:"data,omitempty"`
}

// AnalyzeRequest is the JSON body of POST /v1/analyze.
type AnalyzeRequest struct {
	Items []AnalyzeItem `json:"items"`
}

// ReportResponse wraps a fusion report with its verdict description.
type ReportResponse struct {
	*domain.FusionReport
	Description string `json:"description"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) models(c *gin.Context) {
	statuses := []domain.ModelStatus{}
	if s.ports.Registry != nil {
		statuses = s.ports.Registry.Statuses()
	}
	c.JSON(http.StatusOK, gin.H{"models": statuses})
}

func (s *Server) indicators(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"indicators": domain.HoaxIndicators()})
}

// classify handles POST /v1/classify/:modality.
// Text takes a JSON body; image and audio take a multipart "file" field or a raw body.
func (s *Server) classify(c *gin.Context) {
	m := domain.Modality(c.Param("modality"))
	if !m.IsValid() {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown modality %q", m)})
		return
	}

	var in domain.RawInput
	if m == domain.ModalityText {
		var req TextRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		in = domain.TextInput(req.Text)
	} else {
		data, err := readMedia(c)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		in = domain.BytesInput(data)
	}

	item, err := s.ports.Analysis.Classify(c.Request.Context(), m, in)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(itemStatus(item), item)
}

// analyze handles POST /v1/analyze.
// A JSON body keeps item order. A multipart form is submitted as text fields,
// then image files, then audio files.
func (s *Server) analyze(c *gin.Context) {
	var (
		sub domain.Submission
		err error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		sub, err = submissionFromForm(c)
	} else {
		sub, err = submissionFromJSON(c)
	}
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	report, err := s.ports.Analysis.Analyze(c.Request.Context(), sub)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ReportResponse{FusionReport: report, Description: report.Verdict.Description()})
}

func submissionFromJSON(c *gin.Context) (domain.Submission, error) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return domain.Submission{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	var sub domain.Submission
	for i, it := range req.Items {
		m := domain.Modality(it.Modality)
		if m == domain.ModalityText {
			sub.Add(m, domain.TextInput(it.Text))
			continue
		}
		data, err := base64.StdEncoding.DecodeString(it.Data)
		if err != nil {
			return domain.Submission{}, fmt.Errorf("%w: item %d: %v", domain.ErrInvalidInput, i, err)
		}
		sub.Add(m, domain.BytesInput(data))
	}
	return sub, nil
}

func submissionFromForm(c *gin.Context) (domain.Submission, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return domain.Submission{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	var sub domain.Submission
	for _, text := range form.Value[domain.ModalityText.String()] {
		sub.Add(domain.ModalityText, domain.TextInput(text))
	}
	for _, m := range []domain.Modality{domain.ModalityImage, domain.ModalityAudio} {
		for _, fh := range form.File[m.String()] {
			data, err := readFileHeader(fh)
			if err != nil {
				return domain.Submission{}, err
			}
			sub.Add(m, domain.BytesInput(data))
		}
	}
	return sub, nil
}

// readMedia reads a multipart "file" field or, failing that, the raw body.
func readMedia(c *gin.Context) ([]byte, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return readFileHeader(fh)
	}
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrInvalidInput, err)
	}
	return data, nil
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", domain.ErrInvalidInput, fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrInvalidInput, fh.Filename, err)
	}
	return data, nil
}

// statusFor maps request-level errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNoEvidence),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnsupportedType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// itemStatus maps a single classification outcome to an HTTP status code.
// The body always carries the item, failed or not.
func itemStatus(item domain.EvidenceItem) int {
	switch item.ErrorKind() {
	case domain.ErrorKindDecodeFailure:
		return http.StatusUnprocessableEntity
	case domain.ErrorKindModelUnavailable:
		return http.StatusServiceUnavailable
	case domain.ErrorKindInferenceFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}
