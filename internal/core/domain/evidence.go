package domain

import (
	"encoding/json"
	"time"
)

// EvidenceItem is one modality's result within a submission.
type EvidenceItem struct {
	Modality Modality             `json:"modality"`
	Result   ClassificationResult `json:"result"`

	// Err is set when classification failed; Result then holds the sentinel label.
	Err error `json:"-"`

	// Attributes carries informational details (e.g. perceptual hash).
	// They never influence the verdict.
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Failed returns true if the item carries a classification error.
func (i EvidenceItem) Failed() bool {
	return i.Err != nil
}

// ErrorKind returns the failure kind, or "" for a successful item.
func (i EvidenceItem) ErrorKind() ErrorKind {
	k, _ := KindOf(i.Err)
	return k
}

// MarshalJSON renders the item with its failure kind and message.
func (i EvidenceItem) MarshalJSON() ([]byte, error) {
	type item EvidenceItem
	out := struct {
		item
		ErrorKind ErrorKind `json:"error_kind,omitempty"`
		Error     string    `json:"error,omitempty"`
	}{item: item(i)}
	if i.Err != nil {
		out.ErrorKind = i.ErrorKind()
		out.Error = i.Err.Error()
	}
	return json.Marshal(out)
}

// Verdict is the fused outcome of a submission.
type Verdict string

// Verdict values.
const (
	// VerdictHoax means at least one item was a negative finding.
	VerdictHoax Verdict = "hoax"

	// VerdictValid means no item was a negative finding.
	VerdictValid Verdict = "valid"
)

// String returns the string representation.
func (v Verdict) String() string {
	return string(v)
}

// Description returns a human-readable description of the verdict.
func (v Verdict) Description() string {
	switch v {
	case VerdictHoax:
		return "Indication of hoax / fake"
	case VerdictValid:
		return "Indication of valid evidence"
	default:
		return unknownDescription
	}
}

// FusionReport is the consolidated result of a multimodal submission.
type FusionReport struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Items     []EvidenceItem `json:"items"`
	Verdict   Verdict        `json:"verdict"`

	// Analyzed counts items that classified successfully; Failed counts the rest.
	Analyzed int `json:"analyzed"`
	Failed   int `json:"failed"`

	// Inconclusive is true when no item could be analysed. Verdict is then
	// VerdictValid by rule, but carries no evidence.
	Inconclusive bool `json:"inconclusive"`
}

// NegativeFindings returns the items that triggered a hoax verdict.
func (r *FusionReport) NegativeFindings() []EvidenceItem {
	var out []EvidenceItem
	for _, item := range r.Items {
		if IsNegativeFinding(item) {
			out = append(out, item)
		}
	}
	return out
}
