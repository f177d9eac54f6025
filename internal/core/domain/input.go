package domain

// RawInput is the unprocessed payload of one classify call.
// Text carries headline text; Data carries image or audio bytes.
// Path may be used instead of Data for file-based media; the classifier
// reads it but never creates or deletes files.
type RawInput struct {
	Text string
	Data []byte
	Path string
}

// TextInput builds a RawInput for headline text.
func TextInput(text string) RawInput {
	return RawInput{Text: text}
}

// BytesInput builds a RawInput for in-memory media.
func BytesInput(data []byte) RawInput {
	return RawInput{Data: data}
}

// FileInput builds a RawInput referencing a media file.
func FileInput(path string) RawInput {
	return RawInput{Path: path}
}

// IsEmpty returns true if the input carries no payload at all.
func (r RawInput) IsEmpty() bool {
	return r.Text == "" && len(r.Data) == 0 && r.Path == ""
}

// SubmissionInput is one entry of a multimodal submission.
type SubmissionInput struct {
	Modality Modality
	Input    RawInput
}

// Submission is an ordered set of inputs analysed together.
type Submission struct {
	Inputs []SubmissionInput
}

// Add appends an input, preserving submission order.
func (s *Submission) Add(m Modality, in RawInput) *Submission {
	s.Inputs = append(s.Inputs, SubmissionInput{Modality: m, Input: in})
	return s
}

// IsEmpty returns true if no inputs were added.
func (s Submission) IsEmpty() bool {
	return len(s.Inputs) == 0
}
