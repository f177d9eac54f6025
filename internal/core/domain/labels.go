package domain

import "strings"

// NumClasses is the width of every classifier head.
const NumClasses = 2

// LabelSet is the fixed index/name table of a two-class classifier head.
// Names are in the head's training order; that order is load-bearing and
// must never be derived from runtime data.
type LabelSet struct {
	// Names holds the class names indexed by logit position.
	Names [NumClasses]string

	// Negative is the logit index of the manipulated/fake class.
	Negative int
}

// Fixed label tables, one per modality.
var (
	// TextLabels matches the headline classifier: hoax=0, valid=1.
	TextLabels = LabelSet{Names: [NumClasses]string{"hoax", "valid"}, Negative: 0}

	// ImageLabels matches the image classifier head.
	ImageLabels = LabelSet{Names: [NumClasses]string{"Valid", "Hoax"}, Negative: 1}

	// AudioLabels matches the speech classifier head.
	AudioLabels = LabelSet{Names: [NumClasses]string{"Real", "Fake"}, Negative: 1}
)

// LabelsFor returns the label table of a modality.
func LabelsFor(m Modality) (LabelSet, bool) {
	switch m {
	case ModalityText:
		return TextLabels, true
	case ModalityImage:
		return ImageLabels, true
	case ModalityAudio:
		return AudioLabels, true
	default:
		return LabelSet{}, false
	}
}

// Name returns the class name at index i.
func (s LabelSet) Name(i int) (string, bool) {
	if i < 0 || i >= NumClasses {
		return "", false
	}
	return s.Names[i], true
}

// Index returns the index of a class name (case-insensitive).
func (s LabelSet) Index(name string) (int, bool) {
	for i, n := range s.Names {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return i, true
		}
	}
	return -1, false
}

// Authentic returns the name of the authentic class.
func (s LabelSet) Authentic() string {
	return s.Names[1-s.Negative]
}

// Manipulated returns the name of the manipulated class.
func (s LabelSet) Manipulated() string {
	return s.Names[s.Negative]
}

// Contains reports whether label is one of the two class names (exact match).
func (s LabelSet) Contains(label string) bool {
	return label == s.Names[0] || label == s.Names[1]
}
