package domain

import (
	"path/filepath"
	"strings"
)

// Modality identifies the kind of media a classifier handles.
type Modality string

// Supported modalities.
const (
	// ModalityText is a short headline or claim.
	ModalityText Modality = "text"

	// ModalityImage is a still image.
	ModalityImage Modality = "image"

	// ModalityAudio is an audio clip.
	ModalityAudio Modality = "audio"
)

// Modalities returns all modalities in canonical submission order.
func Modalities() []Modality {
	return []Modality{ModalityText, ModalityImage, ModalityAudio}
}

// IsValid returns true if the modality is recognised.
func (m Modality) IsValid() bool {
	switch m {
	case ModalityText, ModalityImage, ModalityAudio:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m Modality) String() string {
	return string(m)
}

// AssetDir returns the directory, relative to the assets root, holding this modality's models.
func (m Modality) AssetDir() string {
	return string(m) + "_models"
}

// Description returns a human-readable description of the modality.
func (m Modality) Description() string {
	switch m {
	case ModalityText:
		return "Headline text"
	case ModalityImage:
		return "Still image"
	case ModalityAudio:
		return "Audio clip"
	default:
		return unknownDescription
	}
}

const unknownDescription = "Unknown"

// MediaExtensions maps lower-case file extensions to the modality they hold.
// A .txt file holds headline text.
func MediaExtensions() map[string]Modality {
	return map[string]Modality{
		".txt":  ModalityText,
		".jpg":  ModalityImage,
		".jpeg": ModalityImage,
		".png":  ModalityImage,
		".gif":  ModalityImage,
		".bmp":  ModalityImage,
		".tif":  ModalityImage,
		".tiff": ModalityImage,
		".webp": ModalityImage,
		".wav":  ModalityAudio,
		".mp3":  ModalityAudio,
		".flac": ModalityAudio,
		".ogg":  ModalityAudio,
		".m4a":  ModalityAudio,
		".aac":  ModalityAudio,
	}
}

// ModalityOfPath infers the modality of a file from its extension.
func ModalityOfPath(path string) (Modality, bool) {
	m, ok := MediaExtensions()[strings.ToLower(filepath.Ext(path))]
	return m, ok
}
