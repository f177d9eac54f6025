package imageprep

import (
	"bytes"
	"image"
	"strconv"
	"strings"

	"github.com/bep/imagemeta"
	"github.com/corona10/goimagehash"

	"github.com/custodia-labs/hoaxlens/internal/core/ports/driven"
)

// Attribute keys set by the inspector.
const (
	AttrFormat   = "format"
	AttrSize     = "size"
	AttrDHash    = "dhash"
	AttrSoftware = "software"
	AttrCamera   = "camera"
	AttrTaken    = "taken"
)

// Ensure Inspector implements the interface.
var _ driven.ImageInspector = (*Inspector)(nil)

// Inspector reports a perceptual hash and the metadata fields most useful
// when judging provenance: the editing software and the capturing camera.
type Inspector struct{}

// NewInspector creates a new image inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect returns attributes for an encoded image. Missing metadata is not an error.
func (i *Inspector) Inspect(data []byte) (map[string]string, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	_, format, _ := image.DecodeConfig(bytes.NewReader(data))

	b := img.Bounds()
	attrs := map[string]string{
		AttrFormat: format,
		AttrSize:   strconv.Itoa(b.Dx()) + "x" + strconv.Itoa(b.Dy()),
	}

	// Hashing failure only drops the attribute.
	if hash, err := goimagehash.DifferenceHash(img); err == nil {
		attrs[AttrDHash] = hash.ToString()
	}

	for k, v := range extractMetadata(data) {
		attrs[k] = v
	}
	return attrs, nil
}

// wantedTags maps (source, tag-name) to true for every tag we report.
var wantedTags = map[imagemeta.Source]map[string]bool{
	imagemeta.EXIF: {
		"Software":         true,
		"Make":             true,
		"Model":            true,
		"DateTimeOriginal": true,
	},
	imagemeta.XMP: {
		"CreatorTool": true,
	},
}

// extractMetadata parses EXIF/XMP fields from raw image bytes.
// Formats without metadata support yield an empty map.
func extractMetadata(data []byte) map[string]string {
	var cameraMake, cameraModel string
	out := make(map[string]string)

	_, err := imagemeta.Decode(imagemeta.Options{
		R:       bytes.NewReader(data),
		Sources: imagemeta.EXIF | imagemeta.XMP,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			if tags, ok := wantedTags[ti.Source]; ok {
				return tags[ti.Tag]
			}
			return false
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			s := strings.TrimSpace(tagValueString(ti.Value))
			if s == "" {
				return nil
			}
			switch ti.Tag {
			case "Software", "CreatorTool":
				out[AttrSoftware] = s
			case "Make":
				cameraMake = s
			case "Model":
				cameraModel = s
			case "DateTimeOriginal":
				out[AttrTaken] = s
			}
			return nil
		},
	})
	if err != nil {
		return nil
	}

	if camera := strings.TrimSpace(cameraMake + " " + cameraModel); camera != "" {
		out[AttrCamera] = camera
	}
	return out
}

// tagValueString extracts a string from a tag value.
// XMP values may be string or []string (from altList/seqList).
func tagValueString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		if len(val) > 0 {
			return val[0]
		}
		return ""
	case []any:
		if len(val) > 0 {
			if s, ok := val[0].(string); ok {
				return s
			}
		}
		return ""
	default:
		return ""
	}
}
