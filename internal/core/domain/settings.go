package domain

import (
	"fmt"
	"strings"
)

// ModelSettings holds the configurable location of one modality's model.
type ModelSettings struct {
	// Name is the model identifier.
	Name string

	// File is the local weight file name under <assets>/<modality>_models/.
	File string

	// Repo is an optional hub repository the file can be fetched from.
	Repo string

	// RemoteFile is the file path inside Repo (defaults to File).
	RemoteFile string
}

// TextModelSettings adds the tokenizer location to ModelSettings.
type TextModelSettings struct {
	ModelSettings

	// Tokenizer is the tokenizer.json file name under <assets>/text_models/.
	Tokenizer string

	// TokenizerRemoteFile is the tokenizer path inside Repo (defaults to Tokenizer).
	TokenizerRemoteFile string
}

// RuntimeSettings configures the inference runtime.
type RuntimeSettings struct {
	// LibraryPath is the ONNX Runtime shared library. Empty uses the platform default.
	LibraryPath string

	// Device is the preferred compute device.
	Device Device
}

// HubSettings configures weight downloads.
type HubSettings struct {
	// BaseURL is the model hub root.
	BaseURL string

	// Offline disables downloads; missing files are load failures.
	Offline bool
}

// AudioSettings configures audio decoding.
type AudioSettings struct {
	// FFmpeg enables the ffmpeg fallback for encodings without a native decoder.
	FFmpeg bool
}

// WatchSettings configures the directory watcher.
type WatchSettings struct {
	// Extensions limits watched files, e.g. [".jpg", ".wav"]. Empty watches every media type.
	Extensions []string

	// DebounceMillis is how long a file must stay quiet before it is classified.
	DebounceMillis int
}

// ExtensionMap returns the configured extensions with their modality,
// or nil when every media extension is watched.
func (w WatchSettings) ExtensionMap() map[string]Modality {
	if len(w.Extensions) == 0 {
		return nil
	}
	known := MediaExtensions()
	out := make(map[string]Modality, len(w.Extensions))
	for _, ext := range w.Extensions {
		ext = NormaliseExtension(ext)
		if m, ok := known[ext]; ok {
			out[ext] = m
		}
	}
	return out
}

// NormaliseExtension lower-cases ext and adds a leading dot.
func NormaliseExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// AppSettings holds all application settings.
type AppSettings struct {
	// AssetsDir is the root of the <modality>_models directory layout.
	AssetsDir string

	Runtime RuntimeSettings
	Hub     HubSettings

	Text  TextModelSettings
	Image ModelSettings
	Audio ModelSettings

	AudioDecoding AudioSettings

	Watch WatchSettings
}

// Validate checks that the settings can build classifiers.
func (s AppSettings) Validate() error {
	if s.AssetsDir == "" {
		return fmt.Errorf("%w: assets directory is empty", ErrInvalidInput)
	}
	if !s.Runtime.Device.IsValid() {
		return fmt.Errorf("%w: unknown device %q", ErrInvalidInput, s.Runtime.Device)
	}
	if s.Text.File == "" || s.Text.Tokenizer == "" {
		return fmt.Errorf("%w: text model and tokenizer files are required", ErrInvalidInput)
	}
	if s.Image.File == "" {
		return fmt.Errorf("%w: image model file is required", ErrInvalidInput)
	}
	if s.Audio.File == "" {
		return fmt.Errorf("%w: audio model file is required", ErrInvalidInput)
	}
	if s.Watch.DebounceMillis < 0 {
		return fmt.Errorf("%w: watch debounce must not be negative", ErrInvalidInput)
	}
	known := MediaExtensions()
	for _, ext := range s.Watch.Extensions {
		if _, ok := known[NormaliseExtension(ext)]; !ok {
			return fmt.Errorf("%w: unknown media extension %q", ErrInvalidInput, ext)
		}
	}
	return nil
}

// DefaultHubURL is the default model hub root.
const DefaultHubURL = "https://huggingface.co"

// DefaultAppSettings returns settings with sensible defaults.
// No hub repositories are configured: weights are expected in the assets directory.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		AssetsDir: "assets",
		Runtime: RuntimeSettings{
			Device: DeviceAuto,
		},
		Hub: HubSettings{
			BaseURL: DefaultHubURL,
		},
		Text: TextModelSettings{
			ModelSettings: ModelSettings{
				Name: "bert-hoax-headline",
				File: "model.onnx",
			},
			Tokenizer: "tokenizer.json",
		},
		Image: ModelSettings{
			Name: "mobilenet_v3_small",
			File: "mobilenet.onnx",
		},
		Audio: ModelSettings{
			Name: "facebook/wav2vec2-base-960h",
			File: "wav2vec2.onnx",
		},
		AudioDecoding: AudioSettings{
			FFmpeg: true,
		},
		Watch: WatchSettings{
			DebounceMillis: 500,
		},
	}
}

// ModelSpecs derives the model specs of every modality from the settings.
func (s AppSettings) ModelSpecs() map[Modality]ModelSpec {
	tok := Artifact{
		Modality:   ModalityText,
		File:       s.Text.Tokenizer,
		Repo:       s.Text.Repo,
		RemoteFile: s.Text.TokenizerRemoteFile,
	}
	return map[Modality]ModelSpec{
		ModalityText: {
			Modality:  ModalityText,
			Name:      s.Text.Name,
			Weights:   s.Text.artifact(ModalityText),
			Tokenizer: &tok,
			Inputs:    []string{"input_ids", "attention_mask", "token_type_ids"},
			Outputs:   []string{"logits"},
		},
		ModalityImage: {
			Modality: ModalityImage,
			Name:     s.Image.Name,
			Weights:  s.Image.artifact(ModalityImage),
			Inputs:   []string{"input"},
			Outputs:  []string{"logits"},
		},
		ModalityAudio: {
			Modality: ModalityAudio,
			Name:     s.Audio.Name,
			Weights:  s.Audio.artifact(ModalityAudio),
			Inputs:   []string{"input_values"},
			Outputs:  []string{"logits"},
		},
	}
}

func (m ModelSettings) artifact(modality Modality) Artifact {
	return Artifact{
		Modality:   modality,
		File:       m.File,
		Repo:       m.Repo,
		RemoteFile: m.RemoteFile,
	}
}
