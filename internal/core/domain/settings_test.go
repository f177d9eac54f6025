package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAppSettings_Valid(t *testing.T) {
	settings := DefaultAppSettings()

	require.NoError(t, settings.Validate())
	assert.Equal(t, DeviceAuto, settings.Runtime.Device)
	assert.Equal(t, DefaultHubURL, settings.Hub.BaseURL)
	assert.True(t, settings.AudioDecoding.FFmpeg)
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppSettings)
	}{
		{"empty assets dir", func(s *AppSettings) { s.AssetsDir = "" }},
		{"unknown device", func(s *AppSettings) { s.Runtime.Device = "tpu" }},
		{"missing tokenizer", func(s *AppSettings) { s.Text.Tokenizer = "" }},
		{"missing image file", func(s *AppSettings) { s.Image.File = "" }},
		{"missing audio file", func(s *AppSettings) { s.Audio.File = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultAppSettings()
			tt.mutate(&settings)

			err := settings.Validate()

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestAppSettings_ModelSpecs(t *testing.T) {
	settings := DefaultAppSettings()
	settings.Audio.Repo = "org/audio-detector"
	settings.Audio.RemoteFile = "onnx/model.onnx"

	specs := settings.ModelSpecs()

	require.Len(t, specs, 3)
	text := specs[ModalityText]
	require.NotNil(t, text.Tokenizer)
	assert.Equal(t, "tokenizer.json", text.Tokenizer.File)
	assert.Equal(t, []string{"input_ids", "attention_mask", "token_type_ids"}, text.Inputs)

	audio := specs[ModalityAudio]
	assert.True(t, audio.Weights.IsRemote())
	assert.Equal(t, "onnx/model.onnx", audio.Weights.Remote())
	assert.Equal(t, ModalityAudio, audio.Weights.Modality)

	image := specs[ModalityImage]
	assert.False(t, image.Weights.IsRemote())
	assert.Equal(t, "mobilenet.onnx", image.Weights.Remote())
	assert.Nil(t, image.Tokenizer)
}

func TestDevice_IsValid(t *testing.T) {
	assert.True(t, DeviceAuto.IsValid())
	assert.True(t, DeviceCPU.IsValid())
	assert.True(t, DeviceCUDA.IsValid())
	assert.False(t, Device("").IsValid())
}

func TestLoadState_String(t *testing.T) {
	assert.Equal(t, "unloaded", LoadStateUnloaded.String())
	assert.Equal(t, "loading", LoadStateLoading.String())
	assert.Equal(t, "ready", LoadStateReady.String())
	assert.Equal(t, "failed", LoadStateFailed.String())

	text, err := LoadStateReady.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ready", string(text))
}

func TestWatchSettings_ExtensionMap(t *testing.T) {
	assert.Nil(t, WatchSettings{}.ExtensionMap())

	got := WatchSettings{Extensions: []string{"PNG", ".mp3", ".docx"}}.ExtensionMap()
	assert.Equal(t, map[string]Modality{".png": ModalityImage, ".mp3": ModalityAudio}, got)
}

func TestNormaliseExtension(t *testing.T) {
	assert.Equal(t, ".jpg", NormaliseExtension(" JPG "))
	assert.Equal(t, ".wav", NormaliseExtension(".wav"))
	assert.Equal(t, "", NormaliseExtension("  "))
}

func TestAppSettings_ValidateWatch(t *testing.T) {
	s := DefaultAppSettings()
	s.Watch.Extensions = []string{".flac", "txt"}
	assert.NoError(t, s.Validate())

	s.Watch.Extensions = []string{".exe"}
	assert.ErrorIs(t, s.Validate(), ErrInvalidInput)

	s = DefaultAppSettings()
	s.Watch.DebounceMillis = -5
	assert.ErrorIs(t, s.Validate(), ErrInvalidInput)
}
