// Package app is the composition root: it builds the driven adapters and
// core services behind the CLI from the current settings.
package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/custodia-labs/hoaxlens/cgo/onnx"
	"github.com/custodia-labs/hoaxlens/internal/adapters/driven/config/file"
	"github.com/custodia-labs/hoaxlens/internal/adapters/driven/models"
	"github.com/custodia-labs/hoaxlens/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/hoaxlens/internal/adapters/driven/tokenizer/huggingface"
	"github.com/custodia-labs/hoaxlens/internal/adapters/driving/cli"
	"github.com/custodia-labs/hoaxlens/internal/core/domain"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driven"
	"github.com/custodia-labs/hoaxlens/internal/core/services"
	"github.com/custodia-labs/hoaxlens/internal/logger"
	"github.com/custodia-labs/hoaxlens/internal/preprocessors/audioprep"
	"github.com/custodia-labs/hoaxlens/internal/preprocessors/imageprep"
)

// HubTokenEnv names the variable holding a bearer token for gated hub repositories.
const HubTokenEnv = "HF_TOKEN"

// Build wires services from options. It implements cli.Factory.
func Build(opts cli.Options) (*cli.Services, error) {
	store, err := configStore(opts)
	if err != nil {
		return nil, fmt.Errorf("config store: %w", err)
	}
	return BuildWith(store, onnxRuntime)
}

// RuntimeFactory creates the inference runtime for a library path.
type RuntimeFactory func(libraryPath string) (driven.InferenceRuntime, error)

func onnxRuntime(libraryPath string) (driven.InferenceRuntime, error) {
	return onnx.New(libraryPath), nil
}

// BuildWith wires services on top of an existing config store and runtime factory.
func BuildWith(store driven.ConfigStore, newRuntime RuntimeFactory) (*cli.Services, error) {
	settingsSvc := services.NewSettingsService(store)
	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		logger.Warn("settings: %v", err)
	}

	runtime, err := newRuntime(settings.Runtime.LibraryPath)
	if err != nil {
		return nil, fmt.Errorf("inference runtime: %w", err)
	}

	resolver := models.NewResolver(models.Config{
		AssetsDir: settings.AssetsDir,
		BaseURL:   settings.Hub.BaseURL,
		Offline:   settings.Hub.Offline,
		Token:     os.Getenv(HubTokenEnv),
	})

	specs := settings.ModelSpecs()
	device := settings.Runtime.Device
	registry, err := services.NewClassifierRegistry(
		services.NewTextClassifier(specs[domain.ModalityText], resolver, runtime, huggingface.NewLoader(), device),
		services.NewImageClassifier(specs[domain.ModalityImage], resolver, runtime, imageprep.New(), device),
		services.NewAudioClassifier(specs[domain.ModalityAudio], resolver, runtime,
			audioprep.New(audioprep.Config{FFmpeg: settings.AudioDecoding.FFmpeg}), device),
	)
	if err != nil {
		_ = runtime.Close()
		return nil, err
	}

	analysis := services.NewAnalysisService(registry, services.NewFusionService())
	analysis.SetImageInspector(imageprep.NewInspector())

	logger.Debug("services ready: assets=%s device=%s offline=%t",
		settings.AssetsDir, device, settings.Hub.Offline)

	return &cli.Services{
		Settings: settingsSvc,
		Analysis: analysis,
		Registry: registry,
		Close: func() error {
			return errors.Join(registry.Close(), runtime.Close())
		},
	}, nil
}

func configStore(opts cli.Options) (driven.ConfigStore, error) {
	if opts.Ephemeral {
		logger.Debug("using in-memory settings")
		return memory.NewConfigStore(), nil
	}
	return file.NewConfigStore(opts.ConfigDir)
}
