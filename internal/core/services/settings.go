package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driven"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAssetsDir      = "assets.dir"
	keyRuntimeLibrary = "runtime.library_path"
	keyRuntimeDevice  = "runtime.device"
	keyHubBaseURL     = "hub.base_url"
	keyHubOffline     = "hub.offline"

	keyTextModel           = "text.model"
	keyTextFile            = "text.file"
	keyTextRepo            = "text.repo"
	keyTextRemoteFile      = "text.remote_file"
	keyTextTokenizer       = "text.tokenizer"
	keyTextTokenizerRemote = "text.tokenizer_remote_file"

	keyImageModel      = "image.model"
	keyImageFile       = "image.file"
	keyImageRepo       = "image.repo"
	keyImageRemoteFile = "image.remote_file"

	keyAudioModel      = "audio.model"
	keyAudioFile       = "audio.file"
	keyAudioRepo       = "audio.repo"
	keyAudioRemoteFile = "audio.remote_file"
	keyAudioFFmpeg     = "audio.ffmpeg"

	keyWatchExtensions = "watch.extensions"
	keyWatchDebounce   = "watch.debounce_ms"
)

// Typed keys. Every other key is a string.
var (
	boolKeys = map[string]bool{
		keyHubOffline:  true,
		keyAudioFFmpeg: true,
	}
	intKeys = map[string]bool{
		keyWatchDebounce: true,
	}
	sliceKeys = map[string]bool{
		keyWatchExtensions: true,
	}
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		AssetsDir: s.getString(keyAssetsDir, defaults.AssetsDir),
		Runtime: domain.RuntimeSettings{
			LibraryPath: s.configStore.GetString(keyRuntimeLibrary), // Empty uses the platform default
			Device:      s.getDevice(defaults.Runtime.Device),
		},
		Hub: domain.HubSettings{
			BaseURL: s.getString(keyHubBaseURL, defaults.Hub.BaseURL),
			Offline: s.getBool(keyHubOffline, defaults.Hub.Offline),
		},
		Text: domain.TextModelSettings{
			ModelSettings: s.getModel(keyTextModel, keyTextFile, keyTextRepo, keyTextRemoteFile,
				defaults.Text.ModelSettings),
			Tokenizer:           s.getString(keyTextTokenizer, defaults.Text.Tokenizer),
			TokenizerRemoteFile: s.configStore.GetString(keyTextTokenizerRemote),
		},
		Image: s.getModel(keyImageModel, keyImageFile, keyImageRepo, keyImageRemoteFile, defaults.Image),
		Audio: s.getModel(keyAudioModel, keyAudioFile, keyAudioRepo, keyAudioRemoteFile, defaults.Audio),
		AudioDecoding: domain.AudioSettings{
			FFmpeg: s.getBool(keyAudioFFmpeg, defaults.AudioDecoding.FFmpeg),
		},
		Watch: domain.WatchSettings{
			Extensions:     s.configStore.GetStringSlice(keyWatchExtensions),
			DebounceMillis: s.getInt(keyWatchDebounce, defaults.Watch.DebounceMillis),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	for key, value := range flatten(settings) {
		if err := s.configStore.Set(key, value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// Value returns the effective value of one setting key.
func (s *SettingsService) Value(key string) (string, error) {
	settings, err := s.Get()
	if err != nil {
		return "", err
	}
	v, ok := flatten(settings)[key]
	if !ok {
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if list, ok := v.([]string); ok {
		return strings.Join(list, ","), nil
	}
	return fmt.Sprint(v), nil
}

// Set updates a single setting by key.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	values := flatten(settings)
	if _, ok := values[key]; !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any = value
	if boolKeys[key] {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects true or false, got %q", domain.ErrInvalidInput, key, value)
		}
		parsed = b
	}
	if intKeys[key] {
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s expects a non-negative integer, got %q", domain.ErrInvalidInput, key, value)
		}
		parsed = n
	}
	if sliceKeys[key] {
		list, err := parseExtensions(value)
		if err != nil {
			return err
		}
		parsed = list
	}
	if key == keyRuntimeDevice && !domain.Device(value).IsValid() {
		return fmt.Errorf("%w: unknown device %q", domain.ErrInvalidInput, value)
	}

	return s.configStore.Set(key, parsed)
}

// Keys returns every recognised setting key, sorted.
func (s *SettingsService) Keys() []string {
	defaults := domain.DefaultAppSettings()
	values := flatten(&defaults)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks if current settings can build classifiers.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// flatten maps settings to their config keys.
func flatten(settings *domain.AppSettings) map[string]any {
	return map[string]any{
		keyAssetsDir:           settings.AssetsDir,
		keyRuntimeLibrary:      settings.Runtime.LibraryPath,
		keyRuntimeDevice:       settings.Runtime.Device.String(),
		keyHubBaseURL:          settings.Hub.BaseURL,
		keyHubOffline:          settings.Hub.Offline,
		keyTextModel:           settings.Text.Name,
		keyTextFile:            settings.Text.File,
		keyTextRepo:            settings.Text.Repo,
		keyTextRemoteFile:      settings.Text.RemoteFile,
		keyTextTokenizer:       settings.Text.Tokenizer,
		keyTextTokenizerRemote: settings.Text.TokenizerRemoteFile,
		keyImageModel:          settings.Image.Name,
		keyImageFile:           settings.Image.File,
		keyImageRepo:           settings.Image.Repo,
		keyImageRemoteFile:     settings.Image.RemoteFile,
		keyAudioModel:          settings.Audio.Name,
		keyAudioFile:           settings.Audio.File,
		keyAudioRepo:           settings.Audio.Repo,
		keyAudioRemoteFile:     settings.Audio.RemoteFile,
		keyAudioFFmpeg:         settings.AudioDecoding.FFmpeg,
		keyWatchExtensions:     settings.Watch.Extensions,
		keyWatchDebounce:       settings.Watch.DebounceMillis,
	}
}

// parseExtensions splits a comma-separated extension list. An empty value
// clears the list.
func parseExtensions(value string) ([]string, error) {
	known := domain.MediaExtensions()
	var out []string
	for _, part := range strings.Split(value, ",") {
		ext := domain.NormaliseExtension(part)
		if ext == "" {
			continue
		}
		if _, ok := known[ext]; !ok {
			return nil, fmt.Errorf("%w: unknown media extension %q", domain.ErrInvalidInput, part)
		}
		out = append(out, ext)
	}
	return out, nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getDevice(defaultVal domain.Device) domain.Device {
	val := s.configStore.GetString(keyRuntimeDevice)
	if val == "" {
		return defaultVal
	}
	device := domain.Device(val)
	if !device.IsValid() {
		return defaultVal
	}
	return device
}

func (s *SettingsService) getModel(name, file, repo, remote string, defaults domain.ModelSettings) domain.ModelSettings {
	return domain.ModelSettings{
		Name:       s.getString(name, defaults.Name),
		File:       s.getString(file, defaults.File),
		Repo:       s.getString(repo, defaults.Repo),
		RemoteFile: s.getString(remote, defaults.RemoteFile),
	}
}
