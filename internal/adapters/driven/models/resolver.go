// Package models resolves model artifacts to local files.
// Missing files can be fetched from a Hugging Face style model hub.
package models

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driven"
	"github.com/custodia-labs/hoaxlens/internal/logger"
)

// Ensure Resolver implements the interface.
var _ driven.ModelResolver = (*Resolver)(nil)

// Default configuration values.
const (
	DefaultTimeout = 10 * time.Minute
)

// Config holds configuration for the resolver.
type Config struct {
	// AssetsDir is the root of the <modality>_models layout.
	AssetsDir string

	// BaseURL is the model hub root (default: domain.DefaultHubURL).
	BaseURL string

	// Offline disables downloads.
	Offline bool

	// Token is an optional bearer token for gated repositories.
	Token string

	// Timeout bounds a single download (default: 10m).
	Timeout time.Duration
}

// Resolver maps artifacts to files under the assets directory.
type Resolver struct {
	client  *http.Client
	assets  string
	baseURL string
	offline bool
	token   string

	// mu serialises downloads so concurrent loads never fetch the same file twice.
	mu sync.Mutex
}

// NewResolver creates a new resolver.
func NewResolver(cfg Config) *Resolver {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultHubURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Resolver{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		assets:  cfg.AssetsDir,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		offline: cfg.Offline,
		token:   cfg.Token,
	}
}

// Path returns where the artifact lives locally, whether or not it exists.
func (r *Resolver) Path(artifact domain.Artifact) string {
	if filepath.IsAbs(artifact.File) {
		return artifact.File
	}
	return filepath.Join(r.assets, artifact.Modality.AssetDir(), artifact.File)
}

// Resolve returns the local path of the artifact, downloading it if needed.
func (r *Resolver) Resolve(ctx context.Context, artifact domain.Artifact) (string, error) {
	if artifact.File == "" {
		return "", fmt.Errorf("%w: %s artifact has no file name", domain.ErrModelNotFound, artifact.Modality)
	}

	path := r.Path(artifact)
	if exists(path) {
		return path, nil
	}
	if !artifact.IsRemote() {
		return "", fmt.Errorf("%w: %s", domain.ErrModelNotFound, path)
	}
	if r.offline {
		return "", fmt.Errorf("%w: %s (offline, not fetching from %s)", domain.ErrModelNotFound, path, artifact.Repo)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another caller may have fetched it while we waited.
	if exists(path) {
		return path, nil
	}
	if err := r.download(ctx, artifact, path); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrModelNotFound, err)
	}
	return path, nil
}

// URL returns the hub download URL of the artifact.
func (r *Resolver) URL(artifact domain.Artifact) string {
	return fmt.Sprintf("%s/%s/resolve/main/%s", r.baseURL, artifact.Repo, artifact.Remote())
}

// download fetches the artifact into a temporary file and renames it into place.
func (r *Resolver) download(ctx context.Context, artifact domain.Artifact, path string) error {
	url := r.URL(artifact)
	logger.Info("Downloading %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("hub error (status %d) fetching %s", resp.StatusCode, url)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.part")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}

	logger.Info("Saved %s (%d bytes)", path, n)
	return nil
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
