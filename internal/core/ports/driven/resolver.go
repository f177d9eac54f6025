package driven

import (
	"context"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
)

// ModelResolver maps a model artifact to a readable local file.
//
// Files live under <assets>/<modality>_models/. When a file is missing
// and the artifact names a hub repository, implementations may download it.
// A file that cannot be found or fetched yields an error wrapping
// domain.ErrModelNotFound.
type ModelResolver interface {
	// Resolve returns the local path of the artifact.
	Resolve(ctx context.Context, artifact domain.Artifact) (string, error)
}
