package ports

import (
	"context"

	"github.com/mjosborne1/check-sparked-server/internal/core/domain"
)

// FHIRClient covers the two server queries the audit issues.
type FHIRClient interface {
	// SearchStructureDefinitions searches by canonical url and returns the
	// version/status of every matching StructureDefinition.
	SearchStructureDefinitions(ctx context.Context, canonicalURL string) (domain.SearchSet, error)

	// CountResources issues a _summary=count query for one resource type.
	// An unsupported type surfaces as an AppError with
	// CodeResourceUnsupported, never as a zero count.
	CountResources(ctx context.Context, resourceType domain.ResourceType) (int, error)
}

// RepoClient covers the corpus repository queries.
type RepoClient interface {
	// ListContents lists the immediate children of a repo path.
	ListContents(ctx context.Context, path string) ([]domain.RepoEntry, error)

	// SearchFiles runs a paginated filename-prefix code search under the
	// given repo path and returns the matching file paths. On a mid-stream
	// page failure it returns the paths collected so far along with the
	// error.
	SearchFiles(ctx context.Context, path string, filenamePrefix string) ([]string, error)
}
