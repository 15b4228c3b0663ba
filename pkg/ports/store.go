package ports

import "context"

// ArtifactStore persists the artifacts of a successful reply.
// Names are artifact suffixes (e.g. "_probtraj.csv"); the store owns the prefix.
type ArtifactStore interface {
	// Put writes data under name, replacing any previous value.
	Put(ctx context.Context, name string, data string) error

	// Get returns the data stored under name.
	// Returns domain.ErrArtifactNotFound if nothing was written.
	Get(ctx context.Context, name string) (string, error)
}
