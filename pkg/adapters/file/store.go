package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aretw0/maboss/pkg/domain"
)

// Store implements ports.ArtifactStore on the local filesystem.
// Each artifact is written to Prefix+name, e.g. "out/run1_probtraj.csv".
type Store struct {
	Prefix string
}

// New creates a Store writing under prefix.
func New(prefix string) *Store {
	return &Store{Prefix: prefix}
}

// Path returns the file an artifact name maps to.
func (s *Store) Path(name string) string {
	return s.Prefix + name
}

// Put writes the artifact atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Put(ctx context.Context, name string, data string) error {
	if s.Prefix == "" {
		return &domain.ConfigurationError{Key: "output", Reason: "output prefix is empty"}
	}
	destPath := s.Path(name)
	dir := filepath.Dir(destPath)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to ensure output directory: %w", err)
	}

	// Same directory as the destination so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(destPath)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.WriteString(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync %s: %w", destPath, err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", destPath, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename artifact file: %w", err)
	}
	return nil
}

// Get reads an artifact back.
func (s *Store) Get(ctx context.Context, name string) (string, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.ErrArtifactNotFound
		}
		return "", fmt.Errorf("failed to read artifact: %w", err)
	}
	return string(data), nil
}
