package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mintmuse/mintmuse-cli/internal/domain"
	"github.com/mintmuse/mintmuse-cli/internal/domain/models"
	"github.com/mintmuse/mintmuse-cli/internal/usecase"
)

// ArtifactStore writes published artifacts with write-to-temp then rename, so
// readers only ever see the previous file or the complete new one.
type ArtifactStore struct {
	log    *slog.Logger
	rename func(oldpath, newpath string) error
}

// NewArtifactStore creates a new artifact store
func NewArtifactStore(log *slog.Logger) *ArtifactStore {
	return &ArtifactStore{
		log:    log.With("component", "ArtifactStore"),
		rename: os.Rename,
	}
}

// Publish replaces the file at path with the 2-space indented artifact
func (s *ArtifactStore) Publish(_ context.Context, artifact *models.ContractArtifact, path string) error {
	data, err := artifact.MarshalIndented()
	if err != nil {
		return &domain.ArtifactWriteFailedError{Path: path, Err: err}
	}

	if err := writeFileAtomic(path, data, s.rename); err != nil {
		return &domain.ArtifactWriteFailedError{Path: path, Err: err}
	}

	s.log.Debug("published artifact", "path", path, "address", artifact.Address, "bytes", len(data))
	return nil
}

// writeFileAtomic writes data next to path and renames it into place
func writeFileAtomic(path string, data []byte, rename func(oldpath, newpath string) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(0644); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return rename(tmp.Name(), path)
}

// Load reads and validates a published artifact
func (s *ArtifactStore) Load(_ context.Context, path string) (*models.ContractArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("artifact %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}
	return models.ParseContractArtifact(data)
}

// Ensure the adapter implements the interface
var _ usecase.ArtifactStore = (*ArtifactStore)(nil)
