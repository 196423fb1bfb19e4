package fs

import (
	"context"
	"errors"
	"os"

	"github.com/mintmuse/mintmuse-cli/internal/usecase"
)

// FileWriterAdapter writes scaffolding and saved previews
type FileWriterAdapter struct{}

// NewFileWriterAdapter creates a new file writer adapter
func NewFileWriterAdapter() *FileWriterAdapter {
	return &FileWriterAdapter{}
}

// WriteFile replaces path atomically, creating parent directories
func (w *FileWriterAdapter) WriteFile(_ context.Context, path string, data []byte) error {
	return writeFileAtomic(path, data, os.Rename)
}

// FileExists reports whether anything exists at path
func (w *FileWriterAdapter) FileExists(_ context.Context, path string) (bool, error) {
	switch _, err := os.Stat(path); {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

var _ usecase.FileWriter = (*FileWriterAdapter)(nil)
