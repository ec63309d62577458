package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink writes artifacts under a local base directory, mirroring the key
// layout as a directory tree. Useful for local runs and development.
type FileSink struct {
	baseDir string
}

// NewFileSink creates a filesystem-backed sink rooted at baseDir.
func NewFileSink(baseDir string) (*FileSink, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sink directory: %w", err)
	}
	return &FileSink{baseDir: baseDir}, nil
}

// Write stores payload at baseDir/key, creating parent directories as
// needed. The content type is ignored; the key's extension carries it.
func (s *FileSink) Write(ctx context.Context, key string, payload []byte, contentType string) error {
	path := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}

// Location returns the absolute path a key maps to.
func (s *FileSink) Location(key string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(key))
}
