package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Manager provides file management operations for pipeline outputs.
// Relative paths are resolved against baseDir.
type Manager struct {
	baseDir string
}

// NewManager creates a new file manager instance
func NewManager(baseDir string) *Manager {
	return &Manager{baseDir: baseDir}
}

// Resolve returns the path used on disk for path
func (m *Manager) Resolve(path string) string {
	if filepath.IsAbs(path) || m.baseDir == "" {
		return path
	}
	return filepath.Join(m.baseDir, path)
}

// FileExists checks if a file exists at the given path
func (m *Manager) FileExists(path string) bool {
	_, err := os.Stat(m.Resolve(path))
	return err == nil
}

// EnsureParentDir creates the directory that will hold path
func (m *Manager) EnsureParentDir(path string) error {
	dir := filepath.Dir(m.Resolve(path))

	slog.Debug("Ensuring directory exists", slog.String("dir", dir))

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// Create truncates or creates the file at path, creating parent
// directories first.
func (m *Manager) Create(path string) (*os.File, error) {
	if err := m.EnsureParentDir(path); err != nil {
		return nil, err
	}

	fullPath := m.Resolve(path)
	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", fullPath, err)
	}
	return file, nil
}

// WriteFile writes data to a file, creating parent directories first
func (m *Manager) WriteFile(path string, data []byte) error {
	if err := m.EnsureParentDir(path); err != nil {
		return err
	}

	fullPath := m.Resolve(path)
	slog.Debug("Writing file",
		slog.String("path", fullPath),
		slog.Int("size_bytes", len(data)))

	return os.WriteFile(fullPath, data, 0644)
}
