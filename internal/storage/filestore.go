package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore abstracts persistent blob storage for rendered artifacts
// (invoice PDFs, payslips, payroll exports).
type FileStore interface {
	Save(relPath string, content []byte) (string, error)
	Read(relPath string) ([]byte, error)
	Exists(relPath string) bool
}

// diskStore implements FileStore on the local filesystem under a base
// directory
type diskStore struct {
	baseDir string
}

// NewDiskStore creates a disk-backed file store rooted at baseDir
func NewDiskStore(baseDir string) FileStore {
	return &diskStore{
		baseDir: baseDir,
	}
}

// Save writes content under the base directory, creating parent directories
// as needed, and returns the stored path
func (s *diskStore) Save(relPath string, content []byte) (string, error) {
	path := filepath.Join(s.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create dir: %w", err)
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return path, nil
}

// Read returns the content stored under relPath
func (s *diskStore) Read(relPath string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.baseDir, relPath))
}

// Exists reports whether a file is stored under relPath
func (s *diskStore) Exists(relPath string) bool {
	_, err := os.Stat(filepath.Join(s.baseDir, relPath))
	return err == nil
}
