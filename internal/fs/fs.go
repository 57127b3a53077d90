package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	ActionCreate = "create"
	ActionModify = "modify"
)

// PathResolver places relative output paths under a base directory.
type PathResolver struct {
	baseDir string
}

// NewPathResolver creates a new PathResolver. An empty baseDir means the
// current working directory.
func NewPathResolver(baseDir string) *PathResolver {
	if baseDir == "" {
		baseDir = "."
	}
	return &PathResolver{baseDir: baseDir}
}

// Resolve joins a path from a listing onto the base directory. Absolute
// paths are returned untouched.
func (r *PathResolver) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.baseDir, path)
}

// FileAction reports whether writing path will create a new file or
// overwrite an existing one.
func FileAction(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ActionCreate
	}
	return ActionModify
}

// EnsureDir creates dir and any missing parents. It is a no-op if dir
// already exists.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory %s: %w", dir, err)
	}
	return nil
}

// WriteFile creates or truncates path and writes content to it. When
// makeParents is set, missing parent directories are created first.
func WriteFile(path string, content []byte, makeParents bool) error {
	if makeParents {
		if dir := filepath.Dir(path); dir != "." && dir != "/" {
			if err := EnsureDir(dir); err != nil {
				return err
			}
		}
	}
	return os.WriteFile(path, content, 0644)
}
