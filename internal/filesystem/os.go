// Package filesystem adapts operating system file primitives to the small interfaces dephealth consumes.
package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// OSFileSystem implements manifest lookups using the operating system primitives.
type OSFileSystem struct{}

// Stat retrieves file metadata.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// FileExists reports whether path names an existing regular file.
// Lookup errors other than non-existence are returned to the caller.
func (fileSystem OSFileSystem) FileExists(path string) (bool, error) {
	fileInfo, statError := fileSystem.Stat(path)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return false, nil
		}
		return false, statError
	}
	return fileInfo.Mode().IsRegular(), nil
}

// Abs resolves an absolute path.
func (OSFileSystem) Abs(path string) (string, error) {
	return filepath.Abs(path)
}
