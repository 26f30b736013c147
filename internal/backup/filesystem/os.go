// Package filesystem adapts operating system primitives to the narrow
// filesystem surface the backup workflow depends on.
package filesystem

import (
	"io/fs"
	"os"
)

// OSFileSystem implements the backup filesystem contract using the operating system primitives.
type OSFileSystem struct{}

// Stat retrieves file metadata.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// MkdirAll ensures a directory hierarchy exists with the provided permissions.
func (OSFileSystem) MkdirAll(path string, permissions fs.FileMode) error {
	return os.MkdirAll(path, permissions)
}
