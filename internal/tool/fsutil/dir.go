package fsutil

import (
	"os"

	toolserrors "github.com/Cyclone1070/dirtools/internal/tool/errutil"
)

// RequireDir verifies that path exists and is a directory (symlinks followed).
func RequireDir(fs interface {
	Stat(path string) (os.FileInfo, error)
}, path string) error {
	if path == "" {
		return toolserrors.ErrDirectoryRequired
	}

	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &toolserrors.DirectoryError{Path: path, Cause: toolserrors.ErrDirectoryMissing}
		}
		return &toolserrors.DirectoryError{Path: path, Cause: err}
	}
	if !info.IsDir() {
		return &toolserrors.DirectoryError{Path: path, Cause: toolserrors.ErrNotADirectory}
	}

	return nil
}
