package fsutil

import (
	"io"
	"os"
	"path/filepath"
	"sort"
)

// OSFileSystem implements filesystem operations using the local OS filesystem primitives.
// It uses internal function fields to enable testability via functional injection.
type OSFileSystem struct {
	// Internal syscall wrappers for testability
	readDir func(name string) ([]os.DirEntry, error)
	rename  func(oldpath, newpath string) error
	open    func(name string) (*os.File, error)
}

// NewOSFileSystem creates a new OSFileSystem with real OS syscalls.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{
		readDir: os.ReadDir,
		rename:  os.Rename,
		open:    os.Open,
	}
}

// Stat returns file info for a path (follows symlinks).
func (r *OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// ListDir lists the contents of a directory, sorted by name.
// Entries describe the directory entry itself; symlinks are not followed.
func (r *OSFileSystem) ListDir(path string) ([]os.FileInfo, error) {
	entries, err := r.readDir(path)
	if err != nil {
		return nil, &ListDirError{Path: path, Cause: err}
	}

	infos := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return nil, &ListDirError{Path: path, Cause: err}
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name() < infos[j].Name()
	})

	return infos, nil
}

// Rename moves oldpath to newpath. A rename onto the same path is passed
// through to the OS, which treats it as a no-op.
func (r *OSFileSystem) Rename(oldpath, newpath string) error {
	if err := r.rename(oldpath, newpath); err != nil {
		return &RenameError{Old: oldpath, New: newpath, Cause: err}
	}
	return nil
}

// Open opens a file for reading. The caller must close it.
func (r *OSFileSystem) Open(path string) (io.ReadCloser, error) {
	f, err := r.open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Cause: err}
	}
	return f, nil
}

// ReadFile reads the whole file.
func (r *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// EvalSymlinks returns the path with all symlinks resolved.
func (r *OSFileSystem) EvalSymlinks(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}
