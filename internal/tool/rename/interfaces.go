package rename

import (
	"os"
)

// fileSystem defines the filesystem operations needed to walk and rename.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ListDir(path string) ([]os.FileInfo, error)
	Rename(oldpath, newpath string) error
	EvalSymlinks(path string) (string, error)
}
