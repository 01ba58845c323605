package shebang

import (
	"io"
	"os"
)

// fileSystem defines the filesystem operations needed to scan a directory.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ListDir(path string) ([]os.FileInfo, error)
	Open(path string) (io.ReadCloser, error)
}
