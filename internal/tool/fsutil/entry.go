package fsutil

import "os"

// FollowEntry returns the info for a directory entry found at path,
// following it when it is a symlink. A dangling symlink yields the Stat error.
func FollowEntry(fs interface {
	Stat(path string) (os.FileInfo, error)
}, path string, entry os.FileInfo) (os.FileInfo, error) {
	if entry.Mode()&os.ModeSymlink == 0 {
		return entry, nil
	}
	return fs.Stat(path)
}
