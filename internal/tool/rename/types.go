package rename

import (
	"os"
	"strings"

	"github.com/Cyclone1070/dirtools/internal/tool/fsutil"
)

// RenameDTO is the raw input for a Rename operation, as parsed from the command line.
type RenameDTO struct {
	Directory        string
	Search           string
	Replace          string
	RespectGitignore bool
}

// RenameRequest is the validated domain entity for a Rename operation.
type RenameRequest struct {
	root             string
	search           string
	replace          string
	respectGitignore bool
}

// NewRenameRequest creates a validated RenameRequest from a DTO.
// The root must exist and be a directory. Search and Replace may be empty.
func NewRenameRequest(dto RenameDTO, fs interface {
	Stat(path string) (os.FileInfo, error)
}) (*RenameRequest, error) {
	if err := fsutil.RequireDir(fs, dto.Directory); err != nil {
		return nil, err
	}

	return &RenameRequest{
		root:             dto.Directory,
		search:           dto.Search,
		replace:          dto.Replace,
		respectGitignore: dto.RespectGitignore,
	}, nil
}

// Root returns the directory the traversal starts from
func (r *RenameRequest) Root() string {
	return r.root
}

// RespectGitignore returns whether entries matched by the root .gitignore are skipped
func (r *RenameRequest) RespectGitignore() bool {
	return r.respectGitignore
}

// NewName computes the candidate name for an entry name.
// Every non-overlapping occurrence of the search string is replaced. An
// empty search string inserts the replacement before every rune and at the end of name.
func (r *RenameRequest) NewName(name string) string {
	return strings.ReplaceAll(name, r.search, r.replace)
}

// RenamedEntry records one rename issued to the filesystem.
type RenamedEntry struct {
	Dir     string
	OldName string
	NewName string
}

// Changed reports whether the rename altered the name.
func (e RenamedEntry) Changed() bool {
	return e.OldName != e.NewName
}

// RenameResponse contains the result of a Rename operation.
type RenameResponse struct {
	Renamed     []RenamedEntry
	DirsVisited int
}

// ChangedCount returns how many renames altered a name.
func (r *RenameResponse) ChangedCount() int {
	n := 0
	for _, e := range r.Renamed {
		if e.Changed() {
			n++
		}
	}
	return n
}
