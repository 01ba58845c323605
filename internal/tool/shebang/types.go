package shebang

import (
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/Cyclone1070/dirtools/internal/tool/fsutil"
)

// Marker starts an interpreter directive.
const Marker = "#!"

// IsShebang reports whether a first line is an interpreter directive.
func IsShebang(line string) bool {
	return strings.HasPrefix(line, Marker)
}

// CountDTO is the raw input for a Count operation, as parsed from the command line.
type CountDTO struct {
	Directory        string
	RespectGitignore bool
}

// CountRequest is the validated domain entity for a Count operation.
type CountRequest struct {
	dir              string
	respectGitignore bool
}

// NewCountRequest creates a validated CountRequest from a DTO.
// The directory must exist and be a directory.
func NewCountRequest(dto CountDTO, fs interface {
	Stat(path string) (os.FileInfo, error)
}) (*CountRequest, error) {
	if err := fsutil.RequireDir(fs, dto.Directory); err != nil {
		return nil, err
	}

	return &CountRequest{
		dir:              dto.Directory,
		respectGitignore: dto.RespectGitignore,
	}, nil
}

// Dir returns the scanned directory
func (r *CountRequest) Dir() string {
	return r.dir
}

// RespectGitignore returns whether files matched by the directory's .gitignore are skipped
func (r *CountRequest) RespectGitignore() bool {
	return r.respectGitignore
}

// FrequencyTable maps an exact first line, terminator included, to the
// number of files that start with it.
type FrequencyTable map[string]int

// Add counts one more occurrence of line.
func (f FrequencyTable) Add(line string) {
	f[line]++
}

// Total returns the number of files counted.
func (f FrequencyTable) Total() int {
	return lo.Sum(lo.Values(f))
}

// Entry is one row of a FrequencyTable.
type Entry struct {
	Line  string
	Count int
}

// Entries returns the table ordered by count descending, then line ascending.
func (f FrequencyTable) Entries() []Entry {
	entries := lo.MapToSlice(f, func(line string, count int) Entry {
		return Entry{Line: line, Count: count}
	})
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Line < entries[j].Line
	})
	return entries
}

// CountResponse contains the result of a Count operation.
type CountResponse struct {
	Table   FrequencyTable
	Scanned int // regular files opened
	Skipped int // files that were not valid text
}
