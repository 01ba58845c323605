// Package rename renames files in a directory tree by substring substitution.
package rename

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/Cyclone1070/dirtools/internal/tool/fsutil"
	"github.com/Cyclone1070/dirtools/internal/tool/gitutil"
)

// Renamer walks a directory tree and renames every regular file whose name
// contains the search substring. Directories are descended but never renamed.
type Renamer struct {
	fs           fileSystem
	ignoreLoader gitutil.Loader
	logger       logrus.FieldLogger
}

// NewRenamer creates a new Renamer with injected dependencies.
// ignoreLoader may be nil when gitignore support is never requested.
func NewRenamer(fs fileSystem, ignoreLoader gitutil.Loader, logger logrus.FieldLogger) *Renamer {
	return &Renamer{
		fs:           fs,
		ignoreLoader: ignoreLoader,
		logger:       logger,
	}
}

// Run traverses the tree rooted at req.Root() with an explicit worklist.
//
// Every regular file (symlinks followed) is renamed within its parent
// directory to req.NewName(name), even when the name is unchanged.
// Subdirectories are queued under their original path and are never renamed.
// The first filesystem error aborts the walk; renames already issued stay.
func (t *Renamer) Run(ctx context.Context, req *RenameRequest) (*RenameResponse, error) {
	matcher, err := t.matcherFor(req)
	if err != nil {
		return nil, err
	}

	resp := &RenameResponse{}
	visited := make(map[string]bool)
	worklist := []string{req.Root()}

	for len(worklist) > 0 {
		if err := ctx.Err(); err != nil {
			return resp, err
		}

		dir := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		// Detect symlink loops using canonical path
		canonical, err := t.fs.EvalSymlinks(dir)
		if err != nil {
			canonical = dir
		}
		if visited[canonical] {
			t.logger.WithField("dir", dir).Debug("skipping already visited directory")
			continue
		}
		visited[canonical] = true
		resp.DirsVisited++

		subdirs, err := t.renameIn(req, matcher, dir, resp)
		if err != nil {
			return resp, err
		}

		// Push in reverse so subdirectories are processed in listing order.
		for i := len(subdirs) - 1; i >= 0; i-- {
			worklist = append(worklist, subdirs[i])
		}
	}

	return resp, nil
}

// renameIn renames the regular files directly inside dir and returns the
// original paths of its subdirectories.
func (t *Renamer) renameIn(req *RenameRequest, matcher gitutil.Matcher, dir string, resp *RenameResponse) ([]string, error) {
	entries, err := t.fs.ListDir(dir)
	if err != nil {
		return nil, err
	}

	var subdirs []string
	for _, entry := range entries {
		entryPath := filepath.Join(dir, entry.Name())

		info, ok := t.resolve(entryPath, entry)
		if !ok {
			continue
		}

		rel, err := filepath.Rel(req.Root(), entryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate relative path for entry %s: %w", entryPath, err)
		}
		if matcher.ShouldIgnore(rel, info.IsDir()) {
			t.logger.WithField("path", rel).Debug("skipping gitignored entry")
			continue
		}

		switch {
		case info.Mode().IsRegular():
			newName := req.NewName(entry.Name())
			if err := t.fs.Rename(entryPath, filepath.Join(dir, newName)); err != nil {
				return nil, err
			}
			renamed := RenamedEntry{Dir: dir, OldName: entry.Name(), NewName: newName}
			resp.Renamed = append(resp.Renamed, renamed)
			if renamed.Changed() {
				t.logger.WithFields(logrus.Fields{
					"dir":  dir,
					"from": renamed.OldName,
					"to":   renamed.NewName,
				}).Debug("renamed file")
			}
		case info.IsDir():
			subdirs = append(subdirs, entryPath)
		}
	}

	return subdirs, nil
}

// resolve follows a symlink entry to its target. Entries whose target cannot
// be resolved are neither files nor directories and are skipped.
func (t *Renamer) resolve(path string, entry os.FileInfo) (os.FileInfo, bool) {
	info, err := fsutil.FollowEntry(t.fs, path, entry)
	if err != nil {
		t.logger.WithError(err).WithField("path", path).Debug("skipping unresolvable symlink")
		return nil, false
	}
	return info, true
}

func (t *Renamer) matcherFor(req *RenameRequest) (gitutil.Matcher, error) {
	if !req.RespectGitignore() || t.ignoreLoader == nil {
		return gitutil.NoOpMatcher{}, nil
	}
	return t.ignoreLoader(req.Root())
}
