// Package shebang tallies the interpreter directives of the files in a directory.
package shebang

import (
	"context"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/Cyclone1070/dirtools/internal/tool/fsutil"
	"github.com/Cyclone1070/dirtools/internal/tool/gitutil"
	"github.com/Cyclone1070/dirtools/internal/tool/helper/content"
)

// Counter reads the first line of every regular file directly inside a
// directory and counts the ones that are interpreter directives.
type Counter struct {
	fs           fileSystem
	ignoreLoader gitutil.Loader
	sampleSize   int
	logger       logrus.FieldLogger
}

// NewCounter creates a new Counter with injected dependencies.
// sampleSize is the number of leading bytes that must be valid UTF-8.
func NewCounter(fs fileSystem, ignoreLoader gitutil.Loader, sampleSize int, logger logrus.FieldLogger) *Counter {
	return &Counter{
		fs:           fs,
		ignoreLoader: ignoreLoader,
		sampleSize:   sampleSize,
		logger:       logger,
	}
}

// Run scans the direct children of req.Dir(). Subdirectories are never
// opened. Files that are not valid UTF-8 text are skipped without error.
// On a read failure the tally gathered so far is returned with the error.
func (t *Counter) Run(ctx context.Context, req *CountRequest) (*CountResponse, error) {
	matcher := gitutil.Matcher(gitutil.NoOpMatcher{})
	if req.RespectGitignore() && t.ignoreLoader != nil {
		m, err := t.ignoreLoader(req.Dir())
		if err != nil {
			return nil, err
		}
		matcher = m
	}

	entries, err := t.fs.ListDir(req.Dir())
	if err != nil {
		return nil, err
	}

	files := lo.FilterMap(entries, func(entry os.FileInfo, _ int) (string, bool) {
		path := filepath.Join(req.Dir(), entry.Name())
		info, err := fsutil.FollowEntry(t.fs, path, entry)
		if err != nil || !info.Mode().IsRegular() {
			return "", false
		}
		return path, !matcher.ShouldIgnore(entry.Name(), false)
	})

	resp := &CountResponse{Table: make(FrequencyTable)}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return resp, err
		}

		line, err := t.firstLine(path)
		if content.IsDecodeError(err) {
			resp.Scanned++
			resp.Skipped++
			t.logger.WithField("path", path).Debug("skipping file that is not text")
			continue
		}
		if err != nil {
			return resp, err
		}
		resp.Scanned++

		if IsShebang(line) {
			resp.Table.Add(line)
		}
	}

	return resp, nil
}

func (t *Counter) firstLine(path string) (string, error) {
	f, err := t.fs.Open(path)
	if err != nil {
		return "", &ReadFileError{Path: path, Cause: err}
	}
	defer f.Close()

	line, err := content.ReadFirstLine(f, t.sampleSize)
	if err != nil {
		if content.IsDecodeError(err) {
			return "", err
		}
		return "", &ReadFileError{Path: path, Cause: err}
	}
	return line, nil
}
