package shebang

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	toolserrors "github.com/Cyclone1070/dirtools/internal/tool/errutil"
	"github.com/Cyclone1070/dirtools/internal/tool/fsutil"
	"github.com/Cyclone1070/dirtools/internal/tool/gitutil"
)

const testSampleSize = 8192

func writeFile(t *testing.T, dir, name, data string) {
	t.Helper()
	full := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(data), 0o644))
}

func count(t *testing.T, dto CountDTO) *CountResponse {
	t.Helper()
	osFS := fsutil.NewOSFileSystem()
	req, err := NewCountRequest(dto, osFS)
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()

	resp, err := NewCounter(osFS, gitutil.NewLoader(osFS), testSampleSize, logger).Run(context.Background(), req)
	require.NoError(t, err)
	return resp
}

func TestRun_BasicTally(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.sh", "#!/bin/bash\necho a\n")
	writeFile(t, dir, "b.sh", "#!/bin/bash\necho b\n")
	writeFile(t, dir, "c.py", "#!/usr/bin/env python3\nprint('c')\n")

	resp := count(t, CountDTO{Directory: dir})

	assert.Equal(t, FrequencyTable{
		"#!/bin/bash\n":            2,
		"#!/usr/bin/env python3\n": 1,
	}, resp.Table)
	assert.Equal(t, 3, resp.Scanned)
	assert.Equal(t, 0, resp.Skipped)
	assert.Equal(t, 3, resp.Table.Total())
}

func TestRun_NonShebangFilesContributeNothing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hello.py", "print(\"hello\")\n")
	writeFile(t, dir, "empty", "")
	writeFile(t, dir, "late.sh", "\n#!/bin/sh\n")
	writeFile(t, dir, "space.sh", " #!/bin/sh\n")
	writeFile(t, dir, "bom.sh", "\ufeff#!/bin/sh\n")

	resp := count(t, CountDTO{Directory: dir})

	assert.Empty(t, resp.Table)
	assert.Equal(t, 5, resp.Scanned)
}

func TestRun_ExactLineIsTheKey(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a", "#!/bin/sh\n")
	writeFile(t, dir, "b", "#!/bin/sh -e\n")
	writeFile(t, dir, "c", "#!/bin/sh")
	writeFile(t, dir, "d", "#!/bin/sh\r\nexit\r\n")

	resp := count(t, CountDTO{Directory: dir})

	assert.Equal(t, FrequencyTable{
		"#!/bin/sh\n":    2,
		"#!/bin/sh -e\n": 1,
		"#!/bin/sh":      1,
	}, resp.Table)
}

func TestRun_SkipsBinaryFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tool.sh", "#!/bin/sh\n")
	writeFile(t, dir, "image.png", "\x89PNG\r\n\x1a\n\x00\x00")
	writeFile(t, dir, "latin1.sh", "#!/bin/sh\n# caf\xe9\n")

	resp := count(t, CountDTO{Directory: dir})

	assert.Equal(t, FrequencyTable{"#!/bin/sh\n": 1}, resp.Table)
	assert.Equal(t, 3, resp.Scanned)
	assert.Equal(t, 2, resp.Skipped)
}

func TestRun_DoesNotRecurse(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "top.sh", "#!/bin/bash\n")
	writeFile(t, dir, "sub/nested.sh", "#!/bin/bash\n")
	writeFile(t, dir, "sub/deeper/more.sh", "#!/bin/zsh\n")

	resp := count(t, CountDTO{Directory: dir})

	assert.Equal(t, FrequencyTable{"#!/bin/bash\n": 1}, resp.Table)
	assert.Equal(t, 1, resp.Scanned)
}

func TestRun_FollowsFileSymlinks(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	writeFile(t, other, "real.sh", "#!/bin/dash\n")
	require.NoError(t, os.Symlink(filepath.Join(other, "real.sh"), filepath.Join(dir, "link.sh")))
	require.NoError(t, os.Symlink(other, filepath.Join(dir, "linked-dir")))
	require.NoError(t, os.Symlink(filepath.Join(other, "gone"), filepath.Join(dir, "dangling")))

	resp := count(t, CountDTO{Directory: dir})

	assert.Equal(t, FrequencyTable{"#!/bin/dash\n": 1}, resp.Table)
	assert.Equal(t, 1, resp.Scanned)
}

func TestRun_RespectGitignore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "vendored-*\n")
	writeFile(t, dir, "mine.sh", "#!/bin/sh\n")
	writeFile(t, dir, "vendored-tool", "#!/usr/bin/perl\n")

	t.Run("on", func(t *testing.T) {
		resp := count(t, CountDTO{Directory: dir, RespectGitignore: true})
		assert.Equal(t, FrequencyTable{"#!/bin/sh\n": 1}, resp.Table)
	})

	t.Run("off", func(t *testing.T) {
		resp := count(t, CountDTO{Directory: dir})
		assert.Equal(t, FrequencyTable{"#!/bin/sh\n": 1, "#!/usr/bin/perl\n": 1}, resp.Table)
	})
}

func TestRun_LogsSkippedFilesAtDebug(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "blob", "\xff\xfe\xfd")

	osFS := fsutil.NewOSFileSystem()
	req, err := NewCountRequest(CountDTO{Directory: dir}, osFS)
	require.NoError(t, err)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	_, err = NewCounter(osFS, nil, testSampleSize, logger).Run(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
	assert.Equal(t, filepath.Join(dir, "blob"), hook.LastEntry().Data["path"])
}

func TestNewCountRequest(t *testing.T) {
	fs := fsutil.NewOSFileSystem()

	t.Run("missing directory", func(t *testing.T) {
		_, err := NewCountRequest(CountDTO{Directory: filepath.Join(t.TempDir(), "missing")}, fs)
		assert.ErrorIs(t, err, toolserrors.ErrDirectoryMissing)
	})

	t.Run("file instead of directory", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "f", "")
		_, err := NewCountRequest(CountDTO{Directory: filepath.Join(dir, "f")}, fs)
		assert.ErrorIs(t, err, toolserrors.ErrNotADirectory)
	})
}

// --- failure injection ---

type fakeFileInfo struct {
	name string
	mode os.FileMode
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return 0 }
func (f fakeFileInfo) Mode() os.FileMode  { return f.mode }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f fakeFileInfo) Sys() any           { return nil }

type trackingReadCloser struct {
	io.Reader
	closed *int
}

func (r trackingReadCloser) Close() error {
	*r.closed++
	return nil
}

type fakeFileSystem struct {
	entries []os.FileInfo
	files   map[string]string
	openErr map[string]error
	opened  []string
	closed  int
}

func (f *fakeFileSystem) Stat(path string) (os.FileInfo, error) {
	if path == "/scripts" {
		return fakeFileInfo{name: "scripts", mode: os.ModeDir | 0o755}, nil
	}
	return nil, os.ErrNotExist
}

func (f *fakeFileSystem) ListDir(string) ([]os.FileInfo, error) {
	return f.entries, nil
}

func (f *fakeFileSystem) Open(path string) (io.ReadCloser, error) {
	f.opened = append(f.opened, path)
	if err, ok := f.openErr[path]; ok {
		return nil, err
	}
	return trackingReadCloser{Reader: strings.NewReader(f.files[path]), closed: &f.closed}, nil
}

func TestRun_ClosesEveryFile(t *testing.T) {
	fs := &fakeFileSystem{
		entries: []os.FileInfo{
			fakeFileInfo{name: "a", mode: 0o755},
			fakeFileInfo{name: "b", mode: 0o644},
			fakeFileInfo{name: "c", mode: 0o644},
			fakeFileInfo{name: "sub", mode: os.ModeDir | 0o755},
		},
		files: map[string]string{
			"/scripts/a": "#!/bin/sh\n",
			"/scripts/b": "\xff",
			"/scripts/c": "plain\n",
		},
	}
	req, err := NewCountRequest(CountDTO{Directory: "/scripts"}, fs)
	require.NoError(t, err)

	resp, err := NewCounter(fs, nil, testSampleSize, logrus.New()).Run(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []string{"/scripts/a", "/scripts/b", "/scripts/c"}, fs.opened)
	assert.Equal(t, 3, fs.closed)
	assert.Equal(t, FrequencyTable{"#!/bin/sh\n": 1}, resp.Table)
}

func TestRun_OpenFailureAborts(t *testing.T) {
	fs := &fakeFileSystem{
		entries: []os.FileInfo{
			fakeFileInfo{name: "ok.sh", mode: 0o755},
			fakeFileInfo{name: "secret", mode: 0o000},
			fakeFileInfo{name: "zz.sh", mode: 0o755},
		},
		files: map[string]string{
			"/scripts/ok.sh": "#!/bin/sh\n",
			"/scripts/zz.sh": "#!/bin/sh\n",
		},
		openErr: map[string]error{"/scripts/secret": os.ErrPermission},
	}
	req, err := NewCountRequest(CountDTO{Directory: "/scripts"}, fs)
	require.NoError(t, err)

	resp, err := NewCounter(fs, nil, testSampleSize, logrus.New()).Run(context.Background(), req)

	require.NotNil(t, resp)
	assert.Equal(t, 1, resp.Scanned, "the failed file is not counted as scanned")
	assert.Equal(t, FrequencyTable{"#!/bin/sh\n": 1}, resp.Table)
	assert.NotContains(t, fs.opened, "/scripts/zz.sh")

	var readErr *ReadFileError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "/scripts/secret", readErr.Path)
	assert.True(t, errors.Is(err, os.ErrPermission))
	assert.Equal(t, toolserrors.KindIO, toolserrors.Classify(err))
}

func TestRun_CancelledContext(t *testing.T) {
	fs := &fakeFileSystem{
		entries: []os.FileInfo{fakeFileInfo{name: "a", mode: 0o644}},
		files:   map[string]string{"/scripts/a": "#!/bin/sh\n"},
	}
	req, err := NewCountRequest(CountDTO{Directory: "/scripts"}, fs)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewCounter(fs, nil, testSampleSize, logrus.New()).Run(ctx, req)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fs.opened)
}
