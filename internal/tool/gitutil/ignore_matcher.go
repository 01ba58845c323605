package gitutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/Cyclone1070/dirtools/internal/tool/helper/content"
)

// fileSystem defines the minimal filesystem interface needed for gitignore loading.
type fileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// Matcher decides whether a path relative to the scanned root is ignored.
type Matcher interface {
	ShouldIgnore(relativePath string, isDir bool) bool
}

// Loader builds a Matcher for a scan root.
type Loader func(root string) (Matcher, error)

// NewLoader returns a Loader that reads root/.gitignore through fs.
func NewLoader(fs fileSystem) Loader {
	return func(root string) (Matcher, error) {
		m, err := NewIgnoreMatcher(root, fs)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

// IgnoreMatcher implements gitignore pattern matching using go-git's gitignore matcher.
type IgnoreMatcher struct {
	matcher gitignore.Matcher
}

// NewIgnoreMatcher loads the .gitignore file at root.
// A missing .gitignore yields a matcher that never ignores.
func NewIgnoreMatcher(root string, fs fileSystem) (*IgnoreMatcher, error) {
	gitignorePath := filepath.Join(root, ".gitignore")

	data, err := fs.ReadFile(gitignorePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &IgnoreMatcher{}, nil
		}
		return nil, &GitignoreReadError{Path: gitignorePath, Cause: err}
	}

	var patterns []gitignore.Pattern
	for _, line := range content.SplitLines(string(data)) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(trimmed, nil))
	}

	return &IgnoreMatcher{matcher: gitignore.NewMatcher(patterns)}, nil
}

// ShouldIgnore checks if a relative path matches any gitignore pattern.
// Returns false if no .gitignore was loaded.
func (m *IgnoreMatcher) ShouldIgnore(relativePath string, isDir bool) bool {
	if m.matcher == nil {
		return false
	}

	segments := splitPath(relativePath)
	if len(segments) == 0 {
		return false
	}
	return m.matcher.Match(segments, isDir)
}

// splitPath splits a path into segments for gitignore matching,
// dropping empty and "." segments.
func splitPath(path string) []string {
	var segments []string
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}

// NoOpMatcher never ignores anything. Used when gitignore support is off.
type NoOpMatcher struct{}

func (NoOpMatcher) ShouldIgnore(string, bool) bool {
	return false
}
