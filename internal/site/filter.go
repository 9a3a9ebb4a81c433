package site

import (
	"path"
	"strings"
)

// DefaultExcludePatterns lists directories that never hold content to publish:
// version control, dependency trees and tool caches.
var DefaultExcludePatterns = []string{
	".git/**", ".hg/**", ".svn/**",
	"node_modules/**", "vendor/**", "venv/**", ".venv/**",
	"__pycache__/**", ".pytest_cache/**", ".idea/**", ".vscode/**",
}

// Filter decides which directories are walked and which files are collected.
type Filter struct {
	patterns    []string
	maxFileSize int64
}

// NewFilter creates a Filter with the default patterns plus extra.
func NewFilter(extra []string, maxFileSize int64) *Filter {
	patterns := make([]string, 0, len(DefaultExcludePatterns)+len(extra))
	patterns = append(patterns, DefaultExcludePatterns...)
	patterns = append(patterns, extra...)
	return &Filter{patterns: patterns, maxFileSize: maxFileSize}
}

// SkipDir reports whether the directory at relPath (slash separated,
// relative to the walked root) should not be descended into.
func (f *Filter) SkipDir(relPath string) bool {
	if relPath == "." {
		return false
	}
	for _, p := range f.patterns {
		if matchPattern(p, relPath) || matchPattern(p, relPath+"/") {
			return true
		}
	}
	return false
}

// ExcludeFile reports whether the file at relPath matches an exclusion pattern.
func (f *Filter) ExcludeFile(relPath string) bool {
	for _, p := range f.patterns {
		if matchPattern(p, relPath) {
			return true
		}
	}
	return false
}

// TooLarge reports whether a file of the given size exceeds the limit.
// A non-positive limit disables the check.
func (f *Filter) TooLarge(size int64) bool {
	return f.maxFileSize > 0 && size > f.maxFileSize
}

// matchPattern matches a slash separated path against a glob pattern.
// "dir/**" matches dir at any depth, "**/x" matches x under any directory.
func matchPattern(pattern, p string) bool {
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		parts := strings.Split(p, "/")
		for i := range parts {
			if matchSimplePattern(rest, strings.Join(parts[i:], "/")) {
				return true
			}
		}
		return false
	}

	if dir, ok := strings.CutSuffix(pattern, "/**"); ok {
		if p == dir || strings.HasPrefix(p, dir+"/") {
			return true
		}
		// directory component anywhere in the path, with something after it
		parts := strings.Split(p, "/")
		for i, part := range parts {
			if part == dir && i < len(parts)-1 {
				return true
			}
		}
		return false
	}

	return matchSimplePattern(pattern, p)
}

// matchSimplePattern matches a glob without ** against the full path or its base name.
func matchSimplePattern(pattern, name string) bool {
	if pattern == name {
		return true
	}
	if matched, _ := path.Match(pattern, name); matched {
		return true
	}
	matched, _ := path.Match(pattern, path.Base(name))
	return matched
}
