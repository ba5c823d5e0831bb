package oracle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"
	ignore "github.com/sabhiram/go-gitignore"
)

// fileFilter applies include globs and exclude patterns to package files.
type fileFilter struct {
	root    string
	include []string
	exclude *ignore.GitIgnore
}

func newFileFilter(root string, opts LoadOptions) (*fileFilter, error) {
	for _, pat := range opts.Include {
		if _, err := doublestar.Match(pat, "x"); err != nil {
			return nil, fmt.Errorf("include pattern %q: %w", pat, err)
		}
	}
	lines := append([]string(nil), opts.Exclude...)
	if data, err := os.ReadFile(filepath.Join(root, ".gitignore")); err == nil {
		lines = append(lines, strings.Split(string(data), "\n")...)
	}
	f := &fileFilter{root: root, include: opts.Include}
	if len(lines) > 0 {
		f.exclude = ignore.CompileIgnoreLines(lines...)
	}
	return f, nil
}

// keep reports whether any of files survives the filter.
func (f *fileFilter) keep(files []string) bool {
	if len(f.include) == 0 && f.exclude == nil {
		return true
	}
	for _, file := range files {
		if f.keepFile(file) {
			return true
		}
	}
	return false
}

func (f *fileFilter) keepFile(file string) bool {
	rel, err := filepath.Rel(f.root, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = file
	}
	rel = filepath.ToSlash(rel)

	if f.exclude != nil && f.exclude.MatchesPath(rel) {
		return false
	}
	if len(f.include) == 0 {
		return true
	}
	for _, pat := range f.include {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}
