// Package resolver turns a command-line input into a local module
// directory: a path inside a module, or a GitHub URL cloned into a
// persistent cache.
package resolver

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoModule is returned when no go.mod can be found for the input.
var ErrNoModule = errors.New("no go.mod found")

// maxSearchDepth bounds the downward go.mod search in cloned trees.
const maxSearchDepth = 3

// Options tunes input resolution.
type Options struct {
	CacheDir string // clone cache root, default <user cache>/goextdefs/repos
	Download bool   // run go mod download in the module root
}

// Resolve returns the module root for input.
func Resolve(ctx context.Context, input string, opts Options, logger *slog.Logger) (string, error) {
	var root string
	var err error
	if url, ok := githubURL(input); ok {
		root, err = fetch(ctx, url, opts, logger)
	} else {
		root, err = local(input)
	}
	if err != nil {
		return "", err
	}
	logger.Info("resolved input", "input", input, "module_root", root)

	if opts.Download {
		if err := goModDownload(ctx, root, logger); err != nil {
			logger.Warn("go mod download failed", "error", err)
		}
	}
	return root, nil
}

func local(input string) (string, error) {
	abs, err := filepath.Abs(input)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return findModuleRoot(abs)
}

// githubURL normalises https://github.com/owner/repo[.git] inputs.
func githubURL(input string) (string, bool) {
	rest, ok := strings.CutPrefix(input, "https://")
	if !ok {
		rest, ok = strings.CutPrefix(input, "http://")
	}
	if !ok || !strings.HasPrefix(rest, "github.com/") {
		return "", false
	}
	rest = strings.TrimSuffix(strings.TrimSuffix(rest, "/"), ".git")
	if strings.Count(rest, "/") < 2 {
		return "", false
	}
	return "https://" + rest, true
}

func cacheDir(opts Options, url string) (string, error) {
	base := opts.CacheDir
	if base == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("locating cache dir: %w", err)
		}
		base = filepath.Join(dir, "goextdefs", "repos")
	}
	h := sha256.Sum256([]byte(url))
	return filepath.Join(base, fmt.Sprintf("%x", h[:8])), nil
}

// fetch refreshes a cached shallow clone of url, re-cloning when the
// cache is missing or cannot be updated.
func fetch(ctx context.Context, url string, opts Options, logger *slog.Logger) (string, error) {
	dir, err := cacheDir(opts, url)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		logger.Info("updating cached repository", "url", url, "dir", dir)
		err := git(ctx, dir, "fetch", "--depth=1", "origin")
		if err == nil {
			err = git(ctx, dir, "reset", "--hard", "FETCH_HEAD")
		}
		if err == nil {
			return findModuleRootInTree(dir)
		}
		logger.Warn("cache refresh failed, re-cloning", "error", err)
		_ = os.RemoveAll(dir)
	}

	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}
	logger.Info("cloning repository", "url", url, "dest", dir)
	if err := git(ctx, "", "clone", "--depth=1", url, dir); err != nil {
		_ = os.RemoveAll(dir)
		return "", err
	}

	root, err := findModuleRootInTree(dir)
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", err
	}
	return root, nil
}

func git(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git %s: %w", args[0], err)
	}
	return nil
}

// findModuleRoot walks up from dir to the nearest go.mod.
func findModuleRoot(dir string) (string, error) {
	for current := dir; ; {
		if hasGoMod(current) {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("%w in %s or any parent directory", ErrNoModule, dir)
		}
		current = parent
	}
}

// findModuleRootInTree searches root breadth-first for the shallowest
// go.mod, taking directories in name order and skipping hidden, vendor
// and node_modules directories.
func findModuleRootInTree(root string) (string, error) {
	level := []string{root}
	for depth := 0; depth <= maxSearchDepth && len(level) > 0; depth++ {
		var next []string
		for _, dir := range level {
			if hasGoMod(dir) {
				return dir, nil
			}
			entries, err := os.ReadDir(dir)
			if err != nil {
				continue
			}
			for _, e := range entries {
				if e.IsDir() && !skipDir(e.Name()) {
					next = append(next, filepath.Join(dir, e.Name()))
				}
			}
		}
		sort.Strings(next)
		level = next
	}
	return "", fmt.Errorf("%w in %s", ErrNoModule, root)
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules" || name == "testdata"
}

func hasGoMod(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "go.mod"))
	return err == nil && !info.IsDir()
}

func goModDownload(ctx context.Context, dir string, logger *slog.Logger) error {
	logger.Debug("running go mod download", "dir", dir)
	cmd := exec.CommandContext(ctx, "go", "mod", "download")
	cmd.Dir = dir
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
