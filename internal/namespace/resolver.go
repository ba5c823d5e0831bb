// Package namespace turns source locations into logical namespace strings
// and combines them with symbol names into canonical target type names.
package namespace

import (
	"path"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// StdPrefix marks namespaces derived from the standard library.
const StdPrefix = "std/"

const defaultCacheSize = 4096

// Options configures namespace resolution for one project.
type Options struct {
	PackageName       string            // namespace root for project files, usually the module path
	RootDir           string            // project root directory
	GoRoot            string            // GOROOT; files below GoRoot/src resolve under StdPrefix
	Aliases           map[string]string // exact-match namespace substitutions
	DependencyMarkers []string          // path fragments marking dependency sources
	DefinitionDirs    []string          // segments from which the rest of the path is ignored
	IndexNames        []string          // trailing file names that collapse into their directory
	FileScope         bool              // namespace per file instead of per package directory
}

// DefaultOptions returns Options with the Go conventions filled in.
func DefaultOptions(packageName, rootDir string) Options {
	return Options{
		PackageName:       packageName,
		RootDir:           rootDir,
		DependencyMarkers: []string{"/pkg/mod/", "/vendor/"},
		DefinitionDirs:    []string{"internal"},
		IndexNames:        []string{"index", "doc"},
	}
}

// Resolver maps source file paths to namespaces. It is safe for concurrent use.
type Resolver struct {
	opts  Options
	root  string
	std   string
	cache *lru.Cache[string, string]
}

// NewResolver returns a Resolver for opts.
func NewResolver(opts Options) *Resolver {
	cache, err := lru.New[string, string](defaultCacheSize)
	if err != nil {
		panic(err) // only fails for a non-positive size
	}
	r := &Resolver{opts: opts, cache: cache}
	if opts.RootDir != "" {
		r.root = strings.TrimSuffix(toSlash(opts.RootDir), "/")
	}
	if opts.GoRoot != "" {
		r.std = strings.TrimSuffix(toSlash(opts.GoRoot), "/") + "/src/"
	}
	return r
}

// Options returns the options the resolver was built with.
func (r *Resolver) Options() Options {
	return r.opts
}

// Resolve returns the namespace for the source file at p.
func (r *Resolver) Resolve(p string) string {
	if ns, ok := r.cache.Get(p); ok {
		return ns
	}
	ns := r.resolve(p)
	r.cache.Add(p, ns)
	return ns
}

func (r *Resolver) resolve(p string) string {
	p = toSlash(p)

	var ns string
	if rel, ok := r.external(p); ok {
		ns = rel
	} else if r.std != "" && strings.HasPrefix(p, r.std) {
		ns = StdPrefix + strings.TrimPrefix(p, r.std)
	} else {
		ns = r.internal(p)
	}

	if r.opts.FileScope {
		ns = stripFileSuffix(ns)
		ns = r.stripIndex(ns)
	} else if strings.HasSuffix(ns, ".go") {
		if ns = path.Dir(ns); ns == "." {
			ns = ""
		}
	}
	ns = r.stripDefinition(ns)
	ns = strings.TrimPrefix(ns, "@")

	if alias, ok := r.opts.Aliases[ns]; ok {
		return alias
	}
	return ns
}

// Scope returns the module a source file belongs to: PackageName for
// project files, the dependency module path for external files and
// "std" for the standard library. Namespaces in different scopes never
// share statics.
func (r *Resolver) Scope(p string) string {
	p = toSlash(p)
	if rel, ok := r.externalRel(p); ok {
		return moduleRoot(rel)
	}
	if r.std != "" && strings.HasPrefix(p, r.std) {
		return strings.TrimSuffix(StdPrefix, "/")
	}
	return r.opts.PackageName
}

// moduleRoot cuts a dependency-relative path after its versioned segment.
// Unversioned paths (vendor trees) fall back to host/owner/repo for hosted
// paths and to the first segment otherwise.
func moduleRoot(rel string) string {
	segs := strings.Split(rel, "/")
	for i, s := range segs {
		if at := strings.IndexByte(s, '@'); at > 0 {
			segs[i] = s[:at]
			return strings.Join(segs[:i+1], "/")
		}
	}
	n := 1
	if strings.Contains(segs[0], ".") {
		n = min(3, len(segs)-1)
	}
	return strings.Join(segs[:max(n, 1)], "/")
}

// external reports whether p lies in dependency sources and returns the
// dependency-relative path with version suffixes removed.
func (r *Resolver) external(p string) (string, bool) {
	rel, ok := r.externalRel(p)
	if !ok {
		return "", false
	}
	segs := strings.Split(rel, "/")
	for i, s := range segs {
		if at := strings.IndexByte(s, '@'); at > 0 {
			segs[i] = s[:at]
		}
	}
	return strings.Join(segs, "/"), true
}

// externalRel returns the raw path beyond the last dependency marker.
func (r *Resolver) externalRel(p string) (string, bool) {
	best := -1
	var marker string
	for _, m := range r.opts.DependencyMarkers {
		if i := strings.LastIndex(p, m); i > best {
			best = i
			marker = m
		}
	}
	if best < 0 {
		return "", false
	}
	return p[best+len(marker):], true
}

func (r *Resolver) internal(p string) string {
	rel := p
	if r.root != "" {
		if strings.HasPrefix(p, r.root+"/") {
			rel = strings.TrimPrefix(p, r.root+"/")
		} else if filepath.IsAbs(filepath.FromSlash(p)) {
			if x, err := filepath.Rel(filepath.FromSlash(r.root), filepath.FromSlash(p)); err == nil {
				rel = toSlash(x)
			}
		}
	}
	rel = strings.TrimPrefix(rel, "./")
	if r.opts.PackageName == "" {
		return rel
	}
	return r.opts.PackageName + "/" + rel
}

func (r *Resolver) stripIndex(ns string) string {
	dir, base := path.Split(ns)
	if dir == "" {
		return ns
	}
	for _, idx := range r.opts.IndexNames {
		if base == idx {
			return strings.TrimSuffix(dir, "/")
		}
	}
	return ns
}

func (r *Resolver) stripDefinition(ns string) string {
	segs := strings.Split(ns, "/")
	for i, s := range segs {
		if i == 0 {
			continue
		}
		for _, d := range r.opts.DefinitionDirs {
			if s == d {
				return strings.Join(segs[:i], "/")
			}
		}
	}
	return ns
}

func stripFileSuffix(ns string) string {
	ns = strings.TrimSuffix(ns, ".go")
	return strings.TrimSuffix(ns, "_test")
}

func toSlash(p string) string {
	return strings.ReplaceAll(filepath.ToSlash(p), "\\", "/")
}
