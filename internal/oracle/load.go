package oracle

import (
	"context"
	"fmt"
	"go/token"
	"go/types"
	"log/slog"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Load type-checks the packages of the module in dir and returns them as a Program.
func Load(ctx context.Context, dir string, opts LoadOptions, logger *slog.Logger) (*Program, error) {
	fset := token.NewFileSet()
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedTypes | packages.NeedSyntax |
			packages.NeedTypesInfo | packages.NeedModule | packages.NeedImports,
		Dir:     dir,
		Context: ctx,
		Fset:    fset,
		Tests:   opts.IncludeTests,
	}

	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("%w: loading packages: %w", ErrOracleSetup, err)
	}
	logger.Info("packages loaded", "packages_count", len(pkgs))

	prog := &Program{fset: fset}
	for _, pkg := range pkgs {
		if pkg.Module != nil && prog.ModulePath == "" {
			prog.ModulePath = pkg.Module.Path
			prog.ModuleDir = pkg.Module.Dir
		}
	}
	if prog.ModuleDir == "" {
		prog.ModuleDir = dir
	}

	filter, err := newFileFilter(prog.ModuleDir, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOracleSetup, err)
	}

	var typed []*types.Package
	seen := make(map[string]bool)
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			logger.Warn("package load error", "package", pkg.PkgPath, "error", e.Msg)
		}
		// The synthesized test main package carries nothing exported.
		if strings.HasSuffix(pkg.ID, ".test") {
			continue
		}
		if pkg.Types == nil || pkg.Types.Scope().Len() == 0 {
			continue
		}
		if !filter.keep(pkg.GoFiles) {
			logger.Debug("package filtered out", "package", pkg.PkgPath)
			continue
		}
		if seen[pkg.ID] {
			continue
		}
		seen[pkg.ID] = true
		typed = append(typed, pkg.Types)
	}

	if len(typed) == 0 {
		return nil, fmt.Errorf("%w: no type-checked packages in %s", ErrOracleSetup, dir)
	}

	for _, t := range typed {
		prog.modules = append(prog.modules, &Module{Path: t.Path(), Name: t.Name(), Types: t})
	}
	logger.Info("program ready", "module", prog.ModulePath, "packages", len(prog.modules))
	return prog, nil
}
