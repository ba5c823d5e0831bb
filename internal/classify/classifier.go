package classify

import (
	"context"
	"go/types"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/olehluchkiv/goextdefs/internal/catalogue"
	"github.com/olehluchkiv/goextdefs/internal/namespace"
	"github.com/olehluchkiv/goextdefs/internal/oracle"
	"github.com/olehluchkiv/goextdefs/internal/policy"
)

// Options tunes a Classifier.
type Options struct {
	Workers int // parallel structural tests, default GOMAXPROCS
}

// Classifier partitions callable declarations into primary categories.
type Classifier struct {
	oracle  oracle.Oracle
	namer   *namespace.Namer
	table   *policy.Table
	workers int
	logger  *slog.Logger
}

// New returns a Classifier.
func New(o oracle.Oracle, namer *namespace.Namer, table *policy.Table, opts Options, logger *slog.Logger) *Classifier {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Classifier{
		oracle:  o,
		namer:   namer,
		table:   table,
		workers: workers,
		logger:  logger.With("component", "classify"),
	}
}

type entry struct {
	decl  *Declaration
	shape shape
}

// Classify assigns exactly one primary category to every callable in decls.
// Declarations without a call signature are skipped.
func (c *Classifier) Classify(ctx context.Context, decls []*Declaration) ([]Result, Stats, error) {
	var callables []*Declaration
	var sigs []*types.Signature
	for _, d := range decls {
		if d.Kind != catalogue.DeclFunction && d.Kind != catalogue.DeclConst {
			continue
		}
		s := c.oracle.CallSignatures(c.oracle.TypeOf(d.Object))
		if len(s) == 0 {
			continue
		}
		callables = append(callables, d)
		sigs = append(sigs, s[0])
	}

	entries := make([]*entry, len(callables))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, d := range callables {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entries[i] = &entry{decl: d, shape: c.shapeOf(d, sigs[i])}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	results, stats := c.partition(entries)
	c.logger.Debug("classification complete",
		"callables", stats.Callables,
		"by_name", stats.ByName,
		"getters", stats.Getters,
		"fluents", stats.Fluents,
		"pipeables", stats.Pipeables,
		"statics", stats.Statics)
	return results, stats, nil
}

// partition folds the pool through each category in priority order. Each
// step yields the matched entries and threads the rest forward.
func (c *Classifier) partition(pool []*entry) ([]Result, Stats) {
	stats := Stats{Callables: len(pool)}
	var results []Result

	byName, pool := extract(pool, func(e *entry) bool { return e.shape.byName })
	for _, e := range byName {
		results = append(results, staticResult(e, true))
	}
	stats.ByName = len(byName)

	getters, pool := extract(pool, func(e *entry) bool { return e.shape.getter != nil })
	for _, e := range getters {
		results = append(results, subjectResult(e, catalogue.KindGetter, e.shape.getter))
	}
	stats.Getters = len(getters)

	fluents, pool := extract(pool, func(e *entry) bool { return e.shape.fluent != nil })
	for _, e := range fluents {
		results = append(results, subjectResult(e, catalogue.KindFluent, e.shape.fluent))
	}
	stats.Fluents = len(fluents)

	pipeables, pool := extract(pool, func(e *entry) bool { return e.shape.pipeable != nil })
	for _, e := range pipeables {
		results = append(results, subjectResult(e, catalogue.KindPipeable, e.shape.pipeable))
	}
	stats.Pipeables = len(pipeables)

	for _, e := range pool {
		results = append(results, staticResult(e, false))
	}
	stats.Statics = len(pool)

	return results, stats
}

func extract(pool []*entry, match func(*entry) bool) (matched, remaining []*entry) {
	for _, e := range pool {
		if match(e) {
			matched = append(matched, e)
		} else {
			remaining = append(remaining, e)
		}
	}
	return matched, remaining
}

func subjectResult(e *entry, kind catalogue.Kind, sub *subject) Result {
	return Result{Decl: e.decl, Kind: kind, Subject: sub.typeName, Output: e.shape.output}
}

func staticResult(e *entry, byName bool) Result {
	return Result{Decl: e.decl, Kind: catalogue.KindStatic, Subject: e.shape.static, Output: e.shape.output, ByName: byName}
}
