package pipeline

import (
	"context"
	"log/slog"

	"github.com/olehluchkiv/goextdefs/internal/catalogue"
	"github.com/olehluchkiv/goextdefs/internal/classify"
	"github.com/olehluchkiv/goextdefs/internal/namespace"
	"github.com/olehluchkiv/goextdefs/internal/oracle"
	"github.com/olehluchkiv/goextdefs/internal/policy"
)

// Config is everything one run needs besides the program itself.
type Config struct {
	Namespace  namespace.Options
	Table      *policy.Table
	Overrides  catalogue.Overrides
	Catalogues []catalogue.Catalogue // merged verbatim
	Workers    int
}

// Stats summarises a run.
type Stats struct {
	classify.Stats
	Declarations int
	Unresolvable int
	Types        int
	Definitions  int
}

// Run produces the catalogue for the program behind o. A cancelled context
// yields ctx.Err() and no catalogue.
func Run(ctx context.Context, o oracle.Oracle, cfg Config, logger *slog.Logger) (catalogue.Catalogue, Stats, error) {
	logger = logger.With("component", "pipeline")

	table := cfg.Table
	if table == nil {
		var err error
		if table, err = policy.NewTable(nil); err != nil {
			return nil, Stats{}, err
		}
	}

	namer := namespace.NewNamer(namespace.NewResolver(cfg.Namespace), o)
	decls, unresolvable := Collect(o, namer, logger)
	stats := Stats{Declarations: len(decls), Unresolvable: unresolvable}
	logger.Info("declarations collected", "declarations", len(decls), "unresolvable", unresolvable)

	if err := ctx.Err(); err != nil {
		return nil, Stats{}, err
	}

	classifier := classify.New(o, namer, table, classify.Options{Workers: cfg.Workers}, logger)
	results, cstats, err := classifier.Classify(ctx, decls)
	if err != nil {
		return nil, Stats{}, err
	}
	stats.Stats = cstats

	engine := policy.NewEngine(table, cfg.Overrides)
	b := catalogue.NewBuilder()
	add := func(d *classify.Declaration, in policy.Input, exts []catalogue.Extension) {
		b.Add(engine.OutputModule(in), catalogue.Definition{
			Name:       d.Name,
			Kind:       d.Kind,
			Extensions: exts,
		})
	}

	handled := make(map[*classify.Declaration]bool, len(results))
	for _, r := range results {
		handled[r.Decl] = true
		in := policy.Input{
			Kind:         r.Kind,
			DeclName:     r.Decl.Name,
			Module:       r.Decl.Module,
			TypeName:     r.Subject,
			DeclTypeName: r.Decl.TypeName,
			OutputType:   r.Output,
		}
		add(r.Decl, in, engine.Apply(in))
	}

	for _, d := range decls {
		if handled[d] {
			continue
		}
		in := policy.Input{DeclName: d.Name, Module: d.Module, TypeName: d.TypeName, DeclTypeName: d.TypeName}
		if isTypeDecl(d.Kind) {
			stats.Types++
			add(d, in, engine.TypeExtensions(in))
			continue
		}
		// Non-callable values reach the engine with no kind, so only
		// manual overrides can attach to them.
		add(d, in, engine.Apply(in))
	}

	if err := ctx.Err(); err != nil {
		return nil, Stats{}, err
	}

	for _, c := range cfg.Catalogues {
		b.AddCatalogue(c)
	}

	out := catalogue.Normalize(b.Catalogue())
	stats.Definitions = out.Len()
	logger.Info("catalogue built",
		"modules", len(out),
		"definitions", stats.Definitions,
		"getters", stats.Getters,
		"fluents", stats.Fluents,
		"pipeables", stats.Pipeables,
		"statics", stats.Statics+stats.ByName,
		"types", stats.Types)
	return out, stats, nil
}
