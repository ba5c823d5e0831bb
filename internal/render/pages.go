package render

import (
	"fmt"
	"sort"

	"github.com/olehluchkiv/goextdefs/internal/catalogue"
	"github.com/olehluchkiv/goextdefs/internal/namespace"
)

// Page is one self-contained diagram of a larger catalogue.
type Page struct {
	Title   string
	Mermaid string
}

// PageOptions controls how large catalogues are split.
type PageOptions struct {
	Threshold int // class count above which pages activate; 0 = always single
	ChunkSize int // max classes per detail page
}

// DefaultPageOptions returns sensible defaults.
func DefaultPageOptions() PageOptions {
	return PageOptions{Threshold: 20, ChunkSize: 8}
}

// Pages renders c as one diagram, or as an overview followed by detail
// pages grouped by top-level namespace once it has Threshold classes.
func Pages(c catalogue.Catalogue, diagOpts MermaidOptions, opts PageOptions) []Page {
	g := buildGraph(c)
	if opts.Threshold <= 0 || len(g.nodes) < opts.Threshold {
		return []Page{{Title: "Full Diagram", Mermaid: writeMermaid(g, diagOpts)}}
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultPageOptions().ChunkSize
	}

	pages := []Page{{Title: "Overview", Mermaid: writeMermaid(overview(g), diagOpts)}}

	groups := make(map[string][]*node)
	for _, n := range g.nodes {
		top := namespace.TopLevel(n.typeName)
		groups[top] = append(groups[top], n)
	}
	tops := make([]string, 0, len(groups))
	for t := range groups {
		tops = append(tops, t)
	}
	sort.Strings(tops)

	for _, top := range tops {
		nodes := groups[top]
		for start := 0; start < len(nodes); start += opts.ChunkSize {
			end := min(start+opts.ChunkSize, len(nodes))
			title := top
			if len(nodes) > opts.ChunkSize {
				title = fmt.Sprintf("%s (%d/%d)", top, start/opts.ChunkSize+1, (len(nodes)+opts.ChunkSize-1)/opts.ChunkSize)
			}
			pages = append(pages, Page{Title: title, Mermaid: writeMermaid(subGraph(g, nodes[start:end]), diagOpts)})
		}
	}
	return pages
}

// overview keeps every class but drops members.
func overview(g graph) graph {
	g.bare = true
	return g
}

// subGraph restricts g to nodes and the links between them.
func subGraph(g graph, nodes []*node) graph {
	keep := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		keep[n.typeName] = true
	}
	out := graph{nodes: nodes}
	for _, l := range g.links {
		if keep[l.from] && keep[l.to] {
			out.links = append(out.links, l)
		}
	}
	return out
}
