package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olehluchkiv/goextdefs/internal/catalogue"
)

// MermaidOptions controls class diagram generation.
type MermaidOptions struct {
	MaxMembersPerBox int  // 0 means unlimited
	IncludeInit      bool // include %%{init:}%% directive (for standalone .mmd files)
}

// DefaultMermaidOptions returns sensible defaults for diagram generation.
func DefaultMermaidOptions() MermaidOptions {
	return MermaidOptions{MaxMembersPerBox: 12}
}

// member is one extension attached to a target type.
type member struct {
	label  string
	kind   catalogue.Kind
	module string
}

// node is one target type name with everything attached to it.
type node struct {
	typeName string
	members  []member
}

// link connects two target types extended by the same declaration.
type link struct {
	from, to, label string
}

type graph struct {
	nodes []*node
	links []link
	bare  bool // classes without members
}

func buildGraph(c catalogue.Catalogue) graph {
	byName := make(map[string]*node)
	seenLink := make(map[link]bool)
	var g graph

	modules := make([]string, 0, len(c))
	for m := range c {
		modules = append(modules, m)
	}
	sort.Strings(modules)

	for _, m := range modules {
		for _, d := range c[m] {
			var primary string
			for _, e := range d.Extensions {
				n, ok := byName[e.TypeName]
				if !ok {
					n = &node{typeName: e.TypeName}
					byName[e.TypeName] = n
					g.nodes = append(g.nodes, n)
				}
				label := d.Name
				if e.Name != "" {
					label = e.Name
				}
				n.members = append(n.members, member{label: label, kind: e.Kind, module: m})

				if primary == "" {
					primary = e.TypeName
					continue
				}
				if l := (link{from: e.TypeName, to: primary, label: d.Name}); e.TypeName != primary && !seenLink[l] {
					seenLink[l] = true
					g.links = append(g.links, l)
				}
			}
		}
	}

	sort.Slice(g.nodes, func(i, j int) bool { return g.nodes[i].typeName < g.nodes[j].typeName })
	sort.Slice(g.links, func(i, j int) bool {
		if g.links[i].from != g.links[j].from {
			return g.links[i].from < g.links[j].from
		}
		if g.links[i].to != g.links[j].to {
			return g.links[i].to < g.links[j].to
		}
		return g.links[i].label < g.links[j].label
	})
	return g
}

// Mermaid produces a classDiagram with one class per target type name,
// listing the declarations that extend it.
func Mermaid(c catalogue.Catalogue, opts MermaidOptions) string {
	return writeMermaid(buildGraph(c), opts)
}

func writeMermaid(g graph, opts MermaidOptions) string {
	var b strings.Builder

	if opts.IncludeInit {
		b.WriteString("%%{init: {'theme': 'base', 'themeVariables': {'primaryColor': '#ffffff', 'primaryBorderColor': '#cccccc', 'primaryTextColor': '#000000', 'lineColor': '#555555'}}%%\n")
	}
	b.WriteString("classDiagram")
	if len(g.nodes) == 0 {
		return b.String()
	}
	b.WriteString("\n    direction LR\n")
	b.WriteString("    classDef instanceStyle fill:#2374ab,stroke:#1a5a8a,color:#fff,stroke-width:2px,font-weight:bold\n")
	b.WriteString("    classDef namespaceStyle fill:#4a9c6d,stroke:#357a50,color:#fff,stroke-width:2px")

	for _, n := range g.nodes {
		b.WriteString("\n")
		writeClassBlock(&b, n, g.bare, opts)
	}

	if len(g.links) > 0 {
		b.WriteString("\n")
	}
	for _, l := range g.links {
		fmt.Fprintf(&b, "\n    %s ..> %s : %s", NodeID(l.from), NodeID(l.to), l.label)
	}

	b.WriteString("\n")
	for _, n := range g.nodes {
		style := "namespaceStyle"
		if n.instance() {
			style = "instanceStyle"
		}
		fmt.Fprintf(&b, "\n    cssClass \"%s\" %s", NodeID(n.typeName), style)
	}
	return b.String()
}

// instance reports whether any member is called on a value of the type.
func (n *node) instance() bool {
	for _, m := range n.members {
		switch m.kind {
		case catalogue.KindFluent, catalogue.KindGetter, catalogue.KindPipeable:
			return true
		}
	}
	return false
}

func writeClassBlock(b *strings.Builder, n *node, bare bool, opts MermaidOptions) {
	fmt.Fprintf(b, "    class %s[\"%s\"] {\n", NodeID(n.typeName), n.typeName)
	if !n.instance() {
		b.WriteString("        <<namespace>>\n")
	}
	if bare {
		b.WriteString("    }")
		return
	}

	limit := len(n.members)
	truncated := false
	if opts.MaxMembersPerBox > 0 && limit > opts.MaxMembersPerBox {
		limit = opts.MaxMembersPerBox
		truncated = true
	}
	for _, m := range n.members[:limit] {
		fmt.Fprintf(b, "        +%s() %s\n", m.label, m.kind)
	}
	if truncated {
		fmt.Fprintf(b, "        +%d more\n", len(n.members)-limit)
	}
	b.WriteString("    }")
}

// sanitizeID replaces characters Mermaid rejects in node identifiers.
func sanitizeID(s string) string {
	r := strings.NewReplacer("/", "_", ".", "_", "-", "_", "#", "_")
	return r.Replace(s)
}

// NodeID builds a sanitized node ID for a target type name.
func NodeID(typeName string) string {
	return sanitizeID(typeName)
}
