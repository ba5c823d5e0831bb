package policy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olehluchkiv/goextdefs/internal/catalogue"
)

// Table is a validated set of namespace configs.
type Table struct {
	configs []NamespaceConfig
}

// NewTable validates cfgs and returns a Table over them.
func NewTable(cfgs []NamespaceConfig) (*Table, error) {
	seen := make(map[string]int, len(cfgs))
	for i := range cfgs {
		c := &cfgs[i]
		if c.Name == "" {
			return nil, fmt.Errorf("namespace %d: empty name", i)
		}
		if j, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("namespace %q: declared twice (entries %d and %d)", c.Name, j, i)
		}
		seen[c.Name] = i
		if err := validatePriorities(c); err != nil {
			return nil, fmt.Errorf("namespace %q: %w", c.Name, err)
		}
		for _, ex := range c.Exclude {
			if _, _, err := catalogue.ParseTarget(ex); err != nil {
				return nil, fmt.Errorf("namespace %q: exclude: %w", c.Name, err)
			}
		}
		for _, p := range c.StaticNamePrefixes {
			if p == "" {
				return nil, fmt.Errorf("namespace %q: empty static name prefix", c.Name)
			}
		}
	}
	return &Table{configs: append([]NamespaceConfig(nil), cfgs...)}, nil
}

func validatePriorities(c *NamespaceConfig) error {
	check := func(what string, p *int) error {
		if p != nil && *p < 0 {
			return fmt.Errorf("%s priority %d is negative", what, *p)
		}
		return nil
	}
	if err := check("namespace", c.Priority); err != nil {
		return err
	}
	for _, k := range []catalogue.Kind{catalogue.KindFluent, catalogue.KindGetter, catalogue.KindPipeable, catalogue.KindStatic, catalogue.KindType} {
		cat := c.Category(k)
		if err := check(string(k), cat.Priority); err != nil {
			return err
		}
		if cat.Static != nil {
			if err := check(string(k)+" static", cat.Static.Priority); err != nil {
				return err
			}
		}
	}
	for prefix, p := range c.ModulePriorities {
		if prefix == "" {
			return fmt.Errorf("empty module priority prefix")
		}
		if p < 0 {
			return fmt.Errorf("module %q priority %d is negative", prefix, p)
		}
	}
	return nil
}

// Len returns the number of configs.
func (t *Table) Len() int {
	return len(t.configs)
}

// Select returns the config with the longest name that prefixes typeName.
// A name matches when it equals typeName or is followed by '.' or '/'.
func (t *Table) Select(typeName string) (*NamespaceConfig, bool) {
	best := -1
	for i := range t.configs {
		name := t.configs[i].Name
		if !hasSegmentPrefix(typeName, name, "./") {
			continue
		}
		if best < 0 || len(name) > len(t.configs[best].Name) {
			best = i
		}
	}
	if best < 0 {
		return nil, false
	}
	return &t.configs[best], true
}

// Eligible reports whether typeName falls in a namespace enabling kind k.
func (t *Table) Eligible(typeName string, k catalogue.Kind) bool {
	cfg, ok := t.Select(typeName)
	return ok && cfg.Includes(k)
}

// StaticByName reports whether declName carries one of the static name
// prefixes configured for typeName's namespace. Comparison folds case.
func (t *Table) StaticByName(typeName, declName string) bool {
	cfg, ok := t.Select(typeName)
	if !ok {
		return false
	}
	for _, p := range cfg.StaticNamePrefixes {
		if len(declName) >= len(p) && strings.EqualFold(declName[:len(p)], p) {
			return true
		}
	}
	return false
}

// modulePriority returns the priority of the longest module prefix of module.
func modulePriority(c *NamespaceConfig, module string) (int, bool) {
	prefixes := make([]string, 0, len(c.ModulePriorities))
	for p := range c.ModulePriorities {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)

	best := ""
	for _, p := range prefixes {
		if hasSegmentPrefix(module, p, "/") && len(p) > len(best) {
			best = p
		}
	}
	if best == "" {
		return 0, false
	}
	return c.ModulePriorities[best], true
}

func hasSegmentPrefix(s, prefix, seps string) bool {
	if !strings.HasPrefix(s, prefix) {
		return false
	}
	if len(s) == len(prefix) || strings.HasSuffix(prefix, "/") || strings.HasSuffix(prefix, ".") {
		return true
	}
	return strings.IndexByte(seps, s[len(prefix)]) >= 0
}
