package catalogue

import (
	"fmt"
	"strings"
)

// Override is a manually supplied extension for a declaration, keyed by
// "{typeName}#{declarationName}".
type Override struct {
	Target   string `json:"target" yaml:"target" mapstructure:"target"`
	Kind     Kind   `json:"kind" yaml:"kind" mapstructure:"kind"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Priority string `json:"priority,omitempty" yaml:"priority,omitempty" mapstructure:"priority"`
}

// ParseTarget splits a "{typeName}#{name}" key.
func ParseTarget(target string) (typeName, name string, err error) {
	i := strings.LastIndexByte(target, '#')
	if i <= 0 || i == len(target)-1 {
		return "", "", fmt.Errorf("target %q: want {typeName}#{name}", target)
	}
	return target[:i], target[i+1:], nil
}

// Key builds the lookup key used for overrides and exclusions.
func Key(prefix, name string) string {
	return prefix + "#" + name
}

// Overrides indexes override extensions by target key.
type Overrides map[string][]Extension

// IndexOverrides validates and indexes raw override records.
func IndexOverrides(raw []Override) (Overrides, error) {
	idx := make(Overrides, len(raw))
	for i, o := range raw {
		typeName, _, err := ParseTarget(o.Target)
		if err != nil {
			return nil, fmt.Errorf("override %d: %w", i, err)
		}
		if !o.Kind.Valid() {
			return nil, fmt.Errorf("override %d (%s): unknown kind %q", i, o.Target, o.Kind)
		}
		idx[o.Target] = appendUnique(idx[o.Target], Extension{
			Kind:     o.Kind,
			TypeName: typeName,
			Name:     o.Name,
			Priority: o.Priority,
		})
	}
	return idx, nil
}

// Lookup returns the extensions registered for any of the given keys,
// without duplicates.
func (o Overrides) Lookup(keys ...string) []Extension {
	var out []Extension
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = appendUnique(out, o[k]...)
	}
	return out
}
