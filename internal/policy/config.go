// Package policy holds per-namespace configuration and turns classified
// declarations into catalogue extensions.
package policy

import "github.com/olehluchkiv/goextdefs/internal/catalogue"

// PromoteConfig enables an additional static extension for a category.
type PromoteConfig struct {
	Include       bool   `mapstructure:"include" yaml:"include"`
	Suffix        string `mapstructure:"suffix" yaml:"suffix"`
	UseOutputType bool   `mapstructure:"useOutputType" yaml:"useOutputType"` // key the static by the returned type
	Priority      *int   `mapstructure:"priority" yaml:"priority"`
}

// CategoryConfig controls one extension category inside a namespace.
type CategoryConfig struct {
	Include   bool           `mapstructure:"include" yaml:"include"`
	Suffix    string         `mapstructure:"suffix" yaml:"suffix"`
	Priority  *int           `mapstructure:"priority" yaml:"priority"`
	Companion bool           `mapstructure:"companion" yaml:"companion"`
	Static    *PromoteConfig `mapstructure:"static" yaml:"static"`
}

// NamespaceConfig is the policy for every type name starting with Name.
type NamespaceConfig struct {
	Name               string         `mapstructure:"name" yaml:"name"`
	Priority           *int           `mapstructure:"priority" yaml:"priority"`
	Fluent             CategoryConfig `mapstructure:"fluent" yaml:"fluent"`
	Getter             CategoryConfig `mapstructure:"getter" yaml:"getter"`
	Pipeable           CategoryConfig `mapstructure:"pipeable" yaml:"pipeable"`
	Static             CategoryConfig `mapstructure:"static" yaml:"static"`
	Type               CategoryConfig `mapstructure:"type" yaml:"type"`
	StaticNamePrefixes []string       `mapstructure:"staticNamePrefixes" yaml:"staticNamePrefixes"`
	ModulePriorities   map[string]int `mapstructure:"modulePriorities" yaml:"modulePriorities"`
	Exclude            []string       `mapstructure:"exclude" yaml:"exclude"` // module#name
	ModuleSuffix       string         `mapstructure:"moduleSuffix" yaml:"moduleSuffix"`
}

// Category returns the settings for kind k, or nil for kinds that are
// only ever produced as secondary extensions.
func (c *NamespaceConfig) Category(k catalogue.Kind) *CategoryConfig {
	switch k {
	case catalogue.KindFluent:
		return &c.Fluent
	case catalogue.KindGetter:
		return &c.Getter
	case catalogue.KindPipeable:
		return &c.Pipeable
	case catalogue.KindStatic:
		return &c.Static
	case catalogue.KindType:
		return &c.Type
	}
	return nil
}

// Includes reports whether kind k is enabled.
func (c *NamespaceConfig) Includes(k catalogue.Kind) bool {
	cat := c.Category(k)
	return cat != nil && cat.Include
}

// IntPtr is a helper for building configs in code.
func IntPtr(v int) *int { return &v }
