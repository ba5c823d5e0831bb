// Package config loads project configuration: namespace policy, manual
// overrides, external catalogues and the project layout used for
// namespace resolution.
package config

import (
	"errors"
	"fmt"
	"go/build"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/olehluchkiv/goextdefs/internal/catalogue"
	"github.com/olehluchkiv/goextdefs/internal/namespace"
	"github.com/olehluchkiv/goextdefs/internal/oracle"
	"github.com/olehluchkiv/goextdefs/internal/pipeline"
	"github.com/olehluchkiv/goextdefs/internal/policy"
)

// ErrInvalid marks malformed configuration. It is reported before any
// classification begins.
var ErrInvalid = errors.New("invalid configuration")

const (
	EnvPrefix = "GOEXTDEFS"
	FileName  = ".goextdefs"

	// KeyDelimiter separates nested keys. Module paths contain dots, so
	// viper's default delimiter cannot be used.
	KeyDelimiter = "::"
)

// Alias substitutes one resolved namespace for another.
type Alias struct {
	From string `mapstructure:"from" yaml:"from"`
	To   string `mapstructure:"to" yaml:"to"`
}

// Project describes the analysed module and how its files map to namespaces.
type Project struct {
	PackageName       string   `mapstructure:"packageName" yaml:"packageName"` // defaults to the module path
	Patterns          []string `mapstructure:"patterns" yaml:"patterns"`
	Include           []string `mapstructure:"include" yaml:"include"`
	Exclude           []string `mapstructure:"exclude" yaml:"exclude"`
	Tests             bool     `mapstructure:"tests" yaml:"tests"`
	Aliases           []Alias  `mapstructure:"aliases" yaml:"aliases"`
	DependencyMarkers []string `mapstructure:"dependencyMarkers" yaml:"dependencyMarkers"`
	DefinitionDirs    []string `mapstructure:"definitionDirs" yaml:"definitionDirs"`
	IndexNames        []string `mapstructure:"indexNames" yaml:"indexNames"`
	FileScope         bool     `mapstructure:"fileScope" yaml:"fileScope"`
	GoRoot            string   `mapstructure:"goRoot" yaml:"goRoot"`
}

// Config is the decoded configuration of one run.
type Config struct {
	Project    Project                  `mapstructure:"project" yaml:"project"`
	Namespaces []policy.NamespaceConfig `mapstructure:"namespaces" yaml:"namespaces"`
	Overrides  []catalogue.Override     `mapstructure:"overrides" yaml:"overrides"`
	Catalogues []string                 `mapstructure:"catalogues" yaml:"catalogues"` // relative to the config file
	Workers    int                      `mapstructure:"workers" yaml:"workers"`

	dir string
}

// New returns a viper instance wired for GOEXTDEFS_* environment variables
// and the .goextdefs.yaml config file.
func New() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter(KeyDelimiter))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(KeyDelimiter, "_", "-", "_"))
	v.AutomaticEnv()
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")

	// Defaults make these keys visible to Unmarshal when only the
	// environment sets them.
	v.SetDefault("workers", 0)
	v.SetDefault("project"+KeyDelimiter+"packageName", "")
	v.SetDefault("project"+KeyDelimiter+"goRoot", "")
	return v
}

// Load reads the config file named by the "config" key, or searches dir
// for .goextdefs.yaml. A missing searched file is not an error.
func Load(v *viper.Viper, dir string) (*Config, error) {
	explicit := v.GetString("config")
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: reading config: %w", ErrInvalid, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("%w: decoding config: %w", ErrInvalid, err)
	}
	c.dir = dir
	if used := v.ConfigFileUsed(); used != "" {
		c.dir = filepath.Dir(used)
	}
	return &c, nil
}

// Validate checks every record and returns the compiled policy table and
// override index.
func (c *Config) Validate() (*policy.Table, catalogue.Overrides, error) {
	if c.Workers < 0 {
		return nil, nil, fmt.Errorf("%w: workers must not be negative", ErrInvalid)
	}
	for i, a := range c.Project.Aliases {
		if a.From == "" || a.To == "" {
			return nil, nil, fmt.Errorf("%w: alias %d: from and to are required", ErrInvalid, i)
		}
	}
	table, err := policy.NewTable(c.Namespaces)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	overrides, err := catalogue.IndexOverrides(c.Overrides)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return table, overrides, nil
}

// LoadOptions returns the oracle options for the project section.
func (c *Config) LoadOptions() oracle.LoadOptions {
	return oracle.LoadOptions{
		Patterns:     c.Project.Patterns,
		Include:      c.Project.Include,
		Exclude:      c.Project.Exclude,
		IncludeTests: c.Project.Tests,
	}
}

// NamespaceOptions returns resolver options for a loaded program.
func (c *Config) NamespaceOptions(modulePath, moduleDir string) namespace.Options {
	p := c.Project
	name := p.PackageName
	if name == "" {
		name = modulePath
	}
	opts := namespace.DefaultOptions(name, moduleDir)
	opts.FileScope = p.FileScope
	opts.GoRoot = p.GoRoot
	if opts.GoRoot == "" {
		opts.GoRoot = build.Default.GOROOT
	}
	if len(p.DependencyMarkers) > 0 {
		opts.DependencyMarkers = p.DependencyMarkers
	}
	if len(p.DefinitionDirs) > 0 {
		opts.DefinitionDirs = p.DefinitionDirs
	}
	if len(p.IndexNames) > 0 {
		opts.IndexNames = p.IndexNames
	}
	if len(p.Aliases) > 0 {
		opts.Aliases = make(map[string]string, len(p.Aliases))
		for _, a := range p.Aliases {
			opts.Aliases[a.From] = a.To
		}
	}
	return opts
}

// Pipeline validates c and assembles the run configuration for prog,
// reading every external catalogue file.
func (c *Config) Pipeline(prog *oracle.Program) (pipeline.Config, error) {
	table, overrides, err := c.Validate()
	if err != nil {
		return pipeline.Config{}, err
	}

	cats := make([]catalogue.Catalogue, 0, len(c.Catalogues))
	for _, p := range c.Catalogues {
		if !filepath.IsAbs(p) {
			p = filepath.Join(c.dir, p)
		}
		cat, err := ReadCatalogue(p)
		if err != nil {
			return pipeline.Config{}, err
		}
		cats = append(cats, cat)
	}

	return pipeline.Config{
		Namespace:  c.NamespaceOptions(prog.ModulePath, prog.ModuleDir),
		Table:      table,
		Overrides:  overrides,
		Catalogues: cats,
		Workers:    c.Workers,
	}, nil
}
