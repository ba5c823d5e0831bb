package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/goextdefs/internal/catalogue"
	"github.com/olehluchkiv/goextdefs/internal/oracle/oracletest"
)

const sampleConfig = `
project:
  packageName: mylib
  include: ["box/**"]
  exclude: ["gen/"]
  aliases:
    - from: example.com/boxlib/box
      to: Box
  fileScope: true
namespaces:
  - name: Box
    priority: 4
    pipeable:
      include: true
      static:
        include: true
        suffix: .Ops
    staticNamePrefixes: [of]
    exclude: ["example.com/boxlib/box#Peek"]
    moduleSuffix: /ext
overrides:
  - target: "Box#Get"
    kind: fluent
    name: value
    priority: 2
catalogues:
  - extra.yaml
workers: 3
`

const extraCatalogue = `
other/pkg:
  - declarationName: Reexported
    declarationKind: function
    extensions:
      - kind: static
        typeName: Other
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_SearchesDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName+".yaml", sampleConfig)

	c, err := Load(New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "mylib", c.Project.PackageName)
	assert.Equal(t, []string{"box/**"}, c.Project.Include)
	assert.Equal(t, []Alias{{From: "example.com/boxlib/box", To: "Box"}}, c.Project.Aliases)
	assert.True(t, c.Project.FileScope)
	assert.Equal(t, 3, c.Workers)

	require.Len(t, c.Namespaces, 1)
	ns := c.Namespaces[0]
	assert.Equal(t, "Box", ns.Name)
	require.NotNil(t, ns.Priority)
	assert.Equal(t, 4, *ns.Priority)
	assert.True(t, ns.Pipeable.Include)
	require.NotNil(t, ns.Pipeable.Static)
	assert.Equal(t, ".Ops", ns.Pipeable.Static.Suffix)
	assert.Equal(t, []string{"of"}, ns.StaticNamePrefixes)
	assert.Equal(t, "/ext", ns.ModuleSuffix)

	require.Len(t, c.Overrides, 1)
	assert.Equal(t, catalogue.Override{Target: "Box#Get", Kind: catalogue.KindFluent, Name: "value", Priority: "2"}, c.Overrides[0])
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	c, err := Load(New(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, c.Namespaces)
	assert.Zero(t, c.Workers)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "custom.yaml", "workers: 7\n")

	v := New()
	v.Set("config", p)
	c, err := Load(v, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 7, c.Workers)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	v := New()
	v.Set("config", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load(v, t.TempDir())
	require.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GOEXTDEFS_WORKERS", "5")
	t.Setenv("GOEXTDEFS_PROJECT_PACKAGENAME", "fromenv")

	c, err := Load(New(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 5, c.Workers)
	assert.Equal(t, "fromenv", c.Project.PackageName)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName+".yaml", "namespaces: [\n")

	_, err := Load(New(), dir)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"duplicate namespace", "namespaces:\n  - name: Box\n  - name: Box\n"},
		{"empty namespace name", "namespaces:\n  - priority: 1\n"},
		{"bad override target", "overrides:\n  - target: Box\n    kind: fluent\n"},
		{"unknown override kind", "overrides:\n  - target: Box#Get\n    kind: method\n"},
		{"bad exclude key", "namespaces:\n  - name: Box\n    exclude: [Peek]\n"},
		{"alias without target", "project:\n  aliases:\n    - from: a/b\n"},
		{"negative workers", "workers: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, FileName+".yaml", tt.yaml)
			c, err := Load(New(), dir)
			require.NoError(t, err)

			_, _, err = c.Validate()
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestNamespaceOptions(t *testing.T) {
	c := &Config{Project: Project{
		Aliases:    []Alias{{From: "x/y", To: "Y"}},
		IndexNames: []string{"main"},
		GoRoot:     "/usr/local/go",
	}}

	opts := c.NamespaceOptions("example.com/mod", "/src/mod")
	assert.Equal(t, "example.com/mod", opts.PackageName, "module path is the default package name")
	assert.Equal(t, "/src/mod", opts.RootDir)
	assert.Equal(t, "/usr/local/go", opts.GoRoot)
	assert.Equal(t, map[string]string{"x/y": "Y"}, opts.Aliases)
	assert.Equal(t, []string{"main"}, opts.IndexNames)
	assert.Equal(t, []string{"internal"}, opts.DefinitionDirs, "unset lists keep defaults")
}

func TestPipeline_ReadsCataloguesRelativeToConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName+".yaml", sampleConfig)
	writeFile(t, dir, "extra.yaml", extraCatalogue)

	c, err := Load(New(), dir)
	require.NoError(t, err)

	prog := oracletest.Single(t, "example.com/boxlib/box", "/src/box/box.go", "package box\n")
	cfg, err := c.Pipeline(prog)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Table.Len())
	assert.Len(t, cfg.Overrides.Lookup("Box#Get"), 1)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "mylib", cfg.Namespace.PackageName)
	assert.True(t, cfg.Namespace.FileScope)
	require.Len(t, cfg.Catalogues, 1)
	assert.Equal(t, "Other", cfg.Catalogues[0]["other/pkg"][0].Extensions[0].TypeName)
}

func TestPipeline_MissingCatalogue(t *testing.T) {
	c := &Config{Catalogues: []string{"missing.yaml"}, dir: t.TempDir()}
	prog := oracletest.Single(t, "p", "/src/p/p.go", "package p\n")

	_, err := c.Pipeline(prog)
	require.ErrorIs(t, err, ErrInvalid)
}
