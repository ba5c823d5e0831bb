package oracle

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdataDir(name string) string {
	// go test sets cwd to the package directory.
	return filepath.Join("..", "..", "testdata", name)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func modulePaths(p *Program) []string {
	var out []string
	for _, m := range p.Modules() {
		out = append(out, m.Path)
	}
	return out
}

func TestLoad_Fixture(t *testing.T) {
	prog, err := Load(context.Background(), testdataDir("01_boxlib"), LoadOptions{}, testLogger())
	require.NoError(t, err)

	assert.Equal(t, "example.com/boxlib", prog.ModulePath)
	paths := modulePaths(prog)
	assert.Contains(t, paths, "example.com/boxlib/box")
	assert.Contains(t, paths, "example.com/boxlib/list")
	assert.Contains(t, paths, "example.com/boxlib/box/internal/unsafebox")
	assert.NotContains(t, paths, "example.com/boxlib/gen", ".gitignore excludes gen/")
}

func TestLoad_IncludeAndExclude(t *testing.T) {
	prog, err := Load(context.Background(), testdataDir("01_boxlib"), LoadOptions{
		Include: []string{"box/**", "list/**"},
		Exclude: []string{"internal/"},
	}, testLogger())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"example.com/boxlib/box", "example.com/boxlib/list"}, modulePaths(prog))
}

func TestLoad_TypeErrorsAreTolerated(t *testing.T) {
	prog, err := Load(context.Background(), testdataDir("02_broken"), LoadOptions{}, testLogger())
	require.NoError(t, err)
	require.Len(t, prog.Modules(), 1)
	assert.Len(t, prog.Exports(prog.Modules()[0]), 1)
}

func TestLoad_NoModuleFailsFast(t *testing.T) {
	_, err := Load(context.Background(), t.TempDir(), LoadOptions{}, testLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOracleSetup)
}

func TestFileFilter_NoRulesKeepsEverything(t *testing.T) {
	f, err := newFileFilter(t.TempDir(), LoadOptions{})
	require.NoError(t, err)
	assert.True(t, f.keep([]string{"/anything.go"}))
}
