package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/olehluchkiv/goextdefs/internal/catalogue"
	"github.com/olehluchkiv/goextdefs/internal/config"
	"github.com/olehluchkiv/goextdefs/internal/logging"
	"github.com/olehluchkiv/goextdefs/internal/oracle"
	"github.com/olehluchkiv/goextdefs/internal/pipeline"
	"github.com/olehluchkiv/goextdefs/internal/render"
	"github.com/olehluchkiv/goextdefs/internal/resolver"
)

// errDrift reports that check found a difference; the diff itself is
// already on stdout.
var errDrift = errors.New("catalogue is out of date")

const projectKey = "project" + config.KeyDelimiter

// newGenerateCmd creates the "generate" command.
func newGenerateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [path-or-url]",
		Short: "Write the extension catalogue of a module",
		Long:  "Generate resolves the input to a module root, type-checks it and writes the catalogue as JSON, a Mermaid class diagram or Markdown pages of diagrams.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, v, args)
		},
	}

	f := cmd.Flags()
	f.StringP("output", "o", "", "Write to file instead of stdout")
	f.String("format", "json", "Output format (json, mermaid, markdown)")
	addProjectFlags(cmd, v)
	bindFlags(v, f, map[string]string{"output": "output", "format": "format"})
	return cmd
}

// newCheckCmd creates the "check" command.
func newCheckCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path-or-url]",
		Short: "Fail when a committed catalogue is out of date",
		Long:  "Check regenerates the catalogue and compares it with an existing JSON or YAML catalogue file, printing a diff and exiting non-zero when they differ.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, v, args)
		},
	}

	cmd.Flags().String("against", "", "Catalogue file to compare with (required)")
	_ = cmd.MarkFlagRequired("against")
	addProjectFlags(cmd, v)
	return cmd
}

func addProjectFlags(cmd *cobra.Command, v *viper.Viper) {
	f := cmd.Flags()
	f.StringSlice("include", nil, "Only catalogue files matching these globs")
	f.StringSlice("exclude", nil, "Skip files matching these gitignore patterns")
	f.Bool("tests", false, "Include test packages")
	f.Bool("download", false, "Run go mod download before loading")

	// Each subcommand owns its flag set; bind right before running so
	// only the active command's flags feed viper.
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		bindFlags(v, cmd.Flags(), map[string]string{
			"include":  projectKey + "include",
			"exclude":  projectKey + "exclude",
			"tests":    projectKey + "tests",
			"download": "download",
		})
	}
}

func newLogger(v *viper.Viper, stderr io.Writer) (*slog.Logger, func(), error) {
	level, err := logging.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return nil, nil, err
	}
	return logging.Setup(stderr, logging.Options{
		File:   v.GetString("log-file"),
		Level:  level,
		Format: v.GetString("log-format"),
	})
}

type generated struct {
	catalogue catalogue.Catalogue
	stats     pipeline.Stats
}

// generate runs one catalogue generation for the input in args.
func generate(ctx context.Context, v *viper.Viper, args []string, logger *slog.Logger) (*generated, error) {
	input := "."
	if len(args) > 0 {
		input = args[0]
	}

	root, err := resolver.Resolve(ctx, input, resolver.Options{Download: v.GetBool("download")}, logger)
	if err != nil {
		return nil, fmt.Errorf("resolving input: %w", err)
	}

	cfg, err := config.Load(v, root)
	if err != nil {
		return nil, err
	}
	if _, _, err := cfg.Validate(); err != nil {
		return nil, err
	}

	prog, err := oracle.Load(ctx, root, cfg.LoadOptions(), logger)
	if err != nil {
		return nil, err
	}

	pcfg, err := cfg.Pipeline(prog)
	if err != nil {
		return nil, err
	}

	cat, stats, err := pipeline.Run(ctx, prog, pcfg, logger)
	if err != nil {
		return nil, fmt.Errorf("generating catalogue: %w", err)
	}
	return &generated{catalogue: cat, stats: stats}, nil
}

func runGenerate(cmd *cobra.Command, v *viper.Viper, args []string) error {
	logger, cleanup, err := newLogger(v, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer cleanup()

	format := v.GetString("format")
	switch format {
	case "json", "mermaid", "markdown":
	default:
		return fmt.Errorf("unknown format %q (valid: json, mermaid, markdown)", format)
	}

	g, err := generate(cmd.Context(), v, args, logger)
	if err != nil {
		logger.Error("generation failed", "error", err)
		return err
	}

	output := v.GetString("output")
	var b strings.Builder
	switch format {
	case "json":
		if err := render.JSON(&b, g.catalogue); err != nil {
			return err
		}
	case "mermaid":
		opts := render.DefaultMermaidOptions()
		// Standalone .mmd files need the init directive.
		opts.IncludeInit = output != ""
		b.WriteString(render.Mermaid(g.catalogue, opts))
		b.WriteString("\n")
	case "markdown":
		writeMarkdown(&b, render.Pages(g.catalogue, render.DefaultMermaidOptions(), render.DefaultPageOptions()))
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Catalogued %d definitions in %d modules (%d declarations, %d unresolvable)\n",
		g.stats.Definitions, len(g.catalogue), g.stats.Declarations, g.stats.Unresolvable)

	if output == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), b.String())
		return err
	}
	if err := os.WriteFile(output, []byte(b.String()), 0o644); err != nil {
		logger.Error("failed to write output file", "error", err)
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote catalogue to %s\n", output)
	return nil
}

func writeMarkdown(b *strings.Builder, pages []render.Page) {
	for i, p := range pages {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "## %s\n\n```mermaid\n%s\n```\n", p.Title, p.Mermaid)
	}
}

func runCheck(cmd *cobra.Command, v *viper.Viper, args []string) error {
	logger, cleanup, err := newLogger(v, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer cleanup()

	against, _ := cmd.Flags().GetString("against")
	existing, err := config.ReadCatalogue(against)
	if err != nil {
		return err
	}

	g, err := generate(cmd.Context(), v, args, logger)
	if err != nil {
		logger.Error("generation failed", "error", err)
		return err
	}

	want, err := render.JSONString(catalogue.Normalize(existing))
	if err != nil {
		return err
	}
	got, err := render.JSONString(g.catalogue)
	if err != nil {
		return err
	}

	if d := render.Diff(want, got); d != "" {
		fmt.Fprint(cmd.OutOrStdout(), d)
		logger.Warn("catalogue drift", "against", against)
		return errDrift
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s is up to date\n", against)
	return nil
}
