// Command goextdefs catalogues the exported free functions of a Go module
// as extension definitions on the types they operate on.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/olehluchkiv/goextdefs/internal/config"
)

const version = "0.3.0"

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errDrift) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// newRootCmd builds the command tree around its own viper instance.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := config.New()

	rootCmd := &cobra.Command{
		Use:           "goextdefs",
		Short:         "Catalogue Go free functions as extension definitions",
		Long:          "goextdefs type-checks a Go module and classifies every exported function as a fluent, getter, pipeable or static extension of the type it operates on.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// Global flags.
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default .goextdefs.yaml in the module root)")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("log-format", "json", "Log format (json, text)")
	pf.String("log-file", "", "Also append logs to this file")
	pf.Int("workers", 0, "Parallel classification workers (default GOMAXPROCS)")

	bindFlags(v, pf, map[string]string{
		"config":     "config",
		"log-level":  "log-level",
		"log-format": "log-format",
		"log-file":   "log-file",
		"workers":    "workers",
	})

	rootCmd.AddCommand(newGenerateCmd(v))
	rootCmd.AddCommand(newCheckCmd(v))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print goextdefs version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "goextdefs %s\n", version)
		},
	}
}

// bindFlags binds each named flag of fs to its viper key.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for flag, key := range keys {
		_ = v.BindPFlag(key, fs.Lookup(flag))
	}
}
