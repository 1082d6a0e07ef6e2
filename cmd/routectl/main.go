package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/generikvault/route/v2"
	"github.com/generikvault/route/v2/internal/manifest"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

type globalFlags struct {
	file    string
	verbose bool
	json    bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}
	cmd := &cobra.Command{
		Use:   "routectl",
		Short: "Inspect and test route manifests",
		Long: `routectl builds a router from a route manifest and lets you list its
routes or check which route a path resolves to.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&flags.file, "file", "f", "routes.yaml", "route manifest (YAML, or JSON with a .json extension)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log router activity to stderr")
	cmd.PersistentFlags().BoolVar(&flags.json, "json", false, "print JSON")

	cmd.AddCommand(
		routesCmd(flags),
		matchCmd(flags),
		versionCmd(),
	)
	return cmd
}

func (f *globalFlags) logger() *slog.Logger {
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (f *globalFlags) router() (*route.Router, error) {
	m, err := manifest.Load(f.file)
	if err != nil {
		return nil, err
	}
	return m.Build(f.logger())
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "routectl %s (%s)\n", version, commit)
		},
	}
}
