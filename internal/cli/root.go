// Package cli implements the dockit command tree: thin wrappers over the
// sysconf and mdmeta packages for interactive use by the toolkit family.
package cli

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tsellens/dockit/pkg/sysconf"
	"github.com/tsellens/dockit/pkg/systype"
)

// Root builds the dockit command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name:  "dockit",
		Usage: "Shared config and metadata tooling for the ADR, RunNotes, and Requirements toolkits",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			configCommand(),
			validateCommand(),
			migrateCommand(),
		},
	}
}

// setupLogging installs the process-wide slog handler based on --verbose.
func setupLogging(cmd *cli.Command) {
	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// systemFlag is shared by every subcommand that operates per system type.
func systemFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "system",
		Aliases: []string{"s"},
		Usage:   "System type: adr, runnote, or req",
		Value:   "adr",
		Sources: cli.EnvVars("DOCKIT_SYSTEM"),
	}
}

// rootFlag lets callers pin the project root instead of discovering it.
func rootFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "root",
		Usage: "Project root (skips version-control discovery)",
	}
}

// resolveFromFlags runs config resolution for the subcommand's flags.
func resolveFromFlags(cmd *cli.Command) (*sysconf.Result, error) {
	sys, err := systype.ParseSystem(cmd.String("system"))
	if err != nil {
		return nil, err
	}
	resolver, err := sysconf.NewResolver()
	if err != nil {
		return nil, err
	}
	var opts []sysconf.ResolveOption
	if root := cmd.String("root"); root != "" {
		opts = append(opts, sysconf.WithProjectRoot(root))
	}
	res, err := resolver.Resolve(sys, opts...)
	if err != nil {
		return nil, err
	}
	slog.Debug("config resolved",
		slog.String("system", sys.String()),
		slog.String("project_root", res.ProjectRoot),
		slog.String("global_source", res.Sources.Global),
		slog.String("project_source", res.Sources.Project))
	return res, nil
}
