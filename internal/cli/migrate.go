package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tsellens/dockit/pkg/mdmeta"
	"github.com/tsellens/dockit/pkg/systype"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:      "migrate",
		Usage:     "Rewrite a legacy blockquote header into a metadata block",
		ArgsUsage: "<file.md>",
		Flags: []cli.Flag{
			systemFlag(),
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Rewrite the file in place instead of printing to stdout",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			setupLogging(cmd)
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("migrate: a markdown file is required")
			}
			sys, err := systype.ParseSystem(cmd.String("system"))
			if err != nil {
				return err
			}
			migrator, err := migratorFor(sys)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			out, changed := migrator(string(data))
			if !changed {
				slog.Info("no legacy header found", slog.String("path", path))
				return nil
			}
			if cmd.Bool("write") {
				if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
				slog.Info("migrated", slog.String("path", path))
				return nil
			}
			fmt.Print(out)
			return nil
		},
	}
}

func migratorFor(sys systype.System) (func(string) (string, bool), error) {
	switch sys {
	case systype.ADR:
		return mdmeta.MigrateADR, nil
	case systype.RunNote:
		return mdmeta.MigrateRunNote, nil
	case systype.Req:
		return nil, fmt.Errorf("migrate: req documents never used the legacy header")
	}
	return nil, fmt.Errorf("migrate: unhandled system %v", sys)
}
