package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect resolved configuration",
		Commands: []*cli.Command{
			configShowCommand(),
			configPathCommand(),
		},
	}
}

func configShowCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the merged global + project config",
		Flags: []cli.Flag{systemFlag(), rootFlag()},
		Action: func(_ context.Context, cmd *cli.Command) error {
			setupLogging(cmd)
			res, err := resolveFromFlags(cmd)
			if err != nil {
				return err
			}
			fmt.Printf("# system: %s\n", res.System)
			fmt.Printf("# project root: %s\n", res.ProjectRoot)
			fmt.Printf("# global config: %s\n", orAbsent(res.Sources.Global))
			fmt.Printf("# project config: %s\n", orAbsent(res.Sources.Project))
			out, err := yaml.Marshal(res.Config)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			fmt.Print(string(out))
			return nil
		},
	}
}

func configPathCommand() *cli.Command {
	return &cli.Command{
		Name:      "path",
		Usage:     "Resolve a dotted config key to an absolute path",
		ArgsUsage: "<dotted.key>",
		Flags:     []cli.Flag{systemFlag(), rootFlag()},
		Action: func(_ context.Context, cmd *cli.Command) error {
			setupLogging(cmd)
			key := cmd.Args().First()
			if key == "" {
				return fmt.Errorf("config path: a dotted key is required (e.g. adr.template)")
			}
			res, err := resolveFromFlags(cmd)
			if err != nil {
				return err
			}
			p, err := res.Path(strings.Split(key, ".")...)
			if err != nil {
				return err
			}
			fmt.Println(p)
			return nil
		},
	}
}

func orAbsent(path string) string {
	if path == "" {
		return "(absent)"
	}
	return path
}
