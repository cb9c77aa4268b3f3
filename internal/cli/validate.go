package cli

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/tsellens/dockit/pkg/mdmeta"
	"github.com/tsellens/dockit/pkg/sysconf"
	"github.com/tsellens/dockit/pkg/systype"
)

// scanLimit bounds concurrent file reads during a directory scan.
const scanLimit = 4

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	warnMark = color.New(color.FgYellow).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
)

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Extract and validate metadata blocks in markdown documents",
		ArgsUsage: "[dir]",
		Flags:     []cli.Flag{systemFlag(), rootFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogging(cmd)
			res, err := resolveFromFlags(cmd)
			if err != nil {
				return err
			}
			doc, err := docTypeFor(res.System)
			if err != nil {
				return err
			}

			dir := cmd.Args().First()
			if dir == "" {
				dir = defaultScanDir(res)
			}
			paths, err := findMarkdown(dir)
			if err != nil {
				return err
			}
			slog.Debug("scanning documents", slog.String("dir", dir), slog.Int("count", len(paths)))

			section, _ := res.Config[systype.Paths(res.System).RootKey].(map[string]any)
			results := scan(ctx, paths, doc, section)

			failed := printResults(results)
			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed validation", failed, len(results))
			}
			return nil
		},
	}
}

func docTypeFor(sys systype.System) (mdmeta.DocType, error) {
	switch sys {
	case systype.ADR:
		return mdmeta.DocADR, nil
	case systype.RunNote:
		return mdmeta.DocRunNote, nil
	case systype.Req:
		return 0, fmt.Errorf("validate: req documents carry no metadata schema")
	}
	return 0, fmt.Errorf("validate: unhandled system %v", sys)
}

// defaultScanDir prefers the configured artifact directory, falling back to
// the project root when the key is not set.
func defaultScanDir(res *sysconf.Result) string {
	if dir, err := res.ArtifactDir(); err == nil {
		return dir
	}
	return res.ProjectRoot
}

func findMarkdown(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".md") {
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(out)
	return out, nil
}

// docResult is one scanned document's outcome.
type docResult struct {
	path    string
	found   bool
	readErr error
	metaErr error
	report  mdmeta.Report
}

// scan reads and validates documents with bounded parallelism. Results come
// back indexed by input order so output stays deterministic.
func scan(ctx context.Context, paths []string, doc mdmeta.DocType, cfg map[string]any) []docResult {
	results := make([]docResult, len(paths))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(scanLimit)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			r := docResult{path: p}
			data, err := os.ReadFile(p)
			if err != nil {
				r.readErr = err
				results[i] = r
				return nil
			}
			meta, found, err := mdmeta.Extract(string(data))
			r.found = found
			if err != nil {
				r.metaErr = err
				results[i] = r
				return nil
			}
			if found {
				r.report = mdmeta.Validate(meta, doc, cfg)
			}
			results[i] = r
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures live in results
	return results
}

// printResults renders one line per document plus a summary, returning the
// number of failing documents.
func printResults(results []docResult) int {
	var failed, warned, skipped int
	for _, r := range results {
		switch {
		case r.readErr != nil:
			failed++
			fmt.Printf("%s %s: %v\n", failMark("fail"), r.path, r.readErr)
		case r.metaErr != nil:
			failed++
			fmt.Printf("%s %s: %v\n", failMark("fail"), r.path, r.metaErr)
		case !r.found:
			skipped++
			fmt.Printf("%s %s: no metadata block\n", warnMark("skip"), r.path)
		case !r.report.Valid:
			failed++
			fmt.Printf("%s %s\n", failMark("fail"), r.path)
			for _, issue := range r.report.Errors {
				fmt.Printf("     %s: %s\n", issue.Category, issue.Message)
			}
			for _, issue := range r.report.Warnings {
				fmt.Printf("     %s: %s\n", warnMark(issue.Category), issue.Message)
			}
		case len(r.report.Warnings) > 0:
			warned++
			fmt.Printf("%s %s\n", warnMark("warn"), r.path)
			for _, issue := range r.report.Warnings {
				fmt.Printf("     %s: %s\n", warnMark(issue.Category), issue.Message)
			}
		default:
			fmt.Printf("%s %s\n", okMark("ok"), r.path)
		}
	}
	fmt.Printf("\n%d documents: %d ok, %d warned, %d skipped, %d failed\n",
		len(results), len(results)-failed-warned-skipped, warned, skipped, failed)
	return failed
}
