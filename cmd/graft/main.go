package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-json"
	graft "github.com/graftdata/graft"
	"github.com/graftdata/graft/extract"
	"github.com/graftdata/graft/pipeline"
	"github.com/graftdata/graft/schema"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "graft",
		Usage: "Declarative record-to-graph interpretation pipelines",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Compile a pipeline file and check its schema consistency",
				ArgsUsage: "<pipeline.yaml>",
				Action:    validateCommand,
			},
			{
				Name:      "schema",
				Usage:     "Print the expanded graph schema of a pipeline file as JSON",
				ArgsUsage: "<pipeline.yaml>",
				Action:    schemaCommand,
			},
			{
				Name:      "run",
				Usage:     "Run a pipeline over JSONL records from a file or stdin",
				ArgsUsage: "<pipeline.yaml>",
				Action:    runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "JSONL input file (defaults to stdin)",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 1000,
					},
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogger(c *cli.Context) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.String("log-level"))); err != nil {
		return fmt.Errorf("invalid log level %q", c.String("log-level"))
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

func definitionFromArgs(c *cli.Context) (pipeline.Definition, error) {
	if c.NArg() != 1 {
		return pipeline.Definition{}, fmt.Errorf("expected exactly one pipeline file argument")
	}
	return pipeline.DefinitionFromPath(c.Args().First()), nil
}

func expandSchema(def pipeline.Definition) (*schema.GraphSchema, error) {
	coordinator := schema.NewCoordinator()
	if err := def.ExpandSchema(coordinator); err != nil {
		return nil, err
	}
	return coordinator.Result()
}

func validateCommand(c *cli.Context) error {
	def, err := definitionFromArgs(c)
	if err != nil {
		return err
	}
	expanded, err := expandSchema(def)
	if err != nil {
		return reportIssues(err)
	}
	slog.Info("pipeline is valid",
		"pipeline", def.Name,
		"nodes", len(expanded.Nodes),
		"relationships", len(expanded.Relationships))
	return nil
}

func schemaCommand(c *cli.Context) error {
	def, err := definitionFromArgs(c)
	if err != nil {
		return err
	}
	expanded, err := expandSchema(def)
	if err != nil {
		return reportIssues(err)
	}
	out, err := json.MarshalIndent(expanded, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runCommand(c *cli.Context) error {
	def, err := definitionFromArgs(c)
	if err != nil {
		return err
	}
	steps, err := def.Build()
	if err != nil {
		return reportIssues(err)
	}
	input := os.Stdin
	if path := c.String("input"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	}
	enc := json.NewEncoder(os.Stdout)
	runner := &pipeline.Runner{
		Name: def.Name,
		Reporter: pipeline.ProgressReporter{
			ReportingFrequency: c.Int("report-interval"),
			Logger:             slog.Default(),
		},
	}
	count, err := runner.Run(c.Context, extract.JSONL(input), steps, func(it graft.Item) error {
		if it.Flush {
			return nil
		}
		return enc.Encode(it.Record)
	})
	if err != nil {
		return reportIssues(err)
	}
	slog.Info("pipeline complete", "pipeline", def.Name, "records", count)
	return nil
}

// reportIssues logs each issue individually so operators see every offending
// configuration node, then returns a terse error for the exit path.
func reportIssues(err error) error {
	iss, ok := graft.AsIssues(err)
	if !ok {
		return err
	}
	for _, it := range iss {
		slog.Error(it.Message, "code", it.Code, "path", it.Path, "params", it.Params)
	}
	return fmt.Errorf("%d issue(s) found", len(iss))
}
