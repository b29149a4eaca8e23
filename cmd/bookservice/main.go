package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"bookservice/internal/book"
	"bookservice/internal/config"
	"bookservice/internal/logging"
	"bookservice/internal/output"
	"bookservice/internal/script"

	"github.com/alecthomas/kong"
)

var execute = run

// CLI is the command structure of the bookservice binary.
type CLI struct {
	LogLevel string `help:"Log level (debug, info, warn, error)" default:"${log_level}"`
	Output   string `short:"o" help:"Output format" enum:"json,yaml" default:"${output}"`

	Demo DemoCmd `cmd:"" help:"Run the built-in catalog walkthrough"`
	Run  RunCmd  `cmd:"" help:"Execute a YAML script of catalog operations"`
}

// DemoCmd runs the embedded walkthrough script.
type DemoCmd struct{}

func (c *DemoCmd) Run(a *app) error {
	return a.execute(script.Demo())
}

// RunCmd runs a script file.
type RunCmd struct {
	Script string `arg:"" type:"existingfile" help:"Path to the YAML script"`
}

func (c *RunCmd) Run(a *app) error {
	s, err := script.Load(c.Script)
	if err != nil {
		_ = a.out.Error(err, nil)
		return err
	}
	return a.execute(s)
}

type app struct {
	ctx    context.Context
	runner *script.Runner
	out    *output.Writer
	logger *slog.Logger
}

func (a *app) execute(s script.Script) error {
	results, err := a.runner.Run(a.ctx, s)
	if err != nil {
		if werr := a.out.Error(err, map[string]interface{}{"script": s.Name, "results": results}); werr != nil {
			a.logger.Error("write output", "error", werr)
		}
		return err
	}
	return a.out.Success(results, map[string]interface{}{"script": s.Name, "steps": len(results)})
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "bookservice: %v\n", err)
		return 2
	}

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("bookservice"),
		kong.Description("In-memory book catalog driven by YAML scripts."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Vars{
			"log_level": strings.ToLower(cfg.LogLevel.String()),
			"output":    cfg.Output,
		},
	)
	if err != nil {
		fmt.Fprintf(stderr, "bookservice: %v\n", err)
		return 2
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "bookservice: %v\n", err)
		return 2
	}

	level, err := logging.ParseLevel(cli.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "bookservice: --log-level: %v\n", err)
		return 2
	}
	logger := logging.New(stderr, level)

	ctx, runID := logging.NewRunContext(context.Background())
	out, err := output.NewWriter(stdout, output.Format(cli.Output), runID)
	if err != nil {
		fmt.Fprintf(stderr, "bookservice: %v\n", err)
		return 2
	}

	svc := book.NewService(book.NewCatalog(), logger)
	a := &app{
		ctx:    ctx,
		runner: script.NewRunner(svc, logger),
		out:    out,
		logger: logger,
	}

	if err := kctx.Run(a); err != nil {
		logging.FromContext(ctx, logger).Error("command failed", "command", kctx.Command(), "error", err)
		return 1
	}
	return 0
}
