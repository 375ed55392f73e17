package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/crashlens/crashlens/internal/cli"
	"github.com/crashlens/crashlens/internal/config"
	"github.com/crashlens/crashlens/internal/logging"
)

const quickStart = `crashlens - crash-log triage

START HERE:
  crashlens scan crash-2026-08-26.log

Other useful commands:
  crashlens analyzers            List the registered analysis units
  crashlens catalog validate     Check a knowledge-base file
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Apply config defaults before parsing; CLI flags override them.
	vars := kong.Vars{
		"config_format":  cfg.Format,
		"config_policy":  cfg.Scan.Policy,
		"config_catalog": cfg.Scan.Catalog,
	}

	ctx := kong.Parse(&c,
		kong.Name("crashlens"),
		kong.Description("Scan game crash logs for likely causes\n\nSTART HERE: crashlens scan <file>"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	logger, err := logging.New(c.Verbose || cfg.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to build logger: %v\n", err)
	}
	if logger != nil {
		defer func() { _ = logger.Sync() }()
	}

	globals := cli.NewGlobals(&c, cfg, logger)

	if err := ctx.Run(globals); err != nil {
		os.Exit(1)
	}
}
