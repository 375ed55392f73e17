package cli

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/crashlens/crashlens/internal/config"
)

// CLI is the root command structure for crashlens
type CLI struct {
	// Global flags
	Format  string `short:"f" default:"${config_format}" enum:"text,ndjson" help:"Output format"`
	Verbose bool   `short:"v" help:"Show debug output (band scheduling, per-analyzer timings)"`

	// Commands
	Scan      ScanCmd      `cmd:"" default:"withargs" help:"Scan a crash log and report the likely cause"`
	Analyzers AnalyzersCmd `cmd:"" help:"List the registered analysis units"`
	Catalog   CatalogCmd   `cmd:"" help:"Inspect or validate a knowledge-base file"`
	Version   VersionCmd   `cmd:"" help:"Show version information"`
}

// Globals holds shared state for all commands
type Globals struct {
	Format  string
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
	Logger  *zap.Logger
}

// NewGlobals creates a new Globals instance with config fallbacks
func NewGlobals(cli *CLI, cfg *config.Config, logger *zap.Logger) *Globals {
	g := &Globals{
		Format:  cli.Format,
		Verbose: cli.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
		Logger:  logger,
	}

	if cfg != nil && !cli.Verbose && cfg.Verbose {
		g.Verbose = cfg.Verbose
	}
	if g.Logger == nil {
		g.Logger = zap.NewNop()
	}

	return g
}

// Debug prints a debug message to stderr when verbose mode is on
func (g *Globals) Debug(format string, args ...any) {
	if g.Verbose {
		fmt.Fprintf(g.Stderr, "[debug] "+format+"\n", args...)
	}
}
