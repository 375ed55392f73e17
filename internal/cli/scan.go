package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/crashlens/crashlens/internal/analyzers"
	"github.com/crashlens/crashlens/internal/catalog"
	"github.com/crashlens/crashlens/internal/domain"
	"github.com/crashlens/crashlens/internal/engine"
	"github.com/crashlens/crashlens/internal/lookup"
	"github.com/crashlens/crashlens/internal/output"
)

// ScanCmd runs the analyzer suite against one crash-report file
type ScanCmd struct {
	File    string        `arg:"" required:"" help:"Crash log file to scan"`
	Policy  string        `default:"${config_policy}" enum:"banded,sequential,parallel" help:"Concurrency policy"`
	Catalog string        `default:"${config_catalog}" help:"Knowledge-base JSON file (default: embedded catalog)"`
	Timeout time.Duration `help:"Override every analyzer's timeout"`
	Results bool          `help:"Also print one diagnostic line per analyzer"`
}

// Run executes the scan command
func (c *ScanCmd) Run(globals *Globals) error {
	raw, err := os.ReadFile(c.File)
	if err != nil {
		return outputErrorCommon(globals, "FILE_NOT_FOUND", fmt.Sprintf("cannot read file: %s", err))
	}

	store, err := c.loadCatalog(globals)
	if err != nil {
		return outputErrorCommon(globals, "BAD_CATALOG", err.Error())
	}

	policy, err := engine.ParsePolicy(c.Policy)
	if err != nil {
		return outputErrorCommon(globals, "BAD_POLICY", err.Error())
	}

	pool := lookup.NewPool(globals.Config.Scan.LookupWorkers)
	units := analyzers.Suite(analyzers.Deps{
		Store: store,
		// No record-id database is wired into the CLI yet; the lookup unit
		// skips itself. Hosts embedding the engine pass their own resolver.
		Resolver: nil,
		Pool:     pool,
	})

	units = applyOverrides(units, c.Timeout, globals.Config.Scan.Disabled)

	sc := engine.NewContext(c.File)
	sc.Set(engine.KeyRawText, string(raw))
	sc.Set(engine.KeyReportPath, c.File)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outcome := engine.Run(ctx, units, sc, engine.Options{
		Policy: policy,
		Logger: globals.Logger,
		// A crash log exists, so the verdict floor is informational.
		Floor: domain.SeverityInfo,
	})

	switch globals.Format {
	case "ndjson":
		w := output.NewNDJSONWriter(globals.Stdout)
		for _, res := range outcome.Results {
			if err := w.WriteResult(res); err != nil {
				return err
			}
		}
		return w.WriteVerdict(c.File, outcome)
	default:
		r := output.NewRenderer(globals.Stdout)
		if err := r.Render(c.File, outcome); err != nil {
			return err
		}
		if c.Results {
			for _, res := range outcome.Results {
				fmt.Fprintf(globals.Stdout, "%-18s success=%-5v skipped=%-5v severity=%-8s elapsed=%s\n",
					res.Analyzer, res.Success, res.Skipped, res.Severity, res.Elapsed)
			}
		}
		return nil
	}
}

// applyOverrides layers the CLI timeout flag and the configured disable list
// over the registered units without mutating their descriptors.
func applyOverrides(units []engine.Analyzer, timeout time.Duration, disabled []string) []engine.Analyzer {
	byName := make(map[string]struct{}, len(disabled))
	for _, name := range disabled {
		byName[name] = struct{}{}
	}
	out := make([]engine.Analyzer, len(units))
	for i, a := range units {
		if timeout > 0 {
			a = engine.WithTimeout(a, timeout)
		}
		if _, off := byName[a.Name()]; off {
			a = engine.Disable(a)
		}
		out[i] = a
	}
	return out
}

func (c *ScanCmd) loadCatalog(globals *Globals) (catalog.Store, error) {
	if c.Catalog != "" {
		globals.Debug("loading catalog from %s", c.Catalog)
		return catalog.LoadFile(c.Catalog)
	}
	return catalog.Default()
}
