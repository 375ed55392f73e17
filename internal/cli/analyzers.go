package cli

import (
	"fmt"

	"github.com/olekukonko/tablewriter"

	"github.com/crashlens/crashlens/internal/analyzers"
	"github.com/crashlens/crashlens/internal/catalog"
	"github.com/crashlens/crashlens/internal/lookup"
)

// AnalyzersCmd lists the registered analysis units
type AnalyzersCmd struct{}

// Run executes the analyzers command
func (c *AnalyzersCmd) Run(globals *Globals) error {
	store, err := catalog.Default()
	if err != nil {
		return outputErrorCommon(globals, "BAD_CATALOG", err.Error())
	}
	units := analyzers.Suite(analyzers.Deps{Store: store, Pool: lookup.NewPool(1)})

	table := tablewriter.NewWriter(globals.Stdout)
	table.Header("NAME", "DISPLAY NAME", "PRIORITY", "TIMEOUT", "ENABLED")
	for _, a := range units {
		table.Append([]string{
			a.Name(),
			a.DisplayName(),
			fmt.Sprintf("%d", a.Priority()),
			a.Timeout().String(),
			fmt.Sprintf("%v", a.Enabled()),
		})
	}
	return table.Render()
}
