package cli

import (
	"fmt"

	"github.com/crashlens/crashlens/internal/catalog"
)

// CatalogCmd inspects or validates a knowledge-base file
type CatalogCmd struct {
	Validate CatalogValidateCmd `cmd:"" help:"Validate a knowledge-base JSON file"`
}

// CatalogValidateCmd validates a knowledge-base JSON file
type CatalogValidateCmd struct {
	File string `arg:"" optional:"" help:"Knowledge-base JSON file (default: embedded catalog)"`
}

// Run executes the catalog validate command
func (c *CatalogValidateCmd) Run(globals *Globals) error {
	var (
		store *catalog.MemStore
		err   error
		label = "embedded catalog"
	)
	if c.File != "" {
		store, err = catalog.LoadFile(c.File)
		label = c.File
	} else {
		store, err = catalog.Default()
	}
	if err != nil {
		return outputErrorCommon(globals, "BAD_CATALOG", err.Error())
	}

	total := 0
	for _, name := range store.Categories() {
		entries, _ := store.Category(name)
		fmt.Fprintf(globals.Stdout, "%-14s %d entries\n", name, len(entries))
		total += len(entries)
	}
	fmt.Fprintf(globals.Stdout, "%s: OK (%d entries)\n", label, total)
	return nil
}
