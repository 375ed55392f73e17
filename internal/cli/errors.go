package cli

import (
	"errors"
	"fmt"

	"github.com/crashlens/crashlens/internal/output"
)

// outputErrorCommon normalizes error emission across commands, respecting
// ndjson vs text formats so machine consumers always get structured failures.
func outputErrorCommon(globals *Globals, code, message string) error {
	if globals != nil && globals.Format == "ndjson" {
		_ = output.NewNDJSONWriter(globals.Stdout).WriteError(code, message)
	} else if globals != nil {
		fmt.Fprintf(globals.Stderr, "Error [%s]: %s\n", code, message)
	}
	return errors.New(message)
}
