package cli

import "fmt"

// Version is stamped by the release build; "dev" otherwise.
var Version = "dev"

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (c *VersionCmd) Run(globals *Globals) error {
	fmt.Fprintf(globals.Stdout, "crashlens %s\n", Version)
	return nil
}
