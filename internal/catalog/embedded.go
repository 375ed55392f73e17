package catalog

import _ "embed"

//go:embed data/default.json
var defaultJSON []byte

// Default returns the knowledge base shipped with the binary. Hosts that
// curate their own catalog load it with LoadFile instead.
func Default() (*MemStore, error) {
	return Parse(defaultJSON)
}
