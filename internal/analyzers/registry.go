package analyzers

import (
	"github.com/crashlens/crashlens/internal/catalog"
	"github.com/crashlens/crashlens/internal/engine"
	"github.com/crashlens/crashlens/internal/lookup"
)

// Deps carries the external collaborators the built-in suite needs. Resolver
// may be nil; the record-id unit then skips itself.
type Deps struct {
	Store    catalog.Store
	Resolver lookup.Resolver
	Pool     *lookup.Pool
}

// Suite builds the built-in analyzer set in registration order. Callers may
// append their own units before handing the slice to engine.Run.
func Suite(deps Deps) []engine.Analyzer {
	return []engine.Analyzer{
		NewExtract(),
		NewSuspects(deps.Store),
		NewProblematic(deps.Store),
		NewConflicts(deps.Store),
		NewImportant(deps.Store),
		NewGPU(deps.Store),
		NewFormID(deps.Resolver, deps.Pool),
	}
}
