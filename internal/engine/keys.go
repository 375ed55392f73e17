package engine

// Shared-context keys and their agreed value types. The context stores
// arbitrary values under string keys; analyzers coordinate only through this
// table. Every analyzer reading or writing a key must use the exact type
// documented here; Get fails loudly on a mismatch instead of letting a bad
// value travel deeper into a unit.
const (
	// KeyRawText (string): the full crash-report text, seeded by the host
	// before orchestration starts.
	KeyRawText = "RawText"

	// KeyReportPath (string): the input identifier (usually a file path),
	// used only for logging and diagnostics.
	KeyReportPath = "ReportPath"

	// KeyMainError (string): the reported unhandled-exception line, set by
	// the extraction unit.
	KeyMainError = "MainError"

	// KeyCallStack ([]string): the probable-call-stack section lines, set by
	// the extraction unit.
	KeyCallStack = "CallStackSegment"

	// KeyPlugins (map[string]string): installed plugin file name to load-order
	// id, set by the extraction unit.
	KeyPlugins = "CrashLogPlugins"

	// KeyGPU (string): the extracted GPU description line.
	KeyGPU = "GPUDescription"
)
