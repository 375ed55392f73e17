// Package match decides whether free-form installed-file names (plugin file
// names like "scrapeverything.esp") refer to catalogued mod identifiers
// ("Scrap Everything"). The matching is deliberately conservative: short or
// generic identifiers are rejected outright because they collide with
// unrelated file names far too often.
package match

import (
	"sort"
	"strings"
)

// Empirically chosen thresholds preserved from the knowledge base this
// matcher was built against. Tunable, not structural.
const (
	// dominanceRatio bounds substring matches: a spaced identifier must
	// cover at least this share of the installed-file name's length.
	dominanceRatio = 0.85
	// minIdentLen is the minimum space-removed identifier length eligible
	// for matching at all.
	minIdentLen = 4
)

// genericWords disproportionately collide with unrelated file names; an
// identifier containing one never matches through the loose strategies.
var genericWords = []string{"mod", "fix", "patch", "new", "test", "lite", "core", "full"}

// synonyms are domain spelling variants tried one substitution at a time.
var synonyms = [][2]string{
	{"weapon", "weapons"},
	{"armor", "armour"},
	{"armor", "armors"},
	{"texture", "textures"},
	{"color", "colour"},
}

// pluginSuffixes are the file-type suffixes stripped from installed-file
// names before comparison.
var pluginSuffixes = []string{".esp", ".esl", ".esm", ".dll"}

// Candidate is one catalogued entry eligible for matching.
type Candidate struct {
	// ID is the catalogued identifier token.
	ID string
	// DisplayName is the human-readable mod name used in reports.
	DisplayName string
	// Warning is the advice/recommendation text attached to the entry.
	Warning string
}

// Outcome records the result of fuzzy-comparing an installed-file name
// against the catalog.
type Outcome struct {
	Matched   bool
	Candidate Candidate
	// Plugin is the source installed-file token, kept for the report.
	Plugin string
}

// Normalize lower-cases s, turns '-' and '_' into spaces, and collapses
// repeated spaces. Both sides of every comparison go through it.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}

// NormalizePlugin normalizes an installed-file name and strips a trailing
// plugin file-type suffix if present.
func NormalizePlugin(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, suf := range pluginSuffixes {
		if strings.HasSuffix(s, suf) {
			s = strings.TrimSuffix(s, suf)
			break
		}
	}
	return Normalize(s)
}

// Matches reports whether the installed-file name plugin refers to the
// catalogued identifier ident. Strategies are tried in order; the first
// success wins:
//
//  1. exact match after normalization;
//  2. space-removed match for identifiers that contained a space;
//  3. substring dominance: the space-removed identifier occurs inside the
//     plugin name and is long enough to be discriminative;
//  4. synonym substitution retried as a space-removed exact comparison.
//
// Identifiers whose space-removed form is shorter than four characters are
// never eligible, regardless of strategy.
func Matches(plugin, ident string) bool {
	p := NormalizePlugin(plugin)
	pFlat := strings.ReplaceAll(p, " ", "")
	id := Normalize(ident)
	flat := strings.ReplaceAll(id, " ", "")
	if len(flat) < minIdentLen {
		return false
	}
	hadSpace := strings.Contains(id, " ")

	// Exact after normalization.
	if p == id {
		return true
	}

	// Space-removed exact, gated on the generic-word block-list.
	if hadSpace && flat == pFlat && !containsGeneric(flat) {
		return true
	}

	// Substring dominance. Spaced identifiers must cover most of the plugin
	// name; unspaced identifiers match as plain substrings (they are already
	// length-gated, and block-listed here).
	if strings.Contains(pFlat, flat) && !containsGeneric(flat) {
		if !hadSpace {
			return true
		}
		if float64(len(flat)) >= dominanceRatio*float64(len(pFlat)) {
			return true
		}
	}

	// Synonym substitution, one replacement per attempt, first hit wins.
	for _, pair := range synonyms {
		for _, sub := range [][2]string{pair, {pair[1], pair[0]}} {
			if !strings.Contains(id, sub[0]) {
				continue
			}
			alt := strings.ReplaceAll(id, sub[0], sub[1])
			altFlat := strings.ReplaceAll(alt, " ", "")
			if len(altFlat) >= minIdentLen && altFlat == pFlat && !containsGeneric(altFlat) {
				return true
			}
		}
	}

	return false
}

func containsGeneric(flat string) bool {
	for _, w := range genericWords {
		if strings.Contains(flat, w) {
			return true
		}
	}
	return false
}

// Best scans the candidate set for the given plugin and returns the most
// specific match: ties are broken by preferring the candidate with the
// longest identifier.
func Best(plugin string, candidates []Candidate) Outcome {
	out := Outcome{Plugin: plugin}
	for _, c := range candidates {
		if !Matches(plugin, c.ID) {
			continue
		}
		if !out.Matched || len(c.ID) > len(out.Candidate.ID) {
			out.Matched = true
			out.Candidate = c
		}
	}
	return out
}

// ScanCatalog matches every installed plugin against one catalog category.
// Plugins are scanned in sorted order for determinism, each plugin matches
// at most one catalog entry within the category, and the most specific
// (longest-identifier) entry wins. Only successful outcomes are returned.
func ScanCatalog(plugins []string, candidates []Candidate) []Outcome {
	sorted := make([]string, len(plugins))
	copy(sorted, plugins)
	sort.Strings(sorted)

	var outcomes []Outcome
	for _, p := range sorted {
		if out := Best(p, candidates); out.Matched {
			outcomes = append(outcomes, out)
		}
	}
	return outcomes
}
