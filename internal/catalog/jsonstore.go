package catalog

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/crashlens/crashlens/internal/domain"
)

// LoadFile reads a JSON knowledge base from disk. The document maps category
// names to objects of identifier to advice, where advice is either a plain
// warning string or an object:
//
//	{
//	  "problematic": {
//	    "Scrap Everything": "Known to break precombines; remove it.",
//	    "Classic Holstered Weapons": {
//	      "display": "CHW",
//	      "warning": "Crashes with body/skeleton mods.",
//	      "severity": "error"
//	    }
//	  }
//	}
//
// Corrupt data (non-object documents, entries without warning text, unknown
// severities) fails the load; a broken knowledge base must never be
// silently skipped.
func LoadFile(path string) (*MemStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a MemStore from raw knowledge-base JSON.
func Parse(data []byte) (*MemStore, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: document is not valid JSON", ErrBadCatalog)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: document root must be an object of categories", ErrBadCatalog)
	}

	entries := make(map[string][]Entry)
	var parseErr error
	doc.ForEach(func(category, body gjson.Result) bool {
		if !body.IsObject() {
			parseErr = fmt.Errorf("%w: category %q must be an object", ErrBadCatalog, category.String())
			return false
		}
		body.ForEach(func(id, value gjson.Result) bool {
			entry, err := parseEntry(category.String(), id.String(), value)
			if err != nil {
				parseErr = err
				return false
			}
			entries[category.String()] = append(entries[category.String()], entry)
			return true
		})
		return parseErr == nil
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return NewMemStore(entries)
}

func parseEntry(category, id string, value gjson.Result) (Entry, error) {
	entry := Entry{ID: id, Severity: defaultSeverity(category)}
	switch {
	case value.Type == gjson.String:
		entry.Warning = value.String()
	case value.IsObject():
		entry.DisplayName = value.Get("display").String()
		entry.Warning = value.Get("warning").String()
		if sev := value.Get("severity"); sev.Exists() {
			parsed, err := domain.ParseSeverity(sev.String())
			if err != nil {
				return Entry{}, fmt.Errorf("%w: category %q entry %q: %v", ErrBadCatalog, category, id, err)
			}
			entry.Severity = parsed
		}
	default:
		return Entry{}, fmt.Errorf("%w: category %q entry %q must be a string or object", ErrBadCatalog, category, id)
	}
	if err := Validate(category, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// defaultSeverity is the verdict level a match implies when the catalog does
// not set one explicitly.
func defaultSeverity(category string) domain.Severity {
	switch category {
	case CategorySuspects:
		return domain.SeverityError
	case CategoryGPU:
		return domain.SeverityInfo
	default:
		return domain.SeverityWarning
	}
}
