package analyzers

import (
	"sort"
	"strconv"

	"github.com/crashlens/crashlens/internal/engine"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

// pluginNames reads the extracted plugin map and returns the installed file
// names in sorted order for deterministic scans.
func pluginNames(sc *engine.Context) ([]string, error) {
	plugins, err := engine.GetOr[map[string]string](sc, engine.KeyPlugins, nil)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(plugins))
	for name := range plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
