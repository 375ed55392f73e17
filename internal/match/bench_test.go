package match

import (
	"fmt"
	"testing"
)

func BenchmarkMatches(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Matches("scrapeverything.esp", "Scrap Everything")
	}
}

func BenchmarkMatchesMiss(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Matches("knockoutframework.esp", "Scrap Everything")
	}
}

func BenchmarkScanCatalog(b *testing.B) {
	candidates := make([]Candidate, 0, 200)
	for i := 0; i < 200; i++ {
		candidates = append(candidates, Candidate{ID: fmt.Sprintf("Catalog Entry Number %d", i)})
	}
	plugins := make([]string, 0, 100)
	for i := 0; i < 100; i++ {
		plugins = append(plugins, fmt.Sprintf("installedplugin%d.esp", i))
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		ScanCatalog(plugins, candidates)
	}
}
