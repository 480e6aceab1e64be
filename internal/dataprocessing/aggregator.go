package dataprocessing

import (
	"cirapipe/pkg/contracts/domain"
)

// Combine concatenates per-file canonical tables in the given order,
// keeping row order within each file. The combined slice index is the
// output row index. No deduplication is done.
func Combine(tables [][]domain.CanonicalRecord) []domain.CanonicalRecord {
	total := 0
	for _, t := range tables {
		total += len(t)
	}

	combined := make([]domain.CanonicalRecord, 0, total)
	for _, t := range tables {
		combined = append(combined, t...)
	}
	return combined
}
