package services

import (
	"cmp"
	"errors"
	"slices"

	"bikeshare-stats/models"
)

// ErrEmptyColumn is returned when a statistic is requested over a column
// with no non-missing values.
var ErrEmptyColumn = errors.New("column has no values")

// ResolveMode returns the highest frequency in values together with every
// value that reaches it, sorted ascending. Callers pass only non-missing
// values. Ties are never dropped.
func ResolveMode[T cmp.Ordered](values []T) (*models.Mode[T], error) {
	if len(values) == 0 {
		return nil, ErrEmptyColumn
	}

	counts := make(map[T]int)
	best := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > best {
			best = counts[v]
		}
	}

	var modal []T
	for v, n := range counts {
		if n == best {
			modal = append(modal, v)
		}
	}
	slices.Sort(modal)

	return &models.Mode[T]{Count: best, Values: modal}, nil
}

// countEqual counts the entries of values equal to target.
func countEqual[T comparable](values []T, target T) int {
	n := 0
	for _, v := range values {
		if v == target {
			n++
		}
	}
	return n
}

// groupCounts counts each distinct value, ordered by label.
func groupCounts(values []string) []models.GroupCount {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}

	groups := make([]models.GroupCount, 0, len(counts))
	for label, n := range counts {
		groups = append(groups, models.GroupCount{Label: label, Count: n})
	}
	slices.SortFunc(groups, func(a, b models.GroupCount) int {
		return cmp.Compare(a.Label, b.Label)
	})
	return groups
}
