// Package metrics implements the financial metrics derivation engine: the
// pure computation that maps a company's raw financial periods into a fully
// populated set of derived fields. It has no storage or transport concerns
// and produces deterministic results for a given input series.
package metrics

import (
	"regexp"
	"sort"
	"strings"

	"github.com/kenshiro-fujita/investment-analysis/internal/models"
)

// wellFormedPeriodKey matches the accepted period key formats
// ("2024-03" or "2024/03").
var wellFormedPeriodKey = regexp.MustCompile(`^\d{4}[-/]\d{2}$`)

// CanonicalPeriodKey normalizes a well-formed period key to "YYYY-MM".
// The "YYYY/MM" spelling used by the analysis sheets is rewritten to the
// dash form; anything else is returned unchanged and participates in
// ordering as an opaque string.
func CanonicalPeriodKey(key string) string {
	if wellFormedPeriodKey.MatchString(key) {
		return strings.ReplaceAll(key, "/", "-")
	}
	return key
}

// WellFormedPeriodKey reports whether key matches "YYYY-MM" or "YYYY/MM".
func WellFormedPeriodKey(key string) bool {
	return wellFormedPeriodKey.MatchString(key)
}

// SortPeriods returns a new slice with the periods in ascending period-key
// order. Keys are compared as case-sensitive strings; because well-formed
// keys are zero-padded, lexicographic order is calendar order. The sort is
// stable so ill-formed duplicate keys keep their relative input order.
func SortPeriods(periods []models.FinancialPeriod) []models.FinancialPeriod {
	sorted := make([]models.FinancialPeriod, len(periods))
	copy(sorted, periods)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PeriodKey < sorted[j].PeriodKey
	})
	return sorted
}

// IndexOf returns the position of the period with the given key in a sorted
// series, or -1 if no such period exists.
func IndexOf(sorted []models.FinancialPeriod, key string) int {
	for i := range sorted {
		if sorted[i].PeriodKey == key {
			return i
		}
	}
	return -1
}

// sortedOrder returns the indices of periods in ascending period-key order
// without copying the periods themselves.
func sortedOrder(periods []models.FinancialPeriod) []int {
	order := make([]int, len(periods))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return periods[order[a]].PeriodKey < periods[order[b]].PeriodKey
	})
	return order
}
