package shared

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeName folds a natural key (item/supplier/client name, city) for
// case-insensitive comparison and unique-index storage. A Caser is stateful,
// so each call builds its own.
func NormalizeName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// SameName reports whether two natural keys are equal ignoring case
func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}
