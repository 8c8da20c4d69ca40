package textutil

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// Normalize case-folds text and collapses runs of whitespace.
func Normalize(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	if collapsed == "" {
		return ""
	}
	return cases.Fold().String(collapsed)
}

// Ratio returns the similarity of a and b in [0,1], where 1 means identical
// after normalization. Two empty strings are identical; an empty string
// against a non-empty one scores 0.
func Ratio(a, b string) float64 {
	a = Normalize(a)
	b = Normalize(b)
	if a == b {
		return 1
	}
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}
