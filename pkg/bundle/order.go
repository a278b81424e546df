// File: pkg/bundle/order.go
package bundle

import (
	"cmp"
	"slices"
	"strings"
)

// Order returns files sorted by mode without modifying the input slice.
//
// SortByName compares full paths as bytes. SortByLanguage compares extension
// tags as bytes and breaks ties by full path, so both orders are total and
// independent of discovery order.
func Order(files []SelectedFile, mode SortMode) []SelectedFile {
	ordered := slices.Clone(files)
	switch mode {
	case SortByLanguage:
		slices.SortStableFunc(ordered, func(a, b SelectedFile) int {
			return cmp.Or(strings.Compare(a.Tag, b.Tag), strings.Compare(a.Path, b.Path))
		})
	default:
		slices.SortStableFunc(ordered, func(a, b SelectedFile) int {
			return strings.Compare(a.Path, b.Path)
		})
	}
	return ordered
}
