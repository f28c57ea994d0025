package engine

import "github.com/tartampluch/go-journal/internal/config"

// FilterEntries derives the visible subset for a category selection.
// config.FilterAll (or an empty selection) returns every entry in input
// order. Otherwise an entry matches when its subcategory equals the
// selection, or when its legacy type spelling does. The source slice is
// never mutated; the result is always a fresh slice.
func FilterEntries(entries []Entry, selection string) []Entry {
	out := make([]Entry, 0, len(entries))

	if selection == "" || selection == config.FilterAll {
		out = append(out, entries...)
		return out
	}

	for _, e := range entries {
		if e.SubCategory == selection || e.RawType == selection {
			out = append(out, e)
		}
	}
	return out
}
