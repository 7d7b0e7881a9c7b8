package layout

import (
	"regexp"
	"strings"
)

var tableStartMarker = regexp.MustCompile(`----- Table \d+ Start -----`)

// SplitAtTables splits a formatted page at table-start markers so each
// segment carries at most one table. Splits never fall inside a table, which
// keeps the engine from seeing half a row when a page is too large to send
// whole. Segments that are blank after trimming are dropped.
func SplitAtTables(text string) []string {
	locs := tableStartMarker.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}

	var segments []string
	add := func(s string) {
		if strings.TrimSpace(s) != "" {
			segments = append(segments, s)
		}
	}

	// everything before the first table, then one table per segment
	add(text[:locs[0][0]])
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		add(text[loc[0]:end])
	}
	return segments
}
