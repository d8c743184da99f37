package search

import (
	"strings"
)

// NoteFilters holds the extracted filters and the remaining text to match in notes
type NoteFilters struct {
	Tags   []string
	Status string
	Text   string
}

// Empty reports whether the query carried neither text nor filters.
func (f NoteFilters) Empty() bool {
	return f.Text == "" && f.Status == "" && len(f.Tags) == 0
}

// ParseNoteQuery extracts slash commands from the raw query string
// Supported:
// /tag:<tag> -> Filter by tag, may be repeated
// /status:<status> -> Filter by watch status
// <text> -> Remaining text is matched against the notes
func ParseNoteQuery(raw string) NoteFilters {
	filters := NoteFilters{}
	parts := strings.Fields(raw)
	var cleanParts []string

	for _, part := range parts {
		lowerPart := strings.ToLower(part)

		if strings.HasPrefix(lowerPart, "/tag:") {
			if tag := strings.TrimPrefix(lowerPart, "/tag:"); tag != "" {
				filters.Tags = append(filters.Tags, tag)
			}
		} else if strings.HasPrefix(lowerPart, "/status:") {
			filters.Status = strings.TrimPrefix(lowerPart, "/status:")
		} else {
			cleanParts = append(cleanParts, part)
		}
	}

	filters.Text = strings.Join(cleanParts, " ")
	return filters
}
