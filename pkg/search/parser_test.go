package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNoteQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want NoteFilters
	}{
		{"plain text", "select channels", NoteFilters{Text: "select channels"}},
		{"tag and text", "/tag:Go deadlock", NoteFilters{Tags: []string{"go"}, Text: "deadlock"}},
		{"repeated tags", "/tag:go /tag:rust", NoteFilters{Tags: []string{"go", "rust"}}},
		{"status", "/status:Rewatch   mutex ", NoteFilters{Status: "rewatch", Text: "mutex"}},
		{"empty tag ignored", "/tag: queue", NoteFilters{Text: "queue"}},
		{"blank", "   ", NoteFilters{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNoteQuery(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.raw == "   ", got.Empty())
		})
	}
}
