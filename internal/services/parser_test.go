package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrLemur/gitreport/internal/models"
)

func TestParseCommit(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.Commit
		ok   bool
	}{
		{
			name: "subject and body",
			raw:  "2025-02-25 10:00:00 | Alice | Fix bug\n\nDetails here",
			want: models.Commit{Timestamp: "2025-02-25 10:00:00", Author: "Alice", Subject: "Fix bug", Body: "Details here"},
			ok:   true,
		},
		{
			name: "single line message",
			raw:  "2025-02-25 11:30:00 | Bob | Update README",
			want: models.Commit{Timestamp: "2025-02-25 11:30:00", Author: "Bob", Subject: "Update README"},
			ok:   true,
		},
		{
			name: "separator inside message",
			raw:  "2025-02-25 12:00:00 | Carol | Support a | b syntax\n\nParses x | y too",
			want: models.Commit{Timestamp: "2025-02-25 12:00:00", Author: "Carol", Subject: "Support a | b syntax", Body: "Parses x | y too"},
			ok:   true,
		},
		{
			name: "surrounding whitespace",
			raw:  "\n\n  2025-02-25 13:00:00 | Dan | Tidy up\n\n",
			want: models.Commit{Timestamp: "2025-02-25 13:00:00", Author: "Dan", Subject: "Tidy up"},
			ok:   true,
		},
		{name: "empty", raw: "", ok: false},
		{name: "whitespace only", raw: " \n\t", ok: false},
		{name: "one separator", raw: "2025-02-25 10:00:00 | Alice", ok: false},
		{name: "no separator", raw: "garbage line", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCommit(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommitLog(t *testing.T) {
	raw := "2025-02-25 10:00:00 | Alice | Fix bug\n\nDetails here\n\n\n" +
		"\nnot a commit record\n\n\n" +
		"\n2025-02-25 09:00:00 | Bob | Add feature\n\n\n"

	commits, skipped := ParseCommitLog(raw)

	assert.Equal(t, 1, skipped)
	assert.Equal(t, []models.Commit{
		{Timestamp: "2025-02-25 10:00:00", Author: "Alice", Subject: "Fix bug", Body: "Details here"},
		{Timestamp: "2025-02-25 09:00:00", Author: "Bob", Subject: "Add feature"},
	}, commits)
}

func TestParseCommitLogEmpty(t *testing.T) {
	commits, skipped := ParseCommitLog("")
	assert.Empty(t, commits)
	assert.Zero(t, skipped)
}

func TestParseCommitLogBodyWithBlankLines(t *testing.T) {
	raw := "2025-02-25 10:00:00 | Alice | Refactor\n\nFirst paragraph\n\nSecond paragraph\n\n\n"

	commits, skipped := ParseCommitLog(raw)

	assert.Zero(t, skipped)
	if assert.Len(t, commits, 1) {
		assert.Equal(t, "First paragraph\n\nSecond paragraph", commits[0].Body)
	}
}
