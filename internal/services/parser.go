package services

import (
	"strings"

	"github.com/MrLemur/gitreport/internal/models"
)

// ParseCommit parses one raw record of the form
// "<timestamp> | <author> | <subject>\n\n<body>".
// The message may itself contain the field separator.
func ParseCommit(raw string) (models.Commit, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.Commit{}, false
	}

	parts := strings.SplitN(raw, FieldSeparator, 3)
	if len(parts) < 3 {
		return models.Commit{}, false
	}

	subject, body, _ := strings.Cut(parts[2], "\n")
	return models.Commit{
		Timestamp: strings.TrimSpace(parts[0]),
		Author:    strings.TrimSpace(parts[1]),
		Subject:   strings.TrimSpace(subject),
		Body:      strings.TrimSpace(body),
	}, true
}

// ParseCommitLog splits raw log output into commits. Non-empty records that
// cannot be parsed are dropped and counted.
func ParseCommitLog(raw string) ([]models.Commit, int) {
	var commits []models.Commit
	skipped := 0
	for _, record := range strings.Split(raw, RecordSeparator) {
		if strings.TrimSpace(record) == "" {
			continue
		}
		commit, ok := ParseCommit(record)
		if !ok {
			skipped++
			continue
		}
		commits = append(commits, commit)
	}
	return commits, skipped
}
