package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrLemur/gitreport/internal/config"
	"github.com/MrLemur/gitreport/internal/models"
)

var sortedCommits = []models.Commit{
	{Timestamp: "2025-02-25 09:00:00", Author: "Alice", Subject: "API first", Body: "Reworked handlers", Repository: "api"},
	{Timestamp: "2025-02-25 11:00:00", Author: "Bob", Subject: "Web first", Repository: "web"},
	{Timestamp: "2025-02-25 13:00:00", Author: "Alice", Subject: "API second", Repository: "api"},
}

func TestFormatCommitsGroupsInFirstSeenOrder(t *testing.T) {
	want := "\nRepository: api\n" +
		strings.Repeat("-", 50) + "\n" +
		"Time: 2025-02-25 09:00:00\nAuthor: Alice\nSubject: API first\nDetails:\nReworked handlers\n\n" +
		"Time: 2025-02-25 13:00:00\nAuthor: Alice\nSubject: API second\n\n" +
		"\nRepository: web\n" +
		strings.Repeat("-", 50) + "\n" +
		"Time: 2025-02-25 11:00:00\nAuthor: Bob\nSubject: Web first\n\n"

	assert.Equal(t, want, FormatCommits(sortedCommits, config.LanguageEN))
}

func TestFormatCommitsOmitsEmptyBody(t *testing.T) {
	out := FormatCommits([]models.Commit{{Timestamp: "2025-02-25 11:00:00", Author: "Bob", Subject: "Web first", Repository: "web"}}, config.LanguageEN)
	assert.NotContains(t, out, "Details")
}

func TestFormatCommitsChineseLabels(t *testing.T) {
	out := FormatCommits(sortedCommits, config.LanguageZH)
	assert.Contains(t, out, "仓库：api\n")
	assert.Contains(t, out, "时间：2025-02-25 09:00:00\n")
	assert.Contains(t, out, "详细说明：\nReworked handlers\n")
}

func TestBuildPromptEmbedsBlockVerbatim(t *testing.T) {
	for _, lang := range []string{config.LanguageEN, config.LanguageZH} {
		prompt := BuildPrompt(sortedCommits, lang)
		assert.Contains(t, prompt, FormatCommits(sortedCommits, lang))
		assert.Contains(t, prompt, "200-300")
	}
}

func TestBuildPromptUnknownLanguageFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, BuildPrompt(sortedCommits, config.LanguageEN), BuildPrompt(sortedCommits, "fr"))
}

func TestBuildPolishPrompt(t *testing.T) {
	prompt := BuildPolishPrompt("# Daily Report", config.LanguageEN)
	assert.True(t, strings.HasPrefix(prompt, "Improve the following daily work report"))
	assert.Contains(t, prompt, "# Daily Report")
}
