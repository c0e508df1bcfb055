package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrLemur/gitreport/internal/clierr"
)

func TestCustomWriteSimpleMode(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := execute(t, "custom", "write", "--work", "Shipped the parser", "--date", "2025-02-25", "--config", env.configPath)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(env.reportsDir, "daily_report_2025-02-25.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Work Log - 2025-02-25")
	assert.Contains(t, string(data), "Shipped the parser")
	assert.Contains(t, out, "Shipped the parser")
}

func TestCustomWriteDefaultTemplate(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := execute(t, "custom", "write", "--config", env.configPath, "--date", "2025-02-25",
		"--work", "Work", "--progress", "Done", "--issues", "None", "--plan", "More work")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(env.reportsDir, "daily_report_2025-02-25.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Daily Report - 2025-02-25\n\n## Today's Work\nWork\n\n## Progress\nDone\n\n## Issues\nNone\n\n## Plan for Tomorrow\nMore work\n", string(data))
}

func TestCustomWritePolishedWithAI(t *testing.T) {
	env := newTestEnv(t, "")
	llm := stubSummarizer(t, "Polished report", nil)

	_, err := execute(t, "custom", "write", "--work", "Shipped", "--date", "2025-02-25", "--ai", "--config", env.configPath)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(env.reportsDir, "daily_report_2025-02-25.md"))
	require.NoError(t, err)
	assert.Equal(t, "Polished report", string(data))
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Shipped")
}

func TestCustomWriteAIFailureKeepsOriginal(t *testing.T) {
	env := newTestEnv(t, "")
	stubSummarizer(t, "", errors.New("quota exceeded"))

	_, err := execute(t, "custom", "write", "--work", "Shipped", "--date", "2025-02-25", "--ai", "--config", env.configPath)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(env.reportsDir, "daily_report_2025-02-25.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Work Log - 2025-02-25")
}

func TestCustomWriteValidation(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := execute(t, "custom", "write", "--config", env.configPath)
	assert.Equal(t, clierr.ExitUsage, clierr.ExitCodeOf(err))

	_, err = execute(t, "custom", "write", "--work", "x", "--date", "25/02/2025", "--config", env.configPath)
	assert.Equal(t, clierr.ExitUsage, clierr.ExitCodeOf(err))

	_, err = execute(t, "custom", "write", "--work", "x", "--template", "missing", "--config", env.configPath)
	assert.Equal(t, clierr.ExitUsage, clierr.ExitCodeOf(err))
}

func TestCustomListAndShow(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := execute(t, "custom", "list", "--config", env.configPath)
	require.NoError(t, err)
	assert.Equal(t, "No reports yet\n", out)

	for _, day := range []string{"2025-02-25", "2025-02-24"} {
		_, err := execute(t, "custom", "write", "--work", "Work on "+day, "--date", day, "--config", env.configPath)
		require.NoError(t, err)
	}

	out, err = execute(t, "custom", "list", "--config", env.configPath)
	require.NoError(t, err)
	assert.Equal(t, "Saved reports:\n  - daily_report_2025-02-24.md\n  - daily_report_2025-02-25.md\n", out)

	out, err = execute(t, "custom", "show", "--date", "2025-02-24", "--config", env.configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Work on 2025-02-24")

	_, err = execute(t, "custom", "show", "--date", "2024-01-01", "--config", env.configPath)
	require.Error(t, err)
	assert.Equal(t, clierr.ExitRuntime, clierr.ExitCodeOf(err))
}
