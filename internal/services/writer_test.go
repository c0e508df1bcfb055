package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, "daily_report_2025-02-25.txt", DefaultOutputPath("2025-02-25", ""))
	assert.Equal(t, "daily_report_2025-02-25.txt", DefaultOutputPath("2025-02-25", "2025-02-25"))
	assert.Equal(t, "daily_report_2025-02-20_to_2025-02-25.txt", DefaultOutputPath("2025-02-20", "2025-02-25"))
}

func TestWriteReportRoundTrip(t *testing.T) {
	report := "# 工作日志-2025-02-25\n\nFixed the parser ✓\r\nTrailing spaces   \n"
	path := filepath.Join(t.TempDir(), "nested", "dir", "report.txt")

	require.NoError(t, WriteReport(path, report))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte(report), data)
}

func TestWriteReportOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, WriteReport(path, "a much longer first version"))
	require.NoError(t, WriteReport(path, "second"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}
