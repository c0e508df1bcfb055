package services

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultOutputPath names a report after the date arguments it covers
func DefaultOutputPath(startDate, endDate string) string {
	if endDate != "" && endDate != startDate {
		return fmt.Sprintf("daily_report_%s_to_%s.txt", startDate, endDate)
	}
	return fmt.Sprintf("daily_report_%s.txt", startDate)
}

// WriteReport writes report to path verbatim, replacing any existing file
func WriteReport(path, report string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
