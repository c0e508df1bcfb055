package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/MrLemur/gitreport/internal/models"
	"github.com/MrLemur/gitreport/internal/ui"
)

// Reporter turns a prompt into report text
type Reporter interface {
	Generate(ctx context.Context, prompt string) string
}

// Pipeline collects commits and produces a report for a date range
type Pipeline struct {
	Aggregator Aggregator
	Reporter   Reporter
	Language   string
}

// Run returns the report for rng. It always produces text: the no-commits
// sentinel when nothing was found, otherwise whatever the reporter returns.
func (p Pipeline) Run(ctx context.Context, repoPaths []string, rng models.DateRange) string {
	ui.LogInfo("Collecting commits from %s to %s", rng.Since(), rng.Until())
	agg := p.Aggregator.Collect(ctx, repoPaths, rng)
	if len(agg.Commits) == 0 {
		ui.LogWarning("No commits found in %d repositories", len(repoPaths))
		return NoCommitsReport
	}

	ui.LogInfo("Generating report from %d commits across %d repositories", len(agg.Commits), len(agg.Repositories))
	return p.Reporter.Generate(ctx, BuildPrompt(agg.Commits, p.Language))
}

// RunRange writes one report per day of rng into dir. A day whose report
// cannot be written is logged and the remaining days still run.
func (p Pipeline) RunRange(ctx context.Context, repoPaths []string, rng models.DateRange, dir string) ([]string, error) {
	days := DaysInRange(rng)
	var written []string

	ui.UpdateProgress(0, len(days), "days")
	for i, day := range days {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		dayRange, err := ParseDateRange(day, "")
		if err != nil {
			return written, err
		}

		ui.UpdateStatus(fmt.Sprintf("Generating report for %s", day))
		report := p.Run(ctx, repoPaths, dayRange)
		path := filepath.Join(dir, DefaultOutputPath(day, ""))
		if err := WriteReport(path, report); err != nil {
			ui.LogError("Failed to write report for %s: %v", day, err)
		} else {
			ui.LogSuccess("Report for %s saved to %s", day, path)
			written = append(written, path)
			ui.UpdateReportPreview(day, report)
		}
		ui.UpdateProgress(i+1, len(days), "days")
	}
	return written, nil
}
