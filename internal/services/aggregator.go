package services

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/MrLemur/gitreport/internal/models"
	"github.com/MrLemur/gitreport/internal/ui"
)

// Aggregator collects commits from several repositories into one
// time-ordered list
type Aggregator struct {
	Source CommitSource
}

// Collect visits each repository in turn. Missing paths, non-repositories
// and failing git invocations are logged and contribute no commits.
func (a Aggregator) Collect(ctx context.Context, repoPaths []string, rng models.DateRange) models.Aggregation {
	var result models.Aggregation

	for _, repoPath := range repoPaths {
		if ctx.Err() != nil {
			ui.LogWarning("Stopped collecting commits: %v", ctx.Err())
			break
		}

		absPath, err := filepath.Abs(repoPath)
		if err != nil {
			ui.LogWarning("Cannot resolve path %s: %v", repoPath, err)
			continue
		}
		if _, err := os.Stat(absPath); err != nil {
			ui.LogWarning("Path does not exist, skipping: %s", absPath)
			continue
		}
		if !IsGitRepo(absPath) {
			ui.LogWarning("Not a git repository, skipping: %s", absPath)
			continue
		}

		repoName := GetRepoName(absPath)
		raw, err := a.Source.Log(ctx, absPath, rng)
		if err != nil {
			ui.LogError("Failed to read commits from %s: %v", repoName, err)
			continue
		}

		commits, skipped := ParseCommitLog(raw)
		for i := range commits {
			commits[i].Repository = repoName
		}
		ui.LogInfo("Found %d commits in %s", len(commits), repoName)

		result.Commits = append(result.Commits, commits...)
		result.Repositories = append(result.Repositories, repoName)
		result.Skipped += skipped
	}

	// Timestamps are fixed-width so string order is time order
	sort.SliceStable(result.Commits, func(i, j int) bool {
		return result.Commits[i].Timestamp < result.Commits[j].Timestamp
	})

	if result.Skipped > 0 {
		ui.LogWarning("Skipped %d malformed commit records", result.Skipped)
	}
	return result
}
