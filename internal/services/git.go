package services

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrLemur/gitreport/internal/config"
	"github.com/MrLemur/gitreport/internal/models"
	"github.com/MrLemur/gitreport/internal/ui"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// RecordSeparator separates commit records in raw log output. Commit bodies
// may contain blank lines but never two in a row at the end of a record.
const RecordSeparator = "\n\n\n"

// FieldSeparator separates timestamp, author and message within a record
const FieldSeparator = " | "

// CommitSource produces raw commit log text for a repository and date range
type CommitSource interface {
	Log(ctx context.Context, repoPath string, rng models.DateRange) (string, error)
}

// NewCommitSource returns the commit source selected in the configuration
func NewCommitSource(cfg config.GitConfig) CommitSource {
	if cfg.Source == config.SourceGoGit {
		return NativeSource{}
	}
	return CLISource{Binary: cfg.Binary, Timeout: cfg.Timeout()}
}

// IsGitRepo reports whether path is inside a git repository
func IsGitRepo(path string) bool {
	_, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}

// GetRepoName extracts the name of a repository from its path
func GetRepoName(repoPath string) string {
	if repoPath == "" {
		return "git-repo"
	}

	if absPath, err := filepath.Abs(repoPath); err == nil {
		repoPath = absPath
	}

	repoName := filepath.Base(repoPath)
	repoName = strings.TrimRight(repoName, "/\\")
	if repoName == "" || repoName == ".." || repoName == string(filepath.Separator) {
		return "git-repo"
	}
	return repoName
}

// CLISource reads history by running the git binary
type CLISource struct {
	Binary  string
	Timeout time.Duration
}

// Log runs git log scoped to the range, one record per commit
func (s CLISource) Log(ctx context.Context, repoPath string, rng models.DateRange) (string, error) {
	binary := s.Binary
	if binary == "" {
		binary = "git"
	}
	args := []string{
		"log",
		"--since=" + rng.Since(),
		"--until=" + rng.Until(),
		"--date=format:%Y-%m-%d %H:%M:%S",
		"--pretty=format:%ad" + FieldSeparator + "%an" + FieldSeparator + "%B%n%n",
	}
	return GetCommandOutput(ctx, binary, args, repoPath, s.Timeout)
}

// GetCommandOutput runs a command and returns its standard output.
// A non-zero timeout bounds the run.
func GetCommandOutput(ctx context.Context, command string, args []string, dir string, timeout time.Duration) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ui.LogShellCommand(command, args, dir)
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir
	var out, stderr strings.Builder
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%s %s: %w", command, args[0], ctx.Err())
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s %s: %w: %s", command, args[0], err, msg)
		}
		return "", fmt.Errorf("%s %s: %w", command, args[0], err)
	}
	return out.String(), nil
}

// NativeSource reads history with go-git and renders it in the same
// record format as CLISource
type NativeSource struct{}

// Log walks the history reachable from HEAD within the range
func (NativeSource) Log(ctx context.Context, repoPath string, rng models.DateRange) (string, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("opening repository: %w", err)
	}

	since, until := rng.Start, rng.End
	iter, err := repo.Log(&git.LogOptions{Since: &since, Until: &until})
	if err != nil {
		// A repository without commits has no HEAD yet
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading history: %w", err)
	}
	defer iter.Close()

	var records []string
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		records = append(records, fmt.Sprintf("%s%s%s%s%s\n\n",
			c.Author.When.Format(models.TimestampLayout), FieldSeparator,
			c.Author.Name, FieldSeparator,
			c.Message))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walking history: %w", err)
	}
	return strings.Join(records, "\n"), nil
}
