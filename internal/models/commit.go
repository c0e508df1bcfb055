package models

import "time"

// TimestampLayout is the fixed-width layout used for commit timestamps.
// Aggregated commits are ordered by comparing these strings, so the layout
// must stay zero-padded and most-significant-first.
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is the layout accepted for date arguments
const DateLayout = "2006-01-02"

// Commit represents a single parsed git commit
type Commit struct {
	Timestamp  string `json:"timestamp" yaml:"timestamp"`
	Author     string `json:"author" yaml:"author"`
	Subject    string `json:"subject" yaml:"subject"`
	Body       string `json:"body,omitempty" yaml:"body,omitempty"`
	Repository string `json:"repository,omitempty" yaml:"repository,omitempty"`
}

// DateRange is an inclusive range covering whole days
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Since renders the start of the range for git's --since
func (r DateRange) Since() string {
	return r.Start.Format(TimestampLayout)
}

// Until renders the end of the range for git's --until
func (r DateRange) Until() string {
	return r.End.Format(TimestampLayout)
}

// Aggregation is the result of collecting commits across repositories
type Aggregation struct {
	Commits      []Commit `json:"commits" yaml:"commits"`
	Repositories []string `json:"repositories" yaml:"repositories"`
	// Skipped counts raw records that did not match the expected shape
	Skipped int `json:"skipped" yaml:"skipped"`
}

// Usage reports token counts returned by the summarization service
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Worklog is the content submitted to the project-management web UI
type Worklog struct {
	Title   string
	Content string
	Project string
}
