package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MrLemur/gitreport/internal/config"
)

// Built-in template names
const (
	TemplateDefault  = "default"
	TemplateGitStyle = "git_style"
)

var (
	// ErrTemplateNotFound is returned for a missing template without a built-in version
	ErrTemplateNotFound = errors.New("template not found")
	// ErrReportNotFound is returned when no saved report exists for a date
	ErrReportNotFound = errors.New("report not found")
)

var builtinTemplates = map[string]map[string]string{
	config.LanguageEN: {
		TemplateDefault: `# Daily Report - {date}

## Today's Work
{work_content}

## Progress
{progress}

## Issues
{issues}

## Plan for Tomorrow
{plan}
`,
		TemplateGitStyle: `# Work Log - {date}

## Today's Main Work
{work_content}

## Key Progress
{issues}

## Open Issues
{plan}
`,
	},
	config.LanguageZH: {
		TemplateDefault: `# 工作日报 - {date}

## 今日工作内容
{work_content}

## 工作进展
{progress}

## 遇到的问题
{issues}

## 明日计划
{plan}
`,
		TemplateGitStyle: `# 工作日志-{date}

## 今日主要工作内容
{work_content}

## 重要的工作进展
{issues}

## 待解决的问题
{plan}
`,
	},
}

// TemplateFields are the values substituted into a report template
type TemplateFields struct {
	Date        string
	WorkContent string
	Progress    string
	Issues      string
	Plan        string
}

// LoadTemplate reads dir/<name>.md. The built-in templates are written to
// disk in the given language the first time they are requested.
func LoadTemplate(dir, name, language string) (string, error) {
	path := filepath.Join(dir, name+".md")
	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("reading template: %w", err)
	}

	builtins, ok := builtinTemplates[language]
	if !ok {
		builtins = builtinTemplates[config.LanguageEN]
	}
	content, ok := builtins[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating templates directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing template: %w", err)
	}
	return content, nil
}

// RenderTemplate substitutes the named placeholders in tmpl
func RenderTemplate(tmpl string, f TemplateFields) string {
	return strings.NewReplacer(
		"{date}", f.Date,
		"{work_content}", f.WorkContent,
		"{progress}", f.Progress,
		"{issues}", f.Issues,
		"{plan}", f.Plan,
	).Replace(tmpl)
}

// CustomReportPath is where the template report for date is stored
func CustomReportPath(dir, date string) string {
	return filepath.Join(dir, "daily_report_"+date+".md")
}

// SaveCustomReport stores a template report and returns its path
func SaveCustomReport(dir, date, content string) (string, error) {
	path := CustomReportPath(dir, date)
	if err := WriteReport(path, content); err != nil {
		return "", err
	}
	return path, nil
}

// LoadCustomReport reads the template report saved for date
func LoadCustomReport(dir, date string) (string, error) {
	data, err := os.ReadFile(CustomReportPath(dir, date))
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w for %s", ErrReportNotFound, date)
	}
	if err != nil {
		return "", fmt.Errorf("reading report: %w", err)
	}
	return string(data), nil
}

// ListReports returns the file names of saved template reports, sorted
func ListReports(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "daily_report_*.md"))
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	sort.Strings(names)
	return names, nil
}
