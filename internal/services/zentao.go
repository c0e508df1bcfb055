package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/MrLemur/gitreport/internal/config"
	"github.com/MrLemur/gitreport/internal/models"
	"github.com/MrLemur/gitreport/internal/ui"
)

// Submitter delivers a worklog to a project-management system
type Submitter interface {
	Submit(ctx context.Context, w models.Worklog) bool
}

// ZentaoSubmitter fills in the Zentao worklog form through a Chrome browser
type ZentaoSubmitter struct {
	URL      string
	Username string
	Password string
	Headless bool
	// StepTimeout bounds every wait for a page element
	StepTimeout time.Duration
	// ExecPath overrides the Chrome binary; empty uses the first one found
	ExecPath string
}

// NewZentaoSubmitter creates a submitter from the configuration
func NewZentaoSubmitter(cfg config.ZentaoConfig) *ZentaoSubmitter {
	return &ZentaoSubmitter{
		URL:         cfg.URL,
		Username:    cfg.Username,
		Password:    cfg.Password,
		Headless:    cfg.Headless,
		StepTimeout: cfg.Timeout(),
	}
}

// FormatTitle replaces {date} in title with the day of now
func FormatTitle(title string, now time.Time) string {
	return strings.ReplaceAll(title, "{date}", now.Format(models.DateLayout))
}

// Submit logs in, opens the worklog form, fills it and submits it.
// Every failure is logged and reported as false.
func (z *ZentaoSubmitter) Submit(ctx context.Context, w models.Worklog) bool {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", z.Headless),
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("start-maximized", true),
	)
	if z.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(z.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer func() {
		cancelBrowser()
		ui.LogInfo("Browser closed")
	}()

	if err := z.login(browserCtx); err != nil {
		ui.LogError("Login failed: %v", err)
		return false
	}
	if err := z.openWorklogForm(browserCtx); err != nil {
		ui.LogError("Failed to open the worklog form: %v", err)
		return false
	}
	if err := z.fillAndSubmit(browserCtx, w); err != nil {
		ui.LogError("Failed to submit the worklog: %v", err)
		return false
	}

	ui.LogSuccess("Worklog submitted")
	return true
}

// step runs actions with the per-step timeout
func (z *ZentaoSubmitter) step(ctx context.Context, actions ...chromedp.Action) error {
	if z.StepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, z.StepTimeout)
		defer cancel()
	}
	return chromedp.Run(ctx, actions...)
}

func (z *ZentaoSubmitter) login(ctx context.Context) error {
	ui.LogInfo("Logging in to %s", z.URL)
	if err := z.step(ctx,
		chromedp.Navigate(z.URL),
		chromedp.WaitVisible("#account", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("loading login page: %w", err)
	}

	if err := z.step(ctx,
		chromedp.SendKeys("#account", z.Username, chromedp.ByQuery),
		chromedp.SendKeys(`input[name="password"]`, z.Password, chromedp.ByQuery),
		chromedp.Click("#submit", chromedp.ByQuery),
		chromedp.WaitReady("#header", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("submitting credentials: %w", err)
	}
	ui.LogInfo("Logged in")
	return nil
}

const createButtonXPath = `//a[(contains(text(), '创建') or contains(text(), '新建') or contains(text(), '添加')) and (contains(@href, 'worklog') or contains(text(), '日志'))]`

func (z *ZentaoSubmitter) openWorklogForm(ctx context.Context) error {
	ui.LogInfo("Opening the worklog page")
	if err := z.step(ctx,
		chromedp.Click(`//a[contains(@href, '/ypworklog/')]`, chromedp.BySearch),
		chromedp.WaitReady("#main", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("opening worklog list: %w", err)
	}

	if err := z.step(ctx,
		chromedp.Click(createButtonXPath, chromedp.BySearch),
		chromedp.WaitVisible("#title", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("opening create form: %w", err)
	}
	ui.LogInfo("Worklog form opened")
	return nil
}

func (z *ZentaoSubmitter) fillAndSubmit(ctx context.Context, w models.Worklog) error {
	if err := z.step(ctx,
		chromedp.Clear("#title", chromedp.ByQuery),
		chromedp.SendKeys("#title", w.Title, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("filling title: %w", err)
	}
	ui.LogInfo("Title: %s", w.Title)

	if shouldSelectProject(w.Project) {
		if err := z.selectProject(ctx, w.Project); err != nil {
			ui.LogWarning("Could not select project %s: %v", w.Project, err)
		} else {
			ui.LogInfo("Project: %s", w.Project)
		}
	}

	if err := z.step(ctx,
		chromedp.Clear("#content", chromedp.ByQuery),
		chromedp.SendKeys("#content", w.Content, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("filling content: %w", err)
	}

	if err := z.step(ctx,
		chromedp.Click("#submit", chromedp.ByQuery),
		chromedp.WaitReady(`//table[contains(@class, 'table')] | //div[contains(@class, 'alert')]`, chromedp.BySearch),
	); err != nil {
		return fmt.Errorf("waiting for confirmation: %w", err)
	}
	return nil
}

// selectProject drives the chosen.js project picker
func (z *ZentaoSubmitter) selectProject(ctx context.Context, project string) error {
	return z.step(ctx,
		chromedp.Click(`div[id*="prjid_chosen"]`, chromedp.ByQuery),
		chromedp.SendKeys(`div[id*="prjid_chosen"] .chosen-search input`, project, chromedp.ByQuery),
		chromedp.Click(fmt.Sprintf(`//ul[contains(@class, 'chosen-results')]/li[contains(text(), %s)]`, xpathLiteral(project)), chromedp.BySearch),
	)
}

func shouldSelectProject(project string) bool {
	switch strings.TrimSpace(project) {
	case "", "none", "无":
		return false
	}
	return true
}

// xpathLiteral quotes s for use in an XPath expression
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	return "concat('" + strings.Join(parts, `', "'", '`) + "')"
}
