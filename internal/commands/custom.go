package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrLemur/gitreport/internal/clierr"
	"github.com/MrLemur/gitreport/internal/models"
	"github.com/MrLemur/gitreport/internal/services"
	"github.com/MrLemur/gitreport/internal/ui"
)

func newCustomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Write, list and show template-based reports",
	}
	cmd.AddCommand(newCustomWriteCmd())
	cmd.AddCommand(newCustomListCmd())
	cmd.AddCommand(newCustomShowCmd())
	return cmd
}

// reportDate validates date, defaulting to today
func reportDate(date string) (string, error) {
	if date == "" {
		return time.Now().Format(models.DateLayout), nil
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return "", clierr.WrapUsage(services.ErrInvalidDateFormat, "invalid date %q", date)
	}
	return date, nil
}

func newCustomWriteCmd() *cobra.Command {
	var (
		fields   services.TemplateFields
		date     string
		template string
		useAI    bool
		simple   bool
		llm      llmFlags
	)

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Fill a report template and save it as daily_report_<date>.md",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fields.WorkContent == "" {
				return clierr.Usage("--work is required")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := llm.apply(&cfg); err != nil {
				return err
			}

			if fields.Date, err = reportDate(date); err != nil {
				return err
			}

			// Only the work content on the default template means the short form
			onlyWork := fields.Progress == "" && fields.Issues == "" && fields.Plan == ""
			if simple || (onlyWork && template == services.TemplateDefault) {
				template = services.TemplateGitStyle
				fields.Progress, fields.Issues, fields.Plan = "", "", ""
			}

			tmpl, err := services.LoadTemplate(cfg.Reports.TemplatesDir, template, cfg.LLM.Language)
			if err != nil {
				if errors.Is(err, services.ErrTemplateNotFound) {
					return clierr.WrapUsage(err, "loading template")
				}
				return clierr.Wrap(clierr.ExitRuntime, err, "loading template")
			}
			report := services.RenderTemplate(tmpl, fields)

			if useAI {
				summarizer, err := newSummarizer(cfg.LLM)
				if err != nil {
					return clierr.WrapUsage(err, "configuring %s", cfg.LLM.Provider)
				}
				client := services.ReportClient{Summarizer: summarizer, Timeout: cfg.LLM.Timeout()}
				report = client.Polish(cmd.Context(), report, cfg.LLM.Language)
			}

			path, err := services.SaveCustomReport(cfg.Reports.Dir, fields.Date, report)
			if err != nil {
				return clierr.Wrap(clierr.ExitRuntime, err, "saving report")
			}
			ui.LogSuccess("Report saved to %s", path)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&fields.WorkContent, "work", "", "Work done today")
	cmd.Flags().StringVar(&fields.Progress, "progress", "", "Progress made")
	cmd.Flags().StringVar(&fields.Issues, "issues", "", "Problems encountered")
	cmd.Flags().StringVar(&fields.Plan, "plan", "", "Plan for tomorrow")
	cmd.Flags().StringVar(&date, "date", "", "Report date, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&template, "template", services.TemplateDefault, "Template name in the templates directory")
	cmd.Flags().BoolVar(&useAI, "ai", false, "Polish the report with the language model")
	cmd.Flags().BoolVar(&simple, "simple", false, "Use the git_style template with only --work")
	llm.register(cmd)
	return cmd
}

func newCustomListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved template reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			names, err := services.ListReports(cfg.Reports.Dir)
			if err != nil {
				return clierr.Wrap(clierr.ExitRuntime, err, "listing reports")
			}

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				_, _ = fmt.Fprintln(out, "No reports yet")
				return nil
			}
			_, _ = fmt.Fprintln(out, "Saved reports:")
			for _, name := range names {
				_, _ = fmt.Fprintf(out, "  - %s\n", name)
			}
			return nil
		},
	}
}

func newCustomShowCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the template report saved for a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			day, err := reportDate(date)
			if err != nil {
				return err
			}

			content, err := services.LoadCustomReport(cfg.Reports.Dir, day)
			if err != nil {
				return clierr.Wrap(clierr.ExitRuntime, err, "loading report")
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Report date, YYYY-MM-DD (default: today)")
	return cmd
}
