package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrLemur/gitreport/internal/clierr"
	"github.com/MrLemur/gitreport/internal/config"
	"github.com/MrLemur/gitreport/internal/models"
	"github.com/MrLemur/gitreport/internal/services"
	"github.com/MrLemur/gitreport/internal/ui"
)

func newGenerateCmd() *cobra.Command {
	var (
		endDate string
		output  string
		llm     llmFlags
		repos   repoFlags
	)

	cmd := &cobra.Command{
		Use:   "generate [start_date]",
		Short: "Generate a report for one day or a date range",
		Long: "Generate collects the commits made between start_date and --end-date (both YYYY-MM-DD, " +
			"default today) and writes a summary to daily_report_<date>.txt or --output.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate := time.Now().Format(models.DateLayout)
			if len(args) == 1 {
				startDate = args[0]
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := llm.apply(&cfg); err != nil {
				return err
			}
			repoPaths, err := repos.apply(&cfg)
			if err != nil {
				return err
			}

			rng, err := services.ParseDateRange(startDate, endDate)
			if err != nil {
				return clierr.WrapUsage(err, "invalid date")
			}

			pipeline, err := newPipeline(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			report := pipeline.Run(cmd.Context(), repoPaths, rng)

			if output == "" {
				output = services.DefaultOutputPath(startDate, endDate)
			}
			if err := services.WriteReport(output, report); err != nil {
				return clierr.Wrap(clierr.ExitRuntime, err, "saving report")
			}
			ui.LogSuccess("Report saved to %s", output)

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nGenerated report:\n%s\n", report)
			return nil
		},
	}

	cmd.Flags().StringVar(&endDate, "end-date", "", "Last day of the range, YYYY-MM-DD (default: start_date)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: daily_report_<date>.txt)")
	llm.register(cmd)
	repos.register(cmd)
	return cmd
}

// newPipeline wires the commit source and summarizer selected by cfg
func newPipeline(ctx context.Context, cfg config.Config) (services.Pipeline, error) {
	summarizer, err := newSummarizer(cfg.LLM)
	if err != nil {
		return services.Pipeline{}, clierr.WrapUsage(err, "configuring %s", cfg.LLM.Provider)
	}

	if o, ok := summarizer.(*services.OllamaSummarizer); ok {
		ui.LogInfo("Checking if Ollama is available...")
		if err := o.CheckOllamaAvailability(ctx); err != nil {
			ui.LogWarning("%v", err)
		}
	}
	ui.LogInfo("Using %s model %s", cfg.LLM.Provider, cfg.LLM.Model)

	return services.Pipeline{
		Aggregator: services.Aggregator{Source: services.NewCommitSource(cfg.Git)},
		Reporter:   services.ReportClient{Summarizer: summarizer, Timeout: cfg.LLM.Timeout()},
		Language:   cfg.LLM.Language,
	}, nil
}
