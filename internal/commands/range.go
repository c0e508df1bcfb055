package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/MrLemur/gitreport/internal/clierr"
	"github.com/MrLemur/gitreport/internal/services"
	"github.com/MrLemur/gitreport/internal/ui"
)

func newRangeCmd() *cobra.Command {
	var (
		outputDir string
		useTUI    bool
		llm       llmFlags
		repos     repoFlags
	)

	cmd := &cobra.Command{
		Use:   "range <start_date> <end_date>",
		Short: "Generate one report per day over a date range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			rng, err := services.ParseDateRange(args[0], args[1])
			if err != nil {
				return clierr.WrapUsage(err, "invalid date")
			}
			if outputDir == "" {
				outputDir = cfg.Reports.Dir
			}

			pipeline, err := newPipeline(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			work := func(ctx context.Context) error {
				written, err := pipeline.RunRange(ctx, repoPaths, rng, outputDir)
				if err != nil {
					return clierr.Wrap(clierr.ExitRuntime, err, "generating reports")
				}
				ui.LogSuccess("Generated %d of %d reports in %s", len(written), len(services.DaysInRange(rng)), outputDir)
				return nil
			}

			if useTUI {
				return ui.RunTUI(cmd.Context(), "gitreport: daily reports "+args[0]+" to "+args[1], work)
			}
			return work(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for the reports (default: reports.dir from config)")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Show progress in a terminal dashboard")
	llm.register(cmd)
	repos.register(cmd)
	return cmd
}
