package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MrLemur/gitreport/internal/clierr"
	"github.com/MrLemur/gitreport/internal/models"
	"github.com/MrLemur/gitreport/internal/services"
)

func newCommitsCmd() *cobra.Command {
	var (
		endDate    string
		format     string
		showPrompt bool
		language   string
		repos      repoFlags
	)

	cmd := &cobra.Command{
		Use:   "commits [start_date]",
		Short: "Print the commits a report would be built from",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate := time.Now().Format(models.DateLayout)
			if len(args) == 1 {
				startDate = args[0]
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if language != "" {
				cfg.LLM.Language = language
				if err := cfg.Validate(); err != nil {
					return clierr.WrapUsage(err, "invalid flags")
				}
			}
			repoPaths, err := repos.apply(&cfg)
			if err != nil {
				return err
			}

			rng, err := services.ParseDateRange(startDate, endDate)
			if err != nil {
				return clierr.WrapUsage(err, "invalid date")
			}

			agg := services.Aggregator{Source: services.NewCommitSource(cfg.Git)}.Collect(cmd.Context(), repoPaths, rng)

			out := cmd.OutOrStdout()
			if showPrompt {
				_, err := io.WriteString(out, services.BuildPrompt(agg.Commits, cfg.LLM.Language))
				return err
			}
			return writeAggregation(out, agg, format, cfg.LLM.Language)
		},
	}

	cmd.Flags().StringVar(&endDate, "end-date", "", "Last day of the range, YYYY-MM-DD (default: start_date)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", `Output format: "text", "json" or "yaml"`)
	cmd.Flags().BoolVar(&showPrompt, "prompt", false, "Print the full prompt instead of the commits")
	cmd.Flags().StringVar(&language, "language", "", `Label language for text output, "en" or "zh"`)
	repos.register(cmd)
	return cmd
}

func writeAggregation(w io.Writer, agg models.Aggregation, format, language string) error {
	switch format {
	case "text":
		if len(agg.Commits) == 0 {
			_, err := fmt.Fprintln(w, services.NoCommitsReport)
			return err
		}
		_, err := io.WriteString(w, services.FormatCommits(agg.Commits, language))
		return err
	case "json":
		if agg.Commits == nil {
			agg.Commits = []models.Commit{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(agg)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(agg); err != nil {
			return err
		}
		return enc.Close()
	default:
		return clierr.Usage("unknown format %q (must be text, json or yaml)", format)
	}
}
