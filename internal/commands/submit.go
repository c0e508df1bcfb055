package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrLemur/gitreport/internal/clierr"
	"github.com/MrLemur/gitreport/internal/config"
	"github.com/MrLemur/gitreport/internal/models"
	"github.com/MrLemur/gitreport/internal/services"
	"github.com/MrLemur/gitreport/internal/ui"
	"github.com/MrLemur/gitreport/pkg/helpers"
)

func newSubmitCmd() *cobra.Command {
	var (
		title       string
		project     string
		contentFile string
		headless    bool
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a worklog to Zentao through a browser",
		Long: "Submit logs in to Zentao, opens the worklog form and fills it with the title, project and content " +
			"from the [report] section of the config, or from the flags. A default config is written on first use.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(ConfigPath); errors.Is(err, os.ErrNotExist) {
				if err := config.WriteDefault(ConfigPath); err != nil {
					return clierr.Wrap(clierr.ExitRuntime, err, "creating default config")
				}
				return clierr.Usage("created default config file %s, edit it and run again", ConfigPath)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("headless") {
				cfg.Zentao.Headless = headless
			}

			worklog := models.Worklog{
				Title:   services.FormatTitle(helpers.FirstNonEmpty(title, cfg.Report.Title), time.Now()),
				Content: cfg.Report.Content,
				Project: helpers.FirstNonEmpty(project, cfg.Report.Project),
			}
			if contentFile != "" {
				data, err := os.ReadFile(contentFile)
				if err != nil {
					return clierr.WrapUsage(err, "reading content file")
				}
				worklog.Content = string(data)
			}
			if worklog.Content == "" {
				return clierr.Usage("nothing to submit: report.content is empty and no --content-file was given")
			}

			if !newSubmitter(cfg.Zentao).Submit(cmd.Context(), worklog) {
				return clierr.Wrap(clierr.ExitRuntime, errors.New("see the log for details"), "worklog submission failed")
			}
			ui.LogSuccess("Worklog %q submitted", worklog.Title)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Worklog submitted")
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Worklog title, {date} is replaced with today (default: report.title)")
	cmd.Flags().StringVarP(&project, "project", "p", "", "Related project (default: report.project)")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "Read the worklog content from a file, such as a generated report")
	cmd.Flags().BoolVarP(&headless, "headless", "H", false, "Run the browser without a window")
	return cmd
}
