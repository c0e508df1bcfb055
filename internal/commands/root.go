package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrLemur/gitreport/internal/ui"
)

// Version is set at build time
var Version = "0.0.0-dev"

// NewRootCmd constructs the gitreport root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gitreport",
		Short:         "Turn git commit history into daily work reports",
		Long:          "gitreport collects your commits across repositories for a date range and asks a language model to write a daily report from them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ui.Verbose = Verbose
			if DebugLogFile != "" {
				if err := ui.InitDebugLogging(DebugLogFile); err != nil {
					return err
				}
				ui.LogInfo("Debug logging enabled to %s", DebugLogFile)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ui.CloseDebugLog()
		},
	}

	registerGlobalFlags(cmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of gitreport",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "gitreport version %s\n", Version)
		},
	})

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newRangeCmd())
	cmd.AddCommand(newCommitsCmd())
	cmd.AddCommand(newCustomCmd())
	cmd.AddCommand(newSubmitCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}
