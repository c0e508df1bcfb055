package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrLemur/gitreport/internal/clierr"
	"github.com/MrLemur/gitreport/internal/config"
	"github.com/MrLemur/gitreport/internal/ui"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(ConfigPath); err == nil && !force {
				return clierr.Usage("config file %s already exists (use --force to overwrite)", ConfigPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return clierr.Wrap(clierr.ExitRuntime, err, "checking config file")
			}
			if err := config.WriteDefault(ConfigPath); err != nil {
				return clierr.Wrap(clierr.ExitRuntime, err, "writing config")
			}
			ui.LogSuccess("Wrote default config to %s", ConfigPath)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return cfg.Encode(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
