package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrLemur/gitreport/internal/clierr"
	"github.com/MrLemur/gitreport/internal/config"
	"github.com/MrLemur/gitreport/internal/services"
)

var (
	// Global flags
	ConfigPath   string
	Verbose      bool
	DebugLogFile string
)

// Factories replaced in tests
var (
	newSummarizer = services.NewSummarizer
	newSubmitter  = func(cfg config.ZentaoConfig) services.Submitter {
		return services.NewZentaoSubmitter(cfg)
	}
)

func registerGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&ConfigPath, "config", config.DefaultPath(), "Path to the TOML config file")
	cmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "Log the external commands that are executed")
	cmd.PersistentFlags().StringVar(&DebugLogFile, "debug-log", "", "Path to output debug log file")
}

// loadConfig reads the config file. A missing file is only an error when
// --config was given explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	explicit := cmd.Flags().Changed("config")
	cfg, err := config.LoadOrDefault(ConfigPath, explicit)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, clierr.Usage("config file %s does not exist (create one with: gitreport config init)", ConfigPath)
		}
		return cfg, clierr.WrapUsage(err, "loading config")
	}
	return cfg, nil
}

// llmFlags override the [llm] section
type llmFlags struct {
	apiKey   string
	provider string
	model    string
	language string
}

func (f *llmFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.apiKey, "api-key", "", "DashScope API key (default: llm.api_key or DASHSCOPE_API_KEY)")
	cmd.Flags().StringVar(&f.provider, "provider", "", `Summarization provider, "dashscope" or "ollama"`)
	cmd.Flags().StringVar(&f.model, "model", "", "Model used to write the report")
	cmd.Flags().StringVar(&f.language, "language", "", `Prompt language, "en" or "zh"`)
}

func (f llmFlags) apply(cfg *config.Config) error {
	if f.apiKey != "" {
		cfg.LLM.APIKey = f.apiKey
	}
	if f.provider != "" {
		cfg.LLM.Provider = f.provider
	}
	if f.model != "" {
		cfg.LLM.Model = f.model
	}
	if f.language != "" {
		cfg.LLM.Language = f.language
	}
	if err := cfg.Validate(); err != nil {
		return clierr.WrapUsage(err, "invalid flags")
	}
	return nil
}

// repoFlags select the repositories to scan
type repoFlags struct {
	repos  []string
	source string
}

func (f *repoFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.repos, "repos", nil, "Repository paths to scan (default: git.repos from config, or the current directory)")
	cmd.Flags().StringVar(&f.source, "source", "", `Commit history source, "cli" or "go-git"`)
}

func (f repoFlags) apply(cfg *config.Config) ([]string, error) {
	if f.source != "" {
		cfg.Git.Source = f.source
		if err := cfg.Validate(); err != nil {
			return nil, clierr.WrapUsage(err, "invalid flags")
		}
	}
	switch {
	case len(f.repos) > 0:
		return f.repos, nil
	case len(cfg.Git.Repos) > 0:
		return cfg.Git.Repos, nil
	default:
		return []string{"."}, nil
	}
}
