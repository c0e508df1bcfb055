package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/MrLemur/gitreport/pkg/helpers"
)

// Summarization providers
const (
	ProviderDashScope = "dashscope"
	ProviderOllama    = "ollama"
)

// Commit history sources
const (
	SourceCLI   = "cli"
	SourceGoGit = "go-git"
)

// Prompt languages
const (
	LanguageEN = "en"
	LanguageZH = "zh"
)

const maskedSecret = "********"

type Config struct {
	LLM     LLMConfig     `toml:"llm"`
	Git     GitConfig     `toml:"git"`
	Reports ReportsConfig `toml:"reports"`
	Zentao  ZentaoConfig  `toml:"zentao"`
	Report  WorklogConfig `toml:"report"`
}

type LLMConfig struct {
	Provider       string  `toml:"provider"`
	Model          string  `toml:"model"`
	APIKey         string  `toml:"api_key"`
	Endpoint       string  `toml:"endpoint,omitempty"`
	OllamaHost     string  `toml:"ollama_host,omitempty"`
	Temperature    float64 `toml:"temperature"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	Language       string  `toml:"language"`
}

type GitConfig struct {
	Repos          []string `toml:"repos"`
	Source         string   `toml:"source"`
	Binary         string   `toml:"binary"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

type ReportsConfig struct {
	Dir          string `toml:"dir"`
	TemplatesDir string `toml:"templates_dir"`
}

// ZentaoConfig holds the login for the worklog web UI
type ZentaoConfig struct {
	URL            string `toml:"url"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	Headless       bool   `toml:"headless"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// WorklogConfig holds the defaults used when submitting a worklog
type WorklogConfig struct {
	Title   string `toml:"title"`
	Content string `toml:"content"`
	Project string `toml:"project"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		LLM: LLMConfig{
			Provider:       ProviderDashScope,
			Model:          "qwen-plus",
			Temperature:    0.7,
			TimeoutSeconds: 60,
			Language:       LanguageEN,
		},
		Git: GitConfig{
			Source:         SourceCLI,
			Binary:         "git",
			TimeoutSeconds: 30,
		},
		Reports: ReportsConfig{
			Dir:          "daily_reports",
			TemplatesDir: "templates",
		},
		Zentao: ZentaoConfig{
			URL:            "http://your-zentao-url.com",
			Username:       "your_username",
			Password:       "your_password",
			TimeoutSeconds: 10,
		},
		Report: WorklogConfig{
			Title:   "Work log - {date}",
			Content: defaultWorklogContent,
			Project: "none",
		},
	}
}

const defaultWorklogContent = `Tasks completed today:
1. Finished development of feature XX
2. Fixed bugs in module YY
3. Attended the project meeting

Plan for tomorrow:
1. Continue developing feature ZZ
2. Test module AA
`

// DefaultPath returns $XDG_CONFIG_HOME/gitreport/config.toml
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "gitreport", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "gitreport", "config.toml")
}

// Load reads the config file at path on top of the defaults and applies
// environment overrides. A missing file yields an error matching os.ErrNotExist.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to the defaults when the
// file does not exist and the path was not given explicitly.
func LoadOrDefault(path string, explicit bool) (Config, error) {
	cfg, err := Load(path)
	if err != nil && !explicit && errors.Is(err, os.ErrNotExist) {
		cfg = Default()
		cfg.applyEnv()
		cfg.normalize()
		return cfg, cfg.Validate()
	}
	return cfg, err
}

func (c *Config) applyEnv() {
	if key := os.Getenv("DASHSCOPE_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if provider := os.Getenv("GITREPORT_LLM_PROVIDER"); provider != "" {
		c.LLM.Provider = provider
	}
	if model := os.Getenv("GITREPORT_MODEL"); model != "" {
		c.LLM.Model = model
	}
}

func (c *Config) normalize() {
	d := Default()
	if c.LLM.Provider == "" {
		c.LLM.Provider = d.LLM.Provider
	}
	if c.LLM.Model == "" {
		c.LLM.Model = d.LLM.Model
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = d.LLM.TimeoutSeconds
	}
	if c.LLM.Language == "" {
		c.LLM.Language = d.LLM.Language
	}
	if c.Git.Source == "" {
		c.Git.Source = d.Git.Source
	}
	if c.Git.Binary == "" {
		c.Git.Binary = d.Git.Binary
	}
	if c.Git.TimeoutSeconds <= 0 {
		c.Git.TimeoutSeconds = d.Git.TimeoutSeconds
	}
	if c.Zentao.TimeoutSeconds <= 0 {
		c.Zentao.TimeoutSeconds = d.Zentao.TimeoutSeconds
	}
	c.Reports.Dir = helpers.ExpandHome(helpers.FirstNonEmpty(c.Reports.Dir, d.Reports.Dir))
	c.Reports.TemplatesDir = helpers.ExpandHome(helpers.FirstNonEmpty(c.Reports.TemplatesDir, d.Reports.TemplatesDir))
	for i, repo := range c.Git.Repos {
		c.Git.Repos[i] = helpers.ExpandHome(repo)
	}
}

// Validate checks the enumerated settings
func (c Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderDashScope, ProviderOllama:
	default:
		return fmt.Errorf("invalid llm.provider %q (must be %q or %q)", c.LLM.Provider, ProviderDashScope, ProviderOllama)
	}
	switch c.Git.Source {
	case SourceCLI, SourceGoGit:
	default:
		return fmt.Errorf("invalid git.source %q (must be %q or %q)", c.Git.Source, SourceCLI, SourceGoGit)
	}
	switch c.LLM.Language {
	case LanguageEN, LanguageZH:
	default:
		return fmt.Errorf("invalid llm.language %q (must be %q or %q)", c.LLM.Language, LanguageEN, LanguageZH)
	}
	return nil
}

// Timeout bounds a single summarization request
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Timeout bounds a single git invocation
func (c GitConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Timeout bounds each wait in the browser flow
func (c ZentaoConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Encode writes the configuration as TOML with secrets masked
func (c Config) Encode(w io.Writer) error {
	if c.LLM.APIKey != "" {
		c.LLM.APIKey = maskedSecret
	}
	if c.Zentao.Password != "" {
		c.Zentao.Password = maskedSecret
	}
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// WriteDefault writes a commented default configuration file
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultFile), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

const defaultFile = `# gitreport configuration

[llm]
# "dashscope" (hosted, needs api_key or DASHSCOPE_API_KEY) or "ollama" (local)
provider = "dashscope"
model = "qwen-plus"
api_key = ""
# endpoint = "https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation"
# ollama_host = "http://127.0.0.1:11434"
temperature = 0.7
timeout_seconds = 60
# prompt language: "en" or "zh"
language = "en"

[git]
# repositories scanned when --repos is not given
repos = []
# "cli" runs the git binary, "go-git" reads history natively
source = "cli"
binary = "git"
timeout_seconds = 30

[reports]
dir = "daily_reports"
templates_dir = "templates"

[zentao]
url = "http://your-zentao-url.com"
username = "your_username"
password = "your_password"
headless = false
timeout_seconds = 10

[report]
# {date} is replaced with today's date
title = "Work log - {date}"
project = "none"
content = """
` + defaultWorklogContent + `"""
`
