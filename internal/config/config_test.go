package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DASHSCOPE_API_KEY", "")
	t.Setenv("GITREPORT_LLM_PROVIDER", "")
	t.Setenv("GITREPORT_MODEL", "")
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ProviderDashScope, cfg.LLM.Provider)
	assert.Equal(t, "qwen-plus", cfg.LLM.Model)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout())
	assert.Equal(t, SourceCLI, cfg.Git.Source)
	assert.Equal(t, 30*time.Second, cfg.Git.Timeout())
	assert.Equal(t, "daily_reports", cfg.Reports.Dir)
	assert.Equal(t, 10*time.Second, cfg.Zentao.Timeout())
	assert.Empty(t, cfg.LLM.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
[llm]
provider = "ollama"
model = "llama3"

[git]
repos = ["/src/api", "/src/web"]
source = "go-git"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, "llama3", cfg.LLM.Model)
	assert.Equal(t, []string{"/src/api", "/src/web"}, cfg.Git.Repos)
	assert.Equal(t, SourceGoGit, cfg.Git.Source)
	// untouched keys keep their defaults
	assert.Equal(t, 60, cfg.LLM.TimeoutSeconds)
	assert.Equal(t, "git", cfg.Git.Binary)
	assert.Equal(t, LanguageEN, cfg.LLM.Language)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DASHSCOPE_API_KEY", "env-key")
	t.Setenv("GITREPORT_MODEL", "qwen-max")
	path := writeFile(t, "[llm]\napi_key = \"file-key\"\nmodel = \"qwen-plus\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.LLM.APIKey)
	assert.Equal(t, "qwen-max", cfg.LLM.Model)
}

func TestLoadNormalizesEmptyValues(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "[llm]\nprovider = \"\"\ntimeout_seconds = 0\n[reports]\ndir = \"~/reports\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderDashScope, cfg.LLM.Provider)
	assert.Equal(t, 60, cfg.LLM.TimeoutSeconds)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "reports"), cfg.Reports.Dir)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	for _, body := range []string{
		"[llm]\nprovider = \"openai\"\n",
		"[git]\nsource = \"svn\"\n",
		"[llm]\nlanguage = \"fr\"\n",
		"not toml at all = = =",
	} {
		_, err := Load(writeFile(t, body))
		assert.Error(t, err, body)
	}
}

func TestLoadOrDefault(t *testing.T) {
	clearEnv(t)
	missing := filepath.Join(t.TempDir(), "missing.toml")

	cfg, err := LoadOrDefault(missing, false)
	require.NoError(t, err)
	assert.Equal(t, Default().LLM.Model, cfg.LLM.Model)

	_, err = LoadOrDefault(missing, true)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultPathHonoursXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "gitreport", "config.toml"), DefaultPath())
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	want := Default()
	assert.Equal(t, want.LLM, cfg.LLM)
	assert.Equal(t, want.Zentao, cfg.Zentao)
	assert.Equal(t, want.Report, cfg.Report)
}

func TestEncodeMasksSecrets(t *testing.T) {
	cfg := Default()
	cfg.LLM.APIKey = "sk-real"
	cfg.Zentao.Password = "hunter2"

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))
	assert.NotContains(t, buf.String(), "sk-real")
	assert.NotContains(t, buf.String(), "hunter2")
	assert.Contains(t, buf.String(), maskedSecret)
	// the caller's copy is untouched
	assert.Equal(t, "sk-real", cfg.LLM.APIKey)
}
