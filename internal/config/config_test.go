package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/FocusFlow/internal/llm"
)

// isolate points the global config dir at a temp dir, runs in another temp dir
// and clears env vars that would leak into the result.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	orig := GetGlobalConfigDir
	GetGlobalConfigDir = func() (string, error) { return filepath.Join(home, ".focusflow"), nil }
	t.Cleanup(func() { GetGlobalConfigDir = orig })
	t.Chdir(t.TempDir())

	for _, name := range []string{
		"GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
		"DATABASE_URL", "XDG_DATA_HOME",
		"FOCUSFLOW_STORE_DRIVER", "FOCUSFLOW_LLM_PROVIDER", "FOCUSFLOW_LOG_LEVEL",
	} {
		t.Setenv(name, "")
	}
	return home
}

func load(t *testing.T, cfgFile string) (*Config, error) {
	t.Helper()
	v := viper.New()
	require.NoError(t, Init(v, cfgFile))
	return Load(v)
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := load(t, "")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, filepath.Join(home, ".focusflow", DefaultDatabaseFile), cfg.Store.Path)
	assert.True(t, cfg.Store.AutoMigrate)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, llm.DefaultModelID(llm.ProviderGemini, llm.RolePlanner), cfg.LLM.Models.Planner)
	assert.Equal(t, llm.DefaultModelID(llm.ProviderGemini, llm.RoleAdvisor), cfg.LLM.Models.Advisor)
	assert.Equal(t, "planner", cfg.Assist.Strategy)
	assert.Equal(t, "coaching", cfg.Assist.AdviceStyle)
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Empty(t, cfg.LLM.APIKey)
}

func TestLoad_LocalFileAndEnvOverride(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(LocalConfigFile, []byte(`
llm:
  provider: openai
  apiKeys:
    openai: sk-from-file
assist:
  strategy: breakdown
server:
  origins: ["http://localhost:5173"]
`), 0o600))
	t.Setenv("FOCUSFLOW_LOG_LEVEL", "debug")

	cfg, err := load(t, "")
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-from-file", cfg.LLM.APIKey)
	assert.Equal(t, "breakdown", cfg.Assist.Strategy)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.Origins)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, llm.DefaultModelID(llm.ProviderOpenAI, llm.RolePlanner), cfg.LLM.Models.Planner)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	isolate(t)
	v := viper.New()
	err := Init(v, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_PostgresNeedsDSN(t *testing.T) {
	isolate(t)
	t.Setenv("FOCUSFLOW_STORE_DRIVER", "postgres")

	_, err := load(t, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.dsn is required")

	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/focusflow")
	cfg, err := load(t, "")
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost:5432/focusflow", cfg.Store.DSN)
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	isolate(t)
	t.Setenv("FOCUSFLOW_LLM_PROVIDER", "watson")

	_, err := load(t, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm.provider must be one of")
}

func TestLoad_OllamaGetsBaseURL(t *testing.T) {
	isolate(t)
	t.Setenv("FOCUSFLOW_LLM_PROVIDER", "ollama")

	cfg, err := load(t, "")
	require.NoError(t, err)
	assert.Equal(t, llm.DefaultOllamaURL, cfg.LLM.BaseURL)
	assert.Equal(t, llm.ProviderOllama, cfg.LLM.ClientConfig().Provider)
}

func TestResolveAPIKey_Precedence(t *testing.T) {
	isolate(t)
	t.Setenv("GOOGLE_API_KEY", "env-google")

	c := LLMConfig{Provider: "gemini"}
	assert.Equal(t, "env-google", ResolveAPIKey(c))

	t.Setenv("GEMINI_API_KEY", "env-gemini")
	assert.Equal(t, "env-gemini", ResolveAPIKey(c))

	c.APIKey = "legacy"
	assert.Equal(t, "legacy", ResolveAPIKey(c))

	c.APIKeys = map[string]string{"gemini": "per-provider", "openai": "other"}
	assert.Equal(t, "per-provider", ResolveAPIKey(c))
}

func TestFindConfigFile(t *testing.T) {
	home := isolate(t)
	assert.Empty(t, FindConfigFile())

	global := filepath.Join(home, ".focusflow", GlobalConfigFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(global), 0o755))
	require.NoError(t, os.WriteFile(global, []byte("log:\n  level: warn\n"), 0o600))
	assert.Equal(t, global, FindConfigFile())

	require.NoError(t, os.WriteFile(LocalConfigFile, []byte("{}\n"), 0o600))
	assert.Equal(t, LocalConfigFile, FindConfigFile())
}

func TestDataDir_XDG(t *testing.T) {
	isolate(t)
	xdg := t.TempDir()
	t.Setenv("XDG_DATA_HOME", xdg)
	assert.Equal(t, filepath.Join(xdg, "focusflow"), DataDir())
	assert.Equal(t, filepath.Join(xdg, "focusflow", DefaultDatabaseFile), DefaultSQLitePath())
}
