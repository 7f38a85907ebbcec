package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/josephgoksu/FocusFlow/internal/llm"
)

// Config is the fully resolved application configuration.
type Config struct {
	Store     StoreConfig     `mapstructure:"store"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Assist    AssistConfig    `mapstructure:"assist"`
	Server    ServerConfig    `mapstructure:"server"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

// StoreConfig selects and locates the task store.
type StoreConfig struct {
	Driver      string `mapstructure:"driver" validate:"oneof=sqlite postgres"`
	Path        string `mapstructure:"path"`
	DSN         string `mapstructure:"dsn" validate:"required_if=Driver postgres"`
	AutoMigrate bool   `mapstructure:"autoMigrate"`
}

// LLMConfig selects the model provider and the model per role.
type LLMConfig struct {
	Provider string            `mapstructure:"provider" validate:"oneof=gemini openai anthropic ollama"`
	APIKey   string            `mapstructure:"apiKey"`
	APIKeys  map[string]string `mapstructure:"apiKeys"`
	BaseURL  string            `mapstructure:"baseURL" validate:"omitempty,url"`
	Models   ModelsConfig      `mapstructure:"models"`
}

// ModelsConfig names the model used for each role.
type ModelsConfig struct {
	Planner string `mapstructure:"planner" validate:"required"`
	Advisor string `mapstructure:"advisor" validate:"required"`
}

// AssistConfig picks the default expansion strategy and advice style.
type AssistConfig struct {
	Strategy    string `mapstructure:"strategy" validate:"oneof=planner breakdown"`
	AdviceStyle string `mapstructure:"adviceStyle" validate:"oneof=coaching tip"`
}

// ServerConfig configures `focusflow serve`.
type ServerConfig struct {
	Addr    string   `mapstructure:"addr" validate:"required"`
	Origins []string `mapstructure:"origins"`
}

// TelemetryConfig configures anonymous usage events.
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	APIKey   string `mapstructure:"apiKey"`
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	File  string `mapstructure:"file"`
}

// validate is a single instance of Validate, it caches struct info
var validate = validator.New()

// Init prepares v: .env, env overrides, defaults and the config file.
// cfgFile comes from --config; when empty the search paths are tried.
// A missing config file is not an error unless cfgFile names it.
func Init(v *viper.Viper, cfgFile string) error {
	// It's okay if .env doesn't exist.
	_ = godotenv.Load()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if cfgFile == "" {
		cfgFile = FindConfigFile()
		if cfgFile == "" {
			return nil
		}
	}
	v.SetConfigFile(cfgFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", cfgFile, err)
	}
	return nil
}

// Load unmarshals v into a Config, fills derived values and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	if cfg.Store.Path == "" {
		cfg.Store.Path = DefaultSQLitePath()
	}
	if cfg.Store.DSN == "" {
		cfg.Store.DSN = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	provider := llm.Provider(cfg.LLM.Provider)
	if cfg.LLM.Models.Planner == "" {
		cfg.LLM.Models.Planner = llm.DefaultModelID(provider, llm.RolePlanner)
	}
	if cfg.LLM.Models.Advisor == "" {
		cfg.LLM.Models.Advisor = llm.DefaultModelID(provider, llm.RoleAdvisor)
	}
	if cfg.LLM.BaseURL == "" && provider == llm.ProviderOllama {
		cfg.LLM.BaseURL = llm.DefaultOllamaURL
	}
	cfg.LLM.APIKey = ResolveAPIKey(cfg.LLM)

	if err := validate.Struct(&cfg); err != nil {
		return nil, describeValidation(err)
	}
	return &cfg, nil
}

// describeValidation turns validator errors into one readable line per key.
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		key := configKey(fe.Namespace())
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", key, fe.Param(), fe.Value()))
		case "required", "required_if":
			msgs = append(msgs, fmt.Sprintf("%s is required", key))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be a URL", key))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", key, fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// configKey maps "Config.Store.DSN" to "store.dsn".
func configKey(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.ToLower(strings.Join(parts, "."))
}
