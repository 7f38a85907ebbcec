// Package config loads FocusFlow settings from config files, FOCUSFLOW_* env
// vars, .env and flags into typed, validated structs.
package config

import "github.com/spf13/viper"

const (
	// EnvPrefix prefixes every env override, e.g. FOCUSFLOW_STORE_DRIVER.
	EnvPrefix = "FOCUSFLOW"

	// DefaultServerAddr is where `focusflow serve` listens.
	DefaultServerAddr = "127.0.0.1:8787"

	// DefaultLogLevel is used when log.level is unset.
	DefaultLogLevel = "info"
)

// defaults holds every known key with its default value. Keys not listed here
// are rejected by `config set`, and env overrides only apply to listed keys.
var defaults = map[string]any{
	"store.driver":       "sqlite",
	"store.path":         "",
	"store.dsn":          "",
	"store.autoMigrate":  true,
	"llm.provider":       "gemini",
	"llm.apiKey":         "",
	"llm.baseURL":        "",
	"llm.models.planner": "",
	"llm.models.advisor": "",
	"assist.strategy":    "planner",
	"assist.adviceStyle": "coaching",
	"server.addr":        DefaultServerAddr,
	"server.origins":     []string{},
	"telemetry.enabled":  false,
	"telemetry.apiKey":   "",
	"telemetry.endpoint": "",
	"log.level":          DefaultLogLevel,
	"log.file":           "",
}

// SetDefaults registers the defaults on v.
func SetDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}
