/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/josephgoksu/FocusFlow/internal/config"
	"github.com/josephgoksu/FocusFlow/internal/llm"
	"github.com/josephgoksu/FocusFlow/internal/ui"
)

// configFs is the filesystem config writes go through. Tests swap in a memory fs.
var configFs = afero.NewOsFs()

// configCmd is the parent config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage FocusFlow configuration",
	Long: `View and manage FocusFlow configuration settings.

Settings are read from --config, ./.focusflow.yaml or ~/.focusflow/config.yaml,
then overridden by FOCUSFLOW_* environment variables (FOCUSFLOW_STORE_DRIVER
for store.driver).`,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show the resolved configuration (secrets masked)",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationQuietLogs: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Fprintf(out, "Config file: %s\n\n", used)
		} else {
			fmt.Fprintln(out, "Config file: none (defaults and environment)")
			fmt.Fprintln(out)
		}

		values := resolvedValues(appConfig)
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		table := &ui.Table{Headers: []string{"Key", "Value"}, MaxWidth: 60}
		for _, k := range keys {
			table.Rows = append(table.Rows, []string{k, displayValue(k, values[k])})
		}
		fmt.Fprint(out, table.Render())
		return nil
	},
}

var configKeysCmd = &cobra.Command{
	Use:         "keys",
	Short:       "List the keys accepted by 'config set'",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationSkipConfig: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		for _, k := range config.Keys() {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Write a setting to the config file",
	Long: `Write one setting to the config file in use, or ~/.focusflow/config.yaml when
none exists. Comments and other settings in the file are kept.

Examples:
  focusflow config set llm.provider openai
  focusflow config set store.driver postgres
  focusflow config set server.origins "[http://localhost:5173]"`,
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{annotationSkipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.WritableConfigFile(viper.ConfigFileUsed())
		if err != nil {
			return err
		}
		if err := config.SetValue(configFs, path, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s set in %s\n", args[0], path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Choose a model provider and store its API key",
	Long: `Pick the model provider interactively and, when it needs one, enter its API
key. Both are written to the config file ('config set' rules apply).`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationSkipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ui.IsInteractive() {
			return fmt.Errorf("config init needs a terminal; use 'focusflow config set llm.provider <name>' instead")
		}
		path, err := config.WritableConfigFile(viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		hasKey := func(p llm.Provider) bool {
			return config.ResolveAPIKey(config.LLMConfig{
				Provider: string(p),
				APIKeys:  viper.GetStringMapString("llm.apiKeys"),
			}) != ""
		}
		provider, err := ui.PromptLLMProvider(hasKey)
		if err != nil {
			return err
		}
		if err := config.SetValue(configFs, path, "llm.provider", string(provider)); err != nil {
			return err
		}

		if provider.RequiresAPIKey() && !hasKey(provider) {
			key, err := ui.PromptAPIKey(string(provider), path)
			if err != nil {
				return err
			}
			if key = strings.TrimSpace(key); key != "" {
				if err := config.SetValue(configFs, path, "llm.apiKeys."+string(provider), key); err != nil {
					return err
				}
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Using %s. Settings saved to %s\n", provider, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configKeysCmd, configSetCmd, configInitCmd)
}

// resolvedValues flattens cfg into config keys, including derived defaults.
func resolvedValues(cfg *config.Config) map[string]any {
	values := map[string]any{
		"store.driver":       cfg.Store.Driver,
		"store.path":         cfg.Store.Path,
		"store.dsn":          cfg.Store.DSN,
		"store.autoMigrate":  cfg.Store.AutoMigrate,
		"llm.provider":       cfg.LLM.Provider,
		"llm.apiKey":         cfg.LLM.APIKey,
		"llm.baseURL":        cfg.LLM.BaseURL,
		"llm.models.planner": cfg.LLM.Models.Planner,
		"llm.models.advisor": cfg.LLM.Models.Advisor,
		"assist.strategy":    cfg.Assist.Strategy,
		"assist.adviceStyle": cfg.Assist.AdviceStyle,
		"server.addr":        cfg.Server.Addr,
		"server.origins":     cfg.Server.Origins,
		"telemetry.enabled":  cfg.Telemetry.Enabled,
		"telemetry.apiKey":   cfg.Telemetry.APIKey,
		"telemetry.endpoint": cfg.Telemetry.Endpoint,
		"log.level":          cfg.Log.Level,
		"log.file":           cfg.Log.File,
	}
	for p, key := range cfg.LLM.APIKeys {
		values["llm.apiKeys."+p] = key
	}
	return values
}

// displayValue formats a value for 'config show', masking secrets.
func displayValue(key string, value any) string {
	s := fmt.Sprint(value)
	if list, ok := value.([]string); ok {
		s = strings.Join(list, ", ")
	}
	if s == "" {
		return "-"
	}
	if config.IsSecretKey(key) {
		return maskSecret(s)
	}
	return s
}

// maskSecret keeps the last four characters of long secrets.
func maskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
