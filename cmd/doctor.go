/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/josephgoksu/FocusFlow/internal/config"
	"github.com/josephgoksu/FocusFlow/internal/llm"
	"github.com/josephgoksu/FocusFlow/internal/logger"
	"github.com/josephgoksu/FocusFlow/internal/store"
)

// doctorStoreTimeout bounds the store reachability check.
const doctorStoreTimeout = 5 * time.Second

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check FocusFlow setup and diagnose issues",
	Long: `Validate your FocusFlow configuration.

Checks:
  • Configuration file and validation
  • Task store reachability
  • Model provider and API key
  • Recent crash logs`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationSkipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// DoctorCheck represents a single diagnostic check
type DoctorCheck struct {
	Name    string
	Status  string // "ok", "warn", "fail"
	Message string
	Hint    string
}

func runDoctor(ctx context.Context, out io.Writer) error {
	fmt.Fprintln(out, "🩺 FocusFlow Doctor")
	fmt.Fprintln(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintln(out)

	cfg, check := checkConfig()
	checks := []DoctorCheck{check}
	if cfg != nil {
		checks = append(checks, checkStore(ctx, cfg), checkProvider(cfg))
	}
	checks = append(checks, checkCrashLogs())

	hasErrors := false
	for _, c := range checks {
		printCheck(out, c)
		if c.Status == "fail" {
			hasErrors = true
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	if hasErrors {
		fmt.Fprintln(out, "❌ Issues found. Fix the errors above before continuing.")
	} else {
		fmt.Fprintln(out, "✅ Everything looks good!")
	}
	return nil
}

func printCheck(out io.Writer, c DoctorCheck) {
	var icon string
	switch c.Status {
	case "ok":
		icon = "✅"
	case "warn":
		icon = "⚠️ "
	case "fail":
		icon = "❌"
	}

	fmt.Fprintf(out, "%s %s: %s\n", icon, c.Name, c.Message)
	if c.Hint != "" && c.Status != "ok" {
		fmt.Fprintf(out, "   └─ %s\n", c.Hint)
	}
}

func checkConfig() (*config.Config, DoctorCheck) {
	source := viper.ConfigFileUsed()
	if source == "" {
		source = "defaults and environment"
	}
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, DoctorCheck{
			Name:    "Configuration",
			Status:  "fail",
			Message: err.Error(),
			Hint:    "Fix with: focusflow config set <key> <value>",
		}
	}
	return cfg, DoctorCheck{Name: "Configuration", Status: "ok", Message: source}
}

func checkStore(ctx context.Context, cfg *config.Config) DoctorCheck {
	ctx, cancel := context.WithTimeout(ctx, doctorStoreTimeout)
	defer cancel()

	where := storeLocation(cfg.Store.Driver, cfg.Store.Path)
	st, err := store.Open(ctx, store.Config{Driver: cfg.Store.Driver, Path: cfg.Store.Path, DSN: cfg.Store.DSN})
	if err != nil {
		return DoctorCheck{Name: "Task store", Status: "fail", Message: err.Error(), Hint: "Check store.driver, store.path and store.dsn"}
	}
	defer func() { _ = st.Close() }()

	tasks, err := st.List(ctx)
	if err != nil {
		return DoctorCheck{Name: "Task store", Status: "fail", Message: err.Error(), Hint: "Run: focusflow migrate"}
	}
	return DoctorCheck{Name: "Task store", Status: "ok", Message: fmt.Sprintf("%s (%d tasks)", where, len(tasks))}
}

func checkProvider(cfg *config.Config) DoctorCheck {
	provider := llm.Provider(cfg.LLM.Provider)
	msg := fmt.Sprintf("%s (planner %s, advisor %s)", provider, cfg.LLM.Models.Planner, cfg.LLM.Models.Advisor)
	if provider.RequiresAPIKey() && cfg.LLM.APIKey == "" {
		return DoctorCheck{
			Name:    "Model provider",
			Status:  "warn",
			Message: msg + ", no API key",
			Hint:    fmt.Sprintf("Run: focusflow config init, or set %s", strings.Join(llm.APIKeyEnvVars[provider], " / ")),
		}
	}
	return DoctorCheck{Name: "Model provider", Status: "ok", Message: msg}
}

func checkCrashLogs() DoctorCheck {
	logs, err := logger.ListCrashLogs()
	if err != nil {
		return DoctorCheck{Name: "Crash logs", Status: "warn", Message: err.Error()}
	}
	if len(logs) == 0 {
		return DoctorCheck{Name: "Crash logs", Status: "ok", Message: "none"}
	}
	return DoctorCheck{
		Name:    "Crash logs",
		Status:  "warn",
		Message: fmt.Sprintf("%d found, latest %s", len(logs), filepath.Base(logs[len(logs)-1])),
		Hint:    "Attach the latest crash log to a bug report: " + logs[len(logs)-1],
	}
}
