package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// isolate points HOME, the data directory and the working directory at a
// temp dir and clears env that would leak into the config.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, key := range []string{
		"GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
		"DATABASE_URL", "FOCUSFLOW_STORE_DRIVER", "FOCUSFLOW_LLM_PROVIDER", "FOCUSFLOW_LLM_APIKEY",
	} {
		t.Setenv(key, "")
	}
	t.Chdir(dir)
	return dir
}

// executeCommand runs the root command with args and returns what it printed.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	bindFlags()
	cfgFile, verbose, jsonLogs = "", false, false
	listJSON, listPending = false, false
	adviseStyle, serveAddr = "", ""
	appConfig = nil

	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return b.String(), err
}
