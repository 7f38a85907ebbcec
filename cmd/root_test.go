package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	isolate(t)

	output, err := executeCommand(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, output, "FocusFlow keeps a simple task list")
	assert.Contains(t, output, "Usage:")
	assert.Contains(t, output, "Available Commands:")
	for _, name := range []string{"add", "list", "done", "rm", "plan", "breakdown", "advise", "serve", "tui", "mcp", "migrate", "config", "version"} {
		assert.Contains(t, output, "  "+name, "missing command %s", name)
	}
}

func TestVersion(t *testing.T) {
	isolate(t)

	output, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "focusflow "+GetVersion())
}

func TestVersion_IgnoresBrokenConfig(t *testing.T) {
	isolate(t)
	t.Setenv("FOCUSFLOW_STORE_DRIVER", "mysql")

	_, err := executeCommand(t, "version")
	assert.NoError(t, err)

	_, err = executeCommand(t, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver must be one of")
}

func TestMCPCmd_RejectsUnknownSubcommand(t *testing.T) {
	isolate(t)

	_, err := executeCommand(t, "mcp", "install")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "install"`)
}

func TestDisplayAddr(t *testing.T) {
	assert.Equal(t, "http://localhost:8787", displayAddr(":8787"))
	assert.Equal(t, "http://127.0.0.1:9000", displayAddr("127.0.0.1:9000"))
}
