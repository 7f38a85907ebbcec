package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)

	lvl, err = ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, lvl)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}

func TestNew_FileOutputAndAtomicLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "focusflow.log")

	log, atom, err := New(Options{Level: "warn", File: path})
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")
	atom.SetLevel(zapcore.DebugLevel)
	log.Debug("now visible")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
	assert.Contains(t, string(data), "now visible")
}

func TestNew_VerboseForcesDebug(t *testing.T) {
	_, atom, err := New(Options{Level: "error", Verbose: true, File: filepath.Join(t.TempDir(), "x.log")})
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, atom.Level())
}

func TestComponent(t *testing.T) {
	assert.NotNil(t, Component(nil, "store"))
}

func TestWriteCrashLog(t *testing.T) {
	globalContext = &crashContext{}
	dir := t.TempDir()
	SetBasePath(dir)
	SetVersion("1.0.0-test")
	SetCommand("serve")
	SetLastInput("  plan my exam day  ")

	path, err := WriteCrashLog(newCrashLog("boom", []byte("goroutine 1 [running]:")))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, CrashLogDir), filepath.Dir(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "FOCUSFLOW CRASH LOG")
	assert.Contains(t, text, "1.0.0-test")
	assert.Contains(t, text, "serve")
	assert.Contains(t, text, "boom")
	assert.Contains(t, text, "goroutine 1 [running]:")
	assert.Contains(t, text, "plan my exam day")
}

func TestCleanOldCrashLogs(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < MaxCrashLogs+3; i++ {
		name := fmt.Sprintf("crash_%s.log", base.Add(time.Duration(i)*time.Second).Format("20060102_150405.000"))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0o644))

	require.NoError(t, cleanOldCrashLogs(dir, MaxCrashLogs))

	logs, err := listCrashLogs(dir)
	require.NoError(t, err)
	require.Len(t, logs, MaxCrashLogs)
	assert.Contains(t, filepath.Base(logs[0]), "000003")
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestTruncateForLog(t *testing.T) {
	assert.Equal(t, "short", truncateForLog("short", 10))
	assert.Equal(t, "abc... [truncated]", truncateForLog("abcdef", 3))
	assert.Equal(t, "héé... [truncated]", truncateForLog("hééllo", 3))
}
