package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

const (
	// CrashLogDir is the directory for crash logs inside the data directory.
	CrashLogDir = "crash_logs"

	// MaxCrashLogs is the maximum number of crash logs to keep
	MaxCrashLogs = 10
)

// crashContext stores context for crash logging.
type crashContext struct {
	mu        sync.RWMutex
	lastInput string
	command   string
	version   string
	basePath  string
}

var globalContext = &crashContext{}

// SetBasePath sets the data directory that holds crash_logs/.
func SetBasePath(path string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.basePath = path
}

// SetVersion sets the application version for crash logs.
func SetVersion(version string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.version = version
}

// SetCommand sets the current command being executed.
func SetCommand(cmd string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.command = cmd
}

// SetLastInput records the last text the user submitted.
func SetLastInput(input string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.lastInput = truncateForLog(strings.TrimSpace(input), 500)
}

// truncateForLog cuts value to maxLen runes.
func truncateForLog(value string, maxLen int) string {
	runes := []rune(value)
	if len(runes) <= maxLen {
		return value
	}
	return string(runes[:maxLen]) + "... [truncated]"
}

// CrashLog represents a crash log entry.
type CrashLog struct {
	Timestamp  time.Time
	Version    string
	Command    string
	PanicValue string
	StackTrace string
	LastInput  string
	GoVersion  string
	OS         string
	Arch       string
}

// HandlePanic recovers a panic, writes a crash log and exits with status 1.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}

	log := newCrashLog(r, debug.Stack())
	path, err := WriteCrashLog(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n[CRASH] Failed to write crash log: %v\n", err)
		fmt.Fprintf(os.Stderr, "[CRASH] Panic: %v\n%s\n", r, log.StackTrace)
	} else {
		fmt.Fprintf(os.Stderr, "\nfocusflow stopped after an unexpected error.\n")
		fmt.Fprintf(os.Stderr, "A crash log has been saved to:\n  %s\n\n", path)
	}
	os.Exit(1)
}

func newCrashLog(panicValue any, stack []byte) CrashLog {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	return CrashLog{
		Timestamp:  time.Now(),
		Version:    globalContext.version,
		Command:    globalContext.command,
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(stack),
		LastInput:  globalContext.lastInput,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}

// WriteCrashLog writes log under the crash directory, pruning old logs, and returns its path.
func WriteCrashLog(log CrashLog) (string, error) {
	dir := crashLogDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash log dir: %w", err)
	}
	// Best effort; the new log matters more than the old ones.
	_ = cleanOldCrashLogs(dir, MaxCrashLogs-1)

	path := filepath.Join(dir, fmt.Sprintf("crash_%s.log", log.Timestamp.Format("20060102_150405.000")))
	if err := os.WriteFile(path, []byte(formatCrashLog(log)), 0o644); err != nil {
		return "", fmt.Errorf("write crash log: %w", err)
	}
	return path, nil
}

func crashLogDir() string {
	globalContext.mu.RLock()
	basePath := globalContext.basePath
	globalContext.mu.RUnlock()

	if basePath == "" {
		basePath = ".focusflow"
	}
	return filepath.Join(basePath, CrashLogDir)
}

func formatCrashLog(log CrashLog) string {
	rule := strings.Repeat("=", 80) + "\n"
	section := func(sb *strings.Builder, title, body string) {
		sb.WriteString("\n" + strings.Repeat("-", 80) + "\n")
		sb.WriteString(title + "\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(strings.TrimRight(body, "\n") + "\n")
	}

	var sb strings.Builder
	sb.WriteString(rule)
	sb.WriteString("FOCUSFLOW CRASH LOG\n")
	sb.WriteString(rule + "\n")
	fmt.Fprintf(&sb, "Timestamp: %s\n", log.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Version:   %s\n", log.Version)
	fmt.Fprintf(&sb, "Command:   %s\n", log.Command)
	fmt.Fprintf(&sb, "Go:        %s\n", log.GoVersion)
	fmt.Fprintf(&sb, "OS/Arch:   %s/%s\n", log.OS, log.Arch)

	section(&sb, "PANIC VALUE", log.PanicValue)
	section(&sb, "STACK TRACE", log.StackTrace)
	if log.LastInput != "" {
		section(&sb, "LAST USER INPUT", log.LastInput)
	}
	sb.WriteString("\n" + rule)
	return sb.String()
}

// cleanOldCrashLogs keeps at most keep crash logs, removing the oldest.
func cleanOldCrashLogs(dir string, keep int) error {
	logs, err := listCrashLogs(dir)
	if err != nil || len(logs) <= keep {
		return err
	}
	// Names embed the timestamp, and os.ReadDir sorts by name, so the oldest come first.
	for _, path := range logs[:len(logs)-keep] {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

// ListCrashLogs returns the crash log paths, oldest first.
func ListCrashLogs() ([]string, error) {
	return listCrashLogs(crashLogDir())
}

func listCrashLogs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			logs = append(logs, filepath.Join(dir, e.Name()))
		}
	}
	return logs, nil
}
