package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/josephgoksu/FocusFlow/internal/app"
	"github.com/josephgoksu/FocusFlow/internal/task"
)

type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}

// captureStderr returns what fn wrote to os.Stderr.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	originalStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	defer func() { os.Stderr = originalStderr }()

	fn()

	_ = w.Close()
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name         string
		userMsg      string
		technicalErr error
		verbose      bool
		expectedOut  string
	}{
		{
			name:         "normal mode without error",
			userMsg:      "User friendly message",
			technicalErr: nil,
			verbose:      false,
			expectedOut:  "User friendly message",
		},
		{
			name:         "verbose mode with error",
			userMsg:      "User friendly message",
			technicalErr: &testError{msg: "technical details"},
			verbose:      true,
			expectedOut:  "Error: technical details",
		},
		{
			name:         "normal mode with technical error",
			userMsg:      "User friendly message",
			technicalErr: &testError{msg: "technical details"},
			verbose:      false,
			expectedOut:  "User friendly message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Set("verbose", tt.verbose)
			defer viper.Set("verbose", false)

			output := captureStderr(t, func() { PrintError(tt.userMsg, tt.technicalErr) })
			if !strings.Contains(output, tt.expectedOut) {
				t.Errorf("expected output to contain %q, got %q", tt.expectedOut, output)
			}
		})
	}
}

func TestLogError(t *testing.T) {
	viper.Set("verbose", false)
	if out := captureStderr(t, func() { LogError("quiet", errors.New("x")) }); out != "" {
		t.Errorf("expected no output without verbose, got %q", out)
	}

	viper.Set("verbose", true)
	defer viper.Set("verbose", false)
	if out := captureStderr(t, func() { LogError("loud", errors.New("x")) }); out != "[DEBUG] loud: x\n" {
		t.Errorf("unexpected verbose output %q", out)
	}
}

func TestFriendlyMessage(t *testing.T) {
	notice := &app.NoticeError{Notice: app.Notice{Level: app.NoticeAlert, Message: app.ExpandFailedMessage}, Err: errors.New("timeout")}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"notice wins", fmt.Errorf("expand: %w", notice), app.ExpandFailedMessage},
		{"precondition", task.ErrPrecondition, "Nothing to do: the input is empty."},
		{"not found", fmt.Errorf("task x: %w", task.ErrNotFound), "No task with that id. Run 'focusflow list -v' to see ids."},
		{"busy", app.ErrBusy, "Another request of this kind is still running."},
		{"transport", task.Transport("open sqlite", errors.New("disk full")), "Could not open sqlite. Run with --verbose for details."},
		{"other", errors.New("plain"), "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := friendlyMessage(tt.err); got != tt.want {
				t.Errorf("friendlyMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
