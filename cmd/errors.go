package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/josephgoksu/FocusFlow/internal/app"
	"github.com/josephgoksu/FocusFlow/internal/task"
)

// HandleFatalError handles unrecoverable errors that should terminate the application.
func HandleFatalError(userMsg string, technicalErr error) {
	PrintError(userMsg, technicalErr)
	os.Exit(1)
}

// PrintError prints an error message without exiting, allowing for recovery.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		// In verbose mode, print the detailed, underlying technical error.
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		// By default, print the clean, user-friendly message.
		fmt.Fprintln(os.Stderr, userMsg)
	}
}

// LogError logs an error without printing to stderr if verbose mode is off.
func LogError(msg string, err error) {
	if viper.GetBool("verbose") {
		if err != nil {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s: %v\n", msg, err)
		} else {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s\n", msg)
		}
	}
}

// friendlyMessage picks what a user sees for err without --verbose.
func friendlyMessage(err error) string {
	if msg := app.UserMessage(err); msg != "" {
		return msg
	}
	var transport *task.TransportError
	switch {
	case errors.Is(err, task.ErrPrecondition):
		return "Nothing to do: the input is empty."
	case errors.Is(err, task.ErrNotFound):
		return "No task with that id. Run 'focusflow list -v' to see ids."
	case errors.Is(err, app.ErrBusy):
		return "Another request of this kind is still running."
	case errors.As(err, &transport):
		return fmt.Sprintf("Could not %s. Run with --verbose for details.", transport.Op)
	}
	return err.Error()
}
