/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/FocusFlow/internal/ui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive task screen",
	Long: `Open a full-screen task list. Type a task and press enter to add it, or
use ctrl+p to plan the day around what you typed, ctrl+b to break it down
and ctrl+a for advice. Press tab to move to the list.

Logs are written to log.file, or focusflow.log in the data directory.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationLogToFile: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ui.IsInteractive() {
			return fmt.Errorf("the TUI needs a terminal; use 'focusflow list' instead")
		}
		s, err := openSession(cmd, appConfig, true)
		if err != nil {
			return err
		}
		defer s.Close()
		return ui.Run(cmd.Context(), s.flows)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
