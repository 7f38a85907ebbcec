/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/FocusFlow/internal/task"
	"github.com/josephgoksu/FocusFlow/internal/ui"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:     "done <id>",
	Aliases: []string{"toggle"},
	Short:   "Mark a task done, or reopen it",
	Long: `Flip the completion of a task. Running it twice restores the original state.
The id may be shortened to the prefix shown by 'focusflow list'.

Examples:
  focusflow done 3f9a1c2e
  focusflow toggle 3f9a`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationQuietLogs: "true"},
	RunE:        runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, appConfig, false)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	t, err := resolveTaskID(ctx, s.flows, args[0])
	if err != nil {
		return err
	}
	if err := s.flows.Toggle(ctx, t.ID); err != nil {
		return err
	}

	state := s.flows.Snapshot()
	verb := "Reopened"
	if updated, ok := task.Find(state.Tasks, t.ID); ok && updated.IsCompleted {
		verb = "Completed"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s %q · %s\n", verb, t.Title, ui.RenderProgress(state.Tasks))
	return nil
}
