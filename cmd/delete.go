/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/FocusFlow/internal/task"
)

// deleteCmd represents the rm command
var deleteCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Long: `Delete a task permanently. Deleting an id that no longer exists is not an error.
The id may be shortened to the prefix shown by 'focusflow list'.

Examples:
  focusflow rm 3f9a1c2e`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationQuietLogs: "true"},
	RunE:        runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, appConfig, false)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	id, title := args[0], args[0]
	t, err := resolveTaskID(ctx, s.flows, args[0])
	switch {
	case err == nil:
		id, title = t.ID, t.Title
	case errors.Is(err, task.ErrNotFound):
		// Deleting an absent row is a no-op.
	default:
		return err
	}

	if err := s.flows.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %q\n", title)
	return nil
}
