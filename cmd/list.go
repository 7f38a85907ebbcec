/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/FocusFlow/internal/task"
	"github.com/josephgoksu/FocusFlow/internal/ui"
)

var (
	listJSON    bool
	listPending bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks, newest first",
	Long: `List every task, newest first, with overall progress.

Examples:
  focusflow list              # compact list
  focusflow list -v           # table with ids and creation times
  focusflow list --pending    # only open tasks
  focusflow list --json       # machine-readable output`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationQuietLogs: "true"},
	RunE:        runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().BoolVar(&listPending, "pending", false, "Only show tasks that are not done")
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, appConfig, false)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.flows.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	tasks := s.flows.Snapshot().Tasks
	if listPending {
		open := make([]task.Task, 0, len(tasks))
		for _, t := range tasks {
			if !t.IsCompleted {
				open = append(open, t)
			}
		}
		tasks = open
	}

	out := cmd.OutOrStdout()
	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}
	fmt.Fprint(out, ui.RenderTaskList(tasks, verbose))
	return nil
}
