/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/FocusFlow/internal/logger"
	"github.com/josephgoksu/FocusFlow/internal/ui"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a task",
	Long: `Add a task to the top of the list. It starts open, with medium
priority and the "General" category.

Examples:
  focusflow add "Write the quarterly report"
  focusflow add Call the dentist`,
	Args:        cobra.MinimumNArgs(1),
	Annotations: map[string]string{annotationQuietLogs: "true"},
	RunE:        runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	content := strings.TrimSpace(strings.Join(args, " "))
	if content == "" {
		return fmt.Errorf("content cannot be empty")
	}
	logger.SetLastInput(content)

	s, err := openSession(cmd, appConfig, false)
	if err != nil {
		return err
	}
	defer s.Close()

	s.flows.SetInput(content)
	if err := s.flows.Add(cmd.Context()); err != nil {
		return err
	}

	state := s.flows.Snapshot()
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %q · %s\n", content, ui.RenderProgress(state.Tasks))
	return nil
}
