/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/FocusFlow/internal/assist"
	"github.com/josephgoksu/FocusFlow/internal/logger"
	"github.com/josephgoksu/FocusFlow/internal/ui"
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan <theme>",
	Short: "Turn today's theme into a timetable of tasks",
	Long: `Ask the model for a timetable built around a theme for the day. Each slot
becomes a task tagged "AI Timetable", listed in timetable order at the top.

Examples:
  focusflow plan "Exam prep for statistics"
  focusflow plan Deep work on the billing migration`,
	Args:        cobra.MinimumNArgs(1),
	Annotations: map[string]string{annotationQuietLogs: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExpand(cmd, args, assist.StrategyPlanner)
	},
}

// breakdownCmd represents the breakdown command
var breakdownCmd = &cobra.Command{
	Use:   "breakdown <goal>",
	Short: "Split a goal into a few concrete steps",
	Long: `Ask the model to break a goal into three to five short steps. Each step
becomes a task tagged "AI Breakdown".

Examples:
  focusflow breakdown "Learn Go"
  focusflow breakdown Move to a new apartment`,
	Args:        cobra.MinimumNArgs(1),
	Annotations: map[string]string{annotationQuietLogs: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExpand(cmd, args, assist.StrategyBreakdown)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(breakdownCmd)
}

func runExpand(cmd *cobra.Command, args []string, strategy assist.Strategy) error {
	input := strings.TrimSpace(strings.Join(args, " "))
	logger.SetLastInput(input)

	s, err := openSession(cmd, appConfig, true)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if err := s.flows.Refresh(ctx); err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	s.flows.SetInput(input)

	var spin *ui.Spinner
	if ui.IsInteractive() {
		spin = ui.NewSpinner(os.Stderr, "Generating tasks…")
		spin.Start()
	}
	created, err := s.flows.Expand(ctx, strategy)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	state := s.flows.Snapshot()
	out := cmd.OutOrStdout()
	if state.Notice != nil {
		fmt.Fprintln(out, "✓ "+state.Notice.Message)
	}
	// The new rows are the newest ones, so they lead the list.
	fmt.Fprint(out, ui.RenderTaskList(state.Tasks[:min(created, len(state.Tasks))], verbose))
	return nil
}
