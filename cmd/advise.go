/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/FocusFlow/internal/assist"
	"github.com/josephgoksu/FocusFlow/internal/ui"
)

var adviseStyle string

// adviseCmd represents the advise command
var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Ask which open task to tackle first",
	Long: `Send the titles of the open tasks to the model and print its advice on
what to do first. Nothing is sent when no task is open.

Examples:
  focusflow advise
  focusflow advise --style tip    # one sentence instead of coaching`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationQuietLogs: "true"},
	RunE:        runAdvise,
}

func init() {
	rootCmd.AddCommand(adviseCmd)
	adviseCmd.Flags().StringVar(&adviseStyle, "style", "", "Advice style: coaching or tip (default from assist.adviceStyle)")
}

func runAdvise(cmd *cobra.Command, args []string) error {
	cfg := *appConfig
	if adviseStyle != "" {
		style, err := assist.ParseAdviceStyle(adviseStyle)
		if err != nil {
			return err
		}
		cfg.Assist.AdviceStyle = string(style)
	}

	s, err := openSession(cmd, &cfg, true)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if err := s.flows.Refresh(ctx); err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	var spin *ui.Spinner
	if ui.IsInteractive() {
		spin = ui.NewSpinner(os.Stderr, "Thinking about priorities…")
		spin.Start()
	}
	advice, err := s.flows.Advise(ctx)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderAdvicePanel(advice, min(ui.TerminalWidth(80), 100)-2))
	return nil
}
