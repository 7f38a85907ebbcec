package ui

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/FocusFlow/internal/task"
)

// RenderProgress renders the "done/total (percent%)" summary line.
func RenderProgress(tasks []task.Task) string {
	done := task.CompletedCount(tasks)
	total := len(tasks)
	return fmt.Sprintf("%d/%d done (%d%%)", done, total, task.ProgressPercent(done, total))
}

// RenderTaskList renders tasks for `focusflow list`, newest first as stored.
// With verbose set, IDs and creation times are shown in a table.
func RenderTaskList(tasks []task.Task, verbose bool) string {
	var sb strings.Builder
	sb.WriteString(StyleHeader.Render("🎯 FocusFlow") + StyleSubtle.Render(RenderProgress(tasks)) + "\n")
	sb.WriteString(StyleSubtle.Render(strings.Repeat("─", 50)) + "\n")

	if len(tasks) == 0 {
		sb.WriteString(StyleSubtle.Render(" No tasks yet. Add one with `focusflow add`.") + "\n")
		return sb.String()
	}

	if verbose {
		table := &Table{
			Headers:  []string{"ID", "Done", "Title", "Category", "Priority", "Created"},
			MaxWidth: 48,
		}
		for _, t := range tasks {
			table.Rows = append(table.Rows, []string{
				TruncateID(t.ID),
				checkbox(t.IsCompleted),
				t.Title,
				t.Category,
				t.Priority.Label(),
				t.CreatedAt.Local().Format("Jan 02 15:04"),
			})
		}
		sb.WriteString(table.Render())
		return sb.String()
	}

	for _, t := range tasks {
		sb.WriteString(" " + renderTaskLine(t) + "\n")
	}
	return sb.String()
}

func renderTaskLine(t task.Task) string {
	title := StyleText.Render(t.Title)
	if t.IsCompleted {
		title = StyleDone.Render(t.Title)
	}
	tag := StyleSubtle.Render(t.Category+" · ") + PriorityStyle(t.Priority).Render(t.Priority.Label())
	return fmt.Sprintf("%s %s  %s %s", StyleSubtle.Render(TruncateID(t.ID)), checkbox(t.IsCompleted), title, tag)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
