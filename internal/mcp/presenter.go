// Package mcp formats FocusFlow state as Markdown for MCP tool responses and
// routes tool calls to the Orchestrator. The internal/ui package handles CLI output.
package mcp

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/FocusFlow/internal/app"
	"github.com/josephgoksu/FocusFlow/internal/task"
	"github.com/josephgoksu/FocusFlow/internal/utils"
)

// maxTitleRunes bounds titles in list output.
const maxTitleRunes = 120

// FormatTaskList converts the task list of a state into token-efficient Markdown.
// Structure: progress line -> Open -> Done
func FormatTaskList(s app.State) string {
	if len(s.Tasks) == 0 {
		return "No tasks yet. Use the task tool with action=add, or expand a goal."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Tasks (%d/%d done, %d%%)\n\n", s.CompletedCount, s.Total, s.ProgressPercent))

	var open, done []task.Task
	for _, t := range s.Tasks {
		if t.IsCompleted {
			done = append(done, t)
		} else {
			open = append(open, t)
		}
	}

	if len(open) > 0 {
		sb.WriteString("### Open\n")
		for _, t := range open {
			writeTaskLine(&sb, t)
		}
		sb.WriteString("\n")
	}
	if len(done) > 0 {
		sb.WriteString("### Done\n")
		for _, t := range done {
			writeTaskLine(&sb, t)
		}
	}
	return strings.TrimSpace(sb.String())
}

// Format: - [ ] **Title** (High · AI Timetable) `id`
func writeTaskLine(sb *strings.Builder, t task.Task) {
	box := "[ ]"
	if t.IsCompleted {
		box = "[x]"
	}
	sb.WriteString(fmt.Sprintf("- %s **%s** (%s · %s) `%s`\n",
		box, utils.Truncate(t.Title, maxTitleRunes), t.Priority.Label(), t.Category, t.ID))
}

// FormatTaskChanged confirms a task action and appends the refreshed list.
func FormatTaskChanged(action TaskAction, id string, s app.State) string {
	var head string
	switch action {
	case TaskActionAdd:
		head = "✅ Task added."
	case TaskActionToggle:
		head = fmt.Sprintf("✅ Task `%s` updated.", id)
		if t, ok := task.Find(s.Tasks, id); ok {
			if t.IsCompleted {
				head = fmt.Sprintf("✅ Marked **%s** as done.", t.Title)
			} else {
				head = fmt.Sprintf("↩️ Reopened **%s**.", t.Title)
			}
		}
	case TaskActionDelete:
		head = fmt.Sprintf("🗑️ Task `%s` removed.", id)
	default:
		return FormatTaskList(s)
	}
	return head + "\n\n" + FormatTaskList(s)
}

// FormatExpand reports how many tasks a strategy produced, then the list.
func FormatExpand(created int, s app.State) string {
	var sb strings.Builder
	if s.Notice != nil && s.Notice.Level == app.NoticeInfo {
		sb.WriteString(s.Notice.Message)
	} else {
		sb.WriteString(fmt.Sprintf(app.ExpandedMessageFormat, created))
	}
	sb.WriteString("\n\n")
	sb.WriteString(FormatTaskList(s))
	return sb.String()
}

// FormatAdvice wraps advice text in a section.
func FormatAdvice(advice string) string {
	return "## 💡 Advice\n\n" + strings.TrimSpace(advice)
}

// === Error Formatters ===

// FormatError returns a standardized Markdown error message.
// Use this for all MCP tool error responses to ensure consistency.
func FormatError(message string) string {
	return fmt.Sprintf("## ❌ Error\n\n**Details**: %s", message)
}

// FormatValidationError returns a Markdown error for validation failures.
func FormatValidationError(field, message string) string {
	return fmt.Sprintf("## ❌ Validation Error\n\n**Field**: `%s`\n**Details**: %s", field, message)
}
