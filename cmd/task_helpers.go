package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/josephgoksu/FocusFlow/internal/app"
	"github.com/josephgoksu/FocusFlow/internal/task"
)

// minIDPrefix is the shortest id prefix accepted by done and rm.
const minIDPrefix = 4

// resolveTaskID refreshes the list and expands an id prefix, as printed by
// 'focusflow list', into the full id. Ambiguous prefixes are rejected.
func resolveTaskID(ctx context.Context, flows *app.Orchestrator, arg string) (task.Task, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return task.Task{}, fmt.Errorf("task id: %w", task.ErrPrecondition)
	}
	if err := flows.Refresh(ctx); err != nil {
		return task.Task{}, err
	}

	tasks := flows.Snapshot().Tasks
	if t, ok := task.Find(tasks, arg); ok {
		return t, nil
	}
	if len(arg) < minIDPrefix {
		return task.Task{}, fmt.Errorf("task %q: %w (use at least %d characters of the id)", arg, task.ErrNotFound, minIDPrefix)
	}

	var matches []task.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return task.Task{}, fmt.Errorf("task %q: %w", arg, task.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return task.Task{}, fmt.Errorf("id prefix %q matches %d tasks; use more characters", arg, len(matches))
	}
}
