package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/josephgoksu/FocusFlow/internal/app"
	"github.com/josephgoksu/FocusFlow/internal/assist"
	"github.com/josephgoksu/FocusFlow/internal/task"
)

// Flows is the part of the Orchestrator the MCP tools drive.
type Flows interface {
	Snapshot() app.State
	SetInput(text string)
	Refresh(ctx context.Context) error
	Add(ctx context.Context) error
	Expand(ctx context.Context, strategy assist.Strategy) (int, error)
	Advise(ctx context.Context) (string, error)
	Toggle(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// ToolResult is the response of a tool handler. Error is set for failures the
// caller should see and correct; Content holds Markdown otherwise.
type ToolResult struct {
	Action  string `json:"action"`
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
	// Field names the offending parameter of a validation failure.
	Field string `json:"field,omitempty"`
}

func validationResult(action, field, msg string) *ToolResult {
	return &ToolResult{Action: action, Error: msg, Field: field}
}

func flowError(action string, err error) *ToolResult {
	msg := app.UserMessage(err)
	if msg == "" {
		msg = err.Error()
	}
	return &ToolResult{Action: action, Error: msg}
}

// HandleTaskTool is the unified handler for task list operations.
// Every action re-reads the store first so a long-lived server never acts on a stale list.
func HandleTaskTool(ctx context.Context, flows Flows, params TaskToolParams) (*ToolResult, error) {
	if !params.Action.IsValid() {
		return validationResult(string(params.Action), "action",
			fmt.Sprintf("invalid action %q, must be one of: list, add, toggle, delete", params.Action)), nil
	}
	if err := flows.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	switch params.Action {
	case TaskActionList:
		return &ToolResult{Action: string(params.Action), Content: FormatTaskList(flows.Snapshot())}, nil
	case TaskActionAdd:
		return handleTaskAdd(ctx, flows, params)
	case TaskActionToggle, TaskActionDelete:
		return handleTaskByID(ctx, flows, params)
	default:
		return validationResult(string(params.Action), "action", fmt.Sprintf("unsupported action: %s", params.Action)), nil
	}
}

func handleTaskAdd(ctx context.Context, flows Flows, params TaskToolParams) (*ToolResult, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return validationResult("add", "title", "title is required for action=add"), nil
	}

	flows.SetInput(title)
	if err := flows.Add(ctx); err != nil {
		return flowError("add", err), nil
	}
	return &ToolResult{Action: "add", Content: FormatTaskChanged(TaskActionAdd, "", flows.Snapshot())}, nil
}

func handleTaskByID(ctx context.Context, flows Flows, params TaskToolParams) (*ToolResult, error) {
	action := string(params.Action)
	id := strings.TrimSpace(params.TaskID)
	if id == "" {
		return validationResult(action, "task_id", fmt.Sprintf("task_id is required for action=%s", action)), nil
	}

	var err error
	if params.Action == TaskActionToggle {
		err = flows.Toggle(ctx, id)
	} else {
		err = flows.Delete(ctx, id)
	}
	switch {
	case errors.Is(err, task.ErrNotFound):
		return validationResult(action, "task_id", fmt.Sprintf("no task with id %q; call action=list for current ids", id)), nil
	case err != nil:
		return flowError(action, err), nil
	}
	return &ToolResult{Action: action, Content: FormatTaskChanged(params.Action, id, flows.Snapshot())}, nil
}

// HandleExpand turns a theme or goal into tasks with the chosen strategy.
func HandleExpand(ctx context.Context, flows Flows, params ExpandParams) (*ToolResult, error) {
	input := strings.TrimSpace(params.Input)
	if input == "" {
		return validationResult("expand", "input", app.ExpandPreconditionMessage), nil
	}

	var strategy assist.Strategy
	if strings.TrimSpace(params.Strategy) != "" {
		s, err := assist.ParseStrategy(params.Strategy)
		if err != nil {
			return validationResult("expand", "strategy", err.Error()), nil
		}
		strategy = s
	}

	if err := flows.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	flows.SetInput(input)
	created, err := flows.Expand(ctx, strategy)
	if err != nil {
		return flowError("expand", err), nil
	}
	return &ToolResult{Action: "expand", Content: FormatExpand(created, flows.Snapshot())}, nil
}

// HandleAdvise asks which open task to tackle first.
func HandleAdvise(ctx context.Context, flows Flows) (*ToolResult, error) {
	if err := flows.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	advice, err := flows.Advise(ctx)
	if err != nil {
		return flowError("advise", err), nil
	}
	return &ToolResult{Action: "advise", Content: FormatAdvice(advice)}, nil
}
