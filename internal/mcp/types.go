// Package mcp provides types and utilities for the MCP server.
package mcp

// === Action Constants ===

// TaskAction defines the valid actions for the unified task tool.
type TaskAction string

const (
	TaskActionList   TaskAction = "list"
	TaskActionAdd    TaskAction = "add"
	TaskActionToggle TaskAction = "toggle"
	TaskActionDelete TaskAction = "delete"
)

// ValidTaskActions returns all valid task actions.
func ValidTaskActions() []TaskAction {
	return []TaskAction{TaskActionList, TaskActionAdd, TaskActionToggle, TaskActionDelete}
}

// IsValid checks if the action is a valid task action.
func (a TaskAction) IsValid() bool {
	switch a {
	case TaskActionList, TaskActionAdd, TaskActionToggle, TaskActionDelete:
		return true
	}
	return false
}

// === MCP Tool Parameters ===

// TaskToolParams defines the parameters of a task list operation.
// The single-purpose tools (list_tasks, add_task, ...) are routed through it.
type TaskToolParams struct {
	// Action specifies which operation to perform.
	// Required. One of: list, add, toggle, delete
	Action TaskAction `json:"action"`

	// Title is the text of the new task.
	// Required for: add
	Title string `json:"title,omitempty"`

	// TaskID is the task identifier, as printed by list.
	// Required for: toggle, delete
	TaskID string `json:"task_id,omitempty"`
}

// ListTasksParams defines the parameters for list_tasks. It takes none.
type ListTasksParams struct{}

// AddTaskParams defines the parameters for add_task.
type AddTaskParams struct {
	Title string `json:"title"` // Required: text of the new task
}

// TaskIDParams defines the parameters for toggle_task and delete_task.
type TaskIDParams struct {
	TaskID string `json:"task_id"` // Required: id as printed by list_tasks
}

// ExpandParams defines the parameters for expand_input.
type ExpandParams struct {
	// Input is a theme for the day (planner) or a goal to split (breakdown).
	Input string `json:"input"`

	// Strategy is planner or breakdown. Empty uses the configured default.
	Strategy string `json:"strategy,omitempty"`
}

// AdviseParams defines the parameters for get_advice. It takes none.
type AdviseParams struct{}
