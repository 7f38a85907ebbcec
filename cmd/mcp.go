/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/josephgoksu/FocusFlow/internal/app"
	mcppresenter "github.com/josephgoksu/FocusFlow/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI tool integration",
	Long: `Start a Model Context Protocol (MCP) server so AI assistants such as
Claude Code or Cursor can read and edit the task list.

Tools: list_tasks, add_task, toggle_task, delete_task, expand_input, get_advice.

Example usage with Claude Code:
  focusflow mcp

The server will run until the client disconnects.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Only error if it looks like a subcommand attempt; "focusflow mcp" starts the server.
		if len(args) > 0 {
			return fmt.Errorf("unknown command %q for %q\nRun '%s --help' for usage", args[0], cmd.CommandPath(), cmd.Root().Name())
		}
		s, err := openSession(cmd, appConfig, true)
		if err != nil {
			return err
		}
		defer s.Close()
		return runMCPServer(cmd.Context(), s.flows)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// mcpMarkdownResponse wraps Markdown content in an MCP tool result.
func mcpMarkdownResponse(markdown string) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: markdown}},
	}, nil
}

// mcpErrorResponse wraps an error in an MCP tool result with IsError=true.
// Tool errors are returned in the result (not as protocol errors) so the
// model can see them and self-correct.
func mcpErrorResponse(err error) (*mcpsdk.CallToolResultFor[any], error) {
	return mcpFormattedErrorResponse(mcppresenter.FormatError(err.Error()))
}

// mcpFormattedErrorResponse wraps pre-formatted error text with IsError=true.
func mcpFormattedErrorResponse(formattedError string) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: formattedError}},
		IsError: true,
	}, nil
}

// mcpToolResponse turns a handler result into an MCP tool result.
func mcpToolResponse(result *mcppresenter.ToolResult, err error) (*mcpsdk.CallToolResultFor[any], error) {
	switch {
	case err != nil:
		return mcpErrorResponse(err)
	case result.Error != "" && result.Field != "":
		return mcpFormattedErrorResponse(mcppresenter.FormatValidationError(result.Field, result.Error))
	case result.Error != "":
		return mcpFormattedErrorResponse(mcppresenter.FormatError(result.Error))
	}
	return mcpMarkdownResponse(result.Content)
}

// newMCPServer registers the task tools against flows.
func newMCPServer(flows *app.Orchestrator) *mcpsdk.Server {
	impl := &mcpsdk.Implementation{
		Name:    "focusflow-mcp",
		Version: version,
	}
	serverOpts := &mcpsdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.InitializedParams) {
			fmt.Fprintln(os.Stderr, "✓ MCP connection established")
			log.Debug("mcp client initialized")
		},
	}
	server := mcpsdk.NewServer(impl, serverOpts)

	taskTool := func(ctx context.Context, params mcppresenter.TaskToolParams) (*mcpsdk.CallToolResultFor[any], error) {
		return mcpToolResponse(mcppresenter.HandleTaskTool(ctx, flows, params))
	}

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list_tasks",
		Description: "List every task, newest first, with ids, completion, priority, category and overall progress.",
	}, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[mcppresenter.ListTasksParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return taskTool(ctx, mcppresenter.TaskToolParams{Action: mcppresenter.TaskActionList})
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "add_task",
		Description: `Add one task (medium priority, category "General") to the top of the list. Use {"title":"..."}.`,
	}, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[mcppresenter.AddTaskParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return taskTool(ctx, mcppresenter.TaskToolParams{Action: mcppresenter.TaskActionAdd, Title: params.Arguments.Title})
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "toggle_task",
		Description: `Mark a task done, or reopen it if it is done. Use {"task_id":"..."} with an id from list_tasks.`,
	}, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[mcppresenter.TaskIDParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return taskTool(ctx, mcppresenter.TaskToolParams{Action: mcppresenter.TaskActionToggle, TaskID: params.Arguments.TaskID})
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "delete_task",
		Description: `Delete a task permanently. Use {"task_id":"..."} with an id from list_tasks.`,
	}, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[mcppresenter.TaskIDParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return taskTool(ctx, mcppresenter.TaskToolParams{Action: mcppresenter.TaskActionDelete, TaskID: params.Arguments.TaskID})
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name: "expand_input",
		Description: `Generate tasks from one line of input and add them to the list.
- strategy "planner": input is a theme for the day; returns a timetable (tasks tagged "AI Timetable")
- strategy "breakdown": input is a goal; returns 3-5 steps (tasks tagged "AI Breakdown")
Omit strategy to use the configured default.`,
	}, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[mcppresenter.ExpandParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return mcpToolResponse(mcppresenter.HandleExpand(ctx, flows, params.Arguments))
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "get_advice",
		Description: "Ask which open task to tackle first. Returns prose advice; says so when no task is open.",
	}, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[mcppresenter.AdviseParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return mcpToolResponse(mcppresenter.HandleAdvise(ctx, flows))
	})

	return server
}

func runMCPServer(ctx context.Context, flows *app.Orchestrator) error {
	// NOTE: MCP uses stdio transport. stdout MUST be pure JSON-RPC.
	// All status/debug output goes to stderr only.
	fmt.Fprintln(os.Stderr, "FocusFlow MCP Server starting...")

	if err := flows.Refresh(ctx); err != nil {
		log.Warn("initial task load failed", zap.Error(err))
	}
	return newMCPServer(flows).Run(ctx, mcpsdk.NewStdioTransport())
}
