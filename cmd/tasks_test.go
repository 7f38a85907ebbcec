package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/FocusFlow/internal/task"
)

func listTasks(t *testing.T, args ...string) []task.Task {
	t.Helper()
	output, err := executeCommand(t, append([]string{"list", "--json"}, args...)...)
	require.NoError(t, err)
	var tasks []task.Task
	require.NoError(t, json.Unmarshal([]byte(output), &tasks), output)
	return tasks
}

func TestTaskCommands_Lifecycle(t *testing.T) {
	isolate(t)

	output, err := executeCommand(t, "add", "Write", "report")
	require.NoError(t, err)
	assert.Contains(t, output, `✓ Added "Write report"`)
	assert.Contains(t, output, "0/1 done (0%)")

	_, err = executeCommand(t, "add", "Call the dentist")
	require.NoError(t, err)

	tasks := listTasks(t)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Call the dentist", tasks[0].Title, "newest first")
	assert.Equal(t, task.PriorityMedium, tasks[1].Priority)
	assert.Equal(t, task.CategoryGeneral, tasks[1].Category)

	id := tasks[1].ID
	output, err = executeCommand(t, "done", id[:8])
	require.NoError(t, err)
	assert.Contains(t, output, `✓ Completed "Write report"`)
	assert.Contains(t, output, "1/2 done (50%)")

	assert.Len(t, listTasks(t, "--pending"), 1)

	output, err = executeCommand(t, "toggle", id)
	require.NoError(t, err)
	assert.Contains(t, output, "Reopened")

	output, err = executeCommand(t, "rm", id)
	require.NoError(t, err)
	assert.Contains(t, output, `✓ Deleted "Write report"`)

	tasks = listTasks(t)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Call the dentist", tasks[0].Title)
}

func TestTaskCommands_UnknownIDs(t *testing.T) {
	isolate(t)

	_, err := executeCommand(t, "done", "deadbeef")
	require.Error(t, err)
	assert.ErrorIs(t, err, task.ErrNotFound)

	_, err = executeCommand(t, "done", "ab")
	assert.ErrorIs(t, err, task.ErrNotFound)

	output, err := executeCommand(t, "rm", "deadbeef")
	require.NoError(t, err, "deleting an absent id is a no-op")
	assert.Contains(t, output, "Deleted")
}

func TestListCmd_Empty(t *testing.T) {
	isolate(t)

	output, err := executeCommand(t, "list")
	require.NoError(t, err)
	assert.Contains(t, output, "0/0 done (0%)")
	assert.Contains(t, output, "No tasks yet")
}

func TestExpandCmds_RequireAPIKey(t *testing.T) {
	isolate(t)

	for _, name := range []string{"plan", "breakdown"} {
		_, err := executeCommand(t, name, "exam prep")
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "API key is required")
	}
	_, err := executeCommand(t, "advise")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "focusflow config init")
}

func TestAdviseCmd_RejectsUnknownStyle(t *testing.T) {
	isolate(t)

	_, err := executeCommand(t, "advise", "--style", "haiku")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown advice style")
}

func TestMigrateCmd(t *testing.T) {
	isolate(t)

	output, err := executeCommand(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, output, "✓ Schema ready (sqlite: ")
}
