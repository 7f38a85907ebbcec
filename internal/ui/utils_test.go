package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/josephgoksu/FocusFlow/internal/llm"
	"github.com/josephgoksu/FocusFlow/internal/task"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		contains []string
	}{
		{"short text", "hello world", 20, []string{"hello world"}},
		{"needs wrap", "hello world foo bar", 10, []string{"hello", "world", "foo", "bar"}},
		{"zero width", "hello", 0, []string{"hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WrapText(tt.input, tt.width)
			for _, substr := range tt.contains {
				assert.Contains(t, result, substr)
			}
		})
	}

	for _, line := range strings.Split(WrapText("one two three four five six", 9), "\n") {
		assert.LessOrEqual(t, len(line), 9)
	}
}

func TestPanel(t *testing.T) {
	out := NewPanel("Title", "Content").Render()
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "Content")
	assert.Contains(t, out, "╭")

	out = RenderAdvicePanel("Do the report first.", 40)
	assert.Contains(t, out, "Advice")
	assert.Contains(t, out, "Do the report first.")
}

func sampleTasks() []task.Task {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return []task.Task{
		{ID: "aaaaaaaa-1111", Title: "Write report", Priority: task.PriorityHigh, Category: task.CategoryGeneral, CreatedAt: now},
		{ID: "bbbbbbbb-2222", Title: "[09:00-10:00] Study", Priority: task.PriorityMedium, Category: task.CategoryAITimetable, IsCompleted: true, CreatedAt: now},
	}
}

func TestRenderTaskList(t *testing.T) {
	out := RenderTaskList(sampleTasks(), false)
	assert.Contains(t, out, "1/2 done (50%)")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "[ ]")
	assert.Contains(t, out, "aaaaaaaa")
	assert.Contains(t, out, "High")

	verbose := RenderTaskList(sampleTasks(), true)
	assert.Contains(t, verbose, "Category")
	assert.Contains(t, verbose, "AI Timetable")

	empty := RenderTaskList(nil, false)
	assert.Contains(t, empty, "0/0 done (0%)")
	assert.Contains(t, empty, "No tasks yet")
}

func TestBuildProviderOptions(t *testing.T) {
	opts := BuildProviderOptions(func(p llm.Provider) bool { return p == llm.ProviderOpenAI })
	assert.Len(t, opts, 4)
	assert.Equal(t, "gemini", string(opts[0].ID))
	assert.False(t, opts[0].HasAPIKey)
	assert.Contains(t, opts[0].Description, "GEMINI_API_KEY")
	assert.True(t, opts[1].HasAPIKey)
	assert.True(t, opts[3].HasAPIKey, "ollama needs no key")
	assert.Contains(t, opts[3].Description, "Local")
}
