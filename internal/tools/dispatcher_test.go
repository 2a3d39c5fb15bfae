package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-agent/internal/config"
	"task-agent/internal/logging"
	"task-agent/internal/repository/sqlite"
)

func setupDispatcher(t *testing.T) *Dispatcher {
	dbPath := filepath.Join(t.TempDir(), "tasks.db")
	repo, err := sqlite.New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	cfg := config.NewConfig()
	return NewDispatcher(repo, cfg, logging.New(false))
}

func execute(t *testing.T, d *Dispatcher, name, input string) string {
	t.Helper()
	return d.Execute(context.Background(), 0, name, json.RawMessage(input))
}

func TestExecuteUnknownTool(t *testing.T) {
	d := setupDispatcher(t)
	result := execute(t, d, "rename_task", `{}`)
	assert.Equal(t, "Unknown tool: rename_task", result)
}

func TestExecuteMalformedArguments(t *testing.T) {
	d := setupDispatcher(t)
	result := execute(t, d, ToolAddTask, `{"title": 42}`)
	assert.Equal(t, "Error: invalid arguments for add_task.", result)
}

func TestAddTask(t *testing.T) {
	d := setupDispatcher(t)

	result := execute(t, d, ToolAddTask, `{"title": "Buy groceries"}`)
	assert.Equal(t, "Task added (ID 1): 'Buy groceries' | priority: medium", result)
}

func TestAddTaskAllFields(t *testing.T) {
	d := setupDispatcher(t)

	result := execute(t, d, ToolAddTask,
		`{"title": "File taxes", "priority": "urgent", "due_date": "2026-04-15", "category": "Finance"}`)
	assert.Equal(t, "Task added (ID 1): 'File taxes' | priority: urgent | due: 2026-04-15 | category: finance", result)
}

func TestAddTaskValidation(t *testing.T) {
	d := setupDispatcher(t)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty title",
			input: `{"title": "   "}`,
			want:  "Error: task title cannot be empty.",
		},
		{
			name:  "bad priority",
			input: `{"title": "x", "priority": "extreme"}`,
			want:  "Error: invalid priority 'extreme'. Use: high, low, medium, urgent",
		},
		{
			name:  "bad due date",
			input: `{"title": "x", "due_date": "tomorrow"}`,
			want:  "Error: invalid due date format 'tomorrow'. Use YYYY-MM-DD.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, execute(t, d, ToolAddTask, tt.input))
		})
	}
}

func TestAddTaskMultibyteTitleLength(t *testing.T) {
	d := setupDispatcher(t)

	// 200 characters, 600 bytes: within the character limit
	title := strings.Repeat("日", 200)
	result := execute(t, d, ToolAddTask, fmt.Sprintf(`{"title": %q}`, title))
	assert.Equal(t, fmt.Sprintf("Task added (ID 1): '%s' | priority: medium", title), result)

	result = execute(t, d, ToolAddTask, fmt.Sprintf(`{"title": %q}`, strings.Repeat("日", 201)))
	assert.Equal(t, "Error: task title is too long (max 200 characters).", result)
}

func TestListTasks(t *testing.T) {
	d := setupDispatcher(t)

	assert.Equal(t, "No tasks found.", execute(t, d, ToolListTasks, `{}`))

	execute(t, d, ToolAddTask, `{"title": "First", "priority": "high"}`)
	execute(t, d, ToolAddTask, `{"title": "Second", "due_date": "2026-02-01", "category": "home"}`)

	result := execute(t, d, ToolListTasks, `{}`)
	want := "Found 2 task(s):\n" +
		"  [1] First | priority: high | status: pending\n" +
		"  [2] Second | priority: medium | status: pending | due: 2026-02-01 | category: home"
	assert.Equal(t, want, result)
}

func TestListTasksFilterValidation(t *testing.T) {
	d := setupDispatcher(t)

	assert.Equal(t, "Error: invalid status 'done'.",
		execute(t, d, ToolListTasks, `{"status": "done"}`))
	assert.Equal(t, "Error: invalid priority 'highest'.",
		execute(t, d, ToolListTasks, `{"priority": "highest"}`))
}

func TestListTasksFiltered(t *testing.T) {
	d := setupDispatcher(t)

	execute(t, d, ToolAddTask, `{"title": "Work thing", "category": "work"}`)
	execute(t, d, ToolAddTask, `{"title": "Home thing", "category": "home"}`)

	result := execute(t, d, ToolListTasks, `{"category": "work"}`)
	assert.Contains(t, result, "Work thing")
	assert.NotContains(t, result, "Home thing")
}

func TestUpdateTask(t *testing.T) {
	d := setupDispatcher(t)
	execute(t, d, ToolAddTask, `{"title": "Original"}`)

	result := execute(t, d, ToolUpdateTask, `{"task_id": 1, "title": "Renamed", "priority": "high"}`)
	assert.Equal(t, "Task 1 updated successfully.", result)

	listed := execute(t, d, ToolListTasks, `{}`)
	assert.Contains(t, listed, "Renamed | priority: high")
}

func TestUpdateTaskErrors(t *testing.T) {
	d := setupDispatcher(t)
	execute(t, d, ToolAddTask, `{"title": "x"}`)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "missing task_id",
			input: `{"title": "y"}`,
			want:  "Error: task_id is required.",
		},
		{
			name:  "unknown task",
			input: `{"task_id": 9999, "title": "y"}`,
			want:  "No task found with ID 9999.",
		},
		{
			name:  "no fields",
			input: `{"task_id": 1}`,
			want:  "No fields to update.",
		},
		{
			name:  "bad status",
			input: `{"task_id": 1, "status": "finished"}`,
			want:  "Error: invalid status 'finished'.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, execute(t, d, ToolUpdateTask, tt.input))
		})
	}
}

func TestUpdateTaskClearsCategoryAndDueDate(t *testing.T) {
	d := setupDispatcher(t)
	execute(t, d, ToolAddTask, `{"title": "x", "due_date": "2026-01-01", "category": "work"}`)

	result := execute(t, d, ToolUpdateTask, `{"task_id": 1, "due_date": "", "category": ""}`)
	assert.Equal(t, "Task 1 updated successfully.", result)

	listed := execute(t, d, ToolListTasks, `{}`)
	assert.NotContains(t, listed, "due:")
	assert.NotContains(t, listed, "category:")
}

func TestCompleteTask(t *testing.T) {
	d := setupDispatcher(t)
	execute(t, d, ToolAddTask, `{"title": "Finish report"}`)

	result := execute(t, d, ToolCompleteTask, `{"task_id": 1}`)
	assert.Equal(t, "Task 1 marked as completed: 'Finish report'", result)

	// Completing twice is reported, not repeated
	result = execute(t, d, ToolCompleteTask, `{"task_id": 1}`)
	assert.Equal(t, "Task 1 is already completed.", result)
}

func TestCompleteTaskNotFound(t *testing.T) {
	d := setupDispatcher(t)
	assert.Equal(t, "No task found with ID 5.", execute(t, d, ToolCompleteTask, `{"task_id": 5}`))
}

func TestDeleteTask(t *testing.T) {
	d := setupDispatcher(t)
	execute(t, d, ToolAddTask, `{"title": "Old chore"}`)

	result := execute(t, d, ToolDeleteTask, `{"task_id": 1}`)
	assert.Equal(t, "Task 1 deleted: 'Old chore'", result)

	assert.Equal(t, "No task found with ID 1.", execute(t, d, ToolDeleteTask, `{"task_id": 1}`))
}

func TestDeleteTaskNotFound(t *testing.T) {
	d := setupDispatcher(t)
	assert.Equal(t, "No task found with ID 9999.", execute(t, d, ToolDeleteTask, `{"task_id": 9999}`))
}

func TestExecuteScopesByUser(t *testing.T) {
	d := setupDispatcher(t)

	d.Execute(context.Background(), 1, ToolAddTask, json.RawMessage(`{"title": "Mine"}`))

	// Another user sees an empty list and cannot touch the task
	result := d.Execute(context.Background(), 2, ToolListTasks, json.RawMessage(`{}`))
	assert.Equal(t, "No tasks found.", result)
	result = d.Execute(context.Background(), 2, ToolDeleteTask, json.RawMessage(`{"task_id": 1}`))
	assert.Equal(t, "No task found with ID 1.", result)
}
