package tools

import (
	"task-agent/internal/llm"
)

// Tool names, as declared to the model.
const (
	ToolAddTask      = "add_task"
	ToolListTasks    = "list_tasks"
	ToolUpdateTask   = "update_task"
	ToolCompleteTask = "complete_task"
	ToolDeleteTask   = "delete_task"
)

// Catalog returns the static tool declarations handed to the model on every
// round. The descriptions instruct the model to pre-convert natural-language
// dates to YYYY-MM-DD and to omit optional fields it has no value for.
func Catalog() []llm.Tool {
	return []llm.Tool{
		{
			Name: ToolAddTask,
			Description: "Add a new task to the task list. Use this when the user wants to create, " +
				"add, or remember a new task or to-do item.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"title": map[string]interface{}{
						"type":        "string",
						"description": "Short title of the task",
					},
					"description": map[string]interface{}{
						"type":        "string",
						"description": "Optional longer description",
					},
					"priority": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"low", "medium", "high", "urgent"},
						"description": "Priority level (defaults to 'medium')",
					},
					"due_date": map[string]interface{}{
						"type": "string",
						"description": "Due date in YYYY-MM-DD format. The assistant must convert " +
							"natural language dates (e.g. 'tomorrow', 'next Friday') to " +
							"this format before calling this tool.",
					},
					"category": map[string]interface{}{
						"type": "string",
						"description": "Optional category or tag for the task, as a short lowercase " +
							"label (e.g. 'shopping', 'work', 'personal', 'health'). " +
							"Omit if the user doesn't specify one.",
					},
				},
				"required": []string{"title"},
			},
		},
		{
			Name: ToolListTasks,
			Description: "List tasks from the task list. Supports optional filtering by status, " +
				"priority, and/or category. Supports optional sorting by due_date or priority.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"status": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"pending", "in_progress", "completed"},
						"description": "Filter by status. Omit to show all.",
					},
					"priority": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"low", "medium", "high", "urgent"},
						"description": "Filter by priority. Omit to show all.",
					},
					"category": map[string]interface{}{
						"type":        "string",
						"description": "Filter by category (e.g. 'shopping', 'work'). Omit to show all.",
					},
					"sort_by": map[string]interface{}{
						"type": "string",
						"enum": []string{"due_date", "priority", "created_at"},
						"description": "Sort results by this field. Defaults to 'id' if omitted. " +
							"'due_date' puts tasks with nearest due dates first (nulls last). " +
							"'priority' orders urgent > high > medium > low.",
					},
				},
				"required": []string{},
			},
		},
		{
			Name: ToolUpdateTask,
			Description: "Update fields of an existing task. The user refers to the task by its " +
				"numeric ID. Only include fields that are being changed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"task_id": map[string]interface{}{
						"type":        "integer",
						"description": "The numeric ID of the task to update",
					},
					"title":       map[string]interface{}{"type": "string", "description": "New title"},
					"description": map[string]interface{}{"type": "string", "description": "New description"},
					"priority": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"low", "medium", "high", "urgent"},
						"description": "New priority level",
					},
					"status": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"pending", "in_progress", "completed"},
						"description": "New status",
					},
					"due_date": map[string]interface{}{
						"type":        "string",
						"description": "New due date in YYYY-MM-DD format",
					},
					"category": map[string]interface{}{
						"type":        "string",
						"description": "New category label, or empty string to remove the category",
					},
				},
				"required": []string{"task_id"},
			},
		},
		{
			Name:        ToolCompleteTask,
			Description: "Mark a task as completed. The user refers to the task by its numeric ID.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"task_id": map[string]interface{}{
						"type":        "integer",
						"description": "The numeric ID of the task to complete",
					},
				},
				"required": []string{"task_id"},
			},
		},
		{
			Name:        ToolDeleteTask,
			Description: "Permanently delete a task. The user refers to the task by its numeric ID.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"task_id": map[string]interface{}{
						"type":        "integer",
						"description": "The numeric ID of the task to delete",
					},
				},
				"required": []string{"task_id"},
			},
		},
	}
}
