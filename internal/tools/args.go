package tools

// Typed argument records, one per catalog entry. Pointer fields distinguish
// "not provided" from a provided zero value, which update_task relies on:
// an empty-string category means "remove the category", an absent one means
// "leave it alone".

// AddTaskArgs holds the arguments for add_task.
type AddTaskArgs struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
	Category    string `json:"category"`
}

// ListTasksArgs holds the arguments for list_tasks.
type ListTasksArgs struct {
	Status   *string `json:"status"`
	Priority *string `json:"priority"`
	Category *string `json:"category"`
	SortBy   string  `json:"sort_by"`
}

// UpdateTaskArgs holds the arguments for update_task.
type UpdateTaskArgs struct {
	TaskID      *int64  `json:"task_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	DueDate     *string `json:"due_date"`
	Category    *string `json:"category"`
}

// HasFields reports whether any updatable field was provided.
func (a UpdateTaskArgs) HasFields() bool {
	return a.Title != nil || a.Description != nil || a.Priority != nil ||
		a.Status != nil || a.DueDate != nil || a.Category != nil
}

// CompleteTaskArgs holds the arguments for complete_task.
type CompleteTaskArgs struct {
	TaskID *int64 `json:"task_id"`
}

// DeleteTaskArgs holds the arguments for delete_task.
type DeleteTaskArgs struct {
	TaskID *int64 `json:"task_id"`
}
