package tools

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"task-agent/internal/domain"
	"task-agent/internal/errors"
	"task-agent/internal/repository/sqlite"
	"task-agent/internal/validation"
)

// Handlers re-check every field the catalog schema already declares: the
// model is not guaranteed to respect the schema, and a malformed argument
// must come back as a readable result string, not a crash.

func (d *Dispatcher) handleAddTask(ctx context.Context, userID int64, args AddTaskArgs) string {
	title := strings.TrimSpace(args.Title)
	if title == "" {
		return "Error: task title cannot be empty."
	}
	if utf8.RuneCountInString(title) > d.config.Validation.MaxTitleLength {
		return fmt.Sprintf("Error: task title is too long (max %d characters).", d.config.Validation.MaxTitleLength)
	}

	priority := args.Priority
	if priority == "" {
		priority = string(domain.PriorityMedium)
	}
	if !domain.Priority(priority).IsValid() {
		return fmt.Sprintf("Error: invalid priority '%s'. Use: high, low, medium, urgent", priority)
	}

	if args.DueDate != "" && !validation.IsValidDueDateFormat(args.DueDate) {
		return fmt.Sprintf("Error: invalid due date format '%s'. Use YYYY-MM-DD.", args.DueDate)
	}

	category := args.Category
	if category != "" {
		if utf8.RuneCountInString(category) > d.config.Validation.MaxCategoryLength {
			return fmt.Sprintf("Error: category name is too long (max %d characters).", d.config.Validation.MaxCategoryLength)
		}
		category = strings.ToLower(strings.TrimSpace(category))
	}

	task := &sqlite.Task{
		UserID:      userID,
		Title:       title,
		Description: args.Description,
		Priority:    priority,
		Status:      string(domain.StatusPending),
	}
	if args.DueDate != "" {
		task.DueDate = &args.DueDate
	}
	if category != "" {
		task.Category = &category
	}

	if err := d.repo.CreateTask(ctx, task); err != nil {
		d.logger.Error("add_task failed", "error", err)
		return fmt.Sprintf("Database error while adding task: %v", errors.GetUserMessage(err))
	}

	result := fmt.Sprintf("Task added (ID %d): '%s' | priority: %s", task.ID, title, priority)
	if task.DueDate != nil {
		result += fmt.Sprintf(" | due: %s", *task.DueDate)
	}
	if task.Category != nil {
		result += fmt.Sprintf(" | category: %s", *task.Category)
	}
	return result
}

func (d *Dispatcher) handleListTasks(ctx context.Context, userID int64, args ListTasksArgs) string {
	if args.Status != nil && !domain.Status(*args.Status).IsValid() {
		return fmt.Sprintf("Error: invalid status '%s'.", *args.Status)
	}
	if args.Priority != nil && !domain.Priority(*args.Priority).IsValid() {
		return fmt.Sprintf("Error: invalid priority '%s'.", *args.Priority)
	}

	opts := domain.FilterOptions{
		UserID:   userID,
		Status:   args.Status,
		Priority: args.Priority,
		Category: args.Category,
		SortBy:   args.SortBy,
	}

	tasks, err := d.repo.ListTasks(ctx, opts)
	if err != nil {
		d.logger.Error("list_tasks failed", "error", err)
		return fmt.Sprintf("Database error while listing tasks: %v", errors.GetUserMessage(err))
	}

	if len(tasks) == 0 {
		return "No tasks found."
	}

	lines := make([]string, 0, len(tasks))
	for _, task := range tasks {
		line := fmt.Sprintf("  [%d] %s | priority: %s | status: %s", task.ID, task.Title, task.Priority, task.Status)
		if task.DueDate != nil {
			line += fmt.Sprintf(" | due: %s", *task.DueDate)
		}
		if task.Category != nil {
			line += fmt.Sprintf(" | category: %s", *task.Category)
		}
		lines = append(lines, line)
	}

	return fmt.Sprintf("Found %d task(s):\n%s", len(tasks), strings.Join(lines, "\n"))
}

func (d *Dispatcher) handleUpdateTask(ctx context.Context, userID int64, args UpdateTaskArgs) string {
	if args.TaskID == nil {
		return "Error: task_id is required."
	}

	task, err := d.repo.GetTask(ctx, *args.TaskID, userID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return fmt.Sprintf("No task found with ID %d.", *args.TaskID)
		}
		d.logger.Error("update_task failed", "error", err)
		return fmt.Sprintf("Database error while updating task: %v", errors.GetUserMessage(err))
	}

	if !args.HasFields() {
		return "No fields to update."
	}

	if args.Title != nil {
		title := strings.TrimSpace(*args.Title)
		if title == "" {
			return "Error: title cannot be empty."
		}
		task.Title = title
	}
	if args.Description != nil {
		task.Description = *args.Description
	}
	if args.Priority != nil {
		if !domain.Priority(*args.Priority).IsValid() {
			return fmt.Sprintf("Error: invalid priority '%s'.", *args.Priority)
		}
		task.Priority = *args.Priority
	}
	if args.Status != nil {
		if !domain.Status(*args.Status).IsValid() {
			return fmt.Sprintf("Error: invalid status '%s'.", *args.Status)
		}
		task.Status = *args.Status
	}
	if args.DueDate != nil {
		if *args.DueDate != "" && !validation.IsValidDueDateFormat(*args.DueDate) {
			return fmt.Sprintf("Error: invalid due date format '%s'. Use YYYY-MM-DD.", *args.DueDate)
		}
		if *args.DueDate == "" {
			task.DueDate = nil
		} else {
			task.DueDate = args.DueDate
		}
	}
	if args.Category != nil {
		// An empty string removes the category.
		if *args.Category == "" {
			task.Category = nil
		} else {
			if utf8.RuneCountInString(*args.Category) > d.config.Validation.MaxCategoryLength {
				return fmt.Sprintf("Error: category name is too long (max %d characters).", d.config.Validation.MaxCategoryLength)
			}
			category := strings.ToLower(strings.TrimSpace(*args.Category))
			task.Category = &category
		}
	}

	if err := d.repo.UpdateTask(ctx, task); err != nil {
		d.logger.Error("update_task failed", "error", err)
		return fmt.Sprintf("Database error while updating task: %v", errors.GetUserMessage(err))
	}

	return fmt.Sprintf("Task %d updated successfully.", *args.TaskID)
}

func (d *Dispatcher) handleCompleteTask(ctx context.Context, userID int64, args CompleteTaskArgs) string {
	if args.TaskID == nil {
		return "Error: task_id is required."
	}

	task, err := d.repo.GetTask(ctx, *args.TaskID, userID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return fmt.Sprintf("No task found with ID %d.", *args.TaskID)
		}
		d.logger.Error("complete_task failed", "error", err)
		return fmt.Sprintf("Database error while completing task: %v", errors.GetUserMessage(err))
	}

	if task.Status == string(domain.StatusCompleted) {
		return fmt.Sprintf("Task %d is already completed.", *args.TaskID)
	}

	task.Status = string(domain.StatusCompleted)
	if err := d.repo.UpdateTask(ctx, task); err != nil {
		d.logger.Error("complete_task failed", "error", err)
		return fmt.Sprintf("Database error while completing task: %v", errors.GetUserMessage(err))
	}

	return fmt.Sprintf("Task %d marked as completed: '%s'", *args.TaskID, task.Title)
}

func (d *Dispatcher) handleDeleteTask(ctx context.Context, userID int64, args DeleteTaskArgs) string {
	if args.TaskID == nil {
		return "Error: task_id is required."
	}

	task, err := d.repo.GetTask(ctx, *args.TaskID, userID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return fmt.Sprintf("No task found with ID %d.", *args.TaskID)
		}
		d.logger.Error("delete_task failed", "error", err)
		return fmt.Sprintf("Database error while deleting task: %v", errors.GetUserMessage(err))
	}

	if err := d.repo.DeleteTask(ctx, *args.TaskID, userID); err != nil {
		d.logger.Error("delete_task failed", "error", err)
		return fmt.Sprintf("Database error while deleting task: %v", errors.GetUserMessage(err))
	}

	return fmt.Sprintf("Task %d deleted: '%s'", *args.TaskID, task.Title)
}
