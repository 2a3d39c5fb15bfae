package server

import (
	"context"
	"time"

	"task-agent/internal/domain"
	"task-agent/internal/repository/sqlite"
)

// toAPITask converts a stored task into its API representation. The
// overdue flag is computed at read time, relative to today's date, so it
// is never stale in the database.
func toAPITask(task *sqlite.Task, today string) domain.Task {
	t := domain.Task{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		DueDate:     task.DueDate,
		Category:    task.Category,
	}
	if task.DueDate != nil && *task.DueDate < today && !t.IsCompleted() {
		t.Overdue = true
	}
	return t
}

// loadTaskState fetches the user's tasks and category list for responses
// that echo the current board back to the client. Dates in YYYY-MM-DD
// order compare correctly as strings.
func (s *Server) loadTaskState(ctx context.Context, userID int64) ([]domain.Task, []string, error) {
	stored, err := s.repo.ListTasks(ctx, domain.FilterOptions{UserID: userID})
	if err != nil {
		return nil, nil, err
	}

	today := time.Now().Format("2006-01-02")
	tasks := make([]domain.Task, 0, len(stored))
	for _, task := range stored {
		tasks = append(tasks, toAPITask(task, today))
	}

	categories, err := s.repo.ListCategories(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return tasks, categories, nil
}
