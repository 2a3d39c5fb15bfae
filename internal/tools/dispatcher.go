package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"task-agent/internal/config"
	"task-agent/internal/repository/sqlite"
)

// Dispatcher maps tool names to handlers and executes them against the
// store. Handlers never return errors: every outcome, including domain
// failures like a missing task ID, is reported as a result string that the
// model relays to the user in its own words.
type Dispatcher struct {
	repo   sqlite.Repository
	config *config.Config
	logger *slog.Logger
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(repo sqlite.Repository, cfg *config.Config, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		repo:   repo,
		config: cfg,
		logger: logger,
	}
}

// Execute runs the named tool with the given raw arguments, scoped to
// userID (0 in single-user mode). The returned string is fed back to the
// model as the tool result.
func (d *Dispatcher) Execute(ctx context.Context, userID int64, name string, input json.RawMessage) string {
	switch name {
	case ToolAddTask:
		var args AddTaskArgs
		if err := json.Unmarshal(input, &args); err != nil {
			return d.badArguments(name, err)
		}
		return d.handleAddTask(ctx, userID, args)
	case ToolListTasks:
		var args ListTasksArgs
		if err := json.Unmarshal(input, &args); err != nil {
			return d.badArguments(name, err)
		}
		return d.handleListTasks(ctx, userID, args)
	case ToolUpdateTask:
		var args UpdateTaskArgs
		if err := json.Unmarshal(input, &args); err != nil {
			return d.badArguments(name, err)
		}
		return d.handleUpdateTask(ctx, userID, args)
	case ToolCompleteTask:
		var args CompleteTaskArgs
		if err := json.Unmarshal(input, &args); err != nil {
			return d.badArguments(name, err)
		}
		return d.handleCompleteTask(ctx, userID, args)
	case ToolDeleteTask:
		var args DeleteTaskArgs
		if err := json.Unmarshal(input, &args); err != nil {
			return d.badArguments(name, err)
		}
		return d.handleDeleteTask(ctx, userID, args)
	default:
		d.logger.Warn("unknown tool requested", "tool", name)
		return fmt.Sprintf("Unknown tool: %s", name)
	}
}

func (d *Dispatcher) badArguments(name string, err error) string {
	d.logger.Warn("malformed tool arguments", "tool", name, "error", err)
	return fmt.Sprintf("Error: invalid arguments for %s.", name)
}
