package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"task-agent/internal/config"
	"task-agent/internal/errors"
	"task-agent/internal/llm"
	"task-agent/internal/repository/sqlite"
	"task-agent/internal/tools"
	"task-agent/internal/validation"
)

// fallbackReply is returned when the model ends the conversation without any
// text segment.
const fallbackReply = "I'm not sure how to help with that. Try something like 'add buy groceries' or 'show all tasks'."

const systemPromptTemplate = `You are a helpful task manager assistant. The user will give you natural language commands to manage their to-do list. Use the provided tools to add, list, update, complete, or delete tasks.

When listing tasks, format the results in a clear, readable way.
When the user's intent is unclear, ask for clarification rather than guessing.
Always confirm actions you take (e.g., "I've added the task..." or "Here are your tasks...").

IMPORTANT - Due dates: The user may specify due dates in natural language such as "tomorrow", "next Friday", "in 3 days", "end of week", etc. You MUST convert these to YYYY-MM-DD format before passing them to the tools. Today's date is %s.

IMPORTANT - Categories: The user may assign a category/tag to tasks using phrases like "category shopping", "under work", "tag personal", "in the errands category", etc. Pass the category as a short lowercase label (e.g. "shopping", "work", "personal", "health"). If the user doesn't specify a category, omit it - do NOT default to one.

When listing tasks, you can filter by category using the category parameter. You can also sort results by due_date to show the most urgent tasks first.`

// Agent drives the bounded conversation between the user, the model, and
// the tool dispatcher. All collaborators are injected so tests can
// substitute a fake model client.
type Agent struct {
	config     *config.Config
	client     llm.Client
	dispatcher *tools.Dispatcher
	validator  *validation.CommandValidator
	logger     *slog.Logger
	now        func() time.Time
}

// New creates a new agent
func New(cfg *config.Config, client llm.Client, repo sqlite.Repository, logger *slog.Logger) *Agent {
	return &Agent{
		config:     cfg,
		client:     client,
		dispatcher: tools.NewDispatcher(repo, cfg, logger),
		validator:  validation.NewCommandValidatorWithConfig(cfg),
		logger:     logger,
		now:        time.Now,
	}
}

// SystemPrompt returns the system prompt with the current calendar date
// embedded, so the model can resolve relative dates like "tomorrow".
func (a *Agent) SystemPrompt() string {
	return fmt.Sprintf(systemPromptTemplate, a.now().Format("2006-01-02"))
}

// Process handles one user command: it validates the message, then
// alternates model calls and tool execution until the model produces a
// final text answer or the round cap is hit. Each call starts a fresh
// conversation; the store is the only cross-call memory.
func (a *Agent) Process(ctx context.Context, message string, userID int64) (string, error) {
	trimmed, err := a.validator.ValidateCommand(message)
	if err != nil {
		if ve, ok := err.(*validation.ValidationError); ok {
			return "", errors.NewInputError(ve.GetUserFriendlyMessage())
		}
		return "", errors.NewInputError(err.Error())
	}

	if !a.client.Configured() {
		return "", errors.NewConfigError(
			"ANTHROPIC_API_KEY is not set. Create a .env file with your key or run: export ANTHROPIC_API_KEY='your-key-here'", nil)
	}

	messages := []llm.Message{llm.UserMessage(trimmed)}
	rounds := 0

	for {
		rounds++
		if rounds > a.config.LLM.MaxToolRounds {
			a.logger.Error("tool-use loop exceeded round cap", "rounds", a.config.LLM.MaxToolRounds)
			return "", errors.NewAPIError("The assistant got stuck in a loop. Please try rephrasing your request.", nil)
		}

		resp, err := a.client.CreateMessage(ctx, &llm.Request{
			Model:     a.config.LLM.Model,
			MaxTokens: a.config.LLM.MaxTokens,
			System:    a.SystemPrompt(),
			Tools:     tools.Catalog(),
			Messages:  messages,
		})
		if err != nil {
			// The client already classified the failure; no retry here,
			// the round cap is the only loop-breaking mechanism.
			return "", err
		}

		if resp.StopReason == llm.StopReasonToolUse {
			var results []llm.ContentBlock
			for _, call := range resp.ToolUses() {
				a.logger.Debug("executing tool", "tool", call.Name, "round", rounds)
				result := a.dispatcher.Execute(ctx, userID, call.Name, call.Input)
				results = append(results, llm.ToolResultBlock(call.ID, result))
			}

			messages = append(messages,
				llm.Message{Role: llm.RoleAssistant, Content: resp.Content},
				llm.Message{Role: llm.RoleUser, Content: results},
			)
			continue
		}

		if text, ok := resp.FirstText(); ok {
			return text, nil
		}
		return fallbackReply, nil
	}
}
