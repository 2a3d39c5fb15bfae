package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"task-agent/internal/agent"
	"task-agent/internal/config"
	"task-agent/internal/errors"
)

// banner is printed once at REPL startup.
const banner = `Task Manager CLI
Type what you want in plain English. Examples:
  add buy groceries tomorrow, high priority
  show all my pending tasks
  mark task 3 as done
Type 'quit' to exit.
`

// REPL is the interactive command loop. Input and output are injectable
// so tests can drive a full session from a string.
type REPL struct {
	agent  *agent.Agent
	config *config.Config
	logger *slog.Logger
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a REPL bound to the given agent.
func NewREPL(agentInstance *agent.Agent, cfg *config.Config, logger *slog.Logger, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		agent:  agentInstance,
		config: cfg,
		logger: logger,
		in:     in,
		out:    out,
	}
}

// Run reads commands until EOF or an exit word. Unlike the web API, the
// REPL refuses to start without an API key: an interactive session with
// no working agent is useless, so fail before the first prompt.
func (r *REPL) Run(ctx context.Context) error {
	if !r.config.HasAPIKey() {
		return errors.NewConfigError(
			"ANTHROPIC_API_KEY is not set. Create a .env file with your key or run: export ANTHROPIC_API_KEY='your-key-here'",
			nil,
		)
	}

	fmt.Fprint(r.out, banner)

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, "\nYou: ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "quit", "exit", "q":
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		case "":
			continue
		}

		reply, err := r.agent.Process(ctx, line, 0)
		if err != nil {
			fmt.Fprintln(r.out, formatError(err))
			continue
		}
		fmt.Fprintf(r.out, "Assistant: %s\n", reply)
	}

	return scanner.Err()
}

// formatError renders an error with a prefix naming its category, so the
// user can tell a typo from a dead network at a glance.
func formatError(err error) string {
	message := errors.GetUserMessage(err)
	switch {
	case errors.IsErrorType(err, errors.ErrorTypeInput):
		return "Input error: " + message
	case errors.IsErrorType(err, errors.ErrorTypeConfig):
		return "Configuration error: " + message
	case errors.IsErrorType(err, errors.ErrorTypeAPI):
		return "API error: " + message
	case errors.IsErrorType(err, errors.ErrorTypeStorage):
		return "Database error: " + message
	default:
		return "Error: " + message
	}
}
