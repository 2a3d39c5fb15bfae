package agent

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-agent/internal/config"
	"task-agent/internal/errors"
	"task-agent/internal/llm"
	"task-agent/internal/logging"
	"task-agent/internal/repository/sqlite"
)

// fakeClient returns scripted responses in order and records every
// request the agent sends.
type fakeClient struct {
	responses  []*llm.Response
	err        error
	configured bool
	requests   []*llm.Request
	calls      int
}

func (f *fakeClient) CreateMessage(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	f.requests = append(f.requests, req)
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return nil, errors.NewAPIError("no scripted response", nil)
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

func (f *fakeClient) Configured() bool {
	return f.configured
}

func textResponse(text string) *llm.Response {
	return &llm.Response{
		Role:       llm.RoleAssistant,
		StopReason: "end_turn",
		Content:    []llm.ContentBlock{llm.TextBlock(text)},
	}
}

func toolUseResponse(id, name, input string) *llm.Response {
	return &llm.Response{
		Role:       llm.RoleAssistant,
		StopReason: llm.StopReasonToolUse,
		Content: []llm.ContentBlock{
			{Type: llm.BlockTypeToolUse, ID: id, Name: name, Input: json.RawMessage(input)},
		},
	}
}

func newTestAgent(t *testing.T, client llm.Client) *Agent {
	dbPath := filepath.Join(t.TempDir(), "tasks.db")
	repo, err := sqlite.New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	cfg := config.NewConfig()
	return New(cfg, client, repo, logging.New(false))
}

func TestProcessPlainTextReply(t *testing.T) {
	client := &fakeClient{
		configured: true,
		responses:  []*llm.Response{textResponse("You have no tasks yet.")},
	}
	a := newTestAgent(t, client)

	reply, err := a.Process(context.Background(), "what's on my list?", 0)
	require.NoError(t, err)
	assert.Equal(t, "You have no tasks yet.", reply)
	assert.Equal(t, 1, client.calls)
}

func TestProcessToolRoundTrip(t *testing.T) {
	client := &fakeClient{
		configured: true,
		responses: []*llm.Response{
			toolUseResponse("toolu_01", "add_task", `{"title": "Buy milk"}`),
			textResponse("Added 'Buy milk' to your list."),
		},
	}
	a := newTestAgent(t, client)

	reply, err := a.Process(context.Background(), "add buy milk", 0)
	require.NoError(t, err)
	assert.Equal(t, "Added 'Buy milk' to your list.", reply)
	require.Equal(t, 2, client.calls)

	// The second request must carry the assistant turn and the tool result,
	// with the tool_use ID echoed back.
	second := client.requests[1]
	require.Len(t, second.Messages, 3)
	assert.Equal(t, llm.RoleAssistant, second.Messages[1].Role)
	assert.Equal(t, llm.RoleUser, second.Messages[2].Role)
	require.Len(t, second.Messages[2].Content, 1)
	result := second.Messages[2].Content[0]
	assert.Equal(t, llm.BlockTypeToolResult, result.Type)
	assert.Equal(t, "toolu_01", result.ToolUseID)
	assert.Equal(t, "Task added (ID 1): 'Buy milk' | priority: medium", result.Content)
}

func TestProcessRequestShape(t *testing.T) {
	client := &fakeClient{
		configured: true,
		responses:  []*llm.Response{textResponse("ok")},
	}
	a := newTestAgent(t, client)

	_, err := a.Process(context.Background(), "  hello  ", 0)
	require.NoError(t, err)

	req := client.requests[0]
	assert.Len(t, req.Tools, 5)
	assert.Contains(t, req.System, time.Now().Format("2006-01-02"))
	// Whitespace is trimmed before the message reaches the model
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "hello", req.Messages[0].Content[0].Text)
}

func TestProcessRoundCap(t *testing.T) {
	// A model that never stops asking for tools must be cut off.
	client := &fakeClient{
		configured: true,
		responses: []*llm.Response{
			toolUseResponse("toolu_01", "list_tasks", `{}`),
		},
	}
	a := newTestAgent(t, client)

	_, err := a.Process(context.Background(), "loop forever", 0)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeAPI))
	assert.Equal(t, "The assistant got stuck in a loop. Please try rephrasing your request.", errors.GetUserMessage(err))
	assert.Equal(t, a.config.LLM.MaxToolRounds, client.calls)
}

func TestProcessNoTextFallback(t *testing.T) {
	client := &fakeClient{
		configured: true,
		responses: []*llm.Response{
			{Role: llm.RoleAssistant, StopReason: "end_turn", Content: nil},
		},
	}
	a := newTestAgent(t, client)

	reply, err := a.Process(context.Background(), "hmm", 0)
	require.NoError(t, err)
	assert.Equal(t, fallbackReply, reply)
}

func TestProcessEmptyMessage(t *testing.T) {
	client := &fakeClient{configured: true}
	a := newTestAgent(t, client)

	_, err := a.Process(context.Background(), "   ", 0)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInput))
	assert.Zero(t, client.calls)
}

func TestProcessOverlongMessage(t *testing.T) {
	client := &fakeClient{configured: true}
	a := newTestAgent(t, client)

	_, err := a.Process(context.Background(), strings.Repeat("x", 1001), 0)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInput))
	assert.Zero(t, client.calls)
}

func TestProcessUnconfiguredClient(t *testing.T) {
	client := &fakeClient{configured: false}
	a := newTestAgent(t, client)

	_, err := a.Process(context.Background(), "add something", 0)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConfig))
	assert.Zero(t, client.calls)
}

func TestProcessClientErrorPassesThrough(t *testing.T) {
	client := &fakeClient{
		configured: true,
		err:        errors.NewAPIError("Rate limit exceeded. Please wait a moment and try again.", nil),
	}
	a := newTestAgent(t, client)

	_, err := a.Process(context.Background(), "add something", 0)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeAPI))
}

func TestSystemPromptEmbedsDate(t *testing.T) {
	client := &fakeClient{configured: true}
	a := newTestAgent(t, client)
	a.now = func() time.Time {
		return time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	}

	assert.Contains(t, a.SystemPrompt(), "2026-03-14")
}
