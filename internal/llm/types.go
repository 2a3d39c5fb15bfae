package llm

import "encoding/json"

// Content block types used in conversation turns.
const (
	BlockTypeText       = "text"
	BlockTypeToolUse    = "tool_use"
	BlockTypeToolResult = "tool_result"
)

// StopReasonToolUse signals that the model paused to request tool execution.
const StopReasonToolUse = "tool_use"

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ContentBlock is one segment of a conversation turn: assistant text, an
// assistant tool request, or a user-side tool result echoed back with the
// request's ID.
type ContentBlock struct {
	Type string `json:"type"`

	// text blocks
	Text string `json:"text,omitempty"`

	// tool_use blocks
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`

	// tool_result blocks
	ToolUseID string `json:"tool_use_id,omitempty"`
	Content   string `json:"content,omitempty"`
}

// TextBlock builds a text content block.
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: BlockTypeText, Text: text}
}

// ToolResultBlock builds a tool_result block carrying the result for the
// tool call identified by toolUseID.
func ToolResultBlock(toolUseID, result string) ContentBlock {
	return ContentBlock{Type: BlockTypeToolResult, ToolUseID: toolUseID, Content: result}
}

// Message is one conversation turn.
type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// UserMessage builds a user turn with a single text block.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: []ContentBlock{TextBlock(text)}}
}

// Tool declares one operation the model may request, with a JSON Schema for
// its arguments. Marshalled verbatim into every request.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"input_schema"`
}

// Request is the payload for a model call.
type Request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Tools     []Tool    `json:"tools,omitempty"`
	Messages  []Message `json:"messages"`
}

// Response is the model's reply: either final text content or one or more
// tool_use blocks (StopReason "tool_use").
type Response struct {
	ID         string         `json:"id"`
	Role       string         `json:"role"`
	StopReason string         `json:"stop_reason"`
	Content    []ContentBlock `json:"content"`
}

// FirstText returns the first text segment of the response, or "" if the
// response carries no text block.
func (r *Response) FirstText() (string, bool) {
	for _, block := range r.Content {
		if block.Type == BlockTypeText {
			return block.Text, true
		}
	}
	return "", false
}

// ToolUses returns all tool_use blocks in the response, in order.
func (r *Response) ToolUses() []ContentBlock {
	var uses []ContentBlock
	for _, block := range r.Content {
		if block.Type == BlockTypeToolUse {
			uses = append(uses, block)
		}
	}
	return uses
}
