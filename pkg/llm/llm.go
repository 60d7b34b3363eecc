// Package llm provides a small chat-completion client abstraction with
// function-calling support, used by the shopping agent loop.
package llm

import "context"

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`

	// ToolCalls is set on assistant messages that request tool invocations.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// ToolCallID is set on tool messages carrying a tool result, linking
	// it back to the assistant's request.
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// ToolDescriptor describes a function/tool available to the model.
type ToolDescriptor struct {
	Name        string
	Description string

	// Parameters is the JSON Schema for the tool's arguments.
	Parameters string
}

// ToolCall is the model's request to invoke a tool.
type ToolCall struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Arguments is the JSON-encoded argument object.
	Arguments string `json:"arguments"`
}

// Response is a single model turn: either final content, tool calls, or both.
type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// ErrorResponse is the standard JSON error body returned by the HTTP surfaces.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Chat performs chat completions with optional function calling.
type Chat interface {
	// Complete sends messages (and tool declarations, if any) to the model
	// and returns its next turn.
	Complete(ctx context.Context, messages []Message, tools []ToolDescriptor) (*Response, error)
}
