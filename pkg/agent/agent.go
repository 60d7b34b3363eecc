// Package agent provides the conversational shopping agent: a tool-calling
// loop over a chat model plus the product search tool it invokes.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/outfitterco/outfitter/pkg/llm"
)

const (
	// DefaultMaxTurns bounds the tool-use loop for a single invocation.
	DefaultMaxTurns = 10
)

// Tool is a callable function the agent can expose to the model.
type Tool interface {
	// Name returns the tool's declared name.
	Name() string

	// Description explains the tool to the model.
	Description() string

	// Parameters returns the JSON Schema for the tool's arguments.
	Parameters() string

	// Call invokes the tool with JSON-encoded arguments and returns the
	// serialized result handed back to the model.
	Call(ctx context.Context, args json.RawMessage) (string, error)
}

// Config holds the collaborators for an Agent.
type Config struct {
	// Chat is the model the agent reasons with.
	Chat llm.Chat

	// Tools are the callable tools declared to the model.
	Tools []Tool

	// Instructions is the system prompt. Empty uses DefaultInstructions.
	Instructions string

	// MaxTurns bounds the tool-use loop. Defaults to DefaultMaxTurns.
	MaxTurns int

	// Logger is the configured zap logger.
	Logger *zap.Logger
}

// Agent runs a single-invocation tool-use loop: the model may emit tool
// calls, each resolved synchronously before the model continues, until it
// produces a final message with no pending calls. The agent keeps no state
// across invocations; callers pass prior turns as history.
type Agent struct {
	chat         llm.Chat
	tools        []Tool
	instructions string
	maxTurns     int
	logger       *zap.Logger
}

// New creates an Agent from the given config.
func New(cfg Config) (*Agent, error) {
	if cfg.Chat == nil {
		return nil, fmt.Errorf("chat model is required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	instructions := cfg.Instructions
	if instructions == "" {
		instructions = DefaultInstructions
	}

	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	return &Agent{
		chat:         cfg.Chat,
		tools:        cfg.Tools,
		instructions: instructions,
		maxTurns:     maxTurns,
		logger:       cfg.Logger,
	}, nil
}

// Run takes a user utterance (with optional prior turns as history) and
// returns the agent's final natural-language reply. Tool failures and model
// failures propagate to the caller untranslated.
func (a *Agent) Run(ctx context.Context, input string, history []llm.Message) (string, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: a.instructions})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: input})

	descriptors := make([]llm.ToolDescriptor, len(a.tools))
	for i, tool := range a.tools {
		descriptors[i] = llm.ToolDescriptor{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		}
	}

	for turn := 0; turn < a.maxTurns; turn++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		response, err := a.chat.Complete(ctx, messages, descriptors)
		if err != nil {
			return "", err
		}

		// No tool calls pending means this is the final answer.
		if len(response.ToolCalls) == 0 {
			return response.Content, nil
		}

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   response.Content,
			ToolCalls: response.ToolCalls,
		})

		for _, call := range response.ToolCalls {
			a.logger.Debug("tool call",
				zap.String("tool", call.Name),
				zap.String("arguments", call.Arguments),
			)

			result, err := a.dispatch(ctx, call)
			if err != nil {
				return "", fmt.Errorf("tool %s: %w", call.Name, err)
			}

			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	return "", fmt.Errorf("tool loop exceeded %d turns without a final answer", a.maxTurns)
}

func (a *Agent) dispatch(ctx context.Context, call llm.ToolCall) (string, error) {
	for _, tool := range a.tools {
		if tool.Name() == call.Name {
			return tool.Call(ctx, json.RawMessage(call.Arguments))
		}
	}
	return "", fmt.Errorf("unknown tool %q", call.Name)
}
