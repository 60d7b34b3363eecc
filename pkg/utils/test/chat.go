package testutils

import (
	"context"
	"fmt"

	"github.com/outfitterco/outfitter/pkg/llm"
)

// MockChat is a scripted chat model. Each Complete call pops the next
// response from Responses and records the messages it was called with.
type MockChat struct {
	Responses []*llm.Response

	// Calls records the message history of each Complete invocation
	Calls [][]llm.Message

	// Tools records the tool declarations of each Complete invocation
	Tools [][]llm.ToolDescriptor
}

func NewMockChat(responses ...*llm.Response) *MockChat {
	return &MockChat{Responses: responses}
}

func (m *MockChat) Complete(_ context.Context, messages []llm.Message, tools []llm.ToolDescriptor) (*llm.Response, error) {
	m.Calls = append(m.Calls, messages)
	m.Tools = append(m.Tools, tools)

	if len(m.Responses) == 0 {
		return nil, fmt.Errorf("mock chat exhausted after %d calls", len(m.Calls))
	}

	next := m.Responses[0]
	m.Responses = m.Responses[1:]
	return next, nil
}
