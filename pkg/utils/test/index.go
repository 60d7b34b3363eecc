package testutils

import (
	"context"
	"fmt"

	"github.com/outfitterco/outfitter/pkg/vector"
)

// MockIndex is a test vector index. Queries return the configured Results
// (truncated to the requested limit) and record the arguments they were
// called with so tests can assert on filter and threshold pass-through.
type MockIndex struct {
	Points  []vector.Point
	Results []vector.Match

	// FailQuery causes Query to return an error
	FailQuery bool

	// QueryCalls records the arguments of each Query invocation
	QueryCalls []QueryCall
}

// QueryCall captures one Query invocation.
type QueryCall struct {
	Embedding      []float32
	Limit          int
	ScoreThreshold float32
	Filter         *vector.Filter
}

func NewMockIndex() *MockIndex {
	return &MockIndex{}
}

func (m *MockIndex) Recreate(_ context.Context, _ int) error {
	m.Points = nil
	return nil
}

func (m *MockIndex) Upsert(_ context.Context, points []vector.Point) error {
	m.Points = append(m.Points, points...)
	return nil
}

func (m *MockIndex) Query(_ context.Context, embedding []float32, limit int, scoreThreshold float32, filter *vector.Filter) ([]vector.Match, error) {
	m.QueryCalls = append(m.QueryCalls, QueryCall{
		Embedding:      embedding,
		Limit:          limit,
		ScoreThreshold: scoreThreshold,
		Filter:         filter,
	})

	if m.FailQuery {
		return nil, fmt.Errorf("mock index query failure")
	}

	if len(m.Results) > limit {
		return m.Results[:limit], nil
	}
	return m.Results, nil
}

func (m *MockIndex) Close() error {
	return nil
}
