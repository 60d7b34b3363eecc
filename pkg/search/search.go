// Package search provides semantic product search over a vector index.
// It is used by the CLI, the REST API endpoint, the MCP server tool, and
// the shopping agent's search tool.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/outfitterco/outfitter/pkg/embeddings"
	"github.com/outfitterco/outfitter/pkg/vector"
)

const (
	// DefaultTopK is the result count used when a request doesn't set one.
	DefaultTopK = 5

	// DefaultScoreThreshold is the minimum similarity used when a request
	// doesn't set one.
	DefaultScoreThreshold = 0.2
)

// Request represents a single search call.
type Request struct {
	// Query is the free-text search query.
	Query string

	// TopK bounds the result count. Values <= 0 fall back to DefaultTopK.
	TopK int

	// ScoreThreshold is the minimum acceptable similarity, in [0,1].
	// Callers that want the default should pass DefaultScoreThreshold;
	// zero is a legitimate threshold and is honored as-is.
	ScoreThreshold float32

	// Filters are optional structured constraints applied by the index.
	Filters Filters
}

// Result is a single returned match: the similarity score plus a snapshot
// of the product's display attributes from the index payload.
type Result struct {
	Score       float32  `json:"score"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	Color       string   `json:"color"`
	Size        []string `json:"size"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Material    string   `json:"material"`
	URL         string   `json:"url,omitempty"`
}

// Searcher orchestrates embedding generation, filter construction, and the
// index query. It borrows the embedder and index handles constructed at
// startup; it never creates clients per call.
type Searcher struct {
	embedder embeddings.Embedder
	index    vector.Index
	logger   *zap.Logger
}

// NewSearcher creates a Searcher over the given embedder and index.
func NewSearcher(embedder embeddings.Embedder, index vector.Index, logger *zap.Logger) *Searcher {
	return &Searcher{
		embedder: embedder,
		index:    index,
		logger:   logger,
	}
}

// Search embeds the query, builds the filter predicate, and issues a single
// similarity query. The index is the sole source of ranking truth: results
// come back in its order, and no re-ranking happens here. Zero matches is a
// normal outcome, not an error. Any embedding, index, or payload failure
// aborts the whole call; there are no retries and no partial results.
func (s *Searcher) Search(ctx context.Context, req Request) ([]Result, error) {
	topK := req.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	if req.ScoreThreshold < 0 || req.ScoreThreshold > 1 {
		return nil, fmt.Errorf("score threshold %v out of range [0,1]", req.ScoreThreshold)
	}

	s.logger.Debug("search request",
		zap.String("query", req.Query),
		zap.Int("topK", topK),
		zap.Float32("scoreThreshold", req.ScoreThreshold),
		zap.Bool("filtered", !req.Filters.Empty()),
	)

	// Embed the query. On failure the index query must not be issued.
	queryEmbedding, err := s.embedder.Embed(ctx, req.Query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	filter := BuildFilter(req.Filters)

	matches, err := s.index.Query(ctx, queryEmbedding, topK, req.ScoreThreshold, filter)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}

	results := make([]Result, 0, len(matches))
	for _, match := range matches {
		result, err := resultFromMatch(match)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	s.logger.Debug("search complete",
		zap.String("query", req.Query),
		zap.Int("results", len(results)),
	)

	return results, nil
}

// resultFromMatch maps an index match's payload into a typed Result,
// carrying the similarity score over unchanged. A missing expected
// attribute is a hard failure for the whole call.
func resultFromMatch(m vector.Match) (Result, error) {
	result := Result{Score: m.Score}

	strings := map[string]*string{
		"name":        &result.Name,
		"brand":       &result.Brand,
		"color":       &result.Color,
		"description": &result.Description,
		"category":    &result.Category,
		"material":    &result.Material,
	}
	for key, dst := range strings {
		value, ok := m.Payload[key].(string)
		if !ok {
			return Result{}, fmt.Errorf("%w: point %s missing %q", vector.ErrMalformedPayload, m.ID, key)
		}
		*dst = value
	}

	price, ok := m.Payload["price"].(float64)
	if !ok {
		return Result{}, fmt.Errorf("%w: point %s missing %q", vector.ErrMalformedPayload, m.ID, "price")
	}
	result.Price = price

	rawSizes, ok := m.Payload["size"].([]any)
	if !ok {
		return Result{}, fmt.Errorf("%w: point %s missing %q", vector.ErrMalformedPayload, m.ID, "size")
	}
	result.Size = make([]string, 0, len(rawSizes))
	for _, raw := range rawSizes {
		size, ok := raw.(string)
		if !ok {
			return Result{}, fmt.Errorf("%w: point %s has non-string size entry", vector.ErrMalformedPayload, m.ID)
		}
		result.Size = append(result.Size, size)
	}

	// url is the one optional payload attribute.
	if url, ok := m.Payload["url"].(string); ok {
		result.URL = url
	}

	return result, nil
}
