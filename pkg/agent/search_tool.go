package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/outfitterco/outfitter/pkg/catalog"
	"github.com/outfitterco/outfitter/pkg/search"
)

const (
	searchToolName        = "search_products"
	searchToolDescription = "Search for clothing products based on a natural language query. " +
		"Optional filters narrow results by brand, category, and price range; " +
		"only filters the user actually asked for should be set."
)

// ProductSearcher is the slice of the search service the tool needs.
type ProductSearcher interface {
	Search(ctx context.Context, req search.Request) ([]search.Result, error)
}

// SearchTool exposes semantic product search as an agent tool.
type SearchTool struct {
	searcher ProductSearcher
}

// NewSearchTool creates the product search tool over the given searcher.
func NewSearchTool(searcher ProductSearcher) *SearchTool {
	return &SearchTool{searcher: searcher}
}

// searchArgs is the tool's argument schema. Pointer fields keep "not
// provided" distinguishable from zero values; only genuinely-set filter
// fields become active constraints.
type searchArgs struct {
	Query          string          `json:"query"`
	Filters        *search.Filters `json:"filters,omitempty"`
	TopK           *int            `json:"top_k,omitempty"`
	ScoreThreshold *float32        `json:"score_threshold,omitempty"`
}

func (t *SearchTool) Name() string {
	return searchToolName
}

func (t *SearchTool) Description() string {
	return searchToolDescription
}

// Parameters returns the JSON Schema declared to the model.
func (t *SearchTool) Parameters() string {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search query describing what the user is looking for",
			},
			"filters": map[string]any{
				"type":        "object",
				"description": "Optional structured constraints; omit fields the user did not ask for",
				"properties": map[string]any{
					"brand": map[string]any{
						"type": "string",
						"enum": catalog.Brands,
					},
					"category": map[string]any{
						"type": "string",
						"enum": catalog.Categories,
					},
					"price_min": map[string]any{
						"type":        "number",
						"description": "Inclusive minimum price",
					},
					"price_max": map[string]any{
						"type":        "number",
						"description": "Inclusive maximum price",
					},
				},
				"additionalProperties": false,
			},
			"top_k": map[string]any{
				"type":        "integer",
				"description": "Number of results to return",
				"default":     search.DefaultTopK,
			},
			"score_threshold": map[string]any{
				"type":        "number",
				"description": "Minimum similarity score to include in results",
				"default":     search.DefaultScoreThreshold,
			},
		},
		"required": []string{"query"},
	}

	// Static structure, cannot fail to marshal.
	data, _ := json.Marshal(schema)
	return string(data)
}

// Call runs a search and returns the results as a JSON array. Search
// failures propagate to the agent loop untranslated.
func (t *SearchTool) Call(ctx context.Context, args json.RawMessage) (string, error) {
	var parsed searchArgs
	if err := json.Unmarshal(args, &parsed); err != nil {
		return "", fmt.Errorf("parsing arguments: %w", err)
	}

	req := search.Request{
		Query:          parsed.Query,
		TopK:           search.DefaultTopK,
		ScoreThreshold: search.DefaultScoreThreshold,
	}
	if parsed.TopK != nil {
		req.TopK = *parsed.TopK
	}
	if parsed.ScoreThreshold != nil {
		req.ScoreThreshold = *parsed.ScoreThreshold
	}
	if parsed.Filters != nil {
		req.Filters = *parsed.Filters
	}

	results, err := t.searcher.Search(ctx, req)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("serializing results: %w", err)
	}

	return string(data), nil
}
