package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/outfitterco/outfitter/pkg/search"
)

var (
	searchToolName    = "search_products"
	searchDescription = "Search the clothing catalog using semantic search. Returns the most relevant products for the query text, optionally narrowed by brand, category, and price range filters."
)

// SearchFilters are the optional structured constraints for the search tool.
// Pointer fields keep "not provided" distinguishable from zero values.
type SearchFilters struct {
	Brand    *string  `json:"brand,omitempty" jsonschema:"exact brand name to filter by"`
	Category *string  `json:"category,omitempty" jsonschema:"exact category name to filter by"`
	PriceMin *float64 `json:"price_min,omitempty" jsonschema:"inclusive minimum price"`
	PriceMax *float64 `json:"price_max,omitempty" jsonschema:"inclusive maximum price"`
}

// SearchInput represents the input arguments for the search tool.
type SearchInput struct {
	Query          string         `json:"query" jsonschema:"the search query describing what to look for"`
	Filters        *SearchFilters `json:"filters,omitempty" jsonschema:"optional structured filters; omit fields not asked for"`
	TopK           int            `json:"top_k,omitempty" jsonschema:"number of results to return (default: 5)"`
	ScoreThreshold *float32       `json:"score_threshold,omitempty" jsonschema:"minimum similarity score in [0,1] (default: 0.2)"`
}

// SearchOutput represents the output of the search tool.
type SearchOutput struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
	Count   int             `json:"count"`
}

// handleSearch processes a search tool call.
func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	logger := s.config.Logger

	searchReq := search.Request{
		Query:          input.Query,
		TopK:           search.DefaultTopK,
		ScoreThreshold: search.DefaultScoreThreshold,
	}
	if input.TopK > 0 {
		searchReq.TopK = input.TopK
	}
	if input.ScoreThreshold != nil {
		searchReq.ScoreThreshold = *input.ScoreThreshold
	}
	if input.Filters != nil {
		searchReq.Filters = search.Filters{
			Brand:    input.Filters.Brand,
			Category: input.Filters.Category,
			PriceMin: input.Filters.PriceMin,
			PriceMax: input.Filters.PriceMax,
		}
	}

	logger.Debug("MCP search request",
		zap.String("query", input.Query),
		zap.Int("topK", searchReq.TopK),
		zap.Bool("filtered", !searchReq.Filters.Empty()),
	)

	results, err := s.config.Searcher.Search(ctx, searchReq)
	if err != nil {
		logger.Error("search failed", zap.Error(err))
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Search failed: %v", err)},
			},
		}, SearchOutput{}, nil
	}

	output := SearchOutput{
		Query:   input.Query,
		Results: results,
		Count:   len(results),
	}

	// Serialize the structured output as JSON for the text field
	// Per MCP spec: tools returning structured content should also return
	// serialized JSON in a TextContent block for backwards compatibility
	jsonBytes, err := json.Marshal(output)
	if err != nil {
		logger.Error("failed to marshal search output", zap.Error(err))
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Failed to serialize results: %v", err)},
			},
		}, SearchOutput{}, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}
