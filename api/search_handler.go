package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/outfitterco/outfitter/pkg/llm"
	"github.com/outfitterco/outfitter/pkg/search"
)

// SearchResponse is the body returned by GET /v1/search.
type SearchResponse struct {
	Query   string          `json:"query"`
	Count   int             `json:"count"`
	Results []search.Result `json:"results"`
}

// handleSearch handles GET /v1/search requests.
// Query parameters:
//   - query (required): the search query text
//   - top_k (optional, default 5): number of results to return
//   - score_threshold (optional, default 0.2): minimum similarity in [0,1]
//   - brand, category (optional): exact-match filters
//   - price_min, price_max (optional): inclusive price bounds
func (s *Server) handleSearch(c *fiber.Ctx) error {
	if s.searcher == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(llm.ErrorResponse{
			Error: "search is not configured: vector index and embedder are required",
		})
	}

	query := c.Query("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{
			Error: "query parameter is required",
		})
	}

	req := search.Request{
		Query:          query,
		TopK:           search.DefaultTopK,
		ScoreThreshold: search.DefaultScoreThreshold,
	}

	if topKStr := c.Query("top_k"); topKStr != "" {
		parsed, err := strconv.Atoi(topKStr)
		if err != nil || parsed <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{
				Error: "top_k must be a positive integer",
			})
		}
		req.TopK = parsed
	}

	if thresholdStr := c.Query("score_threshold"); thresholdStr != "" {
		parsed, err := strconv.ParseFloat(thresholdStr, 32)
		if err != nil || parsed < 0 || parsed > 1 {
			return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{
				Error: "score_threshold must be a number in [0,1]",
			})
		}
		req.ScoreThreshold = float32(parsed)
	}

	if brand := c.Query("brand"); brand != "" {
		req.Filters.Brand = &brand
	}
	if category := c.Query("category"); category != "" {
		req.Filters.Category = &category
	}

	if priceMinStr := c.Query("price_min"); priceMinStr != "" {
		parsed, err := strconv.ParseFloat(priceMinStr, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{
				Error: "price_min must be a number",
			})
		}
		req.Filters.PriceMin = &parsed
	}
	if priceMaxStr := c.Query("price_max"); priceMaxStr != "" {
		parsed, err := strconv.ParseFloat(priceMaxStr, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{
				Error: "price_max must be a number",
			})
		}
		req.Filters.PriceMax = &parsed
	}

	results, err := s.searcher.Search(c.Context(), req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{
			Error: err.Error(),
		})
	}

	return c.JSON(SearchResponse{
		Query:   query,
		Count:   len(results),
		Results: results,
	})
}
