package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/outfitterco/outfitter/pkg/llm"
)

// ChatRequest is the body accepted by POST /v1/chat. The server keeps no
// conversation state; clients carry the history across calls.
type ChatRequest struct {
	Input   string        `json:"input"`
	History []llm.Message `json:"history,omitempty"`
}

// ChatResponse is the body returned by POST /v1/chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// handleChat handles POST /v1/chat requests.
func (s *Server) handleChat(c *fiber.Ctx) error {
	if s.assistant == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(llm.ErrorResponse{
			Error: "chat is not configured: an LLM API key is required",
		})
	}

	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{
			Error: "invalid request body",
		})
	}

	if req.Input == "" {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{
			Error: "input is required",
		})
	}

	reply, err := s.assistant.Run(c.Context(), req.Input, req.History)
	if err != nil {
		s.logger.Error("chat failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{
			Error: err.Error(),
		})
	}

	return c.JSON(ChatResponse{Reply: reply})
}
