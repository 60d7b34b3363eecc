// Package clients builds the shared service clients (embedder, vector index,
// searcher, shopping agent) from resolved configuration. Commands construct
// clients here so seed, search, chat, and serve stay in sync on wiring.
package clients

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/outfitterco/outfitter/pkg/agent"
	"github.com/outfitterco/outfitter/pkg/config"
	"github.com/outfitterco/outfitter/pkg/embeddings"
	"github.com/outfitterco/outfitter/pkg/embeddings/ollama"
	"github.com/outfitterco/outfitter/pkg/embeddings/openai"
	"github.com/outfitterco/outfitter/pkg/llm"
	"github.com/outfitterco/outfitter/pkg/search"
	"github.com/outfitterco/outfitter/pkg/vector"
	"github.com/outfitterco/outfitter/pkg/vector/qdrant"
)

// Secrets come from the environment, never from config.toml.
const (
	openaiKeyEnv = "OPENAI_API_KEY"
	qdrantKeyEnv = "QDRANT_API_KEY"
)

// NewEmbedder builds the configured embedding client.
func NewEmbedder(cfg *config.Config) (embeddings.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "openai", "":
		apiKey := os.Getenv(openaiKeyEnv)
		if apiKey == "" {
			return nil, fmt.Errorf("%s is required for the openai embedding provider", openaiKeyEnv)
		}
		return openai.NewEmbedder(openai.EmbedderConfig{
			APIKey:     apiKey,
			BaseURL:    cfg.Embedding.Target,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		})

	case "ollama":
		return ollama.NewEmbedder(ollama.EmbedderConfig{
			BaseURL: cfg.Embedding.Target,
			Model:   cfg.Embedding.Model,
		})

	default:
		return nil, fmt.Errorf("unknown embedding provider %q (available: openai, ollama)", cfg.Embedding.Provider)
	}
}

// NewIndex builds the vector index client.
func NewIndex(cfg *config.Config, logger *zap.Logger) (vector.Index, error) {
	return qdrant.NewDriver(qdrant.Config{
		Host:       cfg.VectorStore.Host,
		Port:       cfg.VectorStore.Port,
		APIKey:     os.Getenv(qdrantKeyEnv),
		UseTLS:     cfg.VectorStore.UseTLS,
		Collection: cfg.VectorStore.Collection,
	}, logger)
}

// NewSearcher builds the search service over a fresh embedder and index.
func NewSearcher(cfg *config.Config, logger *zap.Logger) (*search.Searcher, vector.Index, error) {
	embedder, err := NewEmbedder(cfg)
	if err != nil {
		return nil, nil, err
	}

	index, err := NewIndex(cfg, logger)
	if err != nil {
		_ = embedder.Close()
		return nil, nil, err
	}

	return search.NewSearcher(embedder, index, logger), index, nil
}

// NewAgent builds the shopping agent over the given searcher.
func NewAgent(cfg *config.Config, searcher agent.ProductSearcher, logger *zap.Logger) (*agent.Agent, error) {
	apiKey := os.Getenv(openaiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("%s is required for the shopping agent", openaiKeyEnv)
	}

	chat, err := llm.NewOpenAIChat(llm.OpenAIConfig{
		APIKey:      apiKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: float32(cfg.LLM.Temperature),
	})
	if err != nil {
		return nil, err
	}

	instructions, err := agent.LoadInstructions(cfg.Agent.InstructionsFile)
	if err != nil {
		return nil, err
	}

	return agent.New(agent.Config{
		Chat:         chat,
		Tools:        []agent.Tool{agent.NewSearchTool(searcher)},
		Instructions: instructions,
		MaxTurns:     cfg.Agent.MaxTurns,
		Logger:       logger,
	})
}
