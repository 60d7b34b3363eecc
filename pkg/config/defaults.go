package config

const (
	defaultCatalogPath = "products.json"

	defaultVectorHost       = "localhost"
	defaultVectorPort       = 6334
	defaultVectorCollection = "product_catalog"

	defaultEmbeddingProvider   = "openai"
	defaultEmbeddingModel      = "text-embedding-3-small"
	defaultEmbeddingDimensions = 1536

	defaultLLMModel     = "gpt-4o-mini"
	defaultLLMMaxTokens = 2048

	defaultAPIListen = ":8080"
	defaultMCPListen = ":8081"

	defaultAgentMaxTurns = 10
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Catalog: CatalogConfig{
			Path: defaultCatalogPath,
		},
		VectorStore: VectorStoreConfig{
			Host:       defaultVectorHost,
			Port:       defaultVectorPort,
			Collection: defaultVectorCollection,
		},
		Embedding: EmbeddingConfig{
			Provider:   defaultEmbeddingProvider,
			Model:      defaultEmbeddingModel,
			Dimensions: defaultEmbeddingDimensions,
		},
		LLM: LLMConfig{
			Model:     defaultLLMModel,
			MaxTokens: defaultLLMMaxTokens,
		},
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		MCP: MCPConfig{
			Listen: defaultMCPListen,
		},
		Agent: AgentConfig{
			MaxTurns: defaultAgentMaxTurns,
		},
	}
}
