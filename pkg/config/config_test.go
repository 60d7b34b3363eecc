package config_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/outfitterco/outfitter/pkg/config"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Suite")
}

var _ = Describe("Configer config", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "config-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	Describe("LoadConfig", func() {
		It("returns default config when no config file exists", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg).NotTo(BeNil())

			defaults := config.NewDefaultConfig()
			Expect(cfg.Version).To(Equal(defaults.Version))
			Expect(cfg.Catalog.Path).To(Equal(defaults.Catalog.Path))
			Expect(cfg.VectorStore.Host).To(Equal(defaults.VectorStore.Host))
			Expect(cfg.VectorStore.Port).To(Equal(defaults.VectorStore.Port))
			Expect(cfg.VectorStore.Collection).To(Equal(defaults.VectorStore.Collection))
			Expect(cfg.Embedding.Provider).To(Equal(defaults.Embedding.Provider))
			Expect(cfg.Embedding.Model).To(Equal(defaults.Embedding.Model))
			Expect(cfg.Embedding.Dimensions).To(Equal(defaults.Embedding.Dimensions))
			Expect(cfg.LLM.Model).To(Equal(defaults.LLM.Model))
			Expect(cfg.API.Listen).To(Equal(defaults.API.Listen))
			Expect(cfg.MCP.Listen).To(Equal(defaults.MCP.Listen))
			Expect(cfg.Agent.MaxTurns).To(Equal(defaults.Agent.MaxTurns))
		})

		It("loads a valid config file and fills gaps with defaults", func() {
			data := `version = 0

[vector_store]
host = "qdrant.internal"
port = 6334
collection = "spring_catalog"

[embedding]
provider = "ollama"
target = "http://localhost:11434"
model = "nomic-embed-text"
dimensions = 768
`
			err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)
			Expect(err).NotTo(HaveOccurred())

			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.VectorStore.Host).To(Equal("qdrant.internal"))
			Expect(cfg.VectorStore.Collection).To(Equal("spring_catalog"))
			Expect(cfg.Embedding.Provider).To(Equal("ollama"))
			Expect(cfg.Embedding.Dimensions).To(Equal(uint(768)))

			// Unset sections fall back to defaults.
			Expect(cfg.LLM.Model).To(Equal(config.NewDefaultConfig().LLM.Model))
			Expect(cfg.API.Listen).To(Equal(config.NewDefaultConfig().API.Listen))
		})

		It("loads all config fields", func() {
			data := `version = 0

[catalog]
path = "/data/products.json"

[vector_store]
host = "qdrant.example.com"
port = 443
collection = "catalog"
use_tls = true

[embedding]
provider = "openai"
model = "text-embedding-3-small"
dimensions = 1536

[llm]
model = "gpt-4o"
base_url = "https://llm.internal/v1"
max_tokens = 4096
temperature = 0.3

[api]
listen = ":9090"

[mcp]
listen = ":9091"

[agent]
instructions_file = "/etc/outfitter/instructions.md"
max_turns = 6
`
			err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)
			Expect(err).NotTo(HaveOccurred())

			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Catalog.Path).To(Equal("/data/products.json"))
			Expect(cfg.VectorStore.Host).To(Equal("qdrant.example.com"))
			Expect(cfg.VectorStore.Port).To(Equal(443))
			Expect(cfg.VectorStore.Collection).To(Equal("catalog"))
			Expect(cfg.VectorStore.UseTLS).To(BeTrue())
			Expect(cfg.Embedding.Provider).To(Equal("openai"))
			Expect(cfg.Embedding.Model).To(Equal("text-embedding-3-small"))
			Expect(cfg.Embedding.Dimensions).To(Equal(uint(1536)))
			Expect(cfg.LLM.Model).To(Equal("gpt-4o"))
			Expect(cfg.LLM.BaseURL).To(Equal("https://llm.internal/v1"))
			Expect(cfg.LLM.MaxTokens).To(Equal(4096))
			Expect(cfg.LLM.Temperature).To(Equal(0.3))
			Expect(cfg.API.Listen).To(Equal(":9090"))
			Expect(cfg.MCP.Listen).To(Equal(":9091"))
			Expect(cfg.Agent.InstructionsFile).To(Equal("/etc/outfitter/instructions.md"))
			Expect(cfg.Agent.MaxTurns).To(Equal(6))
		})

		It("returns error for malformed TOML", func() {
			err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not valid toml [[["), 0o600)
			Expect(err).NotTo(HaveOccurred())

			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).To(HaveOccurred())
			Expect(cfg).To(BeNil())
		})

		It("returns error for unsupported config version", func() {
			err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("version = 99\n"), 0o600)
			Expect(err).NotTo(HaveOccurred())

			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unsupported config version"))
			Expect(cfg).To(BeNil())
		})
	})

	Describe("SaveConfig", func() {
		It("persists config to disk", func() {
			cfg := &config.Config{
				Version: config.CurrentV,
				VectorStore: config.VectorStoreConfig{
					Host:       "qdrant.internal",
					Collection: "catalog",
				},
				Embedding: config.EmbeddingConfig{
					Dimensions: 768,
				},
			}

			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			err = c.SaveConfig(cfg)
			Expect(err).NotTo(HaveOccurred())

			_, err = os.Stat(filepath.Join(tmpDir, "config.toml"))
			Expect(err).NotTo(HaveOccurred())

			loaded, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.VectorStore.Host).To(Equal("qdrant.internal"))
			Expect(loaded.VectorStore.Collection).To(Equal("catalog"))
			Expect(loaded.Embedding.Dimensions).To(Equal(uint(768)))
		})

		It("returns error for nil config", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			err = c.SaveConfig(nil)
			Expect(err).To(HaveOccurred())
		})

		It("overwrites existing config", func() {
			first := &config.Config{
				Version:   config.CurrentV,
				Embedding: config.EmbeddingConfig{Provider: "ollama"},
			}
			second := &config.Config{
				Version:   config.CurrentV,
				Embedding: config.EmbeddingConfig{Provider: "openai"},
			}

			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			Expect(c.SaveConfig(first)).To(Succeed())
			Expect(c.SaveConfig(second)).To(Succeed())

			loaded, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Embedding.Provider).To(Equal("openai"))
		})
	})

	Describe("SetConfigValue", func() {
		It("sets a string config key", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			err = c.SetConfigValue("vector_store.collection", "winter_catalog")
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.VectorStore.Collection).To(Equal("winter_catalog"))
		})

		It("sets an int config key", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			err = c.SetConfigValue("agent.max_turns", "4")
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Agent.MaxTurns).To(Equal(4))
		})

		It("sets a bool config key", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			err = c.SetConfigValue("vector_store.use_tls", "true")
			Expect(err).NotTo(HaveOccurred())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.VectorStore.UseTLS).To(BeTrue())
		})

		It("returns error for unknown key", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			err = c.SetConfigValue("nonexistent_key", "value")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unknown config key"))
		})

		It("returns error for invalid numeric value", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			err = c.SetConfigValue("embedding.dimensions", "not-a-number")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("invalid value"))
		})

		It("preserves existing values when setting a new key", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			Expect(c.SetConfigValue("embedding.provider", "ollama")).To(Succeed())
			Expect(c.SetConfigValue("embedding.model", "nomic-embed-text")).To(Succeed())

			cfg, err := c.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Embedding.Provider).To(Equal("ollama"))
			Expect(cfg.Embedding.Model).To(Equal("nomic-embed-text"))
		})
	})

	Describe("GetConfigValue", func() {
		It("gets a set config value", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			Expect(c.SetConfigValue("llm.model", "gpt-4o")).To(Succeed())

			val, err := c.GetConfigValue("llm.model")
			Expect(err).NotTo(HaveOccurred())
			Expect(val).To(Equal("gpt-4o"))
		})

		It("returns default value when no config file exists", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			val, err := c.GetConfigValue("vector_store.collection")
			Expect(err).NotTo(HaveOccurred())
			Expect(val).To(Equal(config.NewDefaultConfig().VectorStore.Collection))
		})

		It("returns empty string for key with no default", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			val, err := c.GetConfigValue("agent.instructions_file")
			Expect(err).NotTo(HaveOccurred())
			Expect(val).To(BeEmpty())
		})

		It("returns error for unknown key", func() {
			c, err := config.NewConfiger(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			_, err = c.GetConfigValue("nonexistent_key")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unknown config key"))
		})
	})

	Describe("ValidConfigKeys", func() {
		It("returns all expected keys", func() {
			keys := config.ValidConfigKeys()
			Expect(keys).To(ContainElements(
				"catalog.path",
				"vector_store.host",
				"vector_store.port",
				"vector_store.collection",
				"vector_store.use_tls",
				"embedding.provider",
				"embedding.model",
				"embedding.dimensions",
				"llm.model",
				"api.listen",
				"mcp.listen",
				"agent.instructions_file",
				"agent.max_turns",
			))
		})

		It("only returns keys accepted by IsValidConfigKey", func() {
			for _, k := range config.ValidConfigKeys() {
				Expect(config.IsValidConfigKey(k)).To(BeTrue(), k)
			}
			Expect(config.IsValidConfigKey("made.up")).To(BeFalse())
		})
	})
})

var _ = Describe("InitViper", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "viper-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("applies defaults when no config file exists", func() {
		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(v.GetString("vector_store.host")).To(Equal("localhost"))
		Expect(v.GetInt("vector_store.port")).To(Equal(6334))
		Expect(v.GetString("embedding.provider")).To(Equal("openai"))
	})

	It("prefers config file values over defaults", func() {
		data := "[api]\nlisten = \":9999\"\n"
		Expect(os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)).To(Succeed())

		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(v.GetString("api.listen")).To(Equal(":9999"))
		Expect(v.GetString("mcp.listen")).To(Equal(":8081"))
	})

	It("prefers environment variables over config file values", func() {
		data := "[api]\nlisten = \":9999\"\n"
		Expect(os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)).To(Succeed())

		os.Setenv("OUTFITTER_API_LISTEN", ":7777")
		defer os.Unsetenv("OUTFITTER_API_LISTEN")

		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(v.GetString("api.listen")).To(Equal(":7777"))
	})

	It("prefers bound flags over everything else", func() {
		os.Setenv("OUTFITTER_VECTOR_STORE_COLLECTION", "env_catalog")
		defer os.Unsetenv("OUTFITTER_VECTOR_STORE_COLLECTION")

		fs := config.FlagSet{
			config.FlagCollection: {
				Name:        "collection",
				ViperKey:    "vector_store.collection",
				Description: "vector store collection name",
			},
		}

		var collection string
		cmd := &cobra.Command{Use: "test"}
		config.AddStringFlag(cmd, fs, config.FlagCollection, &collection)
		Expect(cmd.Flags().Set("collection", "flag_catalog")).To(Succeed())

		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		config.BindRegisteredFlags(v, cmd, fs, []string{config.FlagCollection})
		Expect(v.GetString("vector_store.collection")).To(Equal("flag_catalog"))
	})
})

var _ = Describe("ConfigFromViper", func() {
	It("materializes a typed snapshot of the resolved state", func() {
		tmpDir, err := os.MkdirTemp("", "viper-snap-*")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(tmpDir)

		data := `[llm]
model = "gpt-4o"
max_tokens = 1024

[vector_store]
use_tls = true
`
		Expect(os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)).To(Succeed())

		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		cfg := config.ConfigFromViper(v)
		Expect(cfg.LLM.Model).To(Equal("gpt-4o"))
		Expect(cfg.LLM.MaxTokens).To(Equal(1024))
		Expect(cfg.VectorStore.UseTLS).To(BeTrue())
		Expect(cfg.VectorStore.Host).To(Equal("localhost"))
	})
})
