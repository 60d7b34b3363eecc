// Package seedcmder provides the seed command for embedding the product
// catalog and loading it into the vector index.
package seedcmder

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/outfitterco/outfitter/cmd/outfitter/clients"
	"github.com/outfitterco/outfitter/pkg/catalog"
	"github.com/outfitterco/outfitter/pkg/cliui"
	"github.com/outfitterco/outfitter/pkg/config"
	"github.com/outfitterco/outfitter/pkg/embeddings"
	"github.com/outfitterco/outfitter/pkg/logger"
	"github.com/outfitterco/outfitter/pkg/vector"
)

const seedLongDesc string = `Embed the product catalog and load it into the vector index.

Reads products from the catalog JSON file, generates an embedding for each
product's descriptive text, recreates the collection, and upserts all points.
Re-running seed replaces the collection contents.

Examples:
  outfitter seed
  outfitter seed --catalog ./products.json
  outfitter seed --collection winter_catalog
  outfitter seed --embedding-provider ollama --embedding-model nomic-embed-text`

const seedShortDesc string = "Embed and index the product catalog"

type seedCommander struct {
	catalogPath       string
	collection        string
	embeddingProvider string
	embeddingTarget   string
	embeddingModel    string
	embeddingDims     uint
	debug             bool

	cfg    *config.Config
	logger *zap.Logger
}

func NewSeedCmd() *cobra.Command {
	cmder := &seedCommander{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: seedShortDesc,
		Long:  seedLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			fs := seedFlagSet()
			config.BindRegisteredFlags(v, cmd, fs, []string{
				config.FlagCatalogPath,
				config.FlagCollection,
				config.FlagEmbeddingProv,
				config.FlagEmbeddingTgt,
				config.FlagEmbeddingModel,
				config.FlagEmbeddingDims,
			})

			cmder.cfg = config.ConfigFromViper(v)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The debug flag lives on the root command; standalone
			// execution runs without it.
			cmder.debug, _ = cmd.Flags().GetBool("debug")

			return cmder.run(cmd.Context())
		},
	}

	fs := seedFlagSet()
	config.AddStringFlag(cmd, fs, config.FlagCatalogPath, &cmder.catalogPath)
	config.AddStringFlag(cmd, fs, config.FlagCollection, &cmder.collection)
	config.AddStringFlag(cmd, fs, config.FlagEmbeddingProv, &cmder.embeddingProvider)
	config.AddStringFlag(cmd, fs, config.FlagEmbeddingTgt, &cmder.embeddingTarget)
	config.AddStringFlag(cmd, fs, config.FlagEmbeddingModel, &cmder.embeddingModel)
	config.AddUintFlag(cmd, fs, config.FlagEmbeddingDims, &cmder.embeddingDims)

	return cmd
}

func seedFlagSet() config.FlagSet {
	return config.FlagSet{
		config.FlagCatalogPath: {
			Name:        "catalog",
			Shorthand:   "c",
			ViperKey:    "catalog.path",
			Description: "Path to the product catalog JSON file",
		},
		config.FlagCollection: {
			Name:        "collection",
			ViperKey:    "vector_store.collection",
			Description: "Vector store collection name",
		},
		config.FlagEmbeddingProv: {
			Name:        "embedding-provider",
			ViperKey:    "embedding.provider",
			Description: "Embedding provider (openai or ollama)",
		},
		config.FlagEmbeddingTgt: {
			Name:        "embedding-target",
			ViperKey:    "embedding.target",
			Description: "Override base URL for the embedding provider",
		},
		config.FlagEmbeddingModel: {
			Name:        "embedding-model",
			ViperKey:    "embedding.model",
			Description: "Embedding model name",
		},
		config.FlagEmbeddingDims: {
			Name:        "embedding-dimensions",
			ViperKey:    "embedding.dimensions",
			Description: "Embedding vector width",
		},
	}
}

func (c *seedCommander) run(ctx context.Context) error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	var products []catalog.Product
	if err := cliui.Step(os.Stdout, "Loading catalog", func() error {
		var loadErr error
		products, loadErr = catalog.Load(c.cfg.Catalog.Path)
		return loadErr
	}); err != nil {
		return err
	}

	if len(products) == 0 {
		return fmt.Errorf("catalog %s contains no products", c.cfg.Catalog.Path)
	}

	embedder, err := clients.NewEmbedder(c.cfg)
	if err != nil {
		return err
	}
	defer func() { _ = embedder.Close() }()

	index, err := clients.NewIndex(c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer func() { _ = index.Close() }()

	var points []vector.Point
	if err := cliui.Step(os.Stdout, fmt.Sprintf("Embedding %d products", len(products)), func() error {
		var embedErr error
		points, embedErr = embedProducts(ctx, embedder, products)
		return embedErr
	}); err != nil {
		return err
	}

	if err := cliui.Step(os.Stdout, "Recreating collection", func() error {
		return index.Recreate(ctx, len(points[0].Embedding))
	}); err != nil {
		return err
	}

	if err := cliui.Step(os.Stdout, "Upserting points", func() error {
		return index.Upsert(ctx, points)
	}); err != nil {
		return err
	}

	fmt.Printf("\n  %s Indexed %s products into %s\n\n",
		cliui.SuccessMark,
		cliui.NameStyle.Render(strconv.Itoa(len(points))),
		cliui.DimStyle.Render(c.cfg.VectorStore.Collection),
	)
	return nil
}

// embedProducts generates one embedding per product. Batch embedding is used
// when the embedder supports it, one round trip instead of N.
func embedProducts(ctx context.Context, embedder embeddings.Embedder, products []catalog.Product) ([]vector.Point, error) {
	texts := make([]string, len(products))
	for i, p := range products {
		texts[i] = p.EmbeddingText()
	}

	var vectors [][]float32
	if batcher, ok := embedder.(embeddings.BatchEmbedder); ok {
		batch, err := batcher.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embedding catalog: %w", err)
		}
		vectors = batch
	} else {
		vectors = make([][]float32, len(texts))
		for i, text := range texts {
			embedding, err := embedder.Embed(ctx, text)
			if err != nil {
				return nil, fmt.Errorf("embedding product %s: %w", products[i].ID, err)
			}
			vectors[i] = embedding
		}
	}

	if len(vectors) != len(products) {
		return nil, fmt.Errorf("embedding count mismatch: %d products, %d vectors", len(products), len(vectors))
	}

	points := make([]vector.Point, len(products))
	for i, p := range products {
		points[i] = vector.Point{
			// Deterministic UUIDs keep re-seeding idempotent per product.
			ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte(p.ID)).String(),
			Embedding: vectors[i],
			Payload:   p.Payload(),
		}
	}

	return points, nil
}
