// Package searchcmder provides the search command for semantic product search.
package searchcmder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/outfitterco/outfitter/cmd/outfitter/clients"
	"github.com/outfitterco/outfitter/pkg/config"
	"github.com/outfitterco/outfitter/pkg/logger"
	"github.com/outfitterco/outfitter/pkg/search"
)

var (
	rankStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	brandStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	priceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
)

const searchLongDesc string = `Search the product catalog using semantic search.

Embeds the query text and finds the most similar products in the vector
index. Optional filters narrow results by brand, category, and price range;
unfiltered queries search the whole catalog.

Examples:
  outfitter search "warm jacket for winter"
  outfitter search "office wear" --brand Zara --category dresses
  outfitter search "something comfortable" --price-max 50 --top 10
  outfitter search "red dress" --json`

const searchShortDesc string = "Search the product catalog"

type searchCommander struct {
	query          string
	topK           int
	scoreThreshold float32
	brand          string
	category       string
	priceMin       float64
	priceMax       float64
	jsonOutput     bool
	vectorHost     string
	vectorPort     int

	filtersSet map[string]bool

	debug  bool
	cfg    *config.Config
	logger *zap.Logger
}

func NewSearchCmd() *cobra.Command {
	cmder := &searchCommander{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: searchShortDesc,
		Long:  searchLongDesc,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			fs := searchFlagSet()
			config.BindRegisteredFlags(v, cmd, fs, []string{config.FlagVectorHost, config.FlagVectorPort})

			cmder.cfg = config.ConfigFromViper(v)

			// Only flags the user actually set become filters; a price of 0
			// must stay distinguishable from "no price bound".
			cmder.filtersSet = map[string]bool{
				"brand":     cmd.Flags().Changed("brand"),
				"category":  cmd.Flags().Changed("category"),
				"price-min": cmd.Flags().Changed("price-min"),
				"price-max": cmd.Flags().Changed("price-max"),
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.query = args[0]

			// The debug flag lives on the root command; standalone
			// execution runs without it.
			cmder.debug, _ = cmd.Flags().GetBool("debug")

			return cmder.run(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&cmder.topK, "top", "k", search.DefaultTopK, "Number of results to return")
	cmd.Flags().Float32Var(&cmder.scoreThreshold, "score-threshold", search.DefaultScoreThreshold, "Minimum similarity score in [0,1]")
	cmd.Flags().StringVar(&cmder.brand, "brand", "", "Filter by exact brand name")
	cmd.Flags().StringVar(&cmder.category, "category", "", "Filter by exact category name")
	cmd.Flags().Float64Var(&cmder.priceMin, "price-min", 0, "Inclusive minimum price")
	cmd.Flags().Float64Var(&cmder.priceMax, "price-max", 0, "Inclusive maximum price")
	cmd.Flags().BoolVar(&cmder.jsonOutput, "json", false, "Output results as JSON")

	fs := searchFlagSet()
	config.AddStringFlag(cmd, fs, config.FlagVectorHost, &cmder.vectorHost)
	config.AddIntFlag(cmd, fs, config.FlagVectorPort, &cmder.vectorPort)

	return cmd
}

func searchFlagSet() config.FlagSet {
	return config.FlagSet{
		config.FlagVectorHost: {
			Name:        "vector-host",
			ViperKey:    "vector_store.host",
			Description: "Vector store gRPC host",
		},
		config.FlagVectorPort: {
			Name:        "vector-port",
			ViperKey:    "vector_store.port",
			Description: "Vector store gRPC port",
		},
	}
}

func (c *searchCommander) run(ctx context.Context) error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	searcher, index, err := clients.NewSearcher(c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer func() { _ = index.Close() }()

	req := search.Request{
		Query:          c.query,
		TopK:           c.topK,
		ScoreThreshold: c.scoreThreshold,
		Filters:        c.buildFilters(),
	}

	results, err := searcher.Search(ctx, req)
	if err != nil {
		return err
	}

	if c.jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No matching products found.")
		return nil
	}

	fmt.Printf("\n%s %s\n\n",
		headerStyle.Render("Results for:"),
		brandStyle.Render(fmt.Sprintf("%q", c.query)),
	)

	for i, result := range results {
		printResult(i+1, result)
	}

	return nil
}

func (c *searchCommander) buildFilters() search.Filters {
	var filters search.Filters
	if c.filtersSet["brand"] {
		filters.Brand = &c.brand
	}
	if c.filtersSet["category"] {
		filters.Category = &c.category
	}
	if c.filtersSet["price-min"] {
		filters.PriceMin = &c.priceMin
	}
	if c.filtersSet["price-max"] {
		filters.PriceMax = &c.priceMax
	}
	return filters
}

func printResult(rank int, result search.Result) {
	fmt.Printf("  %s  %s  %s  %s\n",
		rankStyle.Render(fmt.Sprintf("#%d", rank)),
		nameStyle.Render(result.Name),
		brandStyle.Render(result.Brand),
		priceStyle.Render(fmt.Sprintf("$%.2f", result.Price)),
	)

	fmt.Printf("      %s\n", detailStyle.Render(fmt.Sprintf("%s | %s | %s | sizes: %s",
		result.Category,
		result.Color,
		result.Material,
		strings.Join(result.Size, ", "),
	)))

	fmt.Printf("      %s\n", dimStyle.Render(truncate(result.Description, 100)))
	fmt.Printf("      %s\n\n", scoreStyle.Render(fmt.Sprintf("score: %.4f", result.Score)))
}

// truncate shortens s to at most max runes, never splitting a multi-byte
// character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
