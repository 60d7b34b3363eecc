package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/outfitterco/outfitter/pkg/logger"
	"github.com/outfitterco/outfitter/pkg/search"
)

type recordingSearcher struct {
	results  []search.Result
	failure  error
	requests []search.Request
}

func (r *recordingSearcher) Search(_ context.Context, req search.Request) ([]search.Result, error) {
	r.requests = append(r.requests, req)
	if r.failure != nil {
		return nil, r.failure
	}
	return r.results, nil
}

var _ = Describe("Search tool", func() {
	var (
		server   *Server
		searcher *recordingSearcher
		ctx      context.Context
	)

	BeforeEach(func() {
		searcher = &recordingSearcher{}

		var err error
		server, err = NewServer(Config{
			Searcher: searcher,
			Logger:   logger.Nop(),
		})
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()
	})

	Describe("handleSearch", func() {
		It("defaults top_k and score_threshold when not provided", func() {
			_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "warm jacket"})
			Expect(err).NotTo(HaveOccurred())

			Expect(searcher.requests).To(HaveLen(1))
			req := searcher.requests[0]
			Expect(req.Query).To(Equal("warm jacket"))
			Expect(req.TopK).To(Equal(search.DefaultTopK))
			Expect(req.ScoreThreshold).To(Equal(float32(search.DefaultScoreThreshold)))
			Expect(req.Filters.Empty()).To(BeTrue())
		})

		It("carries provided filters through to the search request", func() {
			brand := "Zara"
			priceMax := 80.0
			input := SearchInput{
				Query: "dress",
				Filters: &SearchFilters{
					Brand:    &brand,
					PriceMax: &priceMax,
				},
				TopK: 3,
			}

			_, _, err := server.handleSearch(ctx, nil, input)
			Expect(err).NotTo(HaveOccurred())

			req := searcher.requests[0]
			Expect(*req.Filters.Brand).To(Equal("Zara"))
			Expect(req.Filters.Category).To(BeNil())
			Expect(*req.Filters.PriceMax).To(Equal(80.0))
			Expect(req.TopK).To(Equal(3))
		})

		It("honors an explicit zero score threshold", func() {
			zero := float32(0)
			_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "dress", ScoreThreshold: &zero})
			Expect(err).NotTo(HaveOccurred())
			Expect(searcher.requests[0].ScoreThreshold).To(Equal(float32(0)))
		})

		It("returns structured output plus a JSON text block", func() {
			searcher.results = []search.Result{
				{Score: 0.9, Name: "Silk Dress", Brand: "Zara", Price: 79.99,
					Color: "black", Size: []string{"S"}, Description: "elegant",
					Category: "dresses", Material: "silk"},
			}

			result, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "dress"})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsError).To(BeFalse())

			Expect(output.Query).To(Equal("dress"))
			Expect(output.Count).To(Equal(1))
			Expect(output.Results[0].Name).To(Equal("Silk Dress"))

			Expect(result.Content).To(HaveLen(1))
			text := result.Content[0].(*sdkmcp.TextContent).Text

			var decoded SearchOutput
			Expect(json.Unmarshal([]byte(text), &decoded)).To(Succeed())
			Expect(decoded.Count).To(Equal(1))
		})

		It("reports zero matches as a successful empty result", func() {
			searcher.results = []search.Result{}

			result, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "spacesuit"})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsError).To(BeFalse())
			Expect(output.Count).To(BeZero())
		})

		It("returns a tool error result on search failure", func() {
			searcher.failure = fmt.Errorf("index unreachable")

			result, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "dress"})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsError).To(BeTrue())

			text := result.Content[0].(*sdkmcp.TextContent).Text
			Expect(text).To(ContainSubstring("index unreachable"))
		})
	})
})
