package search_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/outfitterco/outfitter/pkg/search"
	"github.com/outfitterco/outfitter/pkg/vector"
)

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }

var _ = Describe("BuildFilter", func() {
	It("returns the no-filter sentinel when nothing is set", func() {
		Expect(search.BuildFilter(search.Filters{})).To(BeNil())
	})

	It("builds one clause per set field", func() {
		filter := search.BuildFilter(search.Filters{Brand: strPtr("Zara")})
		Expect(filter).NotTo(BeNil())
		Expect(filter.Must).To(HaveLen(1))
		Expect(filter.Must[0].Field).To(Equal("brand"))
		Expect(*filter.Must[0].Match).To(Equal("Zara"))
	})

	It("builds a four-clause conjunction when all fields are set", func() {
		filter := search.BuildFilter(search.Filters{
			Brand:    strPtr("Adidas"),
			Category: strPtr("jackets"),
			PriceMin: numPtr(50),
			PriceMax: numPtr(150),
		})

		Expect(filter.Must).To(HaveLen(4))

		fields := make([]string, len(filter.Must))
		for i, c := range filter.Must {
			fields[i] = c.Field
		}
		Expect(fields).To(Equal([]string{"brand", "category", "price", "price"}))

		Expect(*filter.Must[2].Range.GTE).To(Equal(50.0))
		Expect(filter.Must[2].Range.LTE).To(BeNil())
		Expect(*filter.Must[3].Range.LTE).To(Equal(150.0))
		Expect(filter.Must[3].Range.GTE).To(BeNil())
	})

	It("treats a price bound of zero as a real constraint", func() {
		filter := search.BuildFilter(search.Filters{PriceMin: numPtr(0)})
		Expect(filter).NotTo(BeNil())
		Expect(*filter.Must[0].Range.GTE).To(Equal(0.0))
	})

	It("passes an impossible price range through untouched", func() {
		// The index yields no matches for min > max; this layer does not
		// reject it.
		filter := search.BuildFilter(search.Filters{
			PriceMin: numPtr(100),
			PriceMax: numPtr(10),
		})
		Expect(filter.Must).To(HaveLen(2))
	})

	It("is deterministic for equal inputs", func() {
		f := search.Filters{Brand: strPtr("H&M"), PriceMax: numPtr(60)}
		Expect(search.BuildFilter(f)).To(Equal(search.BuildFilter(f)))
	})
})

var _ = Describe("Filters", func() {
	It("reports empty when no field is set", func() {
		Expect(search.Filters{}.Empty()).To(BeTrue())
	})

	It("reports non-empty when any field is set", func() {
		Expect(search.Filters{Category: strPtr("pants")}.Empty()).To(BeFalse())
	})
})

// A nil *vector.Filter is "match everything"; builders must never emit an
// empty non-nil conjunction that a backend could read as match-nothing.
var _ = Describe("filter sentinel", func() {
	It("returns nil rather than an empty conjunction for all-absent fields", func() {
		var built *vector.Filter = search.BuildFilter(search.Filters{
			Brand: nil, Category: nil, PriceMin: nil, PriceMax: nil,
		})
		Expect(built).To(BeNil())
	})
})
