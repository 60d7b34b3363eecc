package search

import "github.com/outfitterco/outfitter/pkg/vector"

// Filters is the structured constraint set a caller can apply alongside
// similarity. Every field is independently optional; nil pointers impose no
// constraint. Pointers (rather than zero-value sentinels) keep "unset"
// distinguishable from legitimate values like a price bound of 0.
type Filters struct {
	Brand    *string  `json:"brand,omitempty"`
	Category *string  `json:"category,omitempty"`
	PriceMin *float64 `json:"price_min,omitempty"`
	PriceMax *float64 `json:"price_max,omitempty"`
}

// Empty reports whether no constraint is set.
func (f Filters) Empty() bool {
	return f.Brand == nil && f.Category == nil && f.PriceMin == nil && f.PriceMax == nil
}

// BuildFilter maps Filters into the index's filter predicate: a conjunction
// with exactly one clause per set field. When nothing is set it returns nil,
// the "no filter" sentinel the index treats as an unconditional pass. An
// impossible range (price_min > price_max) is passed through untouched; the
// index yields no matches for it, which is not an error.
func BuildFilter(f Filters) *vector.Filter {
	var conditions []vector.Condition

	if f.Brand != nil {
		conditions = append(conditions, vector.MatchCondition("brand", *f.Brand))
	}
	if f.Category != nil {
		conditions = append(conditions, vector.MatchCondition("category", *f.Category))
	}
	if f.PriceMin != nil {
		conditions = append(conditions, vector.RangeCondition("price", vector.Range{GTE: f.PriceMin}))
	}
	if f.PriceMax != nil {
		conditions = append(conditions, vector.RangeCondition("price", vector.Range{LTE: f.PriceMax}))
	}

	if len(conditions) == 0 {
		return nil
	}

	return &vector.Filter{Must: conditions}
}
