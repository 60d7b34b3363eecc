package vector

// Filter is a conjunction of conditions on payload fields. All conditions
// must hold for a point to pass. A nil *Filter means "no filter": the index
// treats it as an unconditional pass, which is not the same thing as a
// Filter with zero conditions handed to a backend that interprets it as
// match-nothing. Builders return nil instead of an empty Filter for that
// reason.
type Filter struct {
	Must []Condition
}

// Condition constrains a single payload field. Exactly one of Match or
// Range is set.
type Condition struct {
	// Field is the payload key the condition applies to.
	Field string

	// Match requires the field to equal this value exactly.
	Match *string

	// Range requires the field to fall within numeric bounds.
	Range *Range
}

// Range holds inclusive numeric bounds. Unset bounds impose no constraint.
type Range struct {
	GTE *float64
	LTE *float64
}

// MatchCondition builds an exact-match condition on field.
func MatchCondition(field, value string) Condition {
	return Condition{Field: field, Match: &value}
}

// RangeCondition builds a range condition on field.
func RangeCondition(field string, r Range) Condition {
	return Condition{Field: field, Range: &r}
}
