package matching

// ScoreWeights is the named weight table behind the relevance score. Each
// weight prices one independent signal; hits only ever add, so the score is
// monotonic in the number of signals.
type ScoreWeights struct {
	Component  float64 // repair component hit in expertise or services
	Brand      float64 // device brand hit
	DeviceType float64 // device type hit
	Category   float64 // device category hit
	Keyword    float64 // per matched repair keyword
	ExactBonus float64 // added when a field equals a tag outright
}

// DefaultScoreWeights prices the component highest: a shop that repairs the
// broken part outranks one that merely carries the brand.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Component:  5,
		Brand:      3,
		DeviceType: 2,
		Category:   2,
		Keyword:    1,
		ExactBonus: 2,
	}
}
