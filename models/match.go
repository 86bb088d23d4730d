package models

// MatchResult is the ephemeral outcome of scoring one shop against one
// diagnosis. It is produced fresh per query and never persisted.
type MatchResult struct {
	ShopID  string  `json:"shopId"`
	Matched bool    `json:"matched"`
	Score   float64 `json:"score"`
}

// RankedShop pairs a shop with its relevance signals for display ordering.
type RankedShop struct {
	Shop     Shop    `json:"shop"`
	Score    float64 `json:"score"`
	Semantic float64 `json:"semantic,omitempty"`
	Fallback bool    `json:"fallback,omitempty"`
}
