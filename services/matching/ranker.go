package matching

import (
	"context"
	"sort"

	"fixhive/models"
	"fixhive/utils"

	"go.uber.org/zap"
)

// RelevanceRanker orders shops for a diagnosis. The strict pass filters to
// scored matches; when it yields nothing and a repair component is present, a
// broadened fallback pass sorts loose matches by rating alone. With no
// diagnosis at all, the full list is returned rating-descending. Repeated
// calls on unchanged input produce identical ordering.
type RelevanceRanker struct {
	Scorer  MatchScorer
	Refiner *SemanticRefiner // optional; nil disables the semantic boost
}

func NewRelevanceRanker() RelevanceRanker {
	return RelevanceRanker{Scorer: NewMatchScorer()}
}

func (r RelevanceRanker) Rank(ctx context.Context, shops []models.Shop, diag *models.Diagnosis) []models.RankedShop {
	if diag == nil || diag.Empty() {
		return rankByRating(shops, false)
	}

	logger := utils.GetLogger()

	ranked := make([]models.RankedShop, 0, len(shops))
	for _, shop := range shops {
		result := r.Scorer.Score(shop.Expertise, *diag, shop.Services)
		if !result.Matched {
			continue
		}
		rs := models.RankedShop{Shop: shop, Score: result.Score}
		if r.Refiner != nil {
			rs.Semantic = r.Refiner.Similarity(ctx, diag.QueryText(), shopCorpusTexts(shop))
		}
		ranked = append(ranked, rs)
	}

	if len(ranked) == 0 && diag.RepairComponent != "" {
		logger.Debug("strict matching empty, running fallback pass",
			zap.String("component", diag.RepairComponent))
		return r.fallback(shops, *diag)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := ranked[i].Score+ranked[i].Semantic, ranked[j].Score+ranked[j].Semantic
		if si != sj {
			return si > sj
		}
		if ranked[i].Shop.Rating != ranked[j].Shop.Rating {
			return ranked[i].Shop.Rating > ranked[j].Shop.Rating
		}
		return ranked[i].Shop.ID < ranked[j].Shop.ID
	})
	return ranked
}

// fallback broadens to loose containment on component and brand only, sorted
// by rating descending.
func (r RelevanceRanker) fallback(shops []models.Shop, diag models.Diagnosis) []models.RankedShop {
	loose := make([]models.Shop, 0, len(shops))
	for _, shop := range shops {
		if r.Scorer.LooseMatch(shop.Expertise, diag, shop.Services) {
			loose = append(loose, shop)
		}
	}
	return rankByRating(loose, true)
}

func rankByRating(shops []models.Shop, fallback bool) []models.RankedShop {
	ranked := make([]models.RankedShop, 0, len(shops))
	for _, shop := range shops {
		ranked = append(ranked, models.RankedShop{Shop: shop, Fallback: fallback})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Shop.Rating != ranked[j].Shop.Rating {
			return ranked[i].Shop.Rating > ranked[j].Shop.Rating
		}
		return ranked[i].Shop.ID < ranked[j].Shop.ID
	})
	return ranked
}

// shopCorpusTexts collects the texts the semantic refiner embeds for a shop.
func shopCorpusTexts(shop models.Shop) []string {
	texts := make([]string, 0, len(shop.Expertise)+len(shop.Services))
	texts = append(texts, shop.Expertise...)
	for _, svc := range shop.Services {
		if svc.Offered() {
			texts = append(texts, svc.Name+" "+svc.Description)
		}
	}
	return texts
}
