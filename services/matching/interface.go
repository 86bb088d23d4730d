package matching

import (
	"context"

	shopRepo "fixhive/database/repository/shop"
	"fixhive/models"
)

// MatchingService produces the ordered shop list for a diagnosis. When no
// shop matches it returns an empty list rather than an error.
type MatchingService interface {
	RankShopsForDiagnosis(ctx context.Context, diag *models.Diagnosis) ([]models.RankedShop, error)
}

// DefaultMatchingService implements MatchingService over the shop catalog.
type DefaultMatchingService struct {
	ShopRepo shopRepo.ShopRepository
	Ranker   RelevanceRanker
}

func (s *DefaultMatchingService) RankShopsForDiagnosis(ctx context.Context, diag *models.Diagnosis) ([]models.RankedShop, error) {
	shops, err := s.ShopRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.Ranker.Rank(ctx, shops, diag), nil
}
