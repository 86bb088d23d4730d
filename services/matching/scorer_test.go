package matching

import (
	"testing"

	"fixhive/models"
)

func boolPtr(b bool) *bool { return &b }

func TestScoreMatchesExpertise(t *testing.T) {
	scorer := NewMatchScorer()
	diag := models.Diagnosis{RepairComponent: "screen", DeviceBrand: "iPhone"}

	result := scorer.Score([]string{"smartphone screen repair"}, diag, nil)
	if !result.Matched {
		t.Fatal("expected a match on expertise containment")
	}
	if result.Score <= 0 {
		t.Errorf("score = %v, want > 0", result.Score)
	}

	miss := scorer.Score([]string{"battery replacement"}, diag, nil)
	if miss.Matched {
		t.Errorf("expected no match for unrelated expertise, got score %v", miss.Score)
	}
}

func TestScoreMatchesServiceCatalog(t *testing.T) {
	scorer := NewMatchScorer()
	diag := models.Diagnosis{RepairComponent: "battery"}

	services := []models.ShopService{
		{Name: "Battery swap", Description: "Laptop battery replacement", Category: models.CatalogCategoryService},
	}
	if r := scorer.Score(nil, diag, services); !r.Matched {
		t.Error("expected match through service catalog")
	}
}

func TestScoreIgnoresProductsAndOutOfStock(t *testing.T) {
	scorer := NewMatchScorer()
	diag := models.Diagnosis{RepairComponent: "battery"}

	services := []models.ShopService{
		{Name: "Battery pack", Category: models.CatalogCategoryProduct},
		{Name: "Battery replacement", Category: models.CatalogCategoryService, InStock: boolPtr(false)},
	}
	if r := scorer.Score(nil, diag, services); r.Matched {
		t.Errorf("products and out-of-stock services must not match, got score %v", r.Score)
	}

	// An absent inStock field counts as offered.
	offered := []models.ShopService{
		{Name: "Battery replacement", Category: models.CatalogCategoryService},
	}
	if r := scorer.Score(nil, diag, offered); !r.Matched {
		t.Error("service without inStock flag should be offered")
	}
}

func TestScoreMonotonicity(t *testing.T) {
	scorer := NewMatchScorer()
	expertise := []string{"iphone screen repair"}

	base := scorer.Score(expertise, models.Diagnosis{RepairComponent: "screen"}, nil)
	withBrand := scorer.Score(expertise, models.Diagnosis{RepairComponent: "screen", DeviceBrand: "iPhone"}, nil)
	if withBrand.Score < base.Score {
		t.Errorf("adding a brand hit lowered the score: %v -> %v", base.Score, withBrand.Score)
	}

	withKeywords := scorer.Score(expertise, models.Diagnosis{
		RepairComponent: "screen",
		DeviceBrand:     "iPhone",
		RepairKeywords:  []string{"screen", "cracked"},
	}, nil)
	if withKeywords.Score < withBrand.Score {
		t.Errorf("adding keyword hits lowered the score: %v -> %v", withBrand.Score, withKeywords.Score)
	}
}

func TestScoreStable(t *testing.T) {
	scorer := NewMatchScorer()
	diag := models.Diagnosis{
		DeviceBrand:     "Samsung",
		DeviceType:      "smartphone",
		DeviceCategory:  "phone",
		RepairComponent: "screen",
		RepairKeywords:  []string{"cracked", "display"},
	}
	expertise := []string{"samsung smartphone screen repair", "display specialists"}

	first := scorer.Score(expertise, diag, nil)
	for i := 0; i < 10; i++ {
		if got := scorer.Score(expertise, diag, nil); got != first {
			t.Fatalf("score unstable: %+v vs %+v", first, got)
		}
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	scorer := NewMatchScorer()
	diag := models.Diagnosis{DeviceBrand: "IPHONE"}
	if r := scorer.Score([]string{"iPhone repairs"}, diag, nil); !r.Matched {
		t.Error("matching must be case-insensitive")
	}
}

func TestScoreExactTagOutweighsLooseHit(t *testing.T) {
	scorer := NewMatchScorer()
	diag := models.Diagnosis{RepairComponent: "screen"}

	exact := scorer.Score([]string{"screen"}, diag, nil)
	loose := scorer.Score([]string{"smartphone screen repair"}, diag, nil)
	if exact.Score <= loose.Score {
		t.Errorf("exact tag match (%v) should outweigh loose containment (%v)", exact.Score, loose.Score)
	}
}

func TestLooseMatch(t *testing.T) {
	scorer := NewMatchScorer()
	diag := models.Diagnosis{RepairComponent: "screen", DeviceBrand: "Fairphone"}

	if !scorer.LooseMatch([]string{"fairphone specialists"}, diag, nil) {
		t.Error("expected loose match on brand")
	}
	if !scorer.LooseMatch([]string{"screen clinic"}, diag, nil) {
		t.Error("expected loose match on component")
	}
	if scorer.LooseMatch([]string{"console modding"}, diag, nil) {
		t.Error("expected no loose match on unrelated expertise")
	}
}
