package handlers

import (
	"net/http"

	shopRepo "fixhive/database/repository/shop"
	"fixhive/models"
	"fixhive/services/matching"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShopHandler exposes shop lookup and diagnosis-based matching.
type ShopHandler struct {
	Repo     shopRepo.ShopRepository
	Matching matching.MatchingService
	Logger   *zap.Logger
}

func NewShopHandler(repo shopRepo.ShopRepository, matchingSvc matching.MatchingService, logger *zap.Logger) *ShopHandler {
	return &ShopHandler{Repo: repo, Matching: matchingSvc, Logger: logger}
}

// GetShop handles GET /api/shops/:id.
func (h *ShopHandler) GetShop(c *gin.Context) {
	shop, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, shop)
}

// MatchShops handles POST /api/shops/match. The diagnosis payload is
// optional; without one the catalog is returned rating-descending. Zero
// matches is a valid empty result, not an error.
func (h *ShopHandler) MatchShops(c *gin.Context) {
	var input struct {
		Diagnosis *models.Diagnosis `json:"diagnosis"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ranked, err := h.Matching.RankShopsForDiagnosis(c.Request.Context(), input.Diagnosis)
	if err != nil {
		h.Logger.Error("shop matching failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "matching failed, please retry"})
		return
	}
	if ranked == nil {
		ranked = []models.RankedShop{}
	}
	c.JSON(http.StatusOK, gin.H{"shops": ranked, "count": len(ranked)})
}
