package shopRepo

import (
	"context"

	"fixhive/models"
)

// ShopRepository defines the data access methods for shops.
type ShopRepository interface {
	// GetByID retrieves a shop by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Shop, error)
	// GetBookingPreferences returns a shop's scheduling configuration with
	// defaults filled.
	GetBookingPreferences(ctx context.Context, shopID string) (models.BookingPreferences, error)
	// List returns the full shop catalog for matching.
	List(ctx context.Context) ([]models.Shop, error)
}
