package models

import "time"

// Shop catalog entry categories.
const (
	CatalogCategoryProduct = "product"
	CatalogCategoryService = "service"
)

// ShopService is one entry of a shop's service/product catalog. InStock is a
// pointer so an absent field reads as "in stock" rather than "sold out".
type ShopService struct {
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Type        string  `bson:"type,omitempty" json:"type,omitempty"`
	Category    string  `bson:"category" json:"category"`
	InStock     *bool   `bson:"inStock,omitempty" json:"inStock,omitempty"`
	Price       float64 `bson:"price,omitempty" json:"price,omitempty"`
}

// Offered reports whether the entry participates in matching: only service
// catalog entries that are not explicitly out of stock.
func (s ShopService) Offered() bool {
	if s.Category != CatalogCategoryService {
		return false
	}
	return s.InStock == nil || *s.InStock
}

// Shop represents a repair shop.
type Shop struct {
	ID          string              `bson:"id" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Email       string              `bson:"email,omitempty" json:"email,omitempty"`
	Phone       string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Address     string              `bson:"address,omitempty" json:"address,omitempty"`
	Expertise   []string            `bson:"expertise" json:"expertise"`
	Rating      float64             `bson:"rating" json:"rating"`
	Services    []ShopService       `bson:"services" json:"services"`
	Preferences *BookingPreferences `bson:"bookingPreferences,omitempty" json:"bookingPreferences,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt,omitempty"`
}

// BookingPrefs returns the shop's scheduling configuration with defaults
// filled. This is the only place preferences defaults are resolved.
func (s Shop) BookingPrefs() BookingPreferences {
	if s.Preferences == nil {
		return DefaultBookingPreferences()
	}
	return s.Preferences.FillDefaults()
}
