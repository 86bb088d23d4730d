package bookingRepo

import (
	"context"

	"fixhive/models"
)

// BookingRepository defines the data access methods used by the scheduling
// engine.
type BookingRepository interface {
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListByShopDate retrieves all bookings for a shop on a given date,
	// regardless of status.
	ListByShopDate(ctx context.Context, shopID, date string) ([]models.Booking, error)
	// GetActiveByDate retrieves pending/confirmed bookings for a shop+date.
	GetActiveByDate(ctx context.Context, shopID, date string) ([]models.Booking, error)
	// CountActiveByDate counts pending/confirmed bookings for a shop+date,
	// excluding the booking with excludeID when non-empty.
	CountActiveByDate(ctx context.Context, shopID, date, excludeID string) (int, error)
	// CountActiveAtSlot counts pending/confirmed bookings at one slot label,
	// matching both padded and unpadded time forms, excluding excludeID.
	CountActiveAtSlot(ctx context.Context, shopID, date, timeLabel, excludeID string) (int, error)
	// Create persists a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// Update replaces the mutable fields of an existing booking.
	Update(ctx context.Context, booking *models.Booking) error
	// Delete removes a booking record. Owner/admin action only.
	Delete(ctx context.Context, id string) error
}
