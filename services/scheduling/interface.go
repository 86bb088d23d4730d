package scheduling

import (
	"context"
	"time"

	bookingRepo "fixhive/database/repository/booking"
	shopRepo "fixhive/database/repository/shop"
	"fixhive/models"

	"github.com/go-redis/redis/v8"
)

// SchedulingEngine computes slot availability and applies booking mutations
// with capacity enforcement.
type SchedulingEngine interface {
	// AvailableSlots answers "what slots remain open for shop on date".
	AvailableSlots(ctx context.Context, shopID, date string) (models.AvailabilityResult, error)
	// SubmitBooking validates and creates a booking, re-checking capacity
	// adjacent to the write.
	SubmitBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	// UpdateBooking applies a partial update, re-validating capacity when the
	// date or time changes.
	UpdateBooking(ctx context.Context, bookingID string, update models.BookingUpdate) (*models.Booking, error)
	// CancelBooking moves a booking to cancelled, releasing its capacity.
	CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	// ListShopBookings returns a shop's bookings for a date, all statuses.
	ListShopBookings(ctx context.Context, shopID, date string) ([]models.Booking, error)
}

// DefaultSchedulingEngine is the production implementation.
type DefaultSchedulingEngine struct {
	Shops    shopRepo.ShopRepository
	Bookings bookingRepo.BookingRepository
	Locker   SlotLocker
	Cache    *redis.Client
	CacheTTL time.Duration
	// Now is injectable for same-day gating; nil means time.Now.
	Now func() time.Time
}

func (se *DefaultSchedulingEngine) now() time.Time {
	if se.Now != nil {
		return se.Now()
	}
	return time.Now()
}
