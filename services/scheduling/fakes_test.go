package scheduling

import (
	"context"
	"fmt"
	"sync"

	"fixhive/models"
)

func boolPtr(b bool) *bool { return &b }

// fakeBookingRepo is an in-memory BookingRepository for engine tests.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []models.Booking
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			found := b
			return &found, nil
		}
	}
	return nil, fmt.Errorf("booking %s not found", id)
}

func (r *fakeBookingRepo) ListByShopDate(_ context.Context, shopID, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ShopID == shopID && b.AppointmentDate == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) GetActiveByDate(_ context.Context, shopID, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ShopID == shopID && b.AppointmentDate == date && b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountActiveByDate(_ context.Context, shopID, date, excludeID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, b := range r.bookings {
		if b.ShopID == shopID && b.AppointmentDate == date && b.IsActive() && b.ID != excludeID {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) CountActiveAtSlot(_ context.Context, shopID, date, timeLabel, excludeID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := NormalizeTimeLabel(timeLabel)
	count := 0
	for _, b := range r.bookings {
		if b.ShopID == shopID && b.AppointmentDate == date && b.IsActive() &&
			b.ID != excludeID && NormalizeTimeLabel(b.AppointmentTime) == want {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings = append(r.bookings, *booking)
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.bookings {
		if b.ID == booking.ID {
			r.bookings[i] = *booking
			return nil
		}
	}
	return fmt.Errorf("booking %s not found", booking.ID)
}

func (r *fakeBookingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.bookings {
		if b.ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("booking %s not found", id)
}

// fakeShopRepo serves one shop's preferences.
type fakeShopRepo struct {
	shop models.Shop
}

func (r *fakeShopRepo) GetByID(_ context.Context, id string) (*models.Shop, error) {
	if id != r.shop.ID {
		return nil, fmt.Errorf("shop %s not found", id)
	}
	found := r.shop
	return &found, nil
}

func (r *fakeShopRepo) GetBookingPreferences(_ context.Context, shopID string) (models.BookingPreferences, error) {
	if shopID != r.shop.ID {
		return models.BookingPreferences{}, fmt.Errorf("shop %s not found", shopID)
	}
	return r.shop.BookingPrefs(), nil
}

func (r *fakeShopRepo) List(_ context.Context) ([]models.Shop, error) {
	return []models.Shop{r.shop}, nil
}
