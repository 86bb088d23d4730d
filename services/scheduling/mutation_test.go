package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"fixhive/models"
)

func newTestEngine(shop models.Shop, existing ...models.Booking) (*DefaultSchedulingEngine, *fakeBookingRepo) {
	repo := &fakeBookingRepo{bookings: existing}
	engine := &DefaultSchedulingEngine{
		Shops:    &fakeShopRepo{shop: shop},
		Bookings: repo,
		Now:      func() time.Time { return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC) },
	}
	return engine, repo
}

func testShop() models.Shop {
	return models.Shop{
		ID: "shop-1",
		Preferences: &models.BookingPreferences{
			WorkingHours:        models.WorkingHours{Start: "09:00", End: "17:00"},
			SlotDurationMinutes: 30,
			MaxBookingsPerDay:   10,
			MaxBookingsPerSlot:  1,
			AdvanceBookingDays:  30,
			SameDayBooking:      boolPtr(true),
		},
	}
}

func validRequest() models.BookingRequest {
	return models.BookingRequest{
		ShopID:          "shop-1",
		AppointmentDate: "2026-09-10",
		AppointmentTime: "09:30",
		UserName:        "Ada",
		UserEmail:       "ada@example.com",
	}
}

func TestSubmitBookingCreatesPending(t *testing.T) {
	engine, repo := newTestEngine(testShop())

	booking, err := engine.SubmitBooking(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("SubmitBooking returned error: %v", err)
	}
	if booking.Status != models.BookingStatusPending {
		t.Errorf("status = %q, want pending", booking.Status)
	}
	if booking.ID == "" {
		t.Error("expected a generated booking id")
	}
	if len(repo.bookings) != 1 {
		t.Fatalf("expected 1 stored booking, got %d", len(repo.bookings))
	}
}

func TestSubmitBookingAutoConfirm(t *testing.T) {
	shop := testShop()
	shop.Preferences.AutoConfirm = true
	engine, _ := newTestEngine(shop)

	booking, err := engine.SubmitBooking(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("SubmitBooking returned error: %v", err)
	}
	if booking.Status != models.BookingStatusConfirmed {
		t.Errorf("status = %q, want confirmed", booking.Status)
	}
}

func TestSubmitBookingSlotCapacityConflict(t *testing.T) {
	engine, _ := newTestEngine(testShop(), models.Booking{
		ID: "existing", ShopID: "shop-1",
		AppointmentDate: "2026-09-10", AppointmentTime: "09:30",
		Status: models.BookingStatusConfirmed,
	})

	_, err := engine.SubmitBooking(context.Background(), validRequest())
	var conflict *CapacityConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected CapacityConflictError, got %v", err)
	}
	if conflict.Scope != "slot" || conflict.Limit != 1 {
		t.Errorf("conflict = %+v, want slot scope with limit 1", conflict)
	}
}

func TestSubmitBookingUnpaddedExistingTimeStillConflicts(t *testing.T) {
	engine, _ := newTestEngine(testShop(), models.Booking{
		ID: "existing", ShopID: "shop-1",
		AppointmentDate: "2026-09-10", AppointmentTime: "9:30",
		Status: models.BookingStatusPending,
	})

	_, err := engine.SubmitBooking(context.Background(), validRequest())
	var conflict *CapacityConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected CapacityConflictError against unpadded stored time, got %v", err)
	}
}

func TestSubmitBookingDailyCapacityConflict(t *testing.T) {
	shop := testShop()
	shop.Preferences.MaxBookingsPerDay = 2
	shop.Preferences.MaxBookingsPerSlot = 5
	engine, _ := newTestEngine(shop,
		models.Booking{ID: "b1", ShopID: "shop-1", AppointmentDate: "2026-09-10", AppointmentTime: "10:00", Status: models.BookingStatusPending},
		models.Booking{ID: "b2", ShopID: "shop-1", AppointmentDate: "2026-09-10", AppointmentTime: "11:00", Status: models.BookingStatusConfirmed},
	)

	_, err := engine.SubmitBooking(context.Background(), validRequest())
	var conflict *CapacityConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected CapacityConflictError, got %v", err)
	}
	if conflict.Scope != "day" || conflict.Limit != 2 {
		t.Errorf("conflict = %+v, want day scope with limit 2", conflict)
	}
}

func TestSubmitBookingCancelledDoesNotOccupy(t *testing.T) {
	engine, _ := newTestEngine(testShop(), models.Booking{
		ID: "old", ShopID: "shop-1",
		AppointmentDate: "2026-09-10", AppointmentTime: "09:30",
		Status: models.BookingStatusCancelled,
	})

	if _, err := engine.SubmitBooking(context.Background(), validRequest()); err != nil {
		t.Errorf("cancelled booking should not block the slot: %v", err)
	}
}

func TestSubmitBookingValidation(t *testing.T) {
	engine, _ := newTestEngine(testShop())

	cases := []struct {
		name     string
		mutate   func(*models.BookingRequest)
		wantCode string
	}{
		{"missing shop", func(r *models.BookingRequest) { r.ShopID = "" }, "missing_shop"},
		{"bad date", func(r *models.BookingRequest) { r.AppointmentDate = "10/09/2026" }, ReasonInvalidDate},
		{"bad time", func(r *models.BookingRequest) { r.AppointmentTime = "quarter past" }, ReasonInvalidTime},
		{"bad status", func(r *models.BookingRequest) { r.Status = "tentative" }, ReasonInvalidStatus},
		{"past date", func(r *models.BookingRequest) { r.AppointmentDate = "2026-08-01" }, ReasonInvalidDate},
		{"beyond horizon", func(r *models.BookingRequest) { r.AppointmentDate = "2026-12-24" }, ReasonInvalidDate},
		{"off-grid time", func(r *models.BookingRequest) { r.AppointmentTime = "09:45" }, ReasonInvalidTime},
		{"outside hours", func(r *models.BookingRequest) { r.AppointmentTime = "18:00" }, ReasonInvalidTime},
	}
	for _, tc := range cases {
		req := validRequest()
		tc.mutate(&req)
		_, err := engine.SubmitBooking(context.Background(), req)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, err)
			continue
		}
		if vErr.Code != tc.wantCode {
			t.Errorf("%s: code = %q, want %q", tc.name, vErr.Code, tc.wantCode)
		}
	}
}

func TestSubmitBookingSameDayDisallowed(t *testing.T) {
	shop := testShop()
	shop.Preferences.SameDayBooking = boolPtr(false)
	engine, _ := newTestEngine(shop)

	req := validRequest()
	req.AppointmentDate = "2026-09-01" // engine "today"
	_, err := engine.SubmitBooking(context.Background(), req)
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Code != ReasonInvalidDate {
		t.Errorf("expected invalid_date for same-day submission, got %v", err)
	}
}

func TestSubmitBookingRequirePhone(t *testing.T) {
	shop := testShop()
	shop.Preferences.RequirePhone = true
	engine, _ := newTestEngine(shop)

	req := validRequest()
	_, err := engine.SubmitBooking(context.Background(), req)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError without phone, got %v", err)
	}

	req.UserPhone = "+31 6 1234 5678"
	if _, err := engine.SubmitBooking(context.Background(), req); err != nil {
		t.Errorf("expected success with phone, got %v", err)
	}
}

func TestUpdateBookingRescheduleExcludesOwnRecord(t *testing.T) {
	existing := models.Booking{
		ID: "b1", ShopID: "shop-1",
		AppointmentDate: "2026-09-10", AppointmentTime: "09:30",
		Status: models.BookingStatusConfirmed,
	}
	engine, _ := newTestEngine(testShop(), existing)

	// Moving the booking onto its own slot must not self-conflict.
	newTime := "9:30"
	booking, err := engine.UpdateBooking(context.Background(), "b1", models.BookingUpdate{AppointmentTime: &newTime})
	if err != nil {
		t.Fatalf("UpdateBooking returned error: %v", err)
	}
	if booking.AppointmentTime != "09:30" {
		t.Errorf("time = %q, want normalized 09:30", booking.AppointmentTime)
	}
}

func TestUpdateBookingDateOnlyKeepsUnpaddedStoredTime(t *testing.T) {
	engine, _ := newTestEngine(testShop(), models.Booking{
		ID: "b1", ShopID: "shop-1",
		AppointmentDate: "2026-09-10", AppointmentTime: "9:30",
		Status: models.BookingStatusConfirmed,
	})

	// A date-only move must not trip slot alignment on the unpadded stored
	// time; "9:30" is the 09:30 grid slot.
	newDate := "2026-09-11"
	booking, err := engine.UpdateBooking(context.Background(), "b1", models.BookingUpdate{AppointmentDate: &newDate})
	if err != nil {
		t.Fatalf("UpdateBooking returned error: %v", err)
	}
	if booking.AppointmentDate != "2026-09-11" {
		t.Errorf("date = %q, want 2026-09-11", booking.AppointmentDate)
	}
	if booking.AppointmentTime != "09:30" {
		t.Errorf("time = %q, want normalized 09:30", booking.AppointmentTime)
	}
}

func TestUpdateBookingRescheduleConflictsWithOtherBooking(t *testing.T) {
	engine, _ := newTestEngine(testShop(),
		models.Booking{ID: "b1", ShopID: "shop-1", AppointmentDate: "2026-09-10", AppointmentTime: "09:30", Status: models.BookingStatusConfirmed},
		models.Booking{ID: "b2", ShopID: "shop-1", AppointmentDate: "2026-09-10", AppointmentTime: "10:00", Status: models.BookingStatusConfirmed},
	)

	newTime := "10:00"
	_, err := engine.UpdateBooking(context.Background(), "b1", models.BookingUpdate{AppointmentTime: &newTime})
	var conflict *CapacityConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected CapacityConflictError, got %v", err)
	}
}

func TestUpdateBookingStatusTransitionUnguarded(t *testing.T) {
	engine, _ := newTestEngine(testShop(), models.Booking{
		ID: "b1", ShopID: "shop-1",
		AppointmentDate: "2026-09-10", AppointmentTime: "09:30",
		Status: models.BookingStatusCompleted,
	})

	// completed -> pending is allowed; transitions carry no state machine.
	status := models.BookingStatusPending
	booking, err := engine.UpdateBooking(context.Background(), "b1", models.BookingUpdate{Status: &status})
	if err != nil {
		t.Fatalf("UpdateBooking returned error: %v", err)
	}
	if booking.Status != models.BookingStatusPending {
		t.Errorf("status = %q, want pending", booking.Status)
	}
}

func TestUpdateBookingRejectsUnknownStatus(t *testing.T) {
	engine, _ := newTestEngine(testShop(), models.Booking{
		ID: "b1", ShopID: "shop-1",
		AppointmentDate: "2026-09-10", AppointmentTime: "09:30",
		Status: models.BookingStatusPending,
	})

	status := "archived"
	_, err := engine.UpdateBooking(context.Background(), "b1", models.BookingUpdate{Status: &status})
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Code != ReasonInvalidStatus {
		t.Errorf("expected invalid_status, got %v", err)
	}
}

func TestCancelBookingReleasesSlot(t *testing.T) {
	engine, _ := newTestEngine(testShop(), models.Booking{
		ID: "b1", ShopID: "shop-1",
		AppointmentDate: "2026-09-10", AppointmentTime: "09:30",
		Status: models.BookingStatusConfirmed,
	})

	if _, err := engine.CancelBooking(context.Background(), "b1"); err != nil {
		t.Fatalf("CancelBooking returned error: %v", err)
	}

	// The freed slot is bookable again.
	if _, err := engine.SubmitBooking(context.Background(), validRequest()); err != nil {
		t.Errorf("expected freed slot to accept a booking, got %v", err)
	}
}

func TestSubmitBookingSequentialFill(t *testing.T) {
	shop := testShop()
	shop.Preferences.MaxBookingsPerSlot = 2
	engine, _ := newTestEngine(shop)

	req := validRequest()
	for i := 0; i < 2; i++ {
		if _, err := engine.SubmitBooking(context.Background(), req); err != nil {
			t.Fatalf("booking %d failed: %v", i+1, err)
		}
	}
	_, err := engine.SubmitBooking(context.Background(), req)
	var conflict *CapacityConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("third booking should conflict, got %v", err)
	}
}
