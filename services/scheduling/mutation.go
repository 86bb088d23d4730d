package scheduling

import (
	"context"
	"fmt"
	"time"

	"fixhive/models"
	"fixhive/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	lockTTL        = 3 * time.Second
	lockAttempts   = 5
	lockRetryDelay = 100 * time.Millisecond
)

// SubmitBooking validates a booking request and creates the record. The
// capacity check runs under a per (shop, date) lock immediately before the
// write, so two concurrent requests for the same slot cannot both commit.
func (se *DefaultSchedulingEngine) SubmitBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	if req.ShopID == "" {
		return nil, NewValidationError("missing_shop", "shopId is required")
	}
	if err := validateDateFormat(req.AppointmentDate); err != nil {
		return nil, err
	}
	if err := validateTimeFormat(req.AppointmentTime); err != nil {
		return nil, err
	}
	if req.Status != "" && !models.IsValidStatus(req.Status) {
		return nil, NewValidationError(ReasonInvalidStatus, fmt.Sprintf("unknown status %q", req.Status))
	}

	prefs, err := se.Shops.GetBookingPreferences(ctx, req.ShopID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking preferences: %w", err)
	}

	if prefs.RequirePhone && req.UserPhone == "" {
		return nil, NewValidationError("missing_phone", "this shop requires a phone number for bookings")
	}
	if err := se.validateBookingWindow(prefs, req.AppointmentDate); err != nil {
		return nil, err
	}
	slot := NormalizeTimeLabel(req.AppointmentTime)
	if err := validateSlotAlignment(prefs, slot); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.BookingStatusPending
		if prefs.AutoConfirm {
			status = models.BookingStatusConfirmed
		}
	}

	now := se.now()
	booking := &models.Booking{
		ID:              uuid.New().String(),
		ShopID:          req.ShopID,
		UserID:          req.UserID,
		DiagnosisID:     req.DiagnosisID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: slot,
		Status:          status,
		UserName:        req.UserName,
		UserEmail:       req.UserEmail,
		UserPhone:       req.UserPhone,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	unlock, err := se.lockShopDate(ctx, req.ShopID, req.AppointmentDate)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := se.checkCapacity(ctx, prefs, req.ShopID, req.AppointmentDate, slot, ""); err != nil {
		logger.Info("booking rejected on capacity",
			zap.String("shopID", req.ShopID),
			zap.String("date", req.AppointmentDate),
			zap.String("slot", slot),
			zap.Error(err))
		return nil, err
	}
	if err := se.Bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	se.invalidateAvailability(ctx, req.ShopID, req.AppointmentDate)

	return booking, nil
}

// UpdateBooking applies a partial update. Date/time changes are re-validated
// against capacity with the booking's own record excluded from the tally.
func (se *DefaultSchedulingEngine) UpdateBooking(ctx context.Context, bookingID string, update models.BookingUpdate) (*models.Booking, error) {
	booking, err := se.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	newDate := booking.AppointmentDate
	// Stored times may lack a leading zero; normalize before comparing against
	// the padded slot grid.
	newTime := NormalizeTimeLabel(booking.AppointmentTime)
	if update.AppointmentDate != nil {
		if err := validateDateFormat(*update.AppointmentDate); err != nil {
			return nil, err
		}
		newDate = *update.AppointmentDate
	}
	if update.AppointmentTime != nil {
		if err := validateTimeFormat(*update.AppointmentTime); err != nil {
			return nil, err
		}
		newTime = NormalizeTimeLabel(*update.AppointmentTime)
	}
	if update.Status != nil {
		if !models.IsValidStatus(*update.Status) {
			return nil, NewValidationError(ReasonInvalidStatus, fmt.Sprintf("unknown status %q", *update.Status))
		}
	}

	slotChanged := newDate != booking.AppointmentDate || newTime != NormalizeTimeLabel(booking.AppointmentTime)
	if slotChanged {
		prefs, err := se.Shops.GetBookingPreferences(ctx, booking.ShopID)
		if err != nil {
			return nil, fmt.Errorf("failed to load booking preferences: %w", err)
		}
		if err := se.validateBookingWindow(prefs, newDate); err != nil {
			return nil, err
		}
		if err := validateSlotAlignment(prefs, newTime); err != nil {
			return nil, err
		}

		unlock, err := se.lockShopDate(ctx, booking.ShopID, newDate)
		if err != nil {
			return nil, err
		}
		defer unlock()

		if err := se.checkCapacity(ctx, prefs, booking.ShopID, newDate, newTime, booking.ID); err != nil {
			return nil, err
		}
	}

	oldDate := booking.AppointmentDate
	booking.AppointmentDate = newDate
	booking.AppointmentTime = newTime
	if update.Status != nil {
		ApplyStatusTransition(booking, *update.Status)
	}
	if update.Notes != nil {
		booking.Notes = *update.Notes
	}
	booking.UpdatedAt = se.now()

	if err := se.Bookings.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	se.invalidateAvailability(ctx, booking.ShopID, oldDate)
	se.invalidateAvailability(ctx, booking.ShopID, newDate)

	return booking, nil
}

// CancelBooking releases the booking's slot capacity. The record stays in
// history.
func (se *DefaultSchedulingEngine) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := se.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	ApplyStatusTransition(booking, models.BookingStatusCancelled)
	booking.UpdatedAt = se.now()
	if err := se.Bookings.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	se.invalidateAvailability(ctx, booking.ShopID, booking.AppointmentDate)
	return booking, nil
}

// ListShopBookings returns a shop's bookings for a date, all statuses.
func (se *DefaultSchedulingEngine) ListShopBookings(ctx context.Context, shopID, date string) ([]models.Booking, error) {
	if err := validateDateFormat(date); err != nil {
		return nil, err
	}
	return se.Bookings.ListByShopDate(ctx, shopID, date)
}

// ApplyStatusTransition moves a booking to the given status. Transitions are
// deliberately unguarded (any status may move to any other, for shop-owner
// and admin overrides); a guard slots in here without touching callers.
func ApplyStatusTransition(booking *models.Booking, status string) {
	booking.Status = status
}

// checkCapacity re-runs the daily and per-slot tallies right before a write.
// excludeID keeps a rescheduled booking from colliding with itself.
func (se *DefaultSchedulingEngine) checkCapacity(ctx context.Context, prefs models.BookingPreferences, shopID, date, slot, excludeID string) error {
	dayCount, err := se.Bookings.CountActiveByDate(ctx, shopID, date, excludeID)
	if err != nil {
		return fmt.Errorf("failed to count daily bookings: %w", err)
	}
	if dayCount >= prefs.MaxBookingsPerDay {
		return &CapacityConflictError{Scope: "day", Limit: prefs.MaxBookingsPerDay}
	}

	slotCount, err := se.Bookings.CountActiveAtSlot(ctx, shopID, date, slot, excludeID)
	if err != nil {
		return fmt.Errorf("failed to count slot bookings: %w", err)
	}
	if slotCount >= prefs.MaxBookingsPerSlot {
		return &CapacityConflictError{Scope: "slot", Limit: prefs.MaxBookingsPerSlot}
	}
	return nil
}

// lockShopDate serializes mutations for one shop+date. Contention past the
// retry budget surfaces as a retryable error, never a silent overbooking.
func (se *DefaultSchedulingEngine) lockShopDate(ctx context.Context, shopID, date string) (func(), error) {
	if se.Locker == nil {
		return func() {}, nil
	}
	key := bookingLockKey(shopID, date)
	for attempt := 0; attempt < lockAttempts; attempt++ {
		ok, err := se.Locker.Acquire(ctx, key, lockTTL)
		if err != nil {
			return nil, fmt.Errorf("slot lock unavailable: %w", err)
		}
		if ok {
			return func() {
				if err := se.Locker.Release(context.Background(), key); err != nil {
					utils.GetLogger().Warn("failed to release slot lock", zap.String("key", key), zap.Error(err))
				}
			}, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}
	return nil, fmt.Errorf("booking for shop %s on %s is already in progress, retry shortly", shopID, date)
}

func (se *DefaultSchedulingEngine) validateBookingWindow(prefs models.BookingPreferences, date string) error {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return NewValidationError(ReasonInvalidDate, fmt.Sprintf("date %q is not YYYY-MM-DD", date))
	}
	now := se.now()
	today, _ := time.Parse("2006-01-02", now.Format("2006-01-02"))

	if day.Before(today) {
		return NewValidationError(ReasonInvalidDate, "appointment date is in the past")
	}
	if day.Equal(today) && !prefs.SameDayAllowed() {
		return NewValidationError(ReasonInvalidDate, "same-day booking is not available for this shop")
	}
	if prefs.AdvanceBookingDays > 0 {
		horizon := today.AddDate(0, 0, prefs.AdvanceBookingDays)
		if day.After(horizon) {
			return NewValidationError(ReasonInvalidDate,
				fmt.Sprintf("appointments can be booked at most %d days in advance", prefs.AdvanceBookingDays))
		}
	}
	return nil
}

// validateSlotAlignment rejects times that do not land on the slot grid
// generated from the shop's current preferences. An arbitrary time string
// would bypass per-slot capacity entirely.
func validateSlotAlignment(prefs models.BookingPreferences, slot string) error {
	for _, s := range GenerateSlots(prefs.WorkingHours.Start, prefs.WorkingHours.End, prefs.SlotDurationMinutes) {
		if s == slot {
			return nil
		}
	}
	return NewValidationError(ReasonInvalidTime,
		fmt.Sprintf("time %s does not match any bookable slot for this shop", slot))
}

func validateDateFormat(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return NewValidationError(ReasonInvalidDate, fmt.Sprintf("date %q is not YYYY-MM-DD", date))
	}
	return nil
}

func validateTimeFormat(label string) error {
	if !ValidTimeLabel(label) {
		return NewValidationError(ReasonInvalidTime, fmt.Sprintf("time %q is not HH:MM", label))
	}
	return nil
}
