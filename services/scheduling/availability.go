package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fixhive/models"
	"fixhive/utils"

	"go.uber.org/zap"
)

// AvailableSlots computes the open-slot projection for a shop on a date. It
// reflects only pending/confirmed bookings; cancelled and completed ones
// never occupy capacity. The projection is read-only and may be served
// slightly stale from cache; the write path re-checks capacity regardless.
func (se *DefaultSchedulingEngine) AvailableSlots(ctx context.Context, shopID, date string) (models.AvailabilityResult, error) {
	logger := utils.GetLogger()

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return models.AvailabilityResult{}, NewValidationError(ReasonInvalidDate, fmt.Sprintf("date %q is not YYYY-MM-DD", date))
	}

	if cached, ok := se.cachedAvailability(ctx, shopID, date); ok {
		return cached, nil
	}

	prefs, err := se.Shops.GetBookingPreferences(ctx, shopID)
	if err != nil {
		return models.AvailabilityResult{}, fmt.Errorf("failed to load booking preferences: %w", err)
	}

	// Same-day gate comes first; nothing else is computed when it trips.
	if date == se.now().Format("2006-01-02") && !prefs.SameDayAllowed() {
		return models.AvailabilityResult{
			AvailableSlots: []string{},
			Message:        "Same-day booking is not available for this shop",
		}, nil
	}

	active, err := se.Bookings.GetActiveByDate(ctx, shopID, date)
	if err != nil {
		return models.AvailabilityResult{}, fmt.Errorf("failed to load active bookings: %w", err)
	}

	result := ProjectAvailability(prefs, active)
	se.cacheAvailability(ctx, shopID, date, result)

	logger.Debug("availability computed",
		zap.String("shopID", shopID),
		zap.String("date", date),
		zap.Int("available", result.AvailableCount))
	return result, nil
}

// ProjectAvailability is the pure projection: slot grid minus per-slot
// tallies under the daily cap. Exposed for the mutation path and tests.
func ProjectAvailability(prefs models.BookingPreferences, active []models.Booking) models.AvailabilityResult {
	dailyCount := 0
	for _, b := range active {
		if b.IsActive() {
			dailyCount++
		}
	}

	remainingDaily := prefs.MaxBookingsPerDay - dailyCount
	if remainingDaily < 0 {
		remainingDaily = 0
	}

	if dailyCount >= prefs.MaxBookingsPerDay {
		return models.AvailabilityResult{
			AvailableSlots:         []string{},
			BookedSlots:            dailyCount,
			RemainingDailyCapacity: 0,
			Message:                fmt.Sprintf("Daily booking limit of %d reached", prefs.MaxBookingsPerDay),
		}
	}

	slots := GenerateSlots(prefs.WorkingHours.Start, prefs.WorkingHours.End, prefs.SlotDurationMinutes)

	// Tally on normalized labels; stored times may omit leading zeros.
	tally := make(map[string]int, len(slots))
	for _, b := range active {
		if b.IsActive() {
			tally[NormalizeTimeLabel(b.AppointmentTime)]++
		}
	}

	available := make([]string, 0, len(slots))
	for _, slot := range slots {
		if tally[slot] < prefs.MaxBookingsPerSlot {
			available = append(available, slot)
		}
	}

	result := models.AvailabilityResult{
		AvailableSlots:         available,
		TotalSlots:             len(slots),
		BookedSlots:            dailyCount,
		AvailableCount:         len(available),
		RemainingDailyCapacity: remainingDaily,
	}
	if len(slots) == 0 {
		result.Message = "Shop has no bookable hours configured"
	}
	return result
}

func availabilityCacheKey(shopID, date string) string {
	return fmt.Sprintf("availability:%s:%s", shopID, date)
}

func (se *DefaultSchedulingEngine) cachedAvailability(ctx context.Context, shopID, date string) (models.AvailabilityResult, bool) {
	if se.Cache == nil {
		return models.AvailabilityResult{}, false
	}
	data, err := se.Cache.Get(ctx, availabilityCacheKey(shopID, date)).Result()
	if err != nil {
		return models.AvailabilityResult{}, false
	}
	var result models.AvailabilityResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return models.AvailabilityResult{}, false
	}
	return result, true
}

func (se *DefaultSchedulingEngine) cacheAvailability(ctx context.Context, shopID, date string, result models.AvailabilityResult) {
	if se.Cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	ttl := se.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if err := se.Cache.Set(ctx, availabilityCacheKey(shopID, date), data, ttl).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache availability", zap.Error(err))
	}
}

// invalidateAvailability drops the cached projection after a mutation.
func (se *DefaultSchedulingEngine) invalidateAvailability(ctx context.Context, shopID, date string) {
	if se.Cache == nil {
		return
	}
	se.Cache.Del(ctx, availabilityCacheKey(shopID, date))
}
