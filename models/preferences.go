package models

// WorkingHours is a shop's daily opening window, both bounds "HH:MM" 24h.
type WorkingHours struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// DeliveryPricing holds the per-channel handling fees a shop charges.
type DeliveryPricing struct {
	Pickup float64 `bson:"pickup" json:"pickup"`
	Home   float64 `bson:"home" json:"home"`
	Mail   float64 `bson:"mail" json:"mail"`
}

// BookingPreferences is the denormalized scheduling configuration owned by a
// shop. BufferMinutes is informational and is not subtracted from slot
// generation. SameDayBooking and BufferMinutes are pointers so a stored
// document that omits them reads as "use the default" rather than false/0.
type BookingPreferences struct {
	WorkingHours        WorkingHours    `bson:"workingHours" json:"workingHours"`
	SlotDurationMinutes int             `bson:"slotDurationMinutes" json:"slotDurationMinutes"`
	MaxBookingsPerDay   int             `bson:"maxBookingsPerDay" json:"maxBookingsPerDay"`
	MaxBookingsPerSlot  int             `bson:"maxBookingsPerSlot" json:"maxBookingsPerSlot"`
	BufferMinutes       *int            `bson:"bufferMinutes,omitempty" json:"bufferMinutes,omitempty"`
	AdvanceBookingDays  int             `bson:"advanceBookingDays" json:"advanceBookingDays"`
	SameDayBooking      *bool           `bson:"sameDayBooking,omitempty" json:"sameDayBooking,omitempty"`
	RequirePhone        bool            `bson:"requirePhone" json:"requirePhone"`
	AutoConfirm         bool            `bson:"autoConfirm" json:"autoConfirm"`
	DeliveryPricing     DeliveryPricing `bson:"deliveryPricing" json:"deliveryPricing"`
}

// SameDayAllowed reports whether same-day bookings are accepted; an absent
// field defaults to allowed.
func (p BookingPreferences) SameDayAllowed() bool {
	return p.SameDayBooking == nil || *p.SameDayBooking
}

// DefaultBookingPreferences returns the canonical defaults applied when a
// shop has no stored configuration.
func DefaultBookingPreferences() BookingPreferences {
	return BookingPreferences{
		WorkingHours:        WorkingHours{Start: "09:00", End: "17:00"},
		SlotDurationMinutes: 30,
		MaxBookingsPerDay:   10,
		MaxBookingsPerSlot:  1,
		BufferMinutes:       intRef(15),
		AdvanceBookingDays:  30,
		SameDayBooking:      boolRef(true),
	}
}

func boolRef(b bool) *bool { return &b }
func intRef(n int) *int    { return &n }

// FillDefaults replaces absent or invalid fields with the canonical defaults.
// It is the single default-filling point, applied once at the read boundary.
func (p BookingPreferences) FillDefaults() BookingPreferences {
	def := DefaultBookingPreferences()
	if p.WorkingHours.Start == "" {
		p.WorkingHours.Start = def.WorkingHours.Start
	}
	if p.WorkingHours.End == "" {
		p.WorkingHours.End = def.WorkingHours.End
	}
	if p.SlotDurationMinutes <= 0 {
		p.SlotDurationMinutes = def.SlotDurationMinutes
	}
	if p.MaxBookingsPerDay < 1 {
		p.MaxBookingsPerDay = def.MaxBookingsPerDay
	}
	if p.MaxBookingsPerSlot < 1 {
		p.MaxBookingsPerSlot = def.MaxBookingsPerSlot
	}
	if p.BufferMinutes == nil || *p.BufferMinutes < 0 {
		p.BufferMinutes = def.BufferMinutes
	}
	if p.AdvanceBookingDays < 0 {
		p.AdvanceBookingDays = def.AdvanceBookingDays
	}
	if p.SameDayBooking == nil {
		p.SameDayBooking = def.SameDayBooking
	}
	return p
}
