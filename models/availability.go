package models

// AvailabilityResult is the read-only projection of open slots for one shop
// on one date. An empty slot list with a Message is a valid outcome, not an
// error.
type AvailabilityResult struct {
	AvailableSlots         []string `json:"availableSlots"`
	TotalSlots             int      `json:"totalSlots"`
	BookedSlots            int      `json:"bookedSlots"`
	AvailableCount         int      `json:"availableCount"`
	RemainingDailyCapacity int      `json:"remainingDailyCapacity"`
	Message                string   `json:"message,omitempty"`
}
