package scheduling

import (
	"fmt"
	"strconv"
	"strings"
)

// GenerateSlots expands a working-hours window into the ordered list of slot
// start labels ("HH:MM", zero-padded). Slots are emitted from start, stepping
// by durationMinutes, and stop strictly before end: a slot must start before
// closing time, no fits-within-hours check is applied. Invalid configuration
// (duration <= 0, start >= end, unparseable bounds) yields an empty list,
// which callers treat as "closed under this configuration".
func GenerateSlots(start, end string, durationMinutes int) []string {
	if durationMinutes <= 0 {
		return nil
	}
	startMin, okStart := parseTimeLabel(start)
	endMin, okEnd := parseTimeLabel(end)
	if !okStart || !okEnd || startMin >= endMin {
		return nil
	}

	var slots []string
	for t := startMin; t < endMin; t += durationMinutes {
		slots = append(slots, formatTimeLabel(t))
	}
	return slots
}

// NormalizeTimeLabel zero-pads an "H:MM" style label to canonical "HH:MM".
// Stored times may omit leading zeros; all comparisons go through this.
func NormalizeTimeLabel(label string) string {
	t, ok := parseTimeLabel(label)
	if !ok {
		return label
	}
	return formatTimeLabel(t)
}

// ValidTimeLabel reports whether label parses as a 24h "HH:MM" time.
func ValidTimeLabel(label string) bool {
	_, ok := parseTimeLabel(label)
	return ok
}

// parseTimeLabel converts "HH:MM" (leading zeros optional) to minutes from
// midnight.
func parseTimeLabel(label string) (int, bool) {
	parts := strings.Split(label, ":")
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

func formatTimeLabel(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
