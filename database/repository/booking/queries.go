package bookingRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// CountActiveByDate counts pending/confirmed bookings for a shop on a date.
// When excludeID is non-empty that booking is left out of the count, so a
// reschedule does not collide with its own record.
func (repo *MongoBookingRepo) CountActiveByDate(ctx context.Context, shopID, date, excludeID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"shopId":          shopID,
		"appointmentDate": date,
		"status":          bson.M{"$in": activeStatuses()},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	count, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count active bookings: %w", err)
	}
	return int(count), nil
}

// CountActiveAtSlot counts pending/confirmed bookings at one slot. Stored
// times may lack a leading zero, so both "09:00" and "9:00" forms match.
func (repo *MongoBookingRepo) CountActiveAtSlot(ctx context.Context, shopID, date, timeLabel, excludeID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"shopId":          shopID,
		"appointmentDate": date,
		"appointmentTime": bson.M{"$in": timeLabelForms(timeLabel)},
		"status":          bson.M{"$in": activeStatuses()},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	count, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings at slot: %w", err)
	}
	return int(count), nil
}

// timeLabelForms returns the padded and unpadded spellings of a slot label.
func timeLabelForms(label string) []string {
	forms := []string{label}
	if strings.HasPrefix(label, "0") && len(label) == 5 {
		forms = append(forms, label[1:])
	} else if len(label) == 4 {
		forms = append(forms, "0"+label)
	}
	return forms
}
