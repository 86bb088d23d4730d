package bookingRepo

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ensureIndexes creates the indexes backing the capacity queries. The
// compound index covers shop+date+time+status lookups on the hot path.
func (repo *MongoBookingRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}},
		{Keys: bson.D{
			{Key: "shopId", Value: 1},
			{Key: "appointmentDate", Value: 1},
			{Key: "appointmentTime", Value: 1},
			{Key: "status", Value: 1},
		}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("warning: failed to create booking indexes: %v", err)
	}
}
