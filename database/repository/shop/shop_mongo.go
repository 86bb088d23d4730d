package shopRepo

import (
	"context"
	"fmt"
	"log"
	"time"

	"fixhive/database"
	"fixhive/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoShopRepo is the MongoDB implementation of ShopRepository.
type MongoShopRepo struct {
	coll *mongo.Collection
}

func NewMongoShopRepo() *MongoShopRepo {
	repo := &MongoShopRepo{coll: database.GetCollection("shops")}
	repo.ensureIndexes()
	return repo
}

func (repo *MongoShopRepo) GetByID(ctx context.Context, id string) (*models.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var shop models.Shop
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&shop); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("shop %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch shop %s: %w", id, err)
	}
	return &shop, nil
}

func (repo *MongoShopRepo) GetBookingPreferences(ctx context.Context, shopID string) (models.BookingPreferences, error) {
	shop, err := repo.GetByID(ctx, shopID)
	if err != nil {
		return models.BookingPreferences{}, err
	}
	return shop.BookingPrefs(), nil
}

func (repo *MongoShopRepo) List(ctx context.Context) ([]models.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	defer cursor.Close(ctx)

	var shops []models.Shop
	if err := cursor.All(ctx, &shops); err != nil {
		return nil, fmt.Errorf("failed to decode shops: %w", err)
	}
	return shops, nil
}

func (repo *MongoShopRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: -1}}},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("warning: failed to create shop indexes: %v", err)
	}
}
