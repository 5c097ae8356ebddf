package accommodationRepo

import (
	"context"
	"fmt"
	"time"

	"confreg/database"
	"confreg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAccommodationRepo implements AccommodationRepository using MongoDB.
type MongoAccommodationRepo struct {
	coll *mongo.Collection
}

// NewMongoAccommodationRepo creates a new AccommodationRepository using MongoDB.
func NewMongoAccommodationRepo() AccommodationRepository {
	coll := database.DB().Collection("accommodations")
	repo := &MongoAccommodationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAccommodationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoAccommodationRepo) GetByID(id string) (*models.Accommodation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var a models.Accommodation
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&a); err != nil {
		return nil, fmt.Errorf("failed to fetch accommodation with id %s: %w", id, err)
	}
	return &a, nil
}

// GetByUserID retrieves all bookings for a user.
func (r *MongoAccommodationRepo) GetByUserID(userID string) ([]models.Accommodation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list accommodations for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Accommodation
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode accommodations for user %s: %w", userID, err)
	}
	return bookings, nil
}

// Create inserts a new booking document.
func (r *MongoAccommodationRepo) Create(a *models.Accommodation) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("failed to create accommodation: %w", err)
	}
	return nil
}

// SetFields applies a targeted $set on a booking document.
func (r *MongoAccommodationRepo) SetFields(id string, fields bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update accommodation %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("accommodation with id %s not found", id)
	}
	return nil
}

// Delete removes a booking document by its ID.
func (r *MongoAccommodationRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete accommodation with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("accommodation with id %s not found", id)
	}
	return nil
}
