package abstractRepo

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

// MongoAbstractRepo implements AbstractRepository using MongoDB.
type MongoAbstractRepo struct {
	coll *mongo.Collection
}

// NewMongoAbstractRepo creates a new AbstractRepository using MongoDB.
func NewMongoAbstractRepo() AbstractRepository {
	coll := database.DB().Collection("abstracts")
	repo := &MongoAbstractRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAbstractRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "category", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves an abstract by its unique ID.
func (r *MongoAbstractRepo) GetByID(id string) (*models.Abstract, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var a models.Abstract
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&a); err != nil {
		return nil, fmt.Errorf("failed to fetch abstract with id %s: %w", id, err)
	}
	return &a, nil
}

// GetByUserAndCategory retrieves a user's submission in a category.
func (r *MongoAbstractRepo) GetByUserAndCategory(userID, category string) (*models.Abstract, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var a models.Abstract
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "category": category}).Decode(&a)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch abstract for user %s: %w", userID, err)
	}
	return &a, nil
}

// ListByUser retrieves all submissions by a user.
func (r *MongoAbstractRepo) ListByUser(userID string) ([]models.Abstract, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list abstracts for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var abstracts []models.Abstract
	if err := cursor.All(ctx, &abstracts); err != nil {
		return nil, fmt.Errorf("failed to decode abstracts for user %s: %w", userID, err)
	}
	return abstracts, nil
}

// GetAll retrieves all submissions.
func (r *MongoAbstractRepo) GetAll() ([]models.Abstract, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list abstracts: %w", err)
	}
	defer cursor.Close(ctx)

	var abstracts []models.Abstract
	if err := cursor.All(ctx, &abstracts); err != nil {
		return nil, fmt.Errorf("failed to decode abstracts: %w", err)
	}
	return abstracts, nil
}

// Create inserts a new submission document.
func (r *MongoAbstractRepo) Create(a *models.Abstract) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("failed to create abstract: %w", err)
	}
	return nil
}

// Update writes back a modified submission document.
func (r *MongoAbstractRepo) Update(a *models.Abstract) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	a.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": a.ID}, bson.M{"$set": a})
	if err != nil {
		return fmt.Errorf("failed to update abstract %s: %w", a.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("abstract with id %s not found", a.ID)
	}
	return nil
}

// Delete removes a submission document by its ID.
func (r *MongoAbstractRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete abstract with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("abstract with id %s not found", id)
	}
	return nil
}
