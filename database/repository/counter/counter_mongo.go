package counterRepo

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

// MongoCounterRepo implements CounterRepository using MongoDB.
type MongoCounterRepo struct {
	coll *mongo.Collection
}

// NewMongoCounterRepo creates a new CounterRepository using MongoDB.
func NewMongoCounterRepo() CounterRepository {
	coll := database.DB().Collection("counters")
	repo := &MongoCounterRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCounterRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Get retrieves a counter by name. Returns nil when it has not been seeded.
func (r *MongoCounterRepo) Get(name string) (*models.Counter, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var counter models.Counter
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&counter); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch counter %s: %w", name, err)
	}
	return &counter, nil
}

// EnsureSeed inserts the counter at the given value if absent. A concurrent
// seed by another writer surfaces as a duplicate-key error and is swallowed.
func (r *MongoCounterRepo) EnsureSeed(name string, value int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	counter := models.Counter{Name: name, Sequence: value, UpdatedAt: time.Now()}
	if _, err := r.coll.InsertOne(ctx, counter); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to seed counter %s: %w", name, err)
	}
	return nil
}

// NextSequence atomically increments the counter and returns the new value.
// Atomicity comes from the document-level find-and-modify; no two callers
// can observe the same sequence.
func (r *MongoCounterRepo) NextSequence(name string) (int, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"name": name}
	update := bson.M{
		"$inc": bson.M{"sequence": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var counter models.Counter
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, ErrCounterMissing
		}
		return 0, fmt.Errorf("failed to increment counter %s: %w", name, err)
	}
	return counter.Sequence, nil
}

// RaiseTo lifts the counter to at least min via $max, so it is never
// lowered regardless of interleaving.
func (r *MongoCounterRepo) RaiseTo(name string, min int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"name": name}
	update := bson.M{
		"$max": bson.M{"sequence": min},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to raise counter %s: %w", name, err)
	}
	return nil
}

// Set overwrites the counter value.
func (r *MongoCounterRepo) Set(name string, value int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"name": name}
	update := bson.M{"$set": bson.M{"sequence": value, "updated_at": time.Now()}}
	opts := options.Update().SetUpsert(true)

	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to set counter %s: %w", name, err)
	}
	return nil
}
