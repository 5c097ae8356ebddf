package registrationRepo

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"confreg/database"
	"confreg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRegistrationRepo implements RegistrationRepository using MongoDB.
type MongoRegistrationRepo struct {
	coll *mongo.Collection
}

// NewMongoRegistrationRepo creates a new RegistrationRepository using MongoDB.
func NewMongoRegistrationRepo() RegistrationRepository {
	coll := database.DB().Collection("registrations")
	repo := &MongoRegistrationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoRegistrationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "registration_number", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a registration by its unique ID.
func (r *MongoRegistrationRepo) GetByID(id string) (*models.Registration, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var reg models.Registration
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&reg); err != nil {
		return nil, fmt.Errorf("failed to fetch registration with id %s: %w", id, err)
	}
	return &reg, nil
}

// GetByUserID retrieves the registration belonging to a user. Returns nil
// when the user has not registered yet.
func (r *MongoRegistrationRepo) GetByUserID(userID string) (*models.Registration, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var reg models.Registration
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&reg); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch registration for user %s: %w", userID, err)
	}
	return &reg, nil
}

// GetByNumber retrieves a registration by its registration number. Returns
// nil when no registration holds that number.
func (r *MongoRegistrationRepo) GetByNumber(number string) (*models.Registration, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var reg models.Registration
	if err := r.coll.FindOne(ctx, bson.M{"registration_number": number}).Decode(&reg); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch registration %s: %w", number, err)
	}
	return &reg, nil
}

// GetAll retrieves all registrations.
func (r *MongoRegistrationRepo) GetAll() ([]models.Registration, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve registrations: %w", err)
	}
	defer cursor.Close(ctx)

	var regs []models.Registration
	for cursor.Next(ctx) {
		var reg models.Registration
		if err := cursor.Decode(&reg); err != nil {
			return nil, fmt.Errorf("failed to decode registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, nil
}

// Create inserts a new registration document.
func (r *MongoRegistrationRepo) Create(reg *models.Registration) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	reg.CreatedAt = now
	reg.UpdatedAt = now
	reg.Version = 1

	if _, err := r.coll.InsertOne(ctx, reg); err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

// Update writes back a modified registration. The write is a compare-and-swap
// on the version field; a mismatch reports ErrVersionConflict.
func (r *MongoRegistrationRepo) Update(reg *models.Registration) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	prevVersion := reg.Version
	reg.Version = prevVersion + 1
	reg.UpdatedAt = time.Now()

	filter := bson.M{"id": reg.ID, "version": prevVersion}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": reg})
	if err != nil {
		reg.Version = prevVersion
		return fmt.Errorf("failed to update registration %s: %w", reg.ID, err)
	}
	if result.MatchedCount == 0 {
		reg.Version = prevVersion
		return ErrVersionConflict
	}
	return nil
}

// SetFields applies a targeted $set on a registration document. Used for
// ledger-derived aggregates and notification bookkeeping, which rely on
// per-document atomicity rather than the version guard.
func (r *MongoRegistrationRepo) SetFields(id string, fields bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update registration %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("registration with id %s not found", id)
	}
	return nil
}

// Delete removes a registration document by its ID.
func (r *MongoRegistrationRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete registration with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("registration with id %s not found", id)
	}
	return nil
}

// CountCourseSelections counts registrations holding the certified-course
// add-on. The count feeds the seat-cap check immediately before insert.
func (r *MongoRegistrationRepo) CountCourseSelections() (int, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"selections.add_aoa_course": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count course registrations: %w", err)
	}
	return int(n), nil
}

// MaxNumberSuffix scans registration numbers carrying the given prefix and
// returns the highest numeric suffix, or 0 when none exist. Used to seed the
// allocation counter.
func (r *MongoRegistrationRepo) MaxNumberSuffix(prefix string) (int, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"registration_number": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}}
	opts := options.Find().SetProjection(bson.M{"registration_number": 1})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to scan registration numbers: %w", err)
	}
	defer cursor.Close(ctx)

	max := 0
	for cursor.Next(ctx) {
		var doc struct {
			RegistrationNumber string `bson:"registration_number"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return 0, fmt.Errorf("failed to decode registration number: %w", err)
		}
		suffix, err := strconv.Atoi(doc.RegistrationNumber[len(prefix):])
		if err != nil {
			continue
		}
		if suffix > max {
			max = suffix
		}
	}
	return max, nil
}
