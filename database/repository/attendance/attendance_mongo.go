package attendanceRepo

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

// MongoAttendanceRepo implements AttendanceRepository using MongoDB.
type MongoAttendanceRepo struct {
	coll *mongo.Collection
}

// NewMongoAttendanceRepo creates a new AttendanceRepository using MongoDB.
func NewMongoAttendanceRepo() AttendanceRepository {
	coll := database.DB().Collection("attendance")
	repo := &MongoAttendanceRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAttendanceRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "registration_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "registration_number", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByRegistrationID retrieves the attendance record for a registration.
func (r *MongoAttendanceRepo) GetByRegistrationID(registrationID string) (*models.Attendance, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var a models.Attendance
	if err := r.coll.FindOne(ctx, bson.M{"registration_id": registrationID}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch attendance for registration %s: %w", registrationID, err)
	}
	return &a, nil
}

// GetByNumber retrieves an attendance record by registration number.
func (r *MongoAttendanceRepo) GetByNumber(number string) (*models.Attendance, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var a models.Attendance
	if err := r.coll.FindOne(ctx, bson.M{"registration_number": number}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch attendance %s: %w", number, err)
	}
	return &a, nil
}

// Create inserts a new attendance record.
func (r *MongoAttendanceRepo) Create(a *models.Attendance) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	a.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("failed to create attendance record: %w", err)
	}
	return nil
}

// AppendScan appends a scan event to the record's ledger.
func (r *MongoAttendanceRepo) AppendScan(registrationID string, scan models.ScanEvent) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"registration_id": registrationID}
	update := bson.M{"$push": bson.M{"scans": scan}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to append scan for registration %s: %w", registrationID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("attendance record for registration %s not found", registrationID)
	}
	return nil
}

// DeleteByRegistrationID removes the record for a registration.
func (r *MongoAttendanceRepo) DeleteByRegistrationID(registrationID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"registration_id": registrationID}); err != nil {
		return fmt.Errorf("failed to delete attendance for registration %s: %w", registrationID, err)
	}
	return nil
}
