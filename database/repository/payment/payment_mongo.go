package paymentRepo

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

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo creates a new PaymentRepository using MongoDB.
func NewMongoPaymentRepo() PaymentRepository {
	coll := database.DB().Collection("payments")
	repo := &MongoPaymentRepo{coll: coll}

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
func (r *MongoPaymentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "gateway_order_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "ref_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new payment row in CREATED state.
func (r *MongoPaymentRepo) Create(p *models.Payment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Status = models.PaymentCreated

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetByOrderID retrieves a payment by its gateway order id. Returns nil when
// no payment was opened for that order.
func (r *MongoPaymentRepo) GetByOrderID(orderID string) (*models.Payment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.Payment
	if err := r.coll.FindOne(ctx, bson.M{"gateway_order_id": orderID}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch payment for order %s: %w", orderID, err)
	}
	return &p, nil
}

// MarkSuccess transitions a payment to SUCCESS. The status filter makes the
// transition a one-shot: a replayed webhook or a second verification of the
// same order matches zero documents and returns false.
func (r *MongoPaymentRepo) MarkSuccess(orderID, gatewayPaymentID, signature string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"gateway_order_id": orderID,
		"status":           bson.M{"$ne": models.PaymentSuccess},
	}
	update := bson.M{"$set": bson.M{
		"status":             models.PaymentSuccess,
		"gateway_payment_id": gatewayPaymentID,
		"gateway_signature":  signature,
		"failure_reason":     "",
		"updated_at":         time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to mark payment success for order %s: %w", orderID, err)
	}
	return result.ModifiedCount > 0, nil
}

// MarkFailed transitions a CREATED payment to FAILED with a reason. A row
// already out of CREATED is left untouched.
func (r *MongoPaymentRepo) MarkFailed(orderID, gatewayPaymentID, reason string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"gateway_order_id": orderID,
		"status":           models.PaymentCreated,
	}
	update := bson.M{"$set": bson.M{
		"status":             models.PaymentFailed,
		"gateway_payment_id": gatewayPaymentID,
		"failure_reason":     reason,
		"updated_at":         time.Now(),
	}}

	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to mark payment failed for order %s: %w", orderID, err)
	}
	return nil
}

// SumSuccessByRef sums SUCCESS payment amounts for a reference with an
// aggregation pipeline. The ledger sum is recomputed on every
// reconciliation event; it is never tracked as a running counter.
func (r *MongoPaymentRepo) SumSuccessByRef(refID, paymentType string) (int, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"ref_id":       refID,
			"payment_type": paymentType,
			"status":       models.PaymentSuccess,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to sum payments for %s: %w", refID, err)
	}
	defer cursor.Close(ctx)

	var out []struct {
		Total int `bson:"total"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return 0, fmt.Errorf("failed to decode payment sum for %s: %w", refID, err)
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Total, nil
}

// ListByRef retrieves all payment rows for a reference.
func (r *MongoPaymentRepo) ListByRef(refID string) ([]models.Payment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"ref_id": refID})
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for %s: %w", refID, err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments for %s: %w", refID, err)
	}
	return payments, nil
}

// DeleteByRef removes all payment rows for a reference.
func (r *MongoPaymentRepo) DeleteByRef(refID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"ref_id": refID}); err != nil {
		return fmt.Errorf("failed to delete payments for %s: %w", refID, err)
	}
	return nil
}
