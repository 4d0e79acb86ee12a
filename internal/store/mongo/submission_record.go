package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/casaverde/comanda/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SubmissionRecordRepository struct {
	collection *mongo.Collection
}

func NewSubmissionRecordRepository(db *mongo.Database) *SubmissionRecordRepository {
	return &SubmissionRecordRepository{
		collection: db.Collection("submission_audit"),
	}
}

func (r *SubmissionRecordRepository) Create(ctx context.Context, record *domain.SubmissionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to create submission record: %w", err)
	}

	return nil
}

func (r *SubmissionRecordRepository) GetBySessionID(ctx context.Context, sessionID string, limit int) ([]domain.SubmissionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"session_id": sessionID}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []domain.SubmissionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode submission records: %w", err)
	}

	return records, nil
}
