package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flightmail-service/internal/domain/entity"
	"flightmail-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoEmailRepository implements repository.EmailRepository
type MongoEmailRepository struct {
	collection *mongo.Collection
}

// NewMongoEmailRepository creates the email log repository and ensures its
// indexes.
func NewMongoEmailRepository(ctx context.Context, db *mongo.Database) (repository.EmailRepository, error) {
	collection := db.Collection("emailLogs")

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.M{"emailId": 1},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.M{"receivedAt": -1},
		},
		{
			Keys: bson.D{
				{Key: "processStatus", Value: 1},
				{Key: "receivedAt", Value: 1},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create email log indexes: %w", err)
	}

	return &MongoEmailRepository{
		collection: collection,
	}, nil
}

// Save inserts a new log entry, defaulting the status to PENDING
func (r *MongoEmailRepository) Save(ctx context.Context, email *entity.Email) error {
	if email.ProcessStatus == "" {
		email.ProcessStatus = entity.StatusPending
	}

	if _, err := r.collection.InsertOne(ctx, email); err != nil {
		return fmt.Errorf("failed to save email %s: %w", email.EmailID, err)
	}
	return nil
}

// GetLastEmail returns the most recently received email, or nil when the
// log is empty.
func (r *MongoEmailRepository) GetLastEmail(ctx context.Context) (*entity.Email, error) {
	var email entity.Email
	opts := options.FindOne().SetSort(bson.D{{Key: "receivedAt", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &email, nil
}

// FindByEmailID returns repository.ErrNotFound when the message has never
// been logged
func (r *MongoEmailRepository) FindByEmailID(ctx context.Context, emailID string) (*entity.Email, error) {
	var email entity.Email
	err := r.collection.FindOne(ctx, bson.M{"emailId": emailID}).Decode(&email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &email, nil
}

// FindByEmailIDs batch-checks which message IDs are already logged
func (r *MongoEmailRepository) FindByEmailIDs(ctx context.Context, emailIDs []string) (map[string]*entity.Email, error) {
	if len(emailIDs) == 0 {
		return make(map[string]*entity.Email), nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"emailId": bson.M{"$in": emailIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	result := make(map[string]*entity.Email)
	for cursor.Next(ctx) {
		var email entity.Email
		if err := cursor.Decode(&email); err != nil {
			continue
		}
		result[email.EmailID] = &email
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *MongoEmailRepository) UpdateStatusByEmailID(ctx context.Context, emailID string, status string, startedAt time.Time) error {
	set := bson.M{"processStatus": status}
	if status == entity.StatusProcessing && !startedAt.IsZero() {
		set["processStartedAt"] = startedAt
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"emailId": emailID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("no email log with emailID %s: %w", emailID, repository.ErrNotFound)
	}
	return nil
}

func (r *MongoEmailRepository) MarkAsProcessedByEmailID(ctx context.Context, emailID, status, processorType, errorDetail string, extractedData map[string]interface{}) error {
	set := bson.M{
		"processedAt":   time.Now(),
		"processStatus": status,
		"processorType": processorType,
	}
	if len(extractedData) > 0 {
		set["extractedData"] = extractedData
	}
	if errorDetail != "" {
		set["errorDetail"] = errorDetail
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"emailId": emailID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to mark as processed: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("no email log with emailID %s: %w", emailID, repository.ErrNotFound)
	}
	return nil
}
