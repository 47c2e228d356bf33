package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flightmail-service/internal/domain/entity"
	"flightmail-service/internal/domain/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTripRepository implements repository.TripRepository
type MongoTripRepository struct {
	collection *mongo.Collection
}

// NewMongoTripRepository creates the trip repository and ensures its indexes
func NewMongoTripRepository(ctx context.Context, db *mongo.Database) (repository.TripRepository, error) {
	collection := db.Collection("trips")

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.M{"dedupeKey": 1},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "userEmail", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create trip indexes: %w", err)
	}

	return &MongoTripRepository{
		collection: collection,
	}, nil
}

// Upsert creates or replaces the trip sharing trip.DedupeKey. The stored ID
// and creation time survive replacement.
func (r *MongoTripRepository) Upsert(ctx context.Context, trip *entity.Trip) error {
	now := time.Now().UTC()
	trip.UpdatedAt = now

	updateDoc := bson.M{
		"userEmail":          trip.UserEmail,
		"status":             trip.Status,
		"origin":             trip.Origin,
		"destination":        trip.Destination,
		"departureDate":      trip.DepartureDate,
		"returnDate":         trip.ReturnDate,
		"isOneWay":           trip.IsOneWay,
		"airline":            trip.Airline,
		"confirmationNumber": trip.ConfirmationNumber,
		"confidence":         trip.Confidence,
		"parserUsed":         trip.ParserUsed,
		"parseError":         trip.ParseError,
		"parseErrorKind":     trip.ParseErrorKind,
		"subject":            trip.Subject,
		"sourceEmailId":      trip.SourceEmailID,
		"updatedAt":          trip.UpdatedAt,
	}

	newID := trip.ID
	if newID == "" {
		newID = uuid.NewString()
	}
	createdAt := trip.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored entity.Trip
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"dedupeKey": trip.DedupeKey},
		bson.M{
			"$set":         updateDoc,
			"$setOnInsert": bson.M{"_id": newID, "createdAt": createdAt},
		},
		opts,
	).Decode(&stored)
	if err != nil {
		return fmt.Errorf("failed to upsert trip %s: %w", trip.DedupeKey, err)
	}

	trip.ID = stored.ID
	trip.CreatedAt = stored.CreatedAt
	return nil
}

func (r *MongoTripRepository) FindByID(ctx context.Context, userEmail, id string) (*entity.Trip, error) {
	var trip entity.Trip
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userEmail": userEmail}).Decode(&trip)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &trip, nil
}

// ListByUser returns the user's trips, newest first
func (r *MongoTripRepository) ListByUser(ctx context.Context, userEmail string, limit int) ([]*entity.Trip, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"userEmail": userEmail}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	trips := make([]*entity.Trip, 0)
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}
