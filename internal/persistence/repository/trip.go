package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hilthontt/tripsync/internal/domain"
	"github.com/hilthontt/tripsync/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type tripRepository struct {
	db *mongo.Database
}

func NewTripRepository(db *mongo.Database) domain.TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) collection() *mongo.Collection {
	return r.db.Collection(db.CollaborationsCollection)
}

func (r *tripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	_, err := r.collection().InsertOne(ctx, trip)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrTripCodeTaken
	}
	if err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}
	return nil
}

func (r *tripRepository) GetByCode(ctx context.Context, tripCode string) (*domain.Trip, error) {
	var trip domain.Trip
	err := r.collection().FindOne(ctx, bson.M{"trip_code": tripCode}).Decode(&trip)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find trip: %w", err)
	}
	return &trip, nil
}

func (r *tripRepository) AddMember(ctx context.Context, tripCode string, userID string) (*domain.Trip, error) {
	filter := bson.M{"trip_code": tripCode}
	update := bson.M{"$addToSet": bson.M{"members": userID}}

	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *tripRepository) UpdateItinerary(ctx context.Context, tripCode string, itinerary domain.Itinerary) (*domain.Trip, error) {
	filter := bson.M{"trip_code": tripCode}
	update := bson.M{"$set": bson.M{
		"days":       itinerary.Days,
		"activities": itinerary.Activities,
		"updated_at": time.Now().UTC(),
	}}

	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *tripRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*domain.Trip, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var trip domain.Trip
	err := r.collection().FindOneAndUpdate(ctx, filter, update, opts).Decode(&trip)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update trip: %w", err)
	}
	return &trip, nil
}

func (r *tripRepository) ListByMember(ctx context.Context, userID string) ([]domain.Trip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection().Find(ctx, bson.M{"members": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer cursor.Close(ctx)

	trips := []domain.Trip{}
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("decode trips: %w", err)
	}
	return trips, nil
}
