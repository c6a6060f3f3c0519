package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hilthontt/tripsync/internal/domain"
	"github.com/hilthontt/tripsync/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type soloTripRepository struct {
	db *mongo.Database
}

func NewSoloTripRepository(db *mongo.Database) domain.SoloTripRepository {
	return &soloTripRepository{db: db}
}

func (r *soloTripRepository) collection() *mongo.Collection {
	return r.db.Collection(db.SoloTripsCollection)
}

func (r *soloTripRepository) Create(ctx context.Context, trip *domain.SoloTrip) error {
	if _, err := r.collection().InsertOne(ctx, trip); err != nil {
		return fmt.Errorf("insert solo trip: %w", err)
	}
	return nil
}

func (r *soloTripRepository) GetByID(ctx context.Context, id string) (*domain.SoloTrip, error) {
	var trip domain.SoloTrip
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&trip)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrSoloTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find solo trip: %w", err)
	}
	return &trip, nil
}

func (r *soloTripRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.SoloTrip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})

	cursor, err := r.collection().Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list solo trips: %w", err)
	}
	defer cursor.Close(ctx)

	trips := []domain.SoloTrip{}
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("decode solo trips: %w", err)
	}
	return trips, nil
}

func (r *soloTripRepository) Update(ctx context.Context, trip *domain.SoloTrip) error {
	res, err := r.collection().ReplaceOne(ctx, bson.M{"_id": trip.ID}, trip)
	if err != nil {
		return fmt.Errorf("replace solo trip: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSoloTripNotFound
	}
	return nil
}

func (r *soloTripRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete solo trip: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSoloTripNotFound
	}
	return nil
}
