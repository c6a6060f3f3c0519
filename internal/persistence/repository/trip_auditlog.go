package repository

import (
	"context"
	"time"

	"github.com/hilthontt/tripsync/internal/domain"
	"github.com/hilthontt/tripsync/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type tripAuditLogRepository struct {
	db *mongo.Database
}

func NewTripAuditLogRepository(db *mongo.Database) domain.TripAuditRepository {
	return &tripAuditLogRepository{db: db}
}

func (r *tripAuditLogRepository) Log(ctx context.Context, log *domain.TripAuditLog) error {
	collection := r.db.Collection(db.TripAuditLogsCollection)

	_, err := collection.InsertOne(ctx, log)
	return err
}

func (r *tripAuditLogRepository) GetByTripCode(ctx context.Context, tripCode string, limit int) ([]domain.TripAuditLog, error) {
	collection := r.db.Collection(db.TripAuditLogsCollection)

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, bson.M{"trip_code": tripCode}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []domain.TripAuditLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *tripAuditLogRepository) DeleteOlderThan(ctx context.Context, before time.Time) error {
	collection := r.db.Collection(db.TripAuditLogsCollection)

	_, err := collection.DeleteMany(ctx, bson.M{"timestamp": bson.M{"$lt": before}})
	return err
}

func (r *tripAuditLogRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.db.Collection(db.TripAuditLogsCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "trip_code", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
		{
			Keys:    bson.D{{Key: "timestamp", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(7776000), // 90 days
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
