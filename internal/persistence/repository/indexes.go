package repository

import (
	"context"
	"fmt"

	"github.com/hilthontt/tripsync/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. The unique
// trip_code index is what turns a code collision into ErrTripCodeTaken.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	collaborations := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trip_code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "members", Value: 1}},
		},
	}
	if _, err := database.Collection(db.CollaborationsCollection).Indexes().CreateMany(ctx, collaborations); err != nil {
		return fmt.Errorf("collaboration indexes: %w", err)
	}

	soloTrips := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "owner_id", Value: 1},
				{Key: "start_date", Value: 1},
			},
		},
	}
	if _, err := database.Collection(db.SoloTripsCollection).Indexes().CreateMany(ctx, soloTrips); err != nil {
		return fmt.Errorf("solo trip indexes: %w", err)
	}

	if err := NewTripAuditLogRepository(database).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("audit log indexes: %w", err)
	}
	return nil
}
