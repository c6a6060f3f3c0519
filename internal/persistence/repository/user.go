package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hilthontt/tripsync/internal/domain"
	"github.com/hilthontt/tripsync/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepository struct {
	db *mongo.Database
}

func NewUserRepository(db *mongo.Database) domain.UserRepository {
	return &userRepository{db: db}
}

// GetByID matches string ids and, for accounts created by the legacy
// service, ObjectId ids given in hex.
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	ids := bson.A{id}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		ids = append(ids, oid)
	}

	var user domain.User
	err := r.db.Collection(db.UsersCollection).
		FindOne(ctx, bson.M{"_id": bson.M{"$in": ids}}).
		Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
